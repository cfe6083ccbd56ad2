package recordtable

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
)

const (
	DefaultPreviewRows = 5
	maxCellWidth       = 50
)

// Preview renders the first k rows as a grid. A non-positive k uses
// DefaultPreviewRows.
func (t *Table) Preview(w io.Writer, k int) error {
	if k <= 0 {
		k = DefaultPreviewRows
	}
	if _, err := fmt.Fprintf(w, "Table: %d rows × %d columns\n", t.Len(), len(t.Schema.Fields)); err != nil {
		return err
	}
	if len(t.Schema.Fields) == 0 {
		return nil
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Schema.Names())
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)

	shown := min(k, t.Len())
	for _, row := range t.Rows[:shown] {
		cells := make([]string, len(t.Schema.Fields))
		for ci := range cells {
			cells[ci] = "NULL"
			if ci < len(row) && row[ci] != nil {
				cells[ci] = truncate(FormatValue(row[ci]), maxCellWidth)
			}
		}
		tw.Append(cells)
	}
	tw.Render()

	if more := t.Len() - shown; more > 0 {
		_, err := fmt.Fprintf(w, "... %d more rows\n", more)
		return err
	}
	return nil
}

// String renders the default preview.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.Preview(&sb, DefaultPreviewRows)
	return sb.String()
}

// truncate shortens s to maxLen runes, so multi-byte text is never split.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
