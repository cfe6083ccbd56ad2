package main

import (
	"tablesort/cmd"
)

func main() {
	cmd.Execute()
}
