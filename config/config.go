package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// Config aggregates configuration for the application.
type Config struct {
	Sort    SortConfig    `mapstructure:"sort"`
	Preview PreviewConfig `mapstructure:"preview"`
	Parquet ParquetConfig `mapstructure:"parquet"`
	Log     LogConfig     `mapstructure:"log"`
}

type SortConfig struct {
	Algorithm   string `mapstructure:"algorithm"`
	Threshold   int    `mapstructure:"threshold"`
	StableMerge bool   `mapstructure:"stable_merge"`
}

type PreviewConfig struct {
	Rows int `mapstructure:"rows"`
}

// ParquetConfig selects the parquet decoder: "rows" (parquet-go) or "arrow".
type ParquetConfig struct {
	Reader string `mapstructure:"reader"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Sort: SortConfig{
			Algorithm: "quicksort",
			Threshold: 10,
		},
		Preview: PreviewConfig{Rows: 5},
		Parquet: ParquetConfig{Reader: "rows"},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from an optional tablesort.yaml in the working
// directory and from environment variables. Environment variables use the
// prefix "TABLESORT" and the dot character in keys is replaced by an
// underscore. For example, "sort.threshold" becomes "TABLESORT_SORT_THRESHOLD".
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("tablesort")
	v.AddConfigPath(".")
	v.SetEnvPrefix("TABLESORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)
	if err := v.ReadInConfig(); err != nil {
		// the file is optional, but one that exists must parse
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Sort.Threshold <= 0 {
		return nil, fmt.Errorf("sort.threshold must be positive, got %d", cfg.Sort.Threshold)
	}
	return cfg, nil
}

// SlogLevel parses the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts, tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
