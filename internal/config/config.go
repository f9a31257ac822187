// Package config loads the settings of the command line tool from defaults,
// an optional JSON file and environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/utkarsh5026/boondh/internal/cpu"
	"github.com/utkarsh5026/boondh/parallel"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "boondh.json"

// Source indicates where the configuration came from
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnvVar  Source = "environment_variable"
)

// ErrInvalidFile is returned when the config file is not valid JSON.
var ErrInvalidFile = errors.New("invalid config file")

// Config holds the settings shared by every subcommand.
type Config struct {
	Workers      int    `config:"workers" env:"BOONDH_WORKERS"`
	ChunkSize    string `config:"chunk.size" env:"BOONDH_CHUNK_SIZE"`
	ChunkDivisor int    `config:"chunk.divisor" env:"BOONDH_CHUNK_DIVISOR"`
	LogLevel     string `config:"log.level" env:"BOONDH_LOG_LEVEL"`
	LogDev       bool   `config:"log.dev" env:"BOONDH_LOG_DEV"`
	NoProgress   bool   `config:"progress.disabled" env:"BOONDH_NO_PROGRESS"`

	// Source is the highest priority layer that set at least one value.
	Source Source
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Workers:      cpu.Available(),
		ChunkSize:    parallel.AutoChunk,
		ChunkDivisor: parallel.DefaultChunkDivisor,
		LogLevel:     "info",
		Source:       SourceDefault,
	}
}

// Load layers the file at path (DefaultPath when empty) and the BOONDH_*
// environment variables over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFile, path)
		}
		g := gjson.ParseBytes(data)
		if cfg.apply(func(field reflect.StructField) (string, bool) {
			r := g.Get(field.Tag.Get("config"))
			return r.String(), r.Exists()
		}) {
			cfg.Source = SourceFile
		}
	}

	if cfg.apply(func(field reflect.StructField) (string, bool) {
		v := os.Getenv(field.Tag.Get("env"))
		return v, v != ""
	}) {
		cfg.Source = SourceEnvVar
	}

	if cfg.Workers < 1 {
		cfg.Workers = cpu.Available()
	}
	if cfg.ChunkDivisor < 1 {
		cfg.ChunkDivisor = parallel.DefaultChunkDivisor
	}
	return cfg, nil
}

// apply sets every tagged field lookup has a value for, skipping values that
// do not parse. It reports whether any field was set.
func (c *Config) apply(lookup func(reflect.StructField) (string, bool)) bool {
	var (
		v   = reflect.ValueOf(c).Elem()
		t   = v.Type()
		set = false
	)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("config") == "" {
			continue
		}
		raw, ok := lookup(field)
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)

		switch field.Type.Kind() {
		case reflect.String:
			v.Field(i).SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			v.Field(i).SetInt(int64(n))
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				continue
			}
			v.Field(i).SetBool(b)
		default:
			panic("unsupported type")
		}
		set = true
	}
	return set
}

// MapOptions turns the settings into options for parallel.Map.
func (c *Config) MapOptions() []parallel.Option {
	opts := []parallel.Option{
		parallel.WithWorkers(c.Workers),
		parallel.WithChunkSizeSpec(c.ChunkSize),
		parallel.WithChunkDivisor(c.ChunkDivisor),
	}
	if c.NoProgress {
		opts = append(opts, parallel.WithoutProgress())
	}
	return opts
}

// String returns a formatted string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Workers: %d, ChunkSize: %s, ChunkDivisor: %d, LogLevel: %s, LogDev: %t, NoProgress: %t, Source: %s}",
		c.Workers,
		c.ChunkSize,
		c.ChunkDivisor,
		c.LogLevel,
		c.LogDev,
		c.NoProgress,
		c.Source,
	)
}
