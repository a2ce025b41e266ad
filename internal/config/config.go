package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "ANTHROPIC_TYPES_"

// Kind names a payload shape the CLI can decode.
type Kind string

const (
	KindRequest          Kind = "request"
	KindResponse         Kind = "response"
	KindMessage          Kind = "message"
	KindBlock            Kind = "block"
	KindEnvelopeRequest  Kind = "envelope-request"
	KindEnvelopeResponse Kind = "envelope-response"
	KindStream           Kind = "stream"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindRequest, KindResponse, KindMessage, KindBlock, KindEnvelopeRequest, KindEnvelopeResponse, KindStream}

const (
	OutputJSON = "json"
	OutputYAML = "yaml"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the resolved CLI settings.
type Config struct {
	Kind        Kind   `yaml:"kind"`
	Output      string `yaml:"output"`
	Color       string `yaml:"color"`
	Concurrency int    `yaml:"concurrency"`
	// Pretty indents JSON output.
	Pretty bool `yaml:"pretty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Kind:        KindRequest,
		Output:      OutputJSON,
		Color:       ColorAuto,
		Concurrency: 4,
	}
}

// LoadFile overlays settings from a YAML file onto cfg. A missing file at an
// implicit location is not an error; pass required=true for a path the user
// asked for explicitly.
func LoadFile(cfg *Config, path string, required bool) error {
	if path == "" {
		return nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", absPath, err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Files that do not exist are skipped and variables that are
// already set are left alone.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overlays ANTHROPIC_TYPES_* variables onto cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "KIND"); ok && v != "" {
		cfg.Kind = Kind(v)
	}
	if v, ok := lookup(EnvPrefix + "OUTPUT"); ok && v != "" {
		cfg.Output = v
	}
	if v, ok := lookup(EnvPrefix + "COLOR"); ok && v != "" {
		cfg.Color = v
	}
	if v, ok := lookup(EnvPrefix + "CONCURRENCY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCONCURRENCY: %w", EnvPrefix, err)
		}
		cfg.Concurrency = n
	}
	if v, ok := lookup(EnvPrefix + "PRETTY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sPRETTY: %w", EnvPrefix, err)
		}
		cfg.Pretty = b
	}
	return nil
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return "", fmt.Errorf("unknown kind %q (want one of %s)", s, strings.Join(names, ", "))
}

// Validate checks that every setting holds a supported value.
func (c Config) Validate() error {
	if _, err := ParseKind(string(c.Kind)); err != nil {
		return err
	}
	switch c.Output {
	case OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", c.Output)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q (want auto, always or never)", c.Color)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}
