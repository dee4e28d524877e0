package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the build file used when none is given.
const DefaultFile = ".plix.yml"

// Format is the encoding of a build file.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf picks the format from a file extension. Anything but .toml is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// LoadFile reads, validates and normalizes a build file.
func LoadFile(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading build file: %w", err)
	}
	return load(data, FormatOf(path), filepath.Base(path))
}

// Load parses build file bytes.
func Load(data []byte, format Format) (*Configuration, error) {
	return load(data, format, "<input>")
}

func load(data []byte, format Format, filename string) (*Configuration, error) {
	raw, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(raw, filename); err != nil {
		return nil, err
	}
	cfg, err := normalize(raw)
	if err != nil {
		return nil, err
	}
	// fail early on executors the registry cannot build
	if _, err := cfg.Executor.New(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, format Format) (map[string]any, error) {
	raw := map[string]any{}
	switch format {
	case TOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	case YAML, "":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		switch d := doc.(type) {
		case nil:
		case map[string]any:
			raw = d
		default:
			return nil, fmt.Errorf("parsing YAML: build file must be a mapping, got %T", doc)
		}
	default:
		return nil, fmt.Errorf("unsupported build file format %q", format)
	}
	return raw, nil
}

// Dump renders the configuration as YAML.
func (c *Configuration) Dump() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("encoding configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding configuration: %w", err)
	}
	return buf.String(), nil
}
