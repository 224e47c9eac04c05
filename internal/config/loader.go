package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load builds the configuration: defaults, then the TOML file at path (if
// path is not empty), then PAGECRAFT_ environment variables. The result is
// validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := cfg.DecodeTOML(bytes.NewReader(data), path); err != nil {
			return nil, err
		}
	}

	if err := NewEnvLoader(EnvPrefix).Apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeTOML applies the settings in r on top of c. Keys that do not
// name a setting are rejected. Source names r in errors.
func (c *Config) DecodeTOML(r io.Reader, source string) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) && len(serr.Errors) > 0 {
			first := serr.Errors[0]
			perr.Line, perr.Column = first.Position()
			if key := first.Key(); len(key) > 0 {
				perr.Message = "unknown setting " + strings.Join(key, ".")
			}
		}
		return perr
	}
	return nil
}

// EncodeTOML writes c as TOML.
func (c *Config) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
