package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyData     = errors.New("config data is empty")
	ErrInputTooLarge = errors.New("config input exceeds maximum size")
)

// decodeStrict decodes data into v, rejecting unknown keys. Fields absent
// from data keep the value v already holds.
func decodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return err
	}
	return nil
}

// Marshal renders cfg as YAML, for printing the effective configuration.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}
