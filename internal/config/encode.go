package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Encode writes the effective configuration to w as TOML.
// The API key is redacted.
func (c *Config) Encode(w io.Writer) error {
	out := *c
	out.APIKey = c.RedactedAPIKey()
	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
