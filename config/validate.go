package config

import (
	"github.com/teranos/lexkit/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Log.Verbosity < 0 {
		return errors.NewInvalidConfigError("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	if _, _, err := normalizationForm(c.Lexer.Normalization); err != nil {
		return err
	}

	// Patterns are compiled by CompileRules; only shape is checked here
	for i, r := range c.Rules {
		if err := r.Validate(); err != nil {
			return errors.Wrapf(err, "rule %d", i)
		}
	}

	return nil
}
