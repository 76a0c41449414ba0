// Package config loads lexkit settings: logging, lexer options and an
// optional declarative rule table.
//
// Sources, lowest precedence first: defaults, the nearest lexkit.toml found
// walking up from the working directory, LEXKIT_* environment variables.
package config

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/teranos/lexkit/errors"
	"github.com/teranos/lexkit/lex"
	"github.com/teranos/lexkit/logger"
	"github.com/teranos/lexkit/rules"
)

// Config represents the lexkit configuration
type Config struct {
	Log   LogConfig    `mapstructure:"log" toml:"log"`
	Lexer LexerConfig  `mapstructure:"lexer" toml:"lexer"`
	Rules []rules.Rule `mapstructure:"rule" toml:"rule,omitempty"`
}

// LogConfig configures the global logger
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`           // production JSON encoding
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"` // 0 warn, 1 info, 2+ debug
}

// LexerConfig configures Lexers created from this config
type LexerConfig struct {
	Normalization string `mapstructure:"normalization" toml:"normalization"` // none, nfc, nfd, nfkc, nfkd
}

// Normalization names accepted by lexer.normalization
const (
	NormalizationNone = "none"
	NormalizationNFC  = "nfc"
	NormalizationNFD  = "nfd"
	NormalizationNFKC = "nfkc"
	NormalizationNFKD = "nfkd"
)

var normalizationForms = map[string]norm.Form{
	NormalizationNFC:  norm.NFC,
	NormalizationNFD:  norm.NFD,
	NormalizationNFKC: norm.NFKC,
	NormalizationNFKD: norm.NFKD,
}

// normalizationForm resolves a normalization name; ok is false for none
func normalizationForm(name string) (form norm.Form, ok bool, err error) {
	name = strings.ToLower(name)
	if name == "" || name == NormalizationNone {
		return 0, false, nil
	}
	form, ok = normalizationForms[name]
	if !ok {
		return 0, false, errors.WithHint(
			errors.NewInvalidConfigError("lexer.normalization %q is not a Unicode normalization form", name),
			"use none, nfc, nfd, nfkc or nfkd",
		)
	}
	return form, true, nil
}

// LexerOptions translates the lexer section into lex options
func (c *Config) LexerOptions() ([]lex.Option, error) {
	form, ok, err := normalizationForm(c.Lexer.Normalization)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return []lex.Option{lex.WithNormalization(form)}, nil
}

// CompileRules compiles the [[rule]] table
func (c *Config) CompileRules() (lex.Rules[rules.Tag], error) {
	if len(c.Rules) == 0 {
		return nil, errors.WithHint(
			errors.NewInvalidConfigError("no rules configured"),
			"add [[rule]] entries to lexkit.toml",
		)
	}
	return rules.Compile(c.Rules)
}

// NewLexer compiles the configured rules and options into a Lexer over source
func (c *Config) NewLexer(source string) (*lex.Lexer[rules.Tag], error) {
	compiled, err := c.CompileRules()
	if err != nil {
		return nil, err
	}
	opts, err := c.LexerOptions()
	if err != nil {
		return nil, err
	}
	return lex.New(compiled, source, opts...), nil
}

// InitLogger initializes the global logger from the log section
func (c *Config) InitLogger() error {
	if err := logger.Initialize(c.Log.JSON, c.Log.Verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Infow("Logger initialized",
		logger.FieldLevel, logger.LevelName(c.Log.Verbosity))
	return nil
}
