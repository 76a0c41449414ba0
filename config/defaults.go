package config

import (
	"github.com/spf13/viper"
)

// Config file names searched for by Load, in preference order
const (
	ProjectConfigName = "lexkit.toml"
	EnvPrefix         = "LEXKIT"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("lexer.normalization", NormalizationNone)
}
