package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/lexkit/errors"
)

// BackupSuffix is appended to the config path for the copy kept by Save
const BackupSuffix = ".bak"

// createBackup copies the current config file to path.bak before it is replaced
func createBackup(configPath string) error {
	content, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil // No file to backup
	}
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(configPath+BackupSuffix, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to create %s", BackupSuffix)
	}
	return nil
}

// Save writes cfg to configPath as TOML, keeping the previous file as a backup
func Save(configPath string, cfg *Config) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}
	return write(configPath, data)
}

func encode(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "refusing to save invalid config")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

func write(configPath string, data []byte) error {
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write config %s", configPath)
	}
	return nil
}
