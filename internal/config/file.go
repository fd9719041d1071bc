package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akarpati/unimail/internal/models"
)

// fileConfig is the shape of the optional yaml config file. Partitions, when
// present, replace the defaults; IMAP accounts are additive.
type fileConfig struct {
	Partitions   []models.PartitionQuery `yaml:"partitions"`
	IMAPAccounts []IMAPAccount           `yaml:"imap_accounts"`
}

// LoadFile merges the yaml file at path into the configuration.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(fc.Partitions) > 0 {
		c.Partitions = fc.Partitions
	}
	c.IMAPAccounts = append(c.IMAPAccounts, fc.IMAPAccounts...)

	return nil
}
