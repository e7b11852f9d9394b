// Package config loads and serves the account service configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/nimbusworks/nimbus/internal/accountsrv/account"
)

// ServerConfig is the top-level configuration for the account service.
type ServerConfig struct {
	ServiceName string `toml:"service_name"`

	// ContainerSchemaVersion is the container document version written by
	// this process. Reads always honor the version embedded in the document.
	ContainerSchemaVersion int `toml:"container_schema_version"`

	Cloud CloudConfig `toml:"cloud"`
}

// CloudConfig holds settings for the cloud tiering backend.
type CloudConfig struct {
	Bucket   string `toml:"bucket"`
	Region   string `toml:"region"`
	Endpoint string `toml:"endpoint"` // optional, for S3-compatible stores
}

var config *ServerConfig

// Config returns the loaded configuration. Before LoadConfig it returns the
// defaults.
func Config() *ServerConfig {
	if config == nil {
		config = defaultConfig()
	}
	return config
}

func defaultConfig() *ServerConfig {
	return &ServerConfig{
		ServiceName:            "accountsrv",
		ContainerSchemaVersion: account.LatestContainerJSONVersion,
	}
}

// LoadConfig reads a TOML configuration file and validates it. On success the
// result becomes the configuration returned by Config.
func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read config file %s: %w", path, err)
	}
	cfg := defaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unable to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	config = cfg
	return nil
}

// Validate checks that the configuration is usable.
func (c *ServerConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name must not be empty")
	}
	if c.ContainerSchemaVersion != account.ContainerJSONVersion1 &&
		c.ContainerSchemaVersion != account.ContainerJSONVersion2 {
		return fmt.Errorf("container_schema_version must be %d or %d, got %d",
			account.ContainerJSONVersion1, account.ContainerJSONVersion2, c.ContainerSchemaVersion)
	}
	return nil
}

// Codec returns the codec configured for this process.
func (c *ServerConfig) Codec() (account.Codec, error) {
	codec, err := account.NewCodec(c.ContainerSchemaVersion)
	if err != nil {
		return account.Codec{}, err
	}
	return codec, nil
}

// TestInit resets the configuration to defaults. Tests that load a custom
// configuration call this in cleanup.
func TestInit() {
	config = defaultConfig()
}
