/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type StoreBackend string

const (
	BackendS3     StoreBackend = "s3"
	BackendDisk   StoreBackend = "disk"
	BackendMemory StoreBackend = "memory"
)

const (
	EnvBucket  = "DUELRESULT_BUCKET"
	EnvWebhook = "DUELRESULT_WEBHOOK"
)

// StoreConfig selects where series snapshots are kept.
type StoreConfig struct {
	Backend StoreBackend `yaml:"backend"`
	Bucket  string       `yaml:"bucket"`
	Dir     string       `yaml:"dir"`
	Gzip    bool         `yaml:"gzip"`

	// Endpoint overrides the S3 endpoint, e.g. for an S3 compatible
	// server; it implies path style addressing.
	Endpoint string `yaml:"endpoint"`
}

type DiscordConfig struct {
	Webhook string `yaml:"webhook"`
}

type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Series  string        `yaml:"series"`
	Discord DiscordConfig `yaml:"discord"`
}

func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendDisk,
			Bucket:  SnapshotBucket,
			Dir:     DefaultStoreDir,
		},
		Series: DefaultSeries,
	}
}

// LoadConfig reads the YAML file at path on top of the defaults. An empty
// path yields the defaults. Environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.load: unable to read %v: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config.load: unable to parse %v: %w", path, err)
		}
	}

	if v := os.Getenv(EnvBucket); v != "" {
		cfg.Store.Bucket = v
	}
	if v := os.Getenv(EnvWebhook); v != "" {
		cfg.Discord.Webhook = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) Validate() error {
	switch cfg.Store.Backend {
	case BackendS3:
		if cfg.Store.Bucket == "" {
			return fmt.Errorf("config: s3 store requires a bucket")
		}
	case BackendDisk:
		if cfg.Store.Dir == "" {
			return fmt.Errorf("config: disk store requires a dir")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config: unknown store backend %q", cfg.Store.Backend)
	}
	if cfg.Series == "" {
		cfg.Series = DefaultSeries
	}

	return nil
}
