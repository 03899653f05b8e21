package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/repositories/repomanager"
)

const (
	KeyStoreFile = "file"
	KeyStoreS3   = "s3"
)

// Config holds runtime settings for passkeeper.
//
// Fields:
//   - DatabaseDriver / DatabaseDSN: "sqlite" (file path or DSN) or "pgx" (PostgreSQL DSN).
//   - KeyStore: where the vault key lives, "file" (KeyFile) or "s3".
//   - S3*: object storage settings for the "s3" key store.
//   - BcryptCost: work factor for password hashes.
//   - LogLevel / LogFile: log verbosity and destination ("" means stderr).
//   - OperationTimeout: per-command storage deadline, 0 disables it.
type Config struct {
	DatabaseDriver   string
	DatabaseDSN      string
	KeyStore         string
	KeyFile          string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	S3AccessKey      string
	S3SecretKey      string
	S3KeyObject      string
	BcryptCost       int
	LogLevel         string
	LogFile          string
	OperationTimeout time.Duration
}

// userConfigDir is a seam for tests.
var userConfigDir = os.UserConfigDir

// DataDir is where the default database, key file and log live.
func DataDir() string {
	dir, err := userConfigDir()
	if err != nil || dir == "" {
		return ".passkeeper"
	}
	return filepath.Join(dir, "passkeeper")
}

// LoadDefaults populates Config with a local single-user setup.
func (c *Config) LoadDefaults() {
	dir := DataDir()
	c.DatabaseDriver = repomanager.DriverSQLite
	c.DatabaseDSN = filepath.Join(dir, "vault.db")
	c.KeyStore = KeyStoreFile
	c.KeyFile = filepath.Join(dir, "secret.key")
	c.S3Bucket = "vault"
	c.S3Region = "us-east-1"
	c.S3KeyObject = "passkeeper/secret.key"
	c.BcryptCost = 12
	c.LogLevel = "info"
	c.LogFile = filepath.Join(dir, "passkeeper.log")
	c.OperationTimeout = 10 * time.Second
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case repomanager.DriverSQLite, repomanager.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database dsn is empty")
	}
	switch c.KeyStore {
	case KeyStoreFile:
		if c.KeyFile == "" {
			return fmt.Errorf("key file path is empty")
		}
	case KeyStoreS3:
		if c.S3Bucket == "" || c.S3KeyObject == "" {
			return fmt.Errorf("s3 key store needs a bucket and an object key")
		}
	default:
		return fmt.Errorf("unsupported key store %q", c.KeyStore)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.OperationTimeout < 0 {
		return fmt.Errorf("operation timeout must not be negative")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags. args are
// the program arguments without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
