package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/passkeeper/internal/flagx"
	"github.com/dmitrijs2005/passkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" apart from an explicit zero value.
type JsonConfig struct {
	DatabaseDriver   string          `json:"database_driver"`
	DatabaseDSN      string          `json:"database_dsn"`
	KeyStore         string          `json:"key_store"`
	KeyFile          string          `json:"key_file"`
	S3Bucket         string          `json:"s3_bucket"`
	S3Region         string          `json:"s3_region"`
	S3BaseEndpoint   string          `json:"s3_base_endpoint"`
	S3AccessKey      string          `json:"s3_access_key"`
	S3SecretKey      string          `json:"s3_secret_key"`
	S3KeyObject      string          `json:"s3_key_object"`
	BcryptCost       int             `json:"bcrypt_cost"`
	LogLevel         string          `json:"log_level"`
	LogFile          *string         `json:"log_file"`
	OperationTimeout *timex.Duration `json:"operation_timeout"`
}

// parseJson overlays values from the file named by -c/-config in args. Only
// keys present in the file are applied. Without the flag nothing happens.
func parseJson(config *Config, args []string) error {
	jsonConfigFile := flagx.ConfigPath(args)

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", jsonConfigFile, err)
	}

	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.KeyStore, c.KeyStore)
	setString(&config.KeyFile, c.KeyFile)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3KeyObject, c.S3KeyObject)
	setString(&config.LogLevel, c.LogLevel)
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	// an empty log_file switches file logging off
	if c.LogFile != nil {
		config.LogFile = *c.LogFile
	}
	if c.OperationTimeout != nil {
		config.OperationTimeout = c.OperationTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
