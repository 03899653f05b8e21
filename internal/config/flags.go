package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/passkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-t string     database driver, "sqlite" or "pgx"
//	-d string     database DSN or SQLite file path
//	-k string     key store, "file" or "s3"
//	-f string     key file path
//	-b string     S3 bucket
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g. "http://127.0.0.1:9000")
//	-u string     S3 access key
//	-p string     S3 secret key
//	-o string     S3 object holding the key
//	-w int        bcrypt cost
//	-l string     log level
//	-L string     log file ("" logs to stderr)
//	-timeout dur  per-command storage timeout (e.g. "5s")
//
// Arguments not in this list, -c/-config included, are filtered out with
// flagx.FilterArgs first.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-t", "-d", "-k", "-f", "-b", "-g", "-e", "-u", "-p", "-o", "-w", "-l", "-L", "-timeout",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDriver, "t", config.DatabaseDriver, "database driver (sqlite|pgx)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.KeyStore, "k", config.KeyStore, "key store (file|s3)")
	fs.StringVar(&config.KeyFile, "f", config.KeyFile, "key file path")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3KeyObject, "o", config.S3KeyObject, "S3 key object")
	fs.IntVar(&config.BcryptCost, "w", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "L", config.LogFile, "log file")
	fs.DurationVar(&config.OperationTimeout, "timeout", config.OperationTimeout, "storage operation timeout")

	return fs.Parse(args)
}
