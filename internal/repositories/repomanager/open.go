package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passkeeper/internal/filex"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/pressly/goose/v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open connects to the configured database, picks the matching manager and
// brings the schema up to date. The caller owns the returned *sql.DB.
func Open(ctx context.Context, driver, dsn string, logger logging.Logger) (*sql.DB, RepositoryManager, error) {
	var rm RepositoryManager

	goose.SetLogger(&gooseLogger{log: logger})

	switch driver {
	case DriverSQLite:
		rm = NewSQLiteRepositoryManager()
		dsn = sqliteDSN(dsn)
		if path := sqliteFilePath(dsn); path != "" {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, nil, fmt.Errorf("database dir: %w", err)
			}
		}
	case DriverPostgres:
		rm = NewPostgresRepositoryManager()
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if driver == DriverSQLite {
		// one writer; keeps :memory: databases on a single connection
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return db, rm, nil
}

// sqliteDSN turns on foreign keys and a parseable time format unless the
// DSN already sets pragmas.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// sqliteFilePath extracts the on-disk path from a DSN, or "" for memory DBs.
func sqliteFilePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	return path
}

// gooseLogger routes goose progress output into the application log.
type gooseLogger struct {
	log logging.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.log.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}
