package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/models"
	"github.com/dmitrijs2005/passkeeper/internal/repositories/secrets"
	"github.com/dmitrijs2005/passkeeper/internal/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	pg := NewPostgresRepositoryManager()
	if _, ok := pg.Users(db).(*users.PostgresRepository); !ok {
		t.Fatal("postgres Users() has wrong type")
	}
	if _, ok := pg.Secrets(db).(*secrets.PostgresRepository); !ok {
		t.Fatal("postgres Secrets() has wrong type")
	}

	lite := NewSQLiteRepositoryManager()
	if _, ok := lite.Users(db).(*users.SQLiteRepository); !ok {
		t.Fatal("sqlite Users() has wrong type")
	}
	if _, ok := lite.Secrets(db).(*secrets.SQLiteRepository); !ok {
		t.Fatal("sqlite Secrets() has wrong type")
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	for _, m := range []RepositoryManager{NewPostgresRepositoryManager(), NewSQLiteRepositoryManager()} {
		if err := m.RunMigrations(context.Background(), db); err != nil {
			t.Fatalf("RunMigrations error: %v", err)
		}
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "mysql", "x", logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpen_SQLiteFileMigratesAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "vault.db")

	db, rm, err := Open(ctx, DriverSQLite, "file:"+path, logging.Discard())
	require.NoError(t, err)

	p, err := rm.Users(db).Create(ctx, &models.Principal{Username: "alice", Email: "a@x.com", PasswordHash: "h", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, rm, err = Open(ctx, DriverSQLite, "file:"+path, logging.Discard())
	require.NoError(t, err)
	defer db.Close()

	got, err := rm.Users(db).GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestOpen_MigrationFailureClosesDB(t *testing.T) {
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("bad migration")
	}
	defer func() { gooseUpContext = orig }()

	_, _, err := Open(context.Background(), DriverSQLite, "file:openfail?mode=memory", logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations: bad migration")
}

func TestOpen_OpenError(t *testing.T) {
	orig := sqlOpen
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("no driver") }
	defer func() { sqlOpen = orig }()

	_, _, err := Open(context.Background(), DriverPostgres, "postgres://x", logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open database")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "vault.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", sqliteDSN("vault.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "v.db?_pragma=journal_mode(WAL)", sqliteDSN("v.db?_pragma=journal_mode(WAL)"))
}

func TestSQLiteFilePath(t *testing.T) {
	assert.Equal(t, "/tmp/v.db", sqliteFilePath("file:/tmp/v.db?_pragma=x"))
	assert.Equal(t, "v.db", sqliteFilePath("v.db"))
	assert.Equal(t, "", sqliteFilePath(":memory:"))
	assert.Equal(t, "", sqliteFilePath("file:x?mode=memory"))
}
