package users

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/dbx"
	"github.com/dmitrijs2005/passkeeper/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.Principal) (*models.Principal, error) {
	query :=
		`INSERT INTO users (username, password_hash, email, created_at)
         VALUES (?, ?, ?, ?)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.CreatedAt.UTC()).Scan(&user.ID)
	if err != nil {
		return nil, mapCreateError(err)
	}
	return user, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.Principal, error) {
	query :=
		`SELECT id, username, password_hash, email, created_at FROM users
		 WHERE username = ?
		 `

	return scanPrincipal(r.db.QueryRowContext(ctx, query, username))
}
