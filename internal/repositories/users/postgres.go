package users

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/dbx"
	"github.com/dmitrijs2005/passkeeper/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.Principal) (*models.Principal, error) {

	query :=
		`INSERT INTO users (username, password_hash, email, created_at)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.CreatedAt).Scan(&user.ID)

	if err != nil {
		return nil, mapCreateError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Principal, error) {
	query :=
		`SELECT id, username, password_hash, email, created_at FROM users
		 WHERE username = $1
		 `

	return scanPrincipal(r.db.QueryRowContext(ctx, query, username))
}
