package secrets

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

func (r *PostgresRepository) Create(ctx context.Context, rec *models.SecretRecord) (*models.SecretRecord, error) {
	query :=
		`INSERT INTO secrets (user_id, site_name, username, encrypted_password, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		rec.OwnerID, rec.Site, rec.Username, rec.CipherText, nullable(rec.Notes),
		rec.CreatedAt, rec.UpdatedAt).Scan(&rec.ID)
	if err != nil {
		return nil, dbError(err)
	}
	return rec, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.SecretRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM secrets
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, dbError(err)
	}
	return scanAll(rows)
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.SecretRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM secrets
		 WHERE id = $1 AND user_id = $2
		 `

	return scanOne(r.db.QueryRowContext(ctx, query, id, ownerID))
}
