package secrets

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

func (r *SQLiteRepository) Create(ctx context.Context, rec *models.SecretRecord) (*models.SecretRecord, error) {
	query :=
		`INSERT INTO secrets (user_id, site_name, username, encrypted_password, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		rec.OwnerID, rec.Site, rec.Username, rec.CipherText, nullable(rec.Notes),
		rec.CreatedAt.UTC(), rec.UpdatedAt.UTC()).Scan(&rec.ID)
	if err != nil {
		return nil, dbError(err)
	}
	return rec, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.SecretRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM secrets
		 WHERE user_id = ?
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, dbError(err)
	}
	return scanAll(rows)
}

func (r *SQLiteRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.SecretRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM secrets
		 WHERE id = ? AND user_id = ?
		 `

	return scanOne(r.db.QueryRowContext(ctx, query, id, ownerID))
}
