package secrets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/models"
)

const selectColumns = `id, user_id, site_name, username, encrypted_password, notes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.SecretRecord, error) {
	var (
		rec   models.SecretRecord
		notes sql.NullString
	)
	err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Site, &rec.Username, &rec.CipherText,
		&notes, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		n := notes.String
		rec.Notes = &n
	}
	return &rec, nil
}

func scanOne(row *sql.Row) (*models.SecretRecord, error) {
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, dbError(err)
	}
	return rec, nil
}

func scanAll(rows *sql.Rows) ([]models.SecretRecord, error) {
	defer rows.Close()

	out := make([]models.SecretRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, dbError(err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}
	return out, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func dbError(err error) error {
	return fmt.Errorf("db error: %w: %w", common.ErrStorage, err)
}
