package users

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/dbx"
	"github.com/dmitrijs2005/passkeeper/internal/models"
)

func scanPrincipal(row *sql.Row) (*models.Principal, error) {
	p := &models.Principal{}
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.Email, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w: %w", common.ErrStorage, err)
	}
	return p, nil
}

func mapCreateError(err error) error {
	if dbx.IsUniqueViolation(err) {
		return common.ErrDuplicatePrincipal
	}
	return fmt.Errorf("db error: %w: %w", common.ErrStorage, err)
}
