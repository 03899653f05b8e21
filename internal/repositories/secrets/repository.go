// Package secrets persists encrypted site credentials. Every read is scoped
// to the owning principal.
package secrets

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/models"
)

type Repository interface {
	Create(ctx context.Context, rec *models.SecretRecord) (*models.SecretRecord, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.SecretRecord, error)
	// GetByIDAndOwner returns common.ErrNotFound both for a missing id and
	// for a record owned by someone else.
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.SecretRecord, error)
}
