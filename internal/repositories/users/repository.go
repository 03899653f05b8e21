// Package users persists registered principals.
package users

import (
	"context"

	"github.com/dmitrijs2005/passkeeper/internal/models"
)

// Repository stores principals. Create returns common.ErrDuplicatePrincipal
// when the username or email is taken; GetByUsername returns
// common.ErrNotFound for an unknown username.
type Repository interface {
	Create(ctx context.Context, user *models.Principal) (*models.Principal, error)
	GetByUsername(ctx context.Context, username string) (*models.Principal, error)
}
