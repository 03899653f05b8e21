package vault

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
)

// track logs one finished operation with its duration and outcome. Callers
// pass only identifying attributes, never credentials or secret values.
func (s *Service) track(ctx context.Context, op string, start time.Time, errp *error, attrs ...any) {
	args := append([]any{"op", op, "duration", time.Since(start)}, attrs...)

	err := *errp
	switch {
	case err == nil:
		s.logger.Info(ctx, "operation completed", args...)
	case isExpected(err):
		s.logger.Warn(ctx, "operation rejected", append(args, "error", err.Error())...)
	default:
		s.logger.Error(ctx, "operation failed", append(args, "error", err.Error())...)
	}
}

// isExpected reports errors caused by user input rather than the system.
func isExpected(err error) bool {
	for _, e := range []error{
		common.ErrValidation,
		common.ErrDuplicatePrincipal,
		common.ErrInvalidCredentials,
		common.ErrUnauthorized,
		common.ErrNotFound,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
