package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/validate"
	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	labelColor   = color.New(color.Bold)
)

func (a *App) info(msg string) {
	fmt.Fprintln(a.out, msg)
}

func (a *App) success(format string, args ...any) {
	successColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) warn(format string, args ...any) {
	warnColor.Fprintf(a.out, format+"\n", args...)
}

// fail prints the user-facing text for err and returns err. Unexpected
// errors are logged with their details.
func (a *App) fail(ctx context.Context, op string, err error) error {
	msg := userMessage(err)
	if msg == "" {
		a.logger.Error(ctx, "command failed", "command", op, "error", err.Error())
		msg = "unexpected error, see the log for details"
	}
	errorColor.Fprintln(a.out, "Error: "+msg)
	return err
}

// userMessage maps vault errors to shell output. It returns "" for errors
// the user cannot act on.
func userMessage(err error) string {
	var fe *validate.FieldError
	switch {
	case errors.As(err, &fe):
		return fe.Error()
	case errors.Is(err, errCancelled):
		return "cancelled"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid username or password"
	case errors.Is(err, common.ErrDuplicatePrincipal):
		return "username or email already registered"
	case errors.Is(err, common.ErrUnauthorized):
		return "please log in first"
	case errors.Is(err, common.ErrNotFound):
		return "entry not found"
	case errors.Is(err, common.ErrDecryption):
		return "entry cannot be decrypted (corrupted data or wrong vault key)"
	case errors.Is(err, context.DeadlineExceeded):
		return "operation timed out"
	}
	return ""
}
