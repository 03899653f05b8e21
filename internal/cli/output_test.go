package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "invalid username or password", userMessage(fmt.Errorf("x: %w", common.ErrInvalidCredentials)))
	assert.Equal(t, "entry not found", userMessage(common.ErrNotFound))
	assert.Equal(t, "operation timed out", userMessage(context.DeadlineExceeded))
	assert.Contains(t, userMessage(common.ErrDecryption), "cannot be decrypted")
	assert.Equal(t, "cancelled", userMessage(errCancelled))
	assert.Equal(t, "", userMessage(common.ErrStorage))
}

func TestFail_LogsUnexpected(t *testing.T) {
	var logs bytes.Buffer
	a, out := newTestApp(t, &fakeVault{}, "")
	a.logger = logging.NewSlogLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	err := errors.New("disk on fire")
	assert.Equal(t, err, a.fail(context.Background(), "list", err))
	assert.Contains(t, out.String(), "unexpected error")
	assert.Contains(t, logs.String(), "disk on fire")

	logs.Reset()
	_ = a.fail(context.Background(), "login", common.ErrInvalidCredentials)
	assert.Empty(t, logs.String())
}
