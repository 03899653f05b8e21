package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		wantField string
	}{
		{name: "ok", username: "alice", email: "a@x.com", password: "Str0ng!Pass"},
		{name: "short username", username: "al", email: "a@x.com", password: "Str0ng!Pass", wantField: "username"},
		{name: "long username", username: strings.Repeat("a", 51), email: "a@x.com", password: "Str0ng!Pass", wantField: "username"},
		{name: "bad email", username: "alice", email: "not-an-email", password: "Str0ng!Pass", wantField: "email"},
		{name: "email with name", username: "alice", email: "Alice <a@x.com>", password: "Str0ng!Pass", wantField: "email"},
		{name: "email without dot", username: "alice", email: "a@localhost", password: "Str0ng!Pass", wantField: "email"},
		{name: "short password", username: "alice", email: "a@x.com", password: "S0!a", wantField: "password"},
		{name: "no upper", username: "alice", email: "a@x.com", password: "str0ng!pass", wantField: "password"},
		{name: "no lower", username: "alice", email: "a@x.com", password: "STR0NG!PASS", wantField: "password"},
		{name: "no digit", username: "alice", email: "a@x.com", password: "Strong!Pass", wantField: "password"},
		{name: "no special", username: "alice", email: "a@x.com", password: "Str0ngPass", wantField: "password"},
		{name: "too long for bcrypt", username: "alice", email: "a@x.com", password: "Aa1!" + strings.Repeat("x", 69), wantField: "password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Registration(tc.username, tc.email, tc.password)
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrValidation)
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.wantField, fe.Field)
		})
	}
}

func TestLogin(t *testing.T) {
	require.NoError(t, Login("alice", "x"))
	require.ErrorIs(t, Login("  ", "x"), common.ErrValidation)
	require.ErrorIs(t, Login("alice", ""), common.ErrValidation)
}

func TestSecretEntry(t *testing.T) {
	require.NoError(t, SecretEntry("example.com", "alice@example.com", "s3cret!", ""))
	require.NoError(t, SecretEntry("example.com", "alice", "s", strings.Repeat("n", NotesMaxLen)))

	for name, args := range map[string][4]string{
		"empty site":     {"", "alice", "s", ""},
		"blank site":     {"   ", "alice", "s", ""},
		"long site":      {strings.Repeat("s", SiteMaxLen+1), "alice", "s", ""},
		"empty username": {"example.com", "", "s", ""},
		"empty secret":   {"example.com", "alice", "", ""},
		"long notes":     {"example.com", "alice", "s", strings.Repeat("n", NotesMaxLen+1)},
	} {
		err := SecretEntry(args[0], args[1], args[2], args[3])
		assert.ErrorIs(t, err, common.ErrValidation, name)
	}
}

func TestFieldError_Message(t *testing.T) {
	err := &FieldError{Field: "email", Reason: "is not a valid address"}
	assert.Equal(t, "email: is not a valid address", err.Error())
}
