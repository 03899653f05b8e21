package cli

import (
	"context"
	"errors"
)

var errPasswordMismatch = errors.New("passwords do not match")

// Register asks for a username, email and password (twice) and creates the
// account. It does not log the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := a.prompt("Username")
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	email, err := a.prompt("Email")
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	password, err := a.promptSecret("Password")
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	confirm, err := a.promptSecret("Repeat password")
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	if password != confirm {
		a.warn("Passwords do not match")
		return errPasswordMismatch
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	p, err := a.vault.Register(opCtx, username, email, password)
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	a.success("Account %q created. You can now log in.", p.Username)
	return nil
}

// Login asks for credentials and starts a session, replacing any current one.
func (a *App) Login(ctx context.Context) error {
	username, err := a.prompt("Username")
	if err != nil {
		return a.fail(ctx, "login", err)
	}
	password, err := a.promptSecret("Password")
	if err != nil {
		return a.fail(ctx, "login", err)
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, err := a.vault.Login(opCtx, username, password)
	if err != nil {
		return a.fail(ctx, "login", err)
	}
	a.success("Logged in as %s", s.Principal.Username)
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	loggedIn := a.isLoggedIn()
	a.vault.Logout(ctx)
	if !loggedIn {
		a.warn("Not logged in")
		return nil
	}
	a.info("Logged out")
	return nil
}
