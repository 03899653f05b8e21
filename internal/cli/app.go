package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/models"
	"github.com/dmitrijs2005/passkeeper/internal/session"
	"golang.org/x/term"
)

// Vault is the part of vault.Service the shell drives.
type Vault interface {
	Register(ctx context.Context, username, email, password string) (models.PrincipalSnapshot, error)
	Login(ctx context.Context, username, password string) (session.Session, error)
	Logout(ctx context.Context)
	Current() (session.Session, bool)
	StoreSecret(ctx context.Context, site, siteUsername, secret string, notes *string) (int64, error)
	ListSecrets(ctx context.Context) ([]models.SecretSummary, error)
	RetrieveSecret(ctx context.Context, id int64) (*models.RevealedSecret, error)
}

type App struct {
	vault   Vault
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	timeout time.Duration

	// no-echo input is only possible when in is a terminal
	stdinFd    int
	isTerminal func(fd int) bool
}

// NewApp wires the shell to in and out. timeout bounds each vault call; 0
// means no deadline.
func NewApp(v Vault, in io.Reader, out io.Writer, timeout time.Duration, logger logging.Logger) *App {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &App{
		vault:      v,
		logger:     logger,
		reader:     bufio.NewReader(in),
		out:        out,
		timeout:    timeout,
		stdinFd:    fd,
		isTerminal: isTerminal,
	}
}

func isTerminal(fd int) bool {
	return fd >= 0 && term.IsTerminal(fd)
}

// Run prints the banner and serves commands until exit, EOF or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.info("Welcome to passkeeper (type 'help' for commands)")
	return runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.vault.Current()
	return ok
}

func (a *App) status() string {
	if s, ok := a.vault.Current(); ok {
		return s.Principal.Username
	}
	return ""
}

// opContext applies the configured per-operation timeout.
func (a *App) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
