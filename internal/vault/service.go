// Package vault implements the credential vault: principal registration and
// login, plus storing and revealing per-principal site secrets.
//
// Every secret operation first asks the session gate for the authenticated
// principal, and every storage query is scoped to that principal's id.
package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/dbx"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/models"
	"github.com/dmitrijs2005/passkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/passkeeper/internal/session"
	"github.com/dmitrijs2005/passkeeper/internal/validate"
)

// PasswordHasher hashes and verifies principal passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
	// Equalize burns the cost of one Verify for an unknown principal.
	Equalize(password string)
}

// SecretCipher encrypts secret values under the vault key.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Service is the vault's single entry point for the CLI.
type Service struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	cipher      SecretCipher
	gate        *session.Gate
	logger      logging.Logger
	now         func() time.Time
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, hasher PasswordHasher,
	cipher SecretCipher, gate *session.Gate, logger logging.Logger) *Service {
	return &Service{
		db:          db,
		repomanager: rm,
		hasher:      hasher,
		cipher:      cipher,
		gate:        gate,
		logger:      logger.With("component", "vault"),
		now:         time.Now,
	}
}

// Register validates the input, hashes the password and inserts the
// principal. A taken username or email yields common.ErrDuplicatePrincipal.
// Register does not log the new principal in.
func (s *Service) Register(ctx context.Context, username, email, password string) (_ models.PrincipalSnapshot, err error) {
	defer s.track(ctx, "register", time.Now(), &err, "user", username)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validate.Registration(username, email, password); err != nil {
		return models.PrincipalSnapshot{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.PrincipalSnapshot{}, err
	}

	p, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Principal, error) {
		return s.repomanager.Users(tx).Create(ctx, &models.Principal{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    s.now().UTC(),
		})
	})
	if err != nil {
		return models.PrincipalSnapshot{}, err
	}
	return p.Snapshot(), nil
}

// Login checks the credentials and, on success, replaces the current session.
// An unknown username and a wrong password both return
// common.ErrInvalidCredentials and cost one bcrypt comparison each. A failed
// login leaves any existing session in place.
func (s *Service) Login(ctx context.Context, username, password string) (_ session.Session, err error) {
	defer s.track(ctx, "login", time.Now(), &err, "user", username)

	username = strings.TrimSpace(username)
	if err := validate.Login(username, password); err != nil {
		return session.Session{}, err
	}

	p, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Equalize(password)
			return session.Session{}, common.ErrInvalidCredentials
		}
		return session.Session{}, err
	}

	if !s.hasher.Verify(password, p.PasswordHash) {
		return session.Session{}, common.ErrInvalidCredentials
	}

	return s.gate.Login(ctx, p.Snapshot()), nil
}

// Logout ends the current session, if any.
func (s *Service) Logout(ctx context.Context) {
	s.gate.Logout(ctx)
}

// Current returns the active session.
func (s *Service) Current() (session.Session, bool) {
	return s.gate.Current()
}

// StoreSecret encrypts secret and persists it for the current principal,
// returning the new record id.
func (s *Service) StoreSecret(ctx context.Context, site, siteUsername, secret string, notes *string) (_ int64, err error) {
	sess, err := s.gate.RequireAuthenticated(ctx)
	if err != nil {
		return 0, err
	}
	defer s.track(ctx, "store_secret", time.Now(), &err, "user", sess.Principal.Username)

	site = strings.TrimSpace(site)
	siteUsername = strings.TrimSpace(siteUsername)
	var n string
	if notes != nil {
		n = strings.TrimSpace(*notes)
	}
	if err := validate.SecretEntry(site, siteUsername, secret, n); err != nil {
		return 0, err
	}

	ct, err := s.cipher.Encrypt(secret)
	if err != nil {
		return 0, fmt.Errorf("encrypt secret: %w", err)
	}

	rec := &models.SecretRecord{
		OwnerID:    sess.Principal.ID,
		Site:       site,
		Username:   siteUsername,
		CipherText: ct,
	}
	if n != "" {
		rec.Notes = &n
	}
	rec.CreatedAt = s.now().UTC()
	rec.UpdatedAt = rec.CreatedAt

	id, err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (int64, error) {
		created, err := s.repomanager.Secrets(tx).Create(ctx, rec)
		if err != nil {
			return 0, err
		}
		return created.ID, nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug(ctx, "secret stored", "secret_id", id, "site", site)
	return id, nil
}

// ListSecrets returns metadata for the current principal's secrets. No
// secret value, encrypted or not, is included.
func (s *Service) ListSecrets(ctx context.Context) (_ []models.SecretSummary, err error) {
	sess, err := s.gate.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	defer s.track(ctx, "list_secrets", time.Now(), &err, "user", sess.Principal.Username)

	recs, err := s.repomanager.Secrets(s.db).ListByOwner(ctx, sess.Principal.ID)
	if err != nil {
		return nil, err
	}

	out := make([]models.SecretSummary, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].Summary())
	}
	return out, nil
}

// RetrieveSecret decrypts one of the current principal's secrets. An id that
// does not exist and an id owned by someone else both yield
// common.ErrNotFound. A record that fails authentication yields
// common.ErrDecryption.
func (s *Service) RetrieveSecret(ctx context.Context, id int64) (_ *models.RevealedSecret, err error) {
	sess, err := s.gate.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	defer s.track(ctx, "retrieve_secret", time.Now(), &err, "user", sess.Principal.Username, "secret_id", id)

	rec, err := s.repomanager.Secrets(s.db).GetByIDAndOwner(ctx, id, sess.Principal.ID)
	if err != nil {
		return nil, err
	}

	plain, err := s.cipher.Decrypt(rec.CipherText)
	if err != nil {
		return nil, err
	}

	summary := rec.Summary()
	return &models.RevealedSecret{
		ID:        rec.ID,
		Site:      rec.Site,
		Username:  rec.Username,
		Password:  plain,
		Notes:     summary.Notes,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
