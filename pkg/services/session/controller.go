package session

import (
	"context"
	"strings"
	"sync"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"github.com/de-tools/report-desk/pkg/store/credential"
	"github.com/rs/zerolog"
)

// Authenticator exchanges credentials for a bearer token. Implemented by
// the report service client.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (domain.Credential, error)
}

// Controller owns the session credential. All submission and review
// surfaces gate on Authenticated(); while no credential is held, login is
// the only permitted operation.
type Controller struct {
	auth  Authenticator
	store credential.Store

	mu   sync.RWMutex
	cred *domain.Credential
}

// NewController restores any persisted credential from the store. A store
// read failure starts the session unauthenticated rather than failing
// startup; the user can simply log in again.
func NewController(ctx context.Context, auth Authenticator, store credential.Store) *Controller {
	c := &Controller{auth: auth, store: store}

	cred, err := store.Load()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to restore persisted credential")
		return c
	}
	c.cred = cred
	return c
}

// Login validates, authenticates against the service, and persists the
// returned token. A validation failure makes no network call; an
// authentication failure makes no state change.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return &domain.ValidationError{Message: "Please enter both username and password."}
	}

	cred, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return &domain.AuthError{Message: err.Error(), Cause: err}
	}

	c.mu.Lock()
	c.cred = &cred
	c.mu.Unlock()

	if err := c.store.Save(cred); err != nil {
		// The session stays usable in memory; only persistence failed.
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to persist credential")
	}
	return nil
}

// Logout clears the in-memory and persisted credential.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.cred = nil
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to clear persisted credential")
		return err
	}
	return nil
}

// Authenticated reports whether a credential is held.
func (c *Controller) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cred != nil
}

// Username returns the name the current credential was obtained with.
func (c *Controller) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cred == nil {
		return ""
	}
	return c.cred.Username
}

// Token implements reportapi.TokenSource; authenticated calls carry the
// returned value as a bearer header.
func (c *Controller) Token() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cred == nil {
		return "", false
	}
	return c.cred.Token, true
}
