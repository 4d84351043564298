// Package session owns the authenticated-session state machine: credential
// verification, the single active session of the running instance, and
// role-based permission checks.
//
// The manager is an explicit value handed to whoever needs it. It holds at
// most one session; a successful login replaces any previous one and the
// session lives only in process memory.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"practice-manager/internal/auth"
	"practice-manager/internal/fault"
	"practice-manager/internal/logger"
	"practice-manager/internal/model"
	"practice-manager/internal/store"
)

// UserStore is the slice of the persistence gateway the manager needs.
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
}

type Config struct {
	// TokenSecret signs resume tokens.
	TokenSecret string
	// Timeout bounds how long a session stays active without renewal.
	Timeout time.Duration
	// MaxLoginAttempts per email per minute before throttling kicks in.
	MaxLoginAttempts int
}

type state struct {
	id        string
	user      model.User
	active    bool
	startedAt time.Time
	deadline  time.Time
}

type Manager struct {
	users    UserStore
	log      *logger.Logger
	cfg      Config
	attempts *loginThrottle
	now      func() time.Time

	mu   sync.Mutex
	sess *state
}

type Option func(*Manager)

// WithClock overrides the manager's time source. For tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(users UserStore, log *logger.Logger, cfg Config, opts ...Option) *Manager {
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Hour
	}
	m := &Manager{
		users:    users,
		log:      log,
		cfg:      cfg,
		attempts: newLoginThrottle(cfg.MaxLoginAttempts),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login verifies the credentials and establishes the session. An unknown
// email fails NotFound, a wrong password InvalidCredentials, and an
// exhausted attempt budget Throttled without touching the store.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, fault.New(fault.KindValidation, "email and password are required")
	}
	if !m.attempts.allow(email) {
		m.log.Warn().Str("email", email).Msg("login throttled")
		return nil, fault.New(fault.KindThrottled, "too many login attempts, try again later")
	}

	u, err := m.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindNotFound, "no account with that email")
		}
		return nil, fault.Wrap(fault.KindPersistence, "look up account", err)
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		m.log.Info().Str("email", email).Msg("login rejected")
		return nil, fault.New(fault.KindInvalidCredentials, "incorrect password")
	}

	m.attempts.reset(email)
	now := m.now()

	m.mu.Lock()
	m.sess = &state{
		id:        uuid.New().String(),
		user:      *u,
		active:    true,
		startedAt: now,
		deadline:  now.Add(m.cfg.Timeout),
	}
	m.mu.Unlock()

	m.log.Info().Str("email", email).Str("role", u.Role).Msg("session started")
	out := *u
	return &out, nil
}

// Logout clears the session unconditionally. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	had := m.sess != nil
	m.sess = nil
	m.mu.Unlock()
	if had {
		m.log.Info().Msg("session closed")
	}
}

// live reports whether the held session exists, is flagged active and has
// not passed its deadline. Callers hold m.mu.
func (m *Manager) live() bool {
	return m.sess != nil && m.sess.active && m.now().Before(m.sess.deadline)
}

func (m *Manager) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live()
}

// CurrentUser returns the session's user, or nil without an active session.
func (m *Manager) CurrentUser() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.live() {
		return nil
	}
	u := m.sess.user
	return &u
}

// HasPermission reports whether the active session's role grants token.
// Always false without an active session.
func (m *Manager) HasPermission(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.live() {
		return false
	}
	return auth.RoleHasPermission(m.sess.user.Role, token)
}

// SessionDuration is the time elapsed since login, zero without an active
// session.
func (m *Manager) SessionDuration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.live() {
		return 0
	}
	return m.now().Sub(m.sess.startedAt)
}

// Renew pushes the session deadline forward by the configured timeout.
// Reports false when there is nothing live to renew.
func (m *Manager) Renew() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.live() {
		return false
	}
	m.sess.deadline = m.now().Add(m.cfg.Timeout)
	return true
}

// ChangePassword re-verifies the old password, validates the new one and
// persists the fresh hash, updating the in-memory copy on success.
func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	m.mu.Lock()
	if !m.live() {
		m.mu.Unlock()
		return fault.New(fault.KindUnauthorized, "no active session")
	}
	user := m.sess.user
	m.mu.Unlock()

	if !auth.CheckPassword(user.PasswordHash, oldPassword) {
		return fault.New(fault.KindInvalidCredentials, "current password is incorrect")
	}
	if len(newPassword) < 6 {
		return fault.New(fault.KindValidation, "password must have at least 6 characters")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fault.Wrap(fault.KindPersistence, "hash password", err)
	}
	if err := m.users.UpdateUserPassword(ctx, user.ID, hash); err != nil {
		return fault.Wrap(fault.KindPersistence, "persist new password", err)
	}

	m.mu.Lock()
	if m.sess != nil && m.sess.user.ID == user.ID {
		m.sess.user.PasswordHash = hash
	}
	m.mu.Unlock()

	m.log.Info().Int64("user_id", user.ID).Msg("password changed")
	return nil
}

// Info is a read-only snapshot of the session for the surface layer.
type Info struct {
	Active    bool
	User      *model.User
	Role      string
	StartedAt time.Time
	Duration  time.Duration
}

func (m *Manager) Info() Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.live() {
		return Info{}
	}
	u := m.sess.user
	return Info{
		Active:    true,
		User:      &u,
		Role:      u.Role,
		StartedAt: m.sess.startedAt,
		Duration:  m.now().Sub(m.sess.startedAt),
	}
}

// ResumeToken mints a signed token bound to the current user that expires
// with the session deadline. The surface layer may hold it to re-establish
// the session after a lock without re-typing the password.
func (m *Manager) ResumeToken() (string, error) {
	m.mu.Lock()
	if !m.live() {
		m.mu.Unlock()
		return "", fault.New(fault.KindUnauthorized, "no active session")
	}
	user := m.sess.user
	ttl := m.sess.deadline.Sub(m.now())
	m.mu.Unlock()

	tok, err := auth.MakeResumeToken(user.ID, user.Role, auth.Fingerprint(user.PasswordHash), m.cfg.TokenSecret, ttl)
	if err != nil {
		return "", fault.Wrap(fault.KindPersistence, "sign resume token", err)
	}
	return tok, nil
}

// Resume re-establishes a session from a resume token. The account is
// re-read and the token's fingerprint compared against the current
// password hash, so a password change or deletion since the token was
// minted invalidates it.
func (m *Manager) Resume(ctx context.Context, token string) (*model.User, error) {
	claims, err := auth.ParseResumeToken(token, m.cfg.TokenSecret)
	if err != nil {
		return nil, fault.Wrap(fault.KindInvalidCredentials, "resume token rejected", err)
	}

	u, err := m.users.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.New(fault.KindInvalidCredentials, "account no longer exists")
		}
		return nil, fault.Wrap(fault.KindPersistence, "look up account", err)
	}
	if claims.Fingerprint != auth.Fingerprint(u.PasswordHash) {
		return nil, fault.New(fault.KindInvalidCredentials, "the password changed since the token was issued")
	}

	now := m.now()
	m.mu.Lock()
	m.sess = &state{
		id:        uuid.New().String(),
		user:      *u,
		active:    true,
		startedAt: now,
		deadline:  claims.ExpiresAt.Time,
	}
	m.mu.Unlock()

	m.log.Info().Int64("user_id", u.ID).Msg("session resumed")
	out := *u
	return &out, nil
}
