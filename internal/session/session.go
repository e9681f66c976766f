// Package session owns the authenticated-session lifecycle: phone-OTP
// login, credential persistence, and change notification to the state
// containers that mirror server-side collections.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"orderhai/internal/api"
	"orderhai/internal/credential"
	"orderhai/internal/model"
)

// Session is the authenticated context: bearer credential plus minimal
// profile.
type Session struct {
	Token string
	User  model.User
}

// Remote is the subset of the API client the session lifecycle needs.
type Remote interface {
	SendLoginOTP(ctx context.Context, phone string) (*api.OTPResponse, error)
	VerifyLoginOTP(ctx context.Context, phone, otp string) (*api.LoginResponse, error)
	GetMe(ctx context.Context) (*model.User, error)
}

// Listener receives the new session on establishment, or nil on loss.
type Listener func(*Session)

// Manager holds the current session and fans out changes to subscribers.
// Construct one per process run; containers subscribe at wiring time.
type Manager struct {
	mu        sync.Mutex
	store     credential.Store
	remote    Remote
	logger    zerolog.Logger
	current   *Session
	listeners []Listener
}

// NewManager creates a new session manager.
func NewManager(store credential.Store, remote Remote, logger zerolog.Logger) *Manager {
	return &Manager{
		store:  store,
		remote: remote,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Subscribe registers a listener and immediately delivers the current state.
func (m *Manager) Subscribe(fn Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	current := m.current
	m.mu.Unlock()

	fn(current)
}

// Current returns the active session, or nil when logged out.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Authenticated reports whether a session is active.
func (m *Manager) Authenticated() bool {
	return m.Current() != nil
}

// Load restores a session from the persisted credential. An expired token
// is discarded; a valid one is refreshed against the profile endpoint,
// falling back to the cached profile when the refresh fails.
func (m *Manager) Load(ctx context.Context) error {
	token, ok := m.store.Token()
	if !ok {
		m.set(nil)
		return nil
	}

	if tokenExpired(token) {
		m.logger.Info().Msg("stored token expired, clearing credentials")
		if err := m.store.Clear(); err != nil {
			return fmt.Errorf("failed to clear expired credentials: %w", err)
		}
		m.set(nil)
		return nil
	}

	sess := &Session{Token: token}

	user, err := m.remote.GetMe(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("profile refresh failed, using cached profile")
		if cached, ok := m.store.User(); ok {
			sess.User = *cached
		}
	} else {
		sess.User = *user
		if err := m.store.SaveUser(user); err != nil {
			m.logger.Warn().Err(err).Msg("failed to cache refreshed profile")
		}
	}

	m.set(sess)
	return nil
}

// RequestOTP asks the server to send a login OTP to the given phone.
func (m *Manager) RequestOTP(ctx context.Context, phone string) error {
	res, err := m.remote.SendLoginOTP(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to request OTP: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("OTP request rejected: %s", res.Message)
	}
	m.logger.Info().Str("phone", phone).Msg("OTP sent")
	return nil
}

// Login exchanges a phone+OTP pair for a session and persists it.
func (m *Manager) Login(ctx context.Context, phone, otp string) (*Session, error) {
	res, err := m.remote.VerifyLoginOTP(ctx, phone, otp)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := m.store.SaveToken(res.Token); err != nil {
		return nil, err
	}
	if err := m.store.SaveUser(&res.User); err != nil {
		return nil, err
	}

	sess := &Session{Token: res.Token, User: res.User}
	m.set(sess)

	m.logger.Info().Str("user_id", res.User.ID).Msg("logged in")
	return sess, nil
}

// Logout clears the persisted credential and drops the session.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.set(nil)
	m.logger.Info().Msg("logged out")
	return nil
}

// set replaces the current session and notifies listeners outside the lock.
func (m *Manager) set(s *Session) {
	m.mu.Lock()
	m.current = s
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// tokenExpired reports whether a JWT bearer token carries an exp claim in
// the past. Tokens that don't parse as JWTs, or carry no exp claim, are
// left for the server to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
