package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderhai/internal/api"
	"orderhai/internal/model"
)

// MockRemote is a mock implementation of Remote.
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) SendLoginOTP(ctx context.Context, phone string) (*api.OTPResponse, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.OTPResponse), args.Error(1)
}

func (m *MockRemote) VerifyLoginOTP(ctx context.Context, phone, otp string) (*api.LoginResponse, error) {
	args := m.Called(ctx, phone, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.LoginResponse), args.Error(1)
}

func (m *MockRemote) GetMe(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// memoryStore is an in-memory credential.Store for tests.
type memoryStore struct {
	token string
	user  *model.User
}

func (s *memoryStore) Token() (string, bool) { return s.token, s.token != "" }

func (s *memoryStore) SaveToken(token string) error { s.token = token; return nil }

func (s *memoryStore) User() (*model.User, bool) { return s.user, s.user != nil }

func (s *memoryStore) SaveUser(user *model.User) error { s.user = user; return nil }

func (s *memoryStore) Clear() error { s.token = ""; s.user = nil; return nil }

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestManager_Load_NoToken(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	m := NewManager(&memoryStore{}, remote, zerolog.Nop())

	var notified []*Session
	m.Subscribe(func(s *Session) { notified = append(notified, s) })

	require.NoError(t, m.Load(ctx))

	assert.False(t, m.Authenticated())
	// Once at subscribe, once at load.
	assert.Equal(t, []*Session{nil, nil}, notified)
	remote.AssertNotCalled(t, "GetMe")
}

func TestManager_Load_ExpiredTokenClears(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	store := &memoryStore{
		token: signedToken(t, time.Now().Add(-time.Hour)),
		user:  &model.User{ID: "u1", Phone: "9999900000"},
	}
	m := NewManager(store, remote, zerolog.Nop())

	require.NoError(t, m.Load(ctx))

	assert.False(t, m.Authenticated())
	_, ok := store.Token()
	assert.False(t, ok, "expired credential must be removed")
	remote.AssertNotCalled(t, "GetMe")
}

func TestManager_Load_ValidTokenRefreshesProfile(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	fresh := &model.User{ID: "u1", Phone: "9999900000", Name: "Asha"}
	remote.On("GetMe", ctx).Return(fresh, nil)

	store := &memoryStore{token: signedToken(t, time.Now().Add(time.Hour))}
	m := NewManager(store, remote, zerolog.Nop())

	require.NoError(t, m.Load(ctx))

	require.True(t, m.Authenticated())
	assert.Equal(t, "Asha", m.Current().User.Name)
	cached, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, fresh, cached)
}

func TestManager_Load_ProfileRefreshFailureUsesCache(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	remote.On("GetMe", ctx).Return(nil, errors.New("service unavailable"))

	store := &memoryStore{
		token: signedToken(t, time.Now().Add(time.Hour)),
		user:  &model.User{ID: "u1", Phone: "9999900000", Name: "Cached"},
	}
	m := NewManager(store, remote, zerolog.Nop())

	require.NoError(t, m.Load(ctx))

	require.True(t, m.Authenticated())
	assert.Equal(t, "Cached", m.Current().User.Name)
}

func TestManager_Load_OpaqueTokenAccepted(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	remote.On("GetMe", ctx).Return(&model.User{ID: "u1", Phone: "9999900000"}, nil)

	// Not a JWT at all; expiry is the server's call.
	m := NewManager(&memoryStore{token: "opaque-session-token"}, remote, zerolog.Nop())

	require.NoError(t, m.Load(ctx))

	assert.True(t, m.Authenticated())
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	remote.On("VerifyLoginOTP", ctx, "9999900000", "123456").Return(&api.LoginResponse{
		Token: "tok-abc",
		User:  model.User{ID: "u1", Phone: "9999900000"},
	}, nil)

	store := &memoryStore{}
	m := NewManager(store, remote, zerolog.Nop())

	var last *Session
	m.Subscribe(func(s *Session) { last = s })

	sess, err := m.Login(ctx, "9999900000", "123456")

	require.NoError(t, err)
	assert.Equal(t, "tok-abc", sess.Token)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Equal(t, sess, last, "listeners see the new session")

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
}

func TestManager_Login_Rejected(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	remote.On("VerifyLoginOTP", ctx, "9999900000", "000000").
		Return(nil, &api.StatusError{StatusCode: 401, Message: "invalid otp"})

	store := &memoryStore{}
	m := NewManager(store, remote, zerolog.Nop())

	sess, err := m.Login(ctx, "9999900000", "000000")

	require.Error(t, err)
	assert.Nil(t, sess)
	assert.False(t, m.Authenticated())
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	remote := new(MockRemote)
	remote.On("VerifyLoginOTP", ctx, "9999900000", "123456").Return(&api.LoginResponse{
		Token: "tok-abc",
		User:  model.User{ID: "u1", Phone: "9999900000"},
	}, nil)

	store := &memoryStore{}
	m := NewManager(store, remote, zerolog.Nop())

	var last *Session
	m.Subscribe(func(s *Session) { last = s })

	_, err := m.Login(ctx, "9999900000", "123456")
	require.NoError(t, err)
	require.True(t, m.Authenticated())

	require.NoError(t, m.Logout())

	assert.False(t, m.Authenticated())
	assert.Nil(t, last, "listeners see the session loss")
	_, ok := store.Token()
	assert.False(t, ok)
}

func TestManager_RequestOTP(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		response *api.OTPResponse
		err      error
		wantErr  bool
	}{
		{name: "Sent", response: &api.OTPResponse{Message: "sent", Success: true}},
		{name: "Rejected", response: &api.OTPResponse{Message: "unknown number", Success: false}, wantErr: true},
		{name: "Transport failure", err: errors.New("network unreachable"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := new(MockRemote)
			remote.On("SendLoginOTP", ctx, "9999900000").Return(tt.response, tt.err)

			m := NewManager(&memoryStore{}, remote, zerolog.Nop())

			err := m.RequestOTP(ctx, "9999900000")

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
