package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, sub, email string, ttl time.Duration) string {
	t.Helper()
	c := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

type stubProvider struct {
	user       User
	err        error
	signOutErr error
	signedOut  bool
}

func (p *stubProvider) Authenticate(ctx context.Context) (User, error) { return p.user, p.err }

func (p *stubProvider) SignOut(ctx context.Context) error {
	p.signedOut = true
	return p.signOutErr
}

func TestSession_StartsLoading(t *testing.T) {
	s := New()

	assert.Equal(t, StateLoading, s.State())
	_, ok := s.CurrentUser()
	assert.False(t, ok)
}

func TestSession_Start(t *testing.T) {
	tests := []struct {
		name      string
		provider  *stubProvider
		wantState State
		wantErr   bool
	}{
		{
			name:      "authenticated",
			provider:  &stubProvider{user: User{ID: "u1", Email: "a@b.c"}},
			wantState: StateAuthenticated,
		},
		{
			name:      "no token is anonymous without error",
			provider:  &stubProvider{err: ErrNoToken},
			wantState: StateAnonymous,
		},
		{
			name:      "provider failure is anonymous with error",
			provider:  &stubProvider{err: errors.New("expired")},
			wantState: StateAnonymous,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			err := s.Start(context.Background(), tt.provider)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, s.State())
		})
	}
}

func TestSession_SignOut(t *testing.T) {
	p := &stubProvider{user: User{ID: "u1"}, signOutErr: errors.New("network")}
	s := New()
	require.NoError(t, s.Start(context.Background(), p))

	u, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)

	err := s.SignOut(context.Background())
	assert.Error(t, err)
	assert.True(t, p.signedOut)

	_, ok = s.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, StateAnonymous, s.State())
}

func TestSession_SignInEmptyID(t *testing.T) {
	s := New()
	s.SignIn(User{})
	assert.Equal(t, StateAnonymous, s.State())
}

func TestTokenProvider_Authenticate(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		token   string
		wantID  string
		wantErr error
	}{
		{
			name:   "valid token",
			secret: testSecret,
			token:  signToken(t, testSecret, "user-42", "u@example.com", time.Hour),
			wantID: "user-42",
		},
		{
			name:    "no token",
			secret:  testSecret,
			token:   "",
			wantErr: ErrNoToken,
		},
		{
			name:    "wrong secret",
			secret:  testSecret,
			token:   signToken(t, "other", "user-42", "", time.Hour),
			wantErr: jwt.ErrTokenSignatureInvalid,
		},
		{
			name:    "expired",
			secret:  testSecret,
			token:   signToken(t, testSecret, "user-42", "", -time.Minute),
			wantErr: jwt.ErrTokenExpired,
		},
		{
			name:    "missing subject",
			secret:  testSecret,
			token:   signToken(t, testSecret, "", "", time.Hour),
			wantErr: jwt.ErrTokenInvalidClaims,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewTokenProvider(tt.secret, tt.token)
			u, err := p.Authenticate(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, u.ID)
		})
	}
}

func TestTokenProvider_SignOutClearsToken(t *testing.T) {
	p := NewTokenProvider(testSecret, signToken(t, testSecret, "u1", "", time.Hour))
	s := New()
	require.NoError(t, s.Start(context.Background(), p))
	require.Equal(t, StateAuthenticated, s.State())

	require.NoError(t, s.SignOut(context.Background()))

	_, err := p.Authenticate(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}
