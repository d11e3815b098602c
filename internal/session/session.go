package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AbdulWasayUl/country-explorer/internal/logger"
)

// State is where the session is in its lifecycle. Loading and Anonymous are
// distinct, but neither exposes a user.
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type User struct {
	ID    string
	Email string
}

// Provider is the external identity provider.
type Provider interface {
	Authenticate(ctx context.Context) (User, error)
	SignOut(ctx context.Context) error
}

// Session is created once per process and handed to every component that
// needs the current user.
type Session struct {
	mu       sync.RWMutex
	state    State
	user     User
	provider Provider
}

// New returns a session in the Loading state.
func New() *Session {
	return &Session{state: StateLoading}
}

// Start asks the provider for the current identity. A provider failure other
// than ErrNoToken is returned, but the session still settles to Anonymous.
func (s *Session) Start(ctx context.Context, p Provider) error {
	s.mu.Lock()
	s.provider = p
	s.state = StateLoading
	s.user = User{}
	s.mu.Unlock()

	u, err := p.Authenticate(ctx)
	if err != nil {
		s.setAnonymous()
		if errors.Is(err, ErrNoToken) {
			logger.Debug("no identity token, continuing anonymously")
			return nil
		}
		return fmt.Errorf("authenticate: %w", err)
	}

	s.SignIn(u)
	return nil
}

// SignIn records a sign-in event from the provider.
func (s *Session) SignIn(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		s.state = StateAnonymous
		s.user = User{}
		return
	}
	s.state = StateAuthenticated
	s.user = u
	logger.Info("signed in as %s", u.ID)
}

// SignOut tears down the session locally even if the provider call fails.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.RLock()
	p := s.provider
	s.mu.RUnlock()

	s.setAnonymous()

	if p == nil {
		return nil
	}
	if err := p.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (s *Session) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.user = User{}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns the signed-in user, or false while loading or anonymous.
func (s *Session) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return User{}, false
	}
	return s.user, true
}
