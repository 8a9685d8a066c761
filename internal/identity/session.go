package identity

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pulsedash/pulse/pkg/domain"
)

// Session resolves the user identity once and exposes the auth-state watch.
// Exactly one watch channel exists for the lifetime of the process; Close
// releases it. Sign-in failure is non-fatal by design: the session degrades
// through anonymous sign-in down to a placeholder identity and still reports
// ready, so the document subscription is never blocked by a provider outage.
type Session struct {
	provider Provider
	token    string
	log      *zap.Logger

	mu      sync.Mutex
	current domain.Session
	changes chan domain.Session
	closed  bool
}

// NewSession wires a session against a provider. token may be empty, in
// which case sign-in is anonymous.
func NewSession(provider Provider, token string, log *zap.Logger) *Session {
	return &Session{
		provider: provider,
		token:    token,
		log:      log,
		changes:  make(chan domain.Session, 1),
	}
}

// Start performs sign-in and publishes the resolved session on the watch
// channel. It blocks until the provider answers; the UI stays in its loading
// state meanwhile.
func (s *Session) Start(ctx context.Context) domain.Session {
	var id string
	var err error

	if s.token != "" {
		id, err = s.provider.SignInWithToken(ctx, s.token)
		if err != nil {
			s.log.Warn("token sign-in failed, falling back to anonymous", zap.Error(err))
			id, err = s.provider.SignInAnonymously(ctx)
		}
	} else {
		id, err = s.provider.SignInAnonymously(ctx)
	}
	if err != nil {
		id = PlaceholderIdentity()
		s.log.Warn("authentication failed, using placeholder identity",
			zap.Error(err), zap.String("identity", id))
	}

	sess := domain.Session{IdentityID: id, Ready: true}
	s.publish(sess)
	return sess
}

// Changes returns the auth-state watch channel. The current session is
// delivered on every transition; the channel closes on teardown.
func (s *Session) Changes() <-chan domain.Session {
	return s.changes
}

// Current returns the latest resolved session.
func (s *Session) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close releases the auth-state watch. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.changes)
}

func (s *Session) publish(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
	if s.closed {
		return
	}
	// Keep only the latest state; a slow consumer sees the newest value.
	select {
	case s.changes <- sess:
	default:
		select {
		case <-s.changes:
		default:
		}
		s.changes <- sess
	}
}
