package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/mendresvon/aura-notes-frontend/internal/logger"
	"github.com/mendresvon/aura-notes-frontend/internal/model"
	"github.com/mendresvon/aura-notes-frontend/internal/token"
)

// Store is the single source of truth for authentication state. The current
// token lives in memory and is mirrored to the backend so a restart preserves
// the session.
type Store struct {
	mu      sync.RWMutex
	token   string
	backend model.TokenBackend
	logger  *logger.Logger
}

// New creates a Store seeded from the persisted token, if any. A persisted
// token whose expiry is already in the past is discarded instead of being
// presented to the backend. Opaque tokens without readable claims are kept;
// the backend stays the authority on their validity.
func New(backend model.TokenBackend, logger *logger.Logger) (*Store, error) {
	stored, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted token: %w", err)
	}

	if stored != "" {
		expired, err := token.Expired(stored, time.Now())
		if err == nil && expired {
			logger.Info("discarding expired persisted token")
			if err := backend.Clear(); err != nil {
				return nil, fmt.Errorf("failed to clear expired token: %w", err)
			}
			stored = ""
		}
	}

	return &Store{
		token:   stored,
		backend: backend,
		logger:  logger,
	}, nil
}

// Login persists the token and makes all future API calls authenticate with
// it. Persistence happens first so a crash cannot leave an authenticated
// in-memory session without a stored token.
func (s *Store) Login(tokenString string) error {
	if err := s.backend.Save(tokenString); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	s.mu.Lock()
	s.token = tokenString
	s.mu.Unlock()

	s.logger.Info("session established")
	return nil
}

// Logout clears the persisted and in-memory token. Future calls are
// unauthenticated. Logging out of an already clear session is a no-op.
func (s *Store) Logout() error {
	if err := s.backend.Clear(); err != nil {
		return fmt.Errorf("failed to clear persisted token: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	s.logger.Info("session cleared")
	return nil
}

// Token returns the current token, or the empty string when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}
