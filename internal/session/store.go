package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

const sessionFile = "session.json"

// Store owns the current session. The in-memory copy is authoritative;
// the on-disk copy is best effort, so a failing disk never blocks
// authentication.
type Store struct {
	mu      sync.Mutex
	baseDir string
	current *Session
}

// NewStore creates a session store rooted at baseDir.
// If baseDir is empty, uses ~/.smartess/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".smartess")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("session store initialized")

	return &Store{baseDir: baseDir}, nil
}

// Load restores the session from disk. A missing or malformed file is
// treated as "no session" and never returned as an error.
func (s *Store) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.baseDir, sessionFile))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("failed to read session file")
		}
		s.current = nil
		return nil, nil
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Warn().Err(err).Msg("session file malformed, ignoring")
		s.current = nil
		return nil, nil
	}

	if !sess.Valid() {
		s.current = nil
		return nil, nil
	}

	s.current = &sess

	log.Debug().Str("fingerprint", sess.Fingerprint()).Msg("session restored")

	return s.snapshotLocked(), nil
}

// Save sets the in-memory session and persists it atomically. A
// persistence failure is logged but does not invalidate the session.
func (s *Store) Save(sess *Session) error {
	if !sess.Valid() {
		return fmt.Errorf("refusing to save session without token and secret")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	s.current = &copied

	if err := s.writeLocked(&copied); err != nil {
		log.Warn().Err(err).Msg("failed to persist session, keeping in-memory copy")
	}

	return nil
}

// Clear removes the persisted session and resets in-memory state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	path := filepath.Join(s.baseDir, sessionFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	log.Debug().Msg("session cleared")

	return nil
}

// Current returns a snapshot of the in-memory session, or nil.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *Session {
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// writeLocked persists the session via tmp file + atomic rename.
func (s *Store) writeLocked(sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	path := filepath.Join(s.baseDir, sessionFile)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
