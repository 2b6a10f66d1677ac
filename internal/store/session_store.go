package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"umlwizard/internal/domain"
)

const sessionFilename = "session.json"

// snapshotFile is the on-disk layout: exactly one of Session or Sealed is set.
type snapshotFile struct {
	Session *domain.SessionState `json:"session,omitempty"`
	Sealed  *sealed              `json:"sealed,omitempty"`
}

// SessionFileStore keeps the current wizard session in one JSON file.
type SessionFileStore struct {
	dir string
	kdf KDFParams
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir, kdf: DefaultKDF}
}

// WithKDF overrides the scrypt parameters used for new seals.
func (s *SessionFileStore) WithKDF(kdf KDFParams) *SessionFileStore {
	s.kdf = kdf
	return s
}

// Path returns the snapshot file location.
func (s *SessionFileStore) Path() string { return filepath.Join(s.dir, sessionFilename) }

// SaveSession writes state, sealed under passphrase when one is given.
func (s *SessionFileStore) SaveSession(state domain.SessionState, passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var file snapshotFile
	if passphrase == "" {
		file.Session = &state
	} else {
		raw, err := json.Marshal(state)
		if err != nil {
			return err
		}
		sl, err := seal(passphrase, raw, s.kdf)
		if err != nil {
			return fmt.Errorf("seal session: %w", err)
		}
		file.Sealed = sl
	}
	b, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return replaceFile(s.Path(), b, 0o600)
}

// LoadSession reads the saved session. ok is false when none exists.
func (s *SessionFileStore) LoadSession(passphrase string) (domain.SessionState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok, err := readSnapshot(s.Path())
	if err != nil || !ok {
		return domain.SessionState{}, false, err
	}
	var file snapshotFile
	if err := json.Unmarshal(b, &file); err != nil {
		return domain.SessionState{}, false, fmt.Errorf("decode %s: %w", s.Path(), err)
	}

	switch {
	case file.Sealed != nil:
		if passphrase == "" {
			return domain.SessionState{}, false, ErrPassphraseRequired
		}
		raw, err := open(passphrase, file.Sealed)
		if err != nil {
			return domain.SessionState{}, false, err
		}
		var state domain.SessionState
		if err := json.Unmarshal(raw, &state); err != nil {
			return domain.SessionState{}, false, err
		}
		return state, true, nil
	case file.Session != nil:
		return *file.Session, true, nil
	}
	return domain.SessionState{}, false, nil
}

// DeleteSession removes the snapshot. Deleting a missing snapshot is fine.
func (s *SessionFileStore) DeleteSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
