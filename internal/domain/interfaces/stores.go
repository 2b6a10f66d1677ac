package interfaces

import domaintypes "umlwizard/internal/domain/types"

// SessionStore checkpoints the current wizard session between CLI runs.
// An empty passphrase stores the snapshot as plain JSON.
type SessionStore interface {
	SaveSession(state domaintypes.SessionState, passphrase string) error
	// LoadSession returns ok=false when no session has been saved.
	LoadSession(passphrase string) (domaintypes.SessionState, bool, error)
	DeleteSession() error
}
