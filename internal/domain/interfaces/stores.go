package interfaces

import domaintypes "tripplanner/internal/domain/types"

// SessionStore keeps live sessions in memory. Nothing it holds survives the
// process.
type SessionStore interface {
	CreateSession() (*domaintypes.Session, error)
	LoadSession(id domaintypes.SessionID) (*domaintypes.Session, bool)
	DeleteSession(id domaintypes.SessionID)
	CountSessions() int
}

// SecretStore persists named secrets sealed under a passphrase.
type SecretStore interface {
	SaveSecret(passphrase, name, value string) error
	LoadSecret(passphrase, name string) (string, bool, error)
}
