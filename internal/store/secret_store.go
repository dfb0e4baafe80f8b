package store

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"tripplanner/internal/domain"
	"tripplanner/internal/util/memzero"
)

// SecretsFilename is the sealed secrets file inside the home directory.
const SecretsFilename = "secrets.json.enc"

// SecretFileStore keeps named secrets in one passphrase-sealed file.
type SecretFileStore struct {
	dir    string
	params kdfParams
	mu     sync.Mutex
}

// NewSecretFileStore returns a SecretFileStore rooted at dir.
func NewSecretFileStore(dir string) *SecretFileStore {
	return &SecretFileStore{dir: dir, params: defaultKDFParams()}
}

// Path returns the location of the secrets file.
func (s *SecretFileStore) Path() string {
	return filepath.Join(s.dir, SecretsFilename)
}

// SaveSecret stores value under name, re-sealing the whole file.
func (s *SecretFileStore) SaveSecret(passphrase, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	secrets, err := s.load(passphrase)
	if err != nil {
		return err
	}
	secrets[name] = value

	raw, err := json.Marshal(secrets)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	b, err := seal(passphrase, raw, s.params)
	if err != nil {
		return err
	}
	return writeFile(s.Path(), b, 0o600)
}

// LoadSecret returns the secret stored under name. A missing file or name is
// reported with ok=false and no error.
func (s *SecretFileStore) LoadSecret(passphrase, name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	secrets, err := s.load(passphrase)
	if err != nil {
		return "", false, err
	}
	v, ok := secrets[name]
	return v, ok, nil
}

func (s *SecretFileStore) load(passphrase string) (map[string]string, error) {
	secrets := make(map[string]string)
	b, err := readFile(s.Path())
	if err != nil || b == nil {
		return secrets, err
	}
	raw, err := open(passphrase, b)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(raw)
	if err := json.Unmarshal(raw, &secrets); err != nil {
		return nil, err
	}
	return secrets, nil
}

// Compile-time assertion that SecretFileStore implements domain.SecretStore.
var _ domain.SecretStore = (*SecretFileStore)(nil)
