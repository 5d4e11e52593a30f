package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/report-desk/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const (
	// DefaultFileName is the fixed-name profile file holding the session
	// credential, resolved against the user's home directory.
	DefaultFileName = ".reportdeskcfg"

	sectionName = "session"
	keyUsername = "username"
	keyToken    = "token"
)

// Store persists the single session credential across restarts.
type Store interface {
	Load() (*domain.Credential, error)
	Save(cred domain.Credential) error
	Clear() error
}

type fileStore struct {
	path string
}

// NewFileStore returns a Store backed by an ini profile file at path.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

// DefaultPath resolves the credential file location in the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Load reads the persisted credential. A missing file or an incomplete
// section means no credential is held; neither is an error.
func (fs *fileStore) Load() (*domain.Credential, error) {
	cfg, err := ini.Load(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credential file: %w", err)
	}

	section := cfg.Section(sectionName)
	username := section.Key(keyUsername).String()
	token := section.Key(keyToken).String()
	if token == "" {
		return nil, nil
	}

	return &domain.Credential{Username: username, Token: token}, nil
}

// Save writes the credential, replacing any previous one. The file is
// created user-readable only; it holds a bearer token.
func (fs *fileStore) Save(cred domain.Credential) error {
	cfg := ini.Empty()
	section := cfg.Section(sectionName)
	section.Key(keyUsername).SetValue(cred.Username)
	section.Key(keyToken).SetValue(cred.Token)

	if dir := filepath.Dir(fs.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create credential directory: %w", err)
		}
	}
	if err := cfg.SaveTo(fs.path); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	if err := os.Chmod(fs.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict credential file permissions: %w", err)
	}
	return nil
}

// Clear removes the persisted credential. Clearing an absent credential is
// a no-op.
func (fs *fileStore) Clear() error {
	err := os.Remove(fs.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}
