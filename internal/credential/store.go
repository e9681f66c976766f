// Package credential persists the bearer token and last-known user profile
// between runs, the client-side analogue of the phone app's key-value store.
package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"orderhai/internal/model"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// Store reads and writes the persisted credential and cached profile.
type Store interface {
	// Token returns the stored bearer credential, if any. Satisfies
	// api.TokenSource.
	Token() (string, bool)

	// SaveToken persists the bearer credential.
	SaveToken(token string) error

	// User returns the cached user profile, if any.
	User() (*model.User, bool)

	// SaveUser persists the user profile.
	SaveUser(user *model.User) error

	// Clear removes the credential and the cached profile.
	Clear() error
}

// FileStore implements Store with plain files under a directory.
type FileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{
		dir:    dir,
		logger: logger.With().Str("component", "credential-store").Logger(),
	}, nil
}

// Token returns the stored bearer credential, if any.
func (s *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// SaveToken persists the bearer credential.
func (s *FileStore) SaveToken(token string) error {
	if err := s.writeAtomic(tokenFile, []byte(token)); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// User returns the cached user profile, if any.
func (s *FileStore) User() (*model.User, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil, false
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn().Err(err).Msg("cached profile is corrupt, ignoring")
		return nil, false
	}
	return &user, true
}

// SaveUser persists the user profile.
func (s *FileStore) SaveUser(user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user profile: %w", err)
	}
	if err := s.writeAtomic(userFile, data); err != nil {
		return fmt.Errorf("failed to save user profile: %w", err)
	}
	return nil
}

// Clear removes the credential and the cached profile.
func (s *FileStore) Clear() error {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	s.logger.Debug().Msg("credentials cleared")
	return nil
}

// writeAtomic writes via a temp file and rename so a crash never leaves a
// half-written credential behind.
func (s *FileStore) writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, filepath.Join(s.dir, name))
}
