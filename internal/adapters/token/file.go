// internal/adapters/token/file.go
package token

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// FileStore keeps the bearer token in a single file. All failure modes
// collapse to "no token": a store that cannot be read or written leaves the
// app logged out rather than wedged.
type FileStore struct {
	path string
	log  zerolog.Logger
}

func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Set(token string) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("token dir create failed")
		return
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("token write failed")
	}
}

func (s *FileStore) Get() string {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (s *FileStore) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", s.path).Msg("token remove failed")
	}
}

func (s *FileStore) IsAuthenticated() bool { return s.Get() != "" }
