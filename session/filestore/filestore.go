package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/seolab/gapscout/session"
)

var _ session.Store = (*Store)(nil)

// Store keeps the credential bundle as a JSON file at a well-known location.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the stored session. A missing or unreadable file is reported as
// an error so the caller can fall through to re-authorisation.
func (s *Store) Load() (*session.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "[Store.Load] os.ReadFile")
	}
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, errors.Wrap(err, "[Store.Load] json.Unmarshal")
	}
	return &sess, nil
}

// Save writes the session, creating parent directories as needed. The file is
// written 0600 since it holds bearer credentials.
func (s *Store) Save(sess *session.Session) error {
	if sess == nil {
		return errors.New("[Store.Save] nil session")
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[Store.Save] json.MarshalIndent")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrap(err, "[Store.Save] os.MkdirAll")
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[Store.Save] os.WriteFile")
	}
	return nil
}
