// Package filestore persists the session credential as a JSON file, the
// closest server-side analog of the browser's per-origin key/value storage.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/logitrans/navigo-go/token"
	"github.com/pkg/errors"
)

const storeFileName = "session.json"

// entries mirrors the three keys the browser frontend keeps in localStorage.
type entries struct {
	AccessToken  string        `json:"accessToken,omitempty"`
	RefreshToken string        `json:"refreshToken,omitempty"`
	UserInfo     *token.Claims `json:"userInfo,omitempty"`
}

// FileStore is a token.Store backed by a single JSON file. Every mutation
// writes through immediately; readers tolerate a missing or corrupt file and
// report an empty session instead.
type FileStore struct {
	path string
	lock sync.RWMutex
}

var _ token.Store = (*FileStore)(nil)

// New creates a FileStore rooted at dataFolder, creating the folder if needed.
func New(dataFolder string) (*FileStore, error) {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[filestore.New] MkdirAll")
	}
	return &FileStore{path: filepath.Join(dataFolder, storeFileName)}, nil
}

// Save persists the credential together with its decoded claims.
func (fs *FileStore) Save(cred token.Credential) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	claims := token.Decode(cred.AccessToken)
	e := entries{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
	}
	if !claims.Zero() {
		e.UserInfo = &claims
	}
	return fs.write(e)
}

// Clear removes all stored session state.
func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] Remove")
	}
	return nil
}

func (fs *FileStore) AccessToken() string {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.read().AccessToken
}

func (fs *FileStore) RefreshToken() string {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.read().RefreshToken
}

func (fs *FileStore) CachedUser() *token.Claims {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.read().UserInfo
}

func (fs *FileStore) write(e entries) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileStore.write] Marshal")
	}
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.write] WriteFile")
	}
	return nil
}

// read loads the entries file. Any failure reads as an empty session.
func (fs *FileStore) read() entries {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return entries{}
	}
	var e entries
	if err := json.Unmarshal(data, &e); err != nil {
		return entries{}
	}
	return e
}
