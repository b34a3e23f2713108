package storefake

import (
	"sync"

	"github.com/logitrans/navigo-go/token"
)

var _ token.Store = (*FakeStore)(nil)

// FakeStore is an in-memory token.Store for tests.
type FakeStore struct {
	lock         sync.RWMutex
	accessToken  string
	refreshToken string
	userInfo     *token.Claims

	SaveErr  error // returned from Save when set
	ClearErr error // returned from Clear when set
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Save(cred token.Credential) error {
	if fs.SaveErr != nil {
		return fs.SaveErr
	}
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.accessToken = cred.AccessToken
	fs.refreshToken = cred.RefreshToken
	if claims := token.Decode(cred.AccessToken); !claims.Zero() {
		fs.userInfo = &claims
	} else {
		fs.userInfo = nil
	}
	return nil
}

func (fs *FakeStore) Clear() error {
	if fs.ClearErr != nil {
		return fs.ClearErr
	}
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.accessToken = ""
	fs.refreshToken = ""
	fs.userInfo = nil
	return nil
}

func (fs *FakeStore) AccessToken() string {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.accessToken
}

func (fs *FakeStore) RefreshToken() string {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.refreshToken
}

func (fs *FakeStore) CachedUser() *token.Claims {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.userInfo
}

// Empty reports whether the store holds no session state at all.
func (fs *FakeStore) Empty() bool {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.accessToken == "" && fs.refreshToken == "" && fs.userInfo == nil
}
