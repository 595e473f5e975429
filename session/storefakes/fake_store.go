package storefakes

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/seolab/gapscout/session"
)

var _ session.Store = (*FakeStore)(nil)

// FakeStore is an in-memory session.Store for tests.
type FakeStore struct {
	lock sync.RWMutex
	sess *session.Session

	SaveCalls int
	LoadErr   error
	SaveErr   error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Load() (*session.Session, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	if fs.LoadErr != nil {
		return nil, fs.LoadErr
	}
	if fs.sess == nil {
		return nil, errors.New("not found")
	}
	cp := *fs.sess
	return &cp, nil
}

func (fs *FakeStore) Save(sess *session.Session) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.SaveCalls++
	if fs.SaveErr != nil {
		return fs.SaveErr
	}
	cp := *sess
	fs.sess = &cp
	return nil
}

// Seed pre-loads a stored session without counting as a save.
func (fs *FakeStore) Seed(sess *session.Session) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	cp := *sess
	fs.sess = &cp
}

// Stored returns the last saved session, or nil.
func (fs *FakeStore) Stored() *session.Session {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return fs.sess
}
