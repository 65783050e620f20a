package movies

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// idLocks serializes mutating operations per project id. An in-process keyed
// mutex orders goroutines; a flock lock file under the asset root extends the
// exclusion to other processes sharing the same directory. Distinct ids never
// contend.
type idLocks struct {
	dir string

	mu      sync.Mutex
	holders map[string]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
	file *flock.Flock
}

func newIDLocks(root string) *idLocks {
	return &idLocks{
		dir:     filepath.Join(root, ".locks"),
		holders: make(map[string]*idLock),
	}
}

// acquire blocks until the per-id lock is held and returns the release
// function. There is no cancellation: once a write phase starts it runs to
// completion.
func (l *idLocks) acquire(id string) (func(), error) {
	l.mu.Lock()
	holder, ok := l.holders[id]
	if !ok {
		holder = &idLock{file: flock.New(filepath.Join(l.dir, id+".lock"))}
		l.holders[id] = holder
	}
	holder.refs++
	l.mu.Unlock()

	holder.mu.Lock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		l.release(id, holder)
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	if err := holder.file.Lock(); err != nil {
		l.release(id, holder)
		return nil, fmt.Errorf("lock %s: %w", id, err)
	}

	return func() {
		_ = holder.file.Unlock()
		l.release(id, holder)
	}, nil
}

func (l *idLocks) release(id string, holder *idLock) {
	holder.mu.Unlock()

	l.mu.Lock()
	holder.refs--
	if holder.refs == 0 {
		delete(l.holders, id)
	}
	l.mu.Unlock()
}
