package history

import (
	"context"
	"errors"
	"fmt"
)

// WithWriteLock runs fn while holding the store's writer lock. The lock is a
// mutex within this process and a file lock across processes; waiting on the
// file lock ends when ctx is done.
func (s *Store) WithWriteLock(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	if !locked {
		return errors.New("acquire history lock: lock busy")
	}
	defer func() { _ = s.lock.Unlock() }()

	return fn()
}
