package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SubmissionLocks serializes submissions per user and scheme. While a lock is
// held, draft mutations for that pair are refused so the rendered booklet
// matches what was validated.
type SubmissionLocks struct {
	m sync.Map
}

func NewSubmissionLocks() *SubmissionLocks {
	return &SubmissionLocks{}
}

func lockKey(userID uuid.UUID, scheme string) string {
	return fmt.Sprintf("%s:%s", userID, scheme)
}

// TryLock reports whether the lock was acquired. A second submission for the
// same pair loses.
func (l *SubmissionLocks) TryLock(userID uuid.UUID, scheme string) bool {
	_, loaded := l.m.LoadOrStore(lockKey(userID, scheme), struct{}{})
	return !loaded
}

func (l *SubmissionLocks) Unlock(userID uuid.UUID, scheme string) {
	l.m.Delete(lockKey(userID, scheme))
}

func (l *SubmissionLocks) Locked(userID uuid.UUID, scheme string) bool {
	_, found := l.m.Load(lockKey(userID, scheme))
	return found
}
