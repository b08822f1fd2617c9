package lookup

import (
	"sync"
	"sync/atomic"
)

// Sequencer hands out strictly increasing tickets. Take a ticket before
// issuing a request and present it when storing the response.
type Sequencer struct {
	last atomic.Uint64
}

// Next returns a ticket greater than every ticket returned before.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Slot holds the newest value stored into it. A response arriving with an
// older ticket than the one already stored is dropped, so a slow stale
// lookup never overwrites a newer result.
type Slot[T any] struct {
	mu     sync.Mutex
	ticket uint64
	value  T
	filled bool
}

// Store keeps v if ticket is newer than the stored ticket and reports
// whether it did.
func (s *Slot[T]) Store(ticket uint64, v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filled && ticket <= s.ticket {
		return false
	}
	s.ticket, s.value, s.filled = ticket, v, true
	return true
}

// Load returns the stored value and its ticket. ok is false while empty.
func (s *Slot[T]) Load() (v T, ticket uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.ticket, s.filled
}
