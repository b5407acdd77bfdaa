package engine

import "sync/atomic"

// Sequence hands out strictly increasing search numbers.
//
// Thread-safety: Sequence is safe for concurrent use (atomic operations).
type Sequence struct {
	n atomic.Int64
}

// Next returns the next search number.
func (s *Sequence) Next() int64 {
	return s.n.Add(1)
}

// Current returns the last number handed out without advancing.
func (s *Sequence) Current() int64 {
	return s.n.Load()
}
