package state

import "sync/atomic"

// Sequencer stamps pointer samples with monotonic ordinals.
type Sequencer struct {
	counter atomic.Uint64
}

// Next returns the next ordinal. The first call returns 1.
func (s *Sequencer) Next() uint64 {
	return s.counter.Add(1)
}

// Last returns the most recently issued ordinal, or zero.
func (s *Sequencer) Last() uint64 {
	return s.counter.Load()
}

// Stamp returns sample with the next ordinal assigned.
func (s *Sequencer) Stamp(sample PointerSample) PointerSample {
	sample.Seq = s.Next()
	return sample
}
