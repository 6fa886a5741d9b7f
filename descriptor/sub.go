// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package descriptor

// PoolSub is a per-thread subordinate of a DescriptorPool: its own
// lockless mutable map of descriptor sets, and at most one claimed block
// it allocates new sets from. A PoolSub must only ever be used from the
// thread that owns it — concurrent access to the same PoolSub from two
// goroutines is a caller bug this package does not guard against, exactly
// as the "single-writer; no lock" design intends.
type PoolSub struct {
	pool *DescriptorPool

	mutable map[string]*PoolElement
	block   *PoolBlock
}

func newSub(pool *DescriptorPool) *PoolSub {
	return &PoolSub{pool: pool, mutable: make(map[string]*PoolElement)}
}

func (s *PoolSub) lookup(fullKey string) (*PoolElement, bool) {
	e, ok := s.mutable[fullKey]
	return e, ok
}
