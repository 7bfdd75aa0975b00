package dynarec

import (
	"sync"

	"github.com/psxrec/dynarec/internal/codebuf"
)

// Block is one compiled unit of guest code: the opcode list it was
// built from, its finalized entry point, and enough bookkeeping to
// detect that the guest bytes it was compiled from have since changed.
type Block struct {
	PC       uint32
	Ops      []Opcode
	Source   []byte // snapshot of the guest bytes the block was compiled from
	Entry    codebuf.Entry
	CycleLen uint32

	outdated bool
}

// IsOutdated reports whether the block has been marked stale by an
// invalidation covering its PC range, without re-reading guest memory.
func (b *Block) IsOutdated() bool { return b.outdated }

// blockCache maps guest PC to its compiled Block. One cache instance is
// shared by the interpreter-driven dispatcher and, if enabled, the
// threaded recompiler (threaded.go); mu guards every field below so a
// background publish can never race a store-path invalidate — the
// conservative option the design notes call for.
type blockCache struct {
	mu      sync.Mutex
	byPC    map[uint32]*Block
	pending map[uint32]bool
}

func newBlockCache() *blockCache {
	return &blockCache{
		byPC:    make(map[uint32]*Block),
		pending: make(map[uint32]bool),
	}
}

// Lookup returns the block compiled for pc, or nil if none exists or
// the existing one is marked outdated.
func (c *blockCache) Lookup(pc uint32) *Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.byPC[pc]
	if b == nil || b.outdated {
		return nil
	}
	return b
}

// Register stores a freshly compiled block, replacing anything
// previously registered at the same PC.
func (c *blockCache) Register(b *Block) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPC[b.PC] = b
}

// Publish stores a block compiled by the background recompiler and
// clears its pending mark, in the same critical section so a
// concurrent invalidate can never be interleaved between the two.
func (c *blockCache) Publish(b *Block) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPC[b.PC] = b
	delete(c.pending, b.PC)
}

// Pending reports whether pc already has a background compile in
// flight, so the recompiler does not queue it twice.
func (c *blockCache) Pending(pc uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[pc]
}

// markPending records that pc has been handed to the background
// worker. clearPending undoes it, used when the request could not be
// enqueued (queue full) so a later call can retry.
func (c *blockCache) markPending(pc uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[pc] = true
}

func (c *blockCache) clearPending(pc uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, pc)
}

// Unregister drops pc's block entirely, forcing the next lookup to miss
// and the dispatcher to recompile from scratch rather than reuse a
// slot marked merely outdated.
func (c *blockCache) Unregister(pc uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byPC, pc)
}

// InvalidateRange marks every registered block whose guest byte range
// intersects [lo, hi) as outdated, matching the kernel/user RAM
// invalidation granularity a write to guest memory must trigger.
func (c *blockCache) InvalidateRange(lo, hi uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for pc, b := range c.byPC {
		end := pc + uint32(len(b.Source))
		if pc < hi && end > lo {
			b.outdated = true
		}
	}
}

// InvalidateAll marks every registered block outdated, used when the
// guest resets or remaps memory wholesale.
func (c *blockCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.byPC {
		b.outdated = true
	}
}

// Purge drops every block whose outdated flag is set, reclaiming the
// map entries rather than leaving tombstones behind forever.
func (c *blockCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for pc, b := range c.byPC {
		if b.outdated {
			delete(c.byPC, pc)
		}
	}
}
