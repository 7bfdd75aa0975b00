// Package codebuf is the host-agnostic code builder the emitter lowers
// guest opcodes through. It models "host instruction" as a small Go
// closure operating on a Ctx, and "branch patching" as a Label bound to
// an index in the builder's program — the same Label/Fixup shape a raw
// assembler back end would expose, but expressed without pointer
// arithmetic so it has no dependency on any particular host ISA.
//
// A second, independent capability lives in page.go: a real executable
// memory page, allocated and protected the way a raw-pointer back end
// would manage its emitted code (see ExecPage).
package codebuf

// Ctx is the execution context threaded through a compiled block while
// it runs. Host holds the small pool of host-register-shaped scratch
// values the register cache allocates into; Aux carries the caller's
// guest-machine state, opaque to codebuf itself.
type Ctx struct {
	Host    [NumHostRegs]uint32
	Aux     any
	NextPC  uint32
	HasNext bool
}

// NumHostRegs mirrors the register cache's pool size so Ctx.Host can be
// indexed directly by a HostReg value without a second lookup table.
const NumHostRegs = 14

// Op is one emitted "instruction": it acts on ctx and returns the index
// of the next Op to run. A straight-line op returns the index following
// its own; a branch returns either side depending on ctx's contents.
type Op func(ctx *Ctx) int

// Entry is a finalized, runnable compiled block.
type Entry func(ctx *Ctx)

// Label names a not-yet-known program position. Fixups reference it by
// pointer and are resolved the instant Bind is called, so a Label may
// be bound at most once and must be bound before the builder is
// finalized.
type Label struct {
	bound  bool
	target int
}

// Target returns the bound index, or -1 if Bind has not been called
// yet. Emitted branch ops call this lazily (at run time, not emit
// time) so the label may be created before the instructions at its
// target are appended.
func (l *Label) Target() int {
	if !l.bound {
		return -1
	}
	return l.target
}

// Builder accumulates Ops for a single block. It is not safe for
// concurrent use; one Builder belongs to exactly one in-progress block
// compile.
type Builder struct {
	ops []Op
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// Here returns the index the next Emit call will occupy.
func (b *Builder) Here() int { return len(b.ops) }

// Emit appends op and returns its index.
func (b *Builder) Emit(op Op) int {
	b.ops = append(b.ops, op)
	return len(b.ops) - 1
}

// NewLabel returns a fresh, unbound Label.
func (b *Builder) NewLabel() *Label { return &Label{target: -1} }

// Bind fixes l to the builder's current position. Any Op emitted
// earlier that branches to l (via l.Target(), read at run time) will
// jump here.
func (b *Builder) Bind(l *Label) {
	l.bound = true
	l.target = len(b.ops)
}

// Len reports how many Ops have been emitted so far.
func (b *Builder) Len() int { return len(b.ops) }

// Finalize freezes the program into a runnable Entry. After Finalize
// the Builder must not be reused.
func (b *Builder) Finalize() Entry {
	ops := b.ops
	return func(ctx *Ctx) {
		i := 0
		for i >= 0 && i < len(ops) {
			i = ops[i](ctx)
		}
	}
}
