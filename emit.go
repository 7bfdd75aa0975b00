package dynarec

import "github.com/psxrec/dynarec/internal/codebuf"

// execContext is the per-call state threaded through a compiled
// block's closures. Aux always holds the *State the block belongs to;
// it is typed as any in codebuf.Ctx so the builder package never
// depends on dynarec.
type execContext = codebuf.Ctx

func guestOf(ctx *execContext) *State { return ctx.Aux.(*State) }

// compileBlock disassembles, optimizes, and lowers the guest code at
// pc into a runnable Block.
func compileBlock(s *State, pc uint32) *Block {
	ops := disassemble(s.mmap, pc)
	ops = optimize(ops)
	realCount := countRealOps(ops)

	b := codebuf.New()
	rc := NewRegCache(spillHooks{
		storeback: func(h HostReg, slot int) { emitStoreback(b, h, slot) },
		reload:    func(h HostReg, slot int) { emitReload(b, h, slot) },
	})

	em := &emitter{b: b, rc: rc, pc: pc, cycles: realCount}
	for i := 0; i < len(ops); i++ {
		em.emitOne(ops, i)
	}
	rc.StorebackAll()
	em.emitAdvance()

	entry := b.Finalize()
	return &Block{
		PC:       pc,
		Ops:      ops,
		Source:   s.mmap.snapshot(pc, blockByteLength(ops)),
		Entry:    entry,
		CycleLen: realCount,
	}
}

// emitter carries the mutable state shared across a single block's
// emit calls: the host-reg-shaped instructions accumulate into b while
// rc tracks which guest registers occupy which host slot. cycles holds
// the block's real (non-meta) instruction count, computed once up
// front so emitAdvance's cycle accounting and fallthrough-PC
// calculation cannot be thrown off by register-cache spill code the
// builder accumulates along the way.
type emitter struct {
	b      *codebuf.Builder
	rc     *RegCache
	pc     uint32
	cycles uint32
}

func emitStoreback(b *codebuf.Builder, h HostReg, slot int) {
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		writeGuestSlot(s, slot, ctx.Host[h])
		return b.Here()
	})
}

func emitReload(b *codebuf.Builder, h HostReg, slot int) {
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		ctx.Host[h] = readGuestSlot(s, slot)
		return b.Here()
	})
}

func readGuestSlot(s *State, slot int) uint32 {
	switch {
	case slot == slotHI:
		return s.guest.HI
	case slot == slotLO:
		return s.guest.LO
	default:
		return s.guest.GPR[slot]
	}
}

func writeGuestSlot(s *State, slot int, val uint32) {
	switch {
	case slot == slotHI:
		s.guest.HI = val
	case slot == slotLO:
		s.guest.LO = val
	case slot != 0:
		s.guest.GPR[slot] = val
	}
}

// emitOne lowers ops[i], dispatching on its primary opcode/meta kind.
// Opcodes the table does not recognize fall through to the
// interpreter bridge so a block never silently drops an instruction.
func (em *emitter) emitOne(ops []Opcode, i int) {
	op := ops[i]

	if op.Meta == metaUnload {
		slot := int(op.Rs)
		if h := em.rc.guest[slot].host; h != noHostReg {
			em.rc.Unload(h)
		}
		return
	}

	switch op.Op {
	case opSPECIAL:
		em.emitSpecial(op)
	case opREGIMM:
		em.emitRegimmBranch(op)
	case opJ, opJAL:
		em.emitJump(op)
	case opBEQ, opBNE, opBLEZ, opBGTZ:
		em.emitBranch(op)
	case opADDI, opADDIU, opSLTI, opSLTIU, opANDI, opORI, opXORI, opLUI:
		em.emitALUImm(op)
	case opLB, opLH, opLWL, opLW, opLBU, opLHU, opLWR:
		em.emitLoad(op)
	case opSB, opSH, opSWL, opSW, opSWR:
		em.emitStore(op)
	case opCOP0, opCOP2:
		em.emitCop(op)
	case opLWC2:
		em.emitLWC2(op)
	case opSWC2:
		em.emitSWC2(op)
	default:
		em.emitInterpFallback(op)
	}
}

// emitAdvance appends the closure that ends a block: advance PC past
// its final instruction and tick the cycle counter, then return -1 to
// stop the closure chain and hand control back to the dispatcher.
func (em *emitter) emitAdvance() {
	b := em.b
	pc := em.pc
	cycles := em.cycles
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		if ctx.HasNext {
			s.guest.PC = ctx.NextPC
		} else {
			s.guest.PC = pc + 4*cycles
		}
		s.cycles += uint64(cycles)
		return -1
	})
}

// emitInterpFallback routes a single opcode the compiler does not
// model through the shared interpreter step function, for correctness
// over the handful of rare instructions (unaligned LWL/LWR partial
// words, for instance) that are not worth a dedicated emitter path.
func (em *emitter) emitInterpFallback(op Opcode) {
	b := em.b
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		interpretOne(s, op)
		return b.Here()
	})
}
