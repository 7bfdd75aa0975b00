package dynarec

// copOpsFor selects the CopOps bridge an emitted COP0/COP2 closure
// should call through, so emitCop's lowering is shared between both
// coprocessors instead of special-casing COP2 and leaving COP0 inert.
func copOpsFor(s *State, cop2 bool) *CopOps {
	if cop2 {
		return &s.mmap.ops.Cop2
	}
	return &s.mmap.ops.Cop0
}

// emitCop lowers COP0 and COP2 register-transfer instructions. Actual
// GTE (COP2) arithmetic and CP0 register semantics are supplied by the
// embedder through CopOps; the compiler only arranges the register
// traffic around that call. MTC0 to the status or cause register ends
// the block (see decodeOpcode's NoReturn annotation) and raises
// ExitCheckInterrupt so the dispatcher re-evaluates pending interrupts
// under the new mask before running any further guest code.
func (em *emitter) emitCop(op Opcode) {
	cop2 := op.Op == opCOP2
	switch op.Funct {
	case copMF:
		hd := em.rc.ReserveOut(int(op.Rt))
		reg := op.Rd
		b := em.b
		b.Emit(func(ctx *execContext) int {
			s := guestOf(ctx)
			if ops := copOpsFor(s, cop2); ops.MFC != nil && hd != noHostReg {
				ctx.Host[hd] = ops.MFC(reg)
			}
			return b.Here()
		})
	case copCF:
		hd := em.rc.ReserveOut(int(op.Rt))
		reg := op.Rd
		b := em.b
		b.Emit(func(ctx *execContext) int {
			s := guestOf(ctx)
			if ops := copOpsFor(s, cop2); ops.CFC != nil && hd != noHostReg {
				ctx.Host[hd] = ops.CFC(reg)
			}
			return b.Here()
		})
	case copMT:
		hs := em.rc.ReserveIn(int(op.Rt))
		reg := op.Rd
		checkInterrupt := !cop2 && (reg == cp0Status || reg == cp0Cause)
		b := em.b
		b.Emit(func(ctx *execContext) int {
			s := guestOf(ctx)
			if ops := copOpsFor(s, cop2); ops.MTC != nil {
				ops.MTC(reg, hostOrZero(ctx, hs))
			}
			if checkInterrupt {
				s.SetExitFlags(ExitCheckInterrupt)
			}
			return b.Here()
		})
	case copCT:
		hs := em.rc.ReserveIn(int(op.Rt))
		reg := op.Rd
		b := em.b
		b.Emit(func(ctx *execContext) int {
			s := guestOf(ctx)
			if ops := copOpsFor(s, cop2); ops.CTC != nil {
				ops.CTC(reg, hostOrZero(ctx, hs))
			}
			return b.Here()
		})
	case copRS:
		if !cop2 {
			em.emitRFE(op)
		}
	default:
		if cop2 {
			em.emitGTEOp(op)
		}
	}
}

// emitRFE lowers RFE's CP0 status-stack rotation: the mode bits at
// status[5:2] shift down to status[3:0], restoring the interrupt/user
// mode pair that was active before the most recent exception, while
// every bit above the stack is left untouched. No-op when the embedder
// has not wired a COP0 bridge (CP0 status is not otherwise modeled).
func (em *emitter) emitRFE(op Opcode) {
	b := em.b
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		ops := &s.mmap.ops.Cop0
		if ops.MFC != nil && ops.MTC != nil {
			status := ops.MFC(cp0Status)
			ops.MTC(cp0Status, rotateCP0Status(status))
		}
		return b.Here()
	})
}

// rotateCP0Status implements the MIPS-I RFE mode-stack pop:
// (status & 0x3c) >> 2 | (status &^ 0xf).
func rotateCP0Status(status uint32) uint32 {
	return (status&0x3c)>>2 | (status &^ 0xf)
}

func (em *emitter) emitGTEOp(op Opcode) {
	funct := op.Raw & 0x1ffffff
	b := em.b
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		if s.mmap.ops.Cop2.Op != nil {
			s.mmap.ops.Cop2.Op(funct)
		}
		return b.Here()
	})
}

func (em *emitter) emitLWC2(op Opcode) {
	hs := em.rc.ReserveIn(int(op.Rs))
	imm := op.Imm16
	reg := op.Rt
	b := em.b
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		addr := hostOrZero(ctx, hs) + uint32(int32(imm))
		val := s.mmap.readWord(addr)
		if s.mmap.ops.Cop2.MTC != nil {
			s.mmap.ops.Cop2.MTC(reg, val)
		}
		return b.Here()
	})
}

func (em *emitter) emitSWC2(op Opcode) {
	hs := em.rc.ReserveIn(int(op.Rs))
	imm := op.Imm16
	reg := op.Rt
	b := em.b
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		addr := hostOrZero(ctx, hs) + uint32(int32(imm))
		var val uint32
		if s.mmap.ops.Cop2.MFC != nil {
			val = s.mmap.ops.Cop2.MFC(reg)
		}
		s.mmap.writeWord(addr, val)
		return b.Here()
	})
}
