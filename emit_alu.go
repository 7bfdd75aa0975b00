package dynarec

// emitSpecial lowers a SPECIAL-class opcode (funct field selects the
// operation). Control-transfer functs (JR/JALR/SYSCALL/BREAK) are
// handled by emitBranch's sibling paths below; everything else is a
// register-register ALU or shift op, or a HI/LO move.
func (em *emitter) emitSpecial(op Opcode) {
	switch op.Funct {
	case fnJR, fnJALR:
		em.emitJR(op)
	case fnSYSCALL:
		em.emitExit(ExitSyscall)
	case fnBREAK:
		em.emitExit(ExitBreak)
	case fnSLL, fnSRL, fnSRA:
		em.emitShiftImm(op)
	case fnSLLV, fnSRLV, fnSRAV:
		em.emitShiftVar(op)
	case fnMFHI:
		em.emitMove(op.Rd, slotHI)
	case fnMFLO:
		em.emitMove(op.Rd, slotLO)
	case fnMTHI:
		em.emitMoveFrom(slotHI, op.Rs)
	case fnMTLO:
		em.emitMoveFrom(slotLO, op.Rs)
	case fnMULT, fnMULTU:
		em.emitMul(op, op.Funct == fnMULTU)
	case fnDIV, fnDIVU:
		em.emitDiv(op, op.Funct == fnDIVU)
	case fnADD, fnADDU, fnSUB, fnSUBU, fnAND, fnOR, fnXOR, fnNOR, fnSLT, fnSLTU:
		em.emitALUReg(op)
	}
}

func aluRegOp(funct byte) func(a, b uint32) uint32 {
	switch funct {
	case fnADD, fnADDU:
		return func(a, b uint32) uint32 { return a + b }
	case fnSUB, fnSUBU:
		return func(a, b uint32) uint32 { return a - b }
	case fnAND:
		return func(a, b uint32) uint32 { return a & b }
	case fnOR:
		return func(a, b uint32) uint32 { return a | b }
	case fnXOR:
		return func(a, b uint32) uint32 { return a ^ b }
	case fnNOR:
		return func(a, b uint32) uint32 { return ^(a | b) }
	case fnSLT:
		return func(a, b uint32) uint32 {
			if int32(a) < int32(b) {
				return 1
			}
			return 0
		}
	case fnSLTU:
		return func(a, b uint32) uint32 {
			if a < b {
				return 1
			}
			return 0
		}
	}
	return func(a, b uint32) uint32 { return 0 }
}

func (em *emitter) emitALUReg(op Opcode) {
	hs := em.rc.ReserveIn(int(op.Rs))
	ht := em.rc.ReserveIn(int(op.Rt))
	hd := em.rc.ReserveOut(int(op.Rd))
	fn := aluRegOp(op.Funct)
	b := em.b
	b.Emit(func(ctx *execContext) int {
		a := hostOrZero(ctx, hs)
		bb := hostOrZero(ctx, ht)
		if hd != noHostReg {
			ctx.Host[hd] = fn(a, bb)
		}
		return b.Here()
	})
}

func hostOrZero(ctx *execContext, h HostReg) uint32 {
	if h == noHostReg {
		return 0
	}
	return ctx.Host[h]
}

func aluImmOp(op byte) func(a uint32, imm int16) uint32 {
	switch op {
	case opADDI, opADDIU:
		return func(a uint32, imm int16) uint32 { return a + uint32(int32(imm)) }
	case opSLTI:
		return func(a uint32, imm int16) uint32 {
			if int32(a) < int32(imm) {
				return 1
			}
			return 0
		}
	case opSLTIU:
		return func(a uint32, imm int16) uint32 {
			if a < uint32(int32(imm)) {
				return 1
			}
			return 0
		}
	case opANDI:
		return func(a uint32, imm int16) uint32 { return a & uint32(uint16(imm)) }
	case opORI:
		return func(a uint32, imm int16) uint32 { return a | uint32(uint16(imm)) }
	case opXORI:
		return func(a uint32, imm int16) uint32 { return a ^ uint32(uint16(imm)) }
	}
	return func(a uint32, imm int16) uint32 { return 0 }
}

func (em *emitter) emitALUImm(op Opcode) {
	b := em.b
	if op.Op == opLUI {
		hd := em.rc.ReserveOut(int(op.Rt))
		imm := op.Imm16
		b.Emit(func(ctx *execContext) int {
			if hd != noHostReg {
				ctx.Host[hd] = uint32(uint16(imm)) << 16
			}
			return b.Here()
		})
		return
	}
	hs := em.rc.ReserveIn(int(op.Rs))
	hd := em.rc.ReserveOut(int(op.Rt))
	fn := aluImmOp(op.Op)
	imm := op.Imm16
	b.Emit(func(ctx *execContext) int {
		a := hostOrZero(ctx, hs)
		if hd != noHostReg {
			ctx.Host[hd] = fn(a, imm)
		}
		return b.Here()
	})
}

func (em *emitter) emitShiftImm(op Opcode) {
	ht := em.rc.ReserveIn(int(op.Rt))
	hd := em.rc.ReserveOut(int(op.Rd))
	funct := op.Funct
	sh := op.Shamt
	b := em.b
	b.Emit(func(ctx *execContext) int {
		v := hostOrZero(ctx, ht)
		if hd != noHostReg {
			ctx.Host[hd] = shiftVal(funct, v, uint32(sh))
		}
		return b.Here()
	})
}

func (em *emitter) emitShiftVar(op Opcode) {
	hs := em.rc.ReserveIn(int(op.Rs))
	ht := em.rc.ReserveIn(int(op.Rt))
	hd := em.rc.ReserveOut(int(op.Rd))
	funct := op.Funct
	b := em.b
	b.Emit(func(ctx *execContext) int {
		v := hostOrZero(ctx, ht)
		sh := hostOrZero(ctx, hs) & 0x1f
		if hd != noHostReg {
			ctx.Host[hd] = shiftVal(funct, v, sh)
		}
		return b.Here()
	})
}

func shiftVal(funct byte, v, sh uint32) uint32 {
	switch funct {
	case fnSLL, fnSLLV:
		return v << sh
	case fnSRL, fnSRLV:
		return v >> sh
	case fnSRA, fnSRAV:
		return uint32(int32(v) >> sh)
	}
	return v
}

func (em *emitter) emitMove(dstSlot, srcSlot int) {
	hs := em.rc.ReserveIn(srcSlot)
	hd := em.rc.ReserveOut(dstSlot)
	b := em.b
	b.Emit(func(ctx *execContext) int {
		if hd != noHostReg {
			ctx.Host[hd] = hostOrZero(ctx, hs)
		}
		return b.Here()
	})
}

func (em *emitter) emitMoveFrom(dstSlot, srcSlot int) {
	em.emitMove(dstSlot, srcSlot)
}

func (em *emitter) emitMul(op Opcode, unsigned bool) {
	hs := em.rc.ReserveIn(int(op.Rs))
	ht := em.rc.ReserveIn(int(op.Rt))
	hhi := em.rc.ReserveOut(slotHI)
	hlo := em.rc.ReserveOut(slotLO)
	b := em.b
	b.Emit(func(ctx *execContext) int {
		a := hostOrZero(ctx, hs)
		bb := hostOrZero(ctx, ht)
		var result uint64
		if unsigned {
			result = uint64(a) * uint64(bb)
		} else {
			result = uint64(int64(int32(a)) * int64(int32(bb)))
		}
		if hlo != noHostReg {
			ctx.Host[hlo] = uint32(result)
		}
		if hhi != noHostReg {
			ctx.Host[hhi] = uint32(result >> 32)
		}
		return b.Here()
	})
}

func (em *emitter) emitDiv(op Opcode, unsigned bool) {
	hs := em.rc.ReserveIn(int(op.Rs))
	ht := em.rc.ReserveIn(int(op.Rt))
	hhi := em.rc.ReserveOut(slotHI)
	hlo := em.rc.ReserveOut(slotLO)
	b := em.b
	b.Emit(func(ctx *execContext) int {
		a := hostOrZero(ctx, hs)
		bb := hostOrZero(ctx, ht)
		var q, r uint32
		if bb == 0 {
			// Architecturally defined but implementation-dependent
			// result on divide by zero; match the common convention of
			// saturating rather than trapping.
			if unsigned {
				q, r = 0xffffffff, a
			} else if int32(a) < 0 {
				q, r = 1, a
			} else {
				q, r = 0xffffffff, a
			}
		} else if unsigned {
			q, r = a/bb, a%bb
		} else {
			q = uint32(int32(a) / int32(bb))
			r = uint32(int32(a) % int32(bb))
		}
		if hlo != noHostReg {
			ctx.Host[hlo] = q
		}
		if hhi != noHostReg {
			ctx.Host[hhi] = r
		}
		return b.Here()
	})
}

// emitExit records the pending exit flag and falls through to whatever
// comes next in program order — the register cache's end-of-block
// storeback and emitAdvance's PC/cycle update — rather than truncating
// the closure chain itself. SYSCALL/BREAK have no delay slot, so
// emitAdvance's fallthrough-PC arithmetic (pc + 4*cycles) already lands
// one instruction past the trapping opcode, matching where dispatch
// should resume once the embedder's syscall handler returns.
func (em *emitter) emitExit(flag ExitFlags) {
	b := em.b
	b.Emit(func(ctx *execContext) int {
		guestOf(ctx).SetExitFlags(flag)
		return b.Here()
	})
}
