package dynarec

// branchTarget returns the absolute guest address a PC-relative branch
// at addr with a signed 16-bit immediate jumps to when taken. The
// offset is measured from the delay slot, one word past the branch
// itself, matching MIPS-I's branch-delay semantics.
func branchTarget(addr uint32, imm16 int16) uint32 {
	return addr + 4 + uint32(int32(imm16)<<2)
}

func jumpTarget(addr uint32, imm26 uint32) uint32 {
	return (addr+4)&0xf0000000 | imm26<<2
}

// setTaken is shared by every conditional-branch emitter: it records
// the resolved target on ctx so emitAdvance can honor it once the
// delay slot (already scheduled right after this closure in program
// order) has also run.
func setTaken(ctx *execContext, target uint32) {
	ctx.NextPC = target
	ctx.HasNext = true
}

func (em *emitter) emitBranch(op Opcode) {
	addr := op.Addr
	target := branchTarget(addr, op.Imm16)
	b := em.b

	if op.Meta == metaBranchZero {
		hs := em.rc.ReserveIn(int(op.Rs))
		primary := op.Op
		b.Emit(func(ctx *execContext) int {
			v := int32(hostOrZero(ctx, hs))
			taken := false
			switch primary {
			case opBEQ:
				taken = v == 0
			case opBNE:
				taken = v != 0
			}
			if taken {
				setTaken(ctx, target)
			}
			return b.Here()
		})
		return
	}

	if op.IsUncond {
		b.Emit(func(ctx *execContext) int {
			setTaken(ctx, target)
			return b.Here()
		})
		return
	}

	hs := em.rc.ReserveIn(int(op.Rs))
	var ht HostReg = noHostReg
	if op.Op == opBEQ || op.Op == opBNE {
		ht = em.rc.ReserveIn(int(op.Rt))
	}
	primary := op.Op
	b.Emit(func(ctx *execContext) int {
		a := int32(hostOrZero(ctx, hs))
		taken := false
		switch primary {
		case opBEQ:
			taken = a == int32(hostOrZero(ctx, ht))
		case opBNE:
			taken = a != int32(hostOrZero(ctx, ht))
		case opBLEZ:
			taken = a <= 0
		case opBGTZ:
			taken = a > 0
		}
		if taken {
			setTaken(ctx, target)
		}
		return b.Here()
	})
}

func (em *emitter) emitRegimmBranch(op Opcode) {
	addr := op.Addr
	target := branchTarget(addr, op.Imm16)
	link := op.Funct == rtBLTZAL || op.Funct == rtBGEZAL
	hs := em.rc.ReserveIn(int(op.Rs))
	var hLink HostReg = noHostReg
	if link {
		hLink = em.rc.ReserveOut(31)
	}
	retAddr := addr + 8
	funct := op.Funct
	b := em.b
	b.Emit(func(ctx *execContext) int {
		a := int32(hostOrZero(ctx, hs))
		taken := false
		switch funct {
		case rtBLTZ, rtBLTZAL:
			taken = a < 0
		case rtBGEZ, rtBGEZAL:
			taken = a >= 0
		}
		if hLink != noHostReg {
			ctx.Host[hLink] = retAddr
		}
		if taken {
			setTaken(ctx, target)
		}
		return b.Here()
	})
}

func (em *emitter) emitJump(op Opcode) {
	// op.Op is opJ or opJAL; the instruction's own address is needed to
	// resolve the top nibble of the target, not the delay slot's.
	b := em.b
	link := op.Op == opJAL
	var hLink HostReg = noHostReg
	if link {
		hLink = em.rc.ReserveOut(31)
	}
	addr := op.Addr
	imm26 := op.Imm26
	retAddr := addr + 8
	b.Emit(func(ctx *execContext) int {
		if hLink != noHostReg {
			ctx.Host[hLink] = retAddr
		}
		setTaken(ctx, jumpTarget(addr, imm26))
		return b.Here()
	})
}

func (em *emitter) emitJR(op Opcode) {
	link := op.Funct == fnJALR
	hs := em.rc.ReserveIn(int(op.Rs))
	var hLink HostReg = noHostReg
	if link {
		hLink = em.rc.ReserveOut(int(op.Rd))
	}
	retAddr := op.Addr + 8
	b := em.b
	b.Emit(func(ctx *execContext) int {
		target := hostOrZero(ctx, hs)
		if hLink != noHostReg {
			ctx.Host[hLink] = retAddr
		}
		setTaken(ctx, target)
		return b.Here()
	})
}
