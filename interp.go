package dynarec

// interpretOne executes a single decoded opcode directly against s's
// guest register file, with no compilation step. It backs both the
// rare compiler-fallback path (see emitInterpFallback) and
// RunInterpreter, so the two never drift out of sync on instruction
// semantics.
func interpretOne(s *State, op Opcode) {
	g := &s.guest

	read := func(reg byte) uint32 {
		if reg == 0 {
			return 0
		}
		return g.GPR[reg]
	}
	write := func(reg byte, v uint32) {
		if reg != 0 {
			g.GPR[reg] = v
		}
	}

	switch op.Op {
	case opSPECIAL:
		switch op.Funct {
		case fnADD, fnADDU:
			write(op.Rd, read(op.Rs)+read(op.Rt))
		case fnSUB, fnSUBU:
			write(op.Rd, read(op.Rs)-read(op.Rt))
		case fnAND:
			write(op.Rd, read(op.Rs)&read(op.Rt))
		case fnOR:
			write(op.Rd, read(op.Rs)|read(op.Rt))
		case fnXOR:
			write(op.Rd, read(op.Rs)^read(op.Rt))
		case fnNOR:
			write(op.Rd, ^(read(op.Rs) | read(op.Rt)))
		case fnSLT:
			write(op.Rd, boolU32(int32(read(op.Rs)) < int32(read(op.Rt))))
		case fnSLTU:
			write(op.Rd, boolU32(read(op.Rs) < read(op.Rt)))
		case fnSLL:
			write(op.Rd, read(op.Rt)<<op.Shamt)
		case fnSRL:
			write(op.Rd, read(op.Rt)>>op.Shamt)
		case fnSRA:
			write(op.Rd, uint32(int32(read(op.Rt))>>op.Shamt))
		case fnSLLV:
			write(op.Rd, read(op.Rt)<<(read(op.Rs)&0x1f))
		case fnSRLV:
			write(op.Rd, read(op.Rt)>>(read(op.Rs)&0x1f))
		case fnSRAV:
			write(op.Rd, uint32(int32(read(op.Rt))>>(read(op.Rs)&0x1f)))
		case fnMFHI:
			write(op.Rd, g.HI)
		case fnMFLO:
			write(op.Rd, g.LO)
		case fnMTHI:
			g.HI = read(op.Rs)
		case fnMTLO:
			g.LO = read(op.Rs)
		case fnMULT:
			r := int64(int32(read(op.Rs))) * int64(int32(read(op.Rt)))
			g.LO, g.HI = uint32(r), uint32(r>>32)
		case fnMULTU:
			r := uint64(read(op.Rs)) * uint64(read(op.Rt))
			g.LO, g.HI = uint32(r), uint32(r>>32)
		case fnDIV:
			a, b := int32(read(op.Rs)), int32(read(op.Rt))
			if b == 0 {
				if a < 0 {
					g.LO = 1
				} else {
					g.LO = 0xffffffff
				}
				g.HI = uint32(a)
			} else {
				g.LO, g.HI = uint32(a/b), uint32(a%b)
			}
		case fnDIVU:
			a, b := read(op.Rs), read(op.Rt)
			if b == 0 {
				g.LO, g.HI = 0xffffffff, a
			} else {
				g.LO, g.HI = a/b, a%b
			}
		case fnJR:
			s.scheduleDelayedJump(read(op.Rs))
		case fnJALR:
			target := read(op.Rs)
			write(op.Rd, g.PC+8)
			s.scheduleDelayedJump(target)
		case fnSYSCALL:
			s.SetExitFlags(ExitSyscall)
		case fnBREAK:
			s.SetExitFlags(ExitBreak)
		}
	case opADDI, opADDIU:
		write(op.Rt, read(op.Rs)+uint32(int32(op.Imm16)))
	case opSLTI:
		write(op.Rt, boolU32(int32(read(op.Rs)) < int32(op.Imm16)))
	case opSLTIU:
		write(op.Rt, boolU32(read(op.Rs) < uint32(int32(op.Imm16))))
	case opANDI:
		write(op.Rt, read(op.Rs)&uint32(uint16(op.Imm16)))
	case opORI:
		write(op.Rt, read(op.Rs)|uint32(uint16(op.Imm16)))
	case opXORI:
		write(op.Rt, read(op.Rs)^uint32(uint16(op.Imm16)))
	case opLUI:
		write(op.Rt, uint32(uint16(op.Imm16))<<16)
	case opLB, opLH, opLWL, opLW, opLBU, opLHU, opLWR:
		interpretLoad(s, op, read, write)
	case opSB, opSH, opSWL, opSW, opSWR:
		interpretStore(s, op, read)
	case opBEQ, opBNE, opBLEZ, opBGTZ, opREGIMM:
		interpretBranch(s, op, read, write)
	case opJ:
		s.scheduleDelayedJump(jumpTarget(g.PC, op.Imm26))
	case opJAL:
		write(31, g.PC+8)
		s.scheduleDelayedJump(jumpTarget(g.PC, op.Imm26))
	case opCOP0, opCOP2:
		interpretCop(s, op, read)
	case opLWC2:
		addr := read(op.Rs) + uint32(int32(op.Imm16))
		val := s.mmap.readWord(addr)
		if s.mmap.ops.Cop2.MTC != nil {
			s.mmap.ops.Cop2.MTC(op.Rt, val)
		}
	case opSWC2:
		addr := read(op.Rs) + uint32(int32(op.Imm16))
		var val uint32
		if s.mmap.ops.Cop2.MFC != nil {
			val = s.mmap.ops.Cop2.MFC(op.Rt)
		}
		s.mmap.writeWord(addr, val)
	}

	if s.delayPending && s.delayArmed {
		// The delay slot itself just executed; apply the branch/jump
		// that scheduled it and clear the pending state.
		g.PC = s.delayTarget
		s.delayPending = false
		s.delayArmed = false
		return
	}
	g.PC += 4
	if s.delayPending {
		s.delayArmed = true
	}
}

// scheduleDelayedJump records target as the destination a control-
// transfer instruction resolved to, without yet redirecting PC: the
// delay slot immediately following must execute first. delayArmed
// distinguishes "pending, about to run its delay slot" from "pending,
// this very instruction is the one that just set it" across the two
// interpretOne calls involved.
func (s *State) scheduleDelayedJump(target uint32) {
	s.delayPending = true
	s.delayTarget = target
}

func interpretLoad(s *State, op Opcode, read func(byte) uint32, write func(byte, uint32)) {
	addr := read(op.Rs) + uint32(int32(op.Imm16))
	switch op.Op {
	case opLB:
		write(op.Rt, uint32(int32(int8(s.mmap.readByte(addr)))))
	case opLBU:
		write(op.Rt, uint32(s.mmap.readByte(addr)))
	case opLH:
		write(op.Rt, uint32(int32(int16(s.mmap.readHalf(addr)))))
	case opLHU:
		write(op.Rt, uint32(s.mmap.readHalf(addr)))
	case opLW:
		write(op.Rt, s.mmap.readWord(addr))
	case opLWL:
		write(op.Rt, loadLeftMerge(read(op.Rt), s.mmap, addr))
	case opLWR:
		write(op.Rt, loadRightMerge(read(op.Rt), s.mmap, addr))
	}
}

func interpretStore(s *State, op Opcode, read func(byte) uint32) {
	addr := read(op.Rs) + uint32(int32(op.Imm16))
	v := read(op.Rt)
	switch op.Op {
	case opSB:
		s.mmap.writeByte(addr, uint8(v))
	case opSH:
		s.mmap.writeHalf(addr, uint16(v))
	case opSW:
		s.mmap.writeWord(addr, v)
	case opSWL:
		storeLeftMerge(s.mmap, addr, v)
	case opSWR:
		storeRightMerge(s.mmap, addr, v)
	}
}

func interpretBranch(s *State, op Opcode, read func(byte) uint32, write func(byte, uint32)) {
	addr := s.guest.PC
	target := branchTarget(addr, op.Imm16)
	taken := false
	link := false

	switch op.Op {
	case opBEQ:
		taken = read(op.Rs) == read(op.Rt)
	case opBNE:
		taken = read(op.Rs) != read(op.Rt)
	case opBLEZ:
		taken = int32(read(op.Rs)) <= 0
	case opBGTZ:
		taken = int32(read(op.Rs)) > 0
	case opREGIMM:
		a := int32(read(op.Rs))
		switch op.Funct {
		case rtBLTZ:
			taken = a < 0
		case rtBGEZ:
			taken = a >= 0
		case rtBLTZAL:
			taken = a < 0
			link = true
		case rtBGEZAL:
			taken = a >= 0
			link = true
		}
	}

	if link {
		write(31, addr+8)
	}

	if taken {
		s.scheduleDelayedJump(target)
	} else {
		s.scheduleDelayedJump(addr + 8)
	}
}

// interpretCop mirrors emitCop's lowering so a block that falls back to
// the interpreter (or runs purely interpreted) produces the same
// architectural effect as compiled code for COP0/COP2 register
// transfers and RFE.
func interpretCop(s *State, op Opcode, read func(byte) uint32) {
	cop2 := op.Op == opCOP2
	ops := copOpsFor(s, cop2)
	g := &s.guest
	write := func(reg byte, v uint32) {
		if reg != 0 {
			g.GPR[reg] = v
		}
	}

	switch op.Funct {
	case copMF:
		if ops.MFC != nil {
			write(op.Rt, ops.MFC(op.Rd))
		}
	case copCF:
		if ops.CFC != nil {
			write(op.Rt, ops.CFC(op.Rd))
		}
	case copMT:
		if ops.MTC != nil {
			ops.MTC(op.Rd, read(op.Rt))
		}
		if !cop2 && (op.Rd == cp0Status || op.Rd == cp0Cause) {
			s.SetExitFlags(ExitCheckInterrupt)
		}
	case copCT:
		if ops.CTC != nil {
			ops.CTC(op.Rd, read(op.Rt))
		}
	case copRS:
		if !cop2 && s.mmap.ops.Cop0.MFC != nil && s.mmap.ops.Cop0.MTC != nil {
			status := s.mmap.ops.Cop0.MFC(cp0Status)
			s.mmap.ops.Cop0.MTC(cp0Status, rotateCP0Status(status))
		}
	default:
		if cop2 && ops.Op != nil {
			ops.Op(op.Raw & 0x1ffffff)
		}
	}
}

func boolU32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// RunInterpreter executes guest code purely through interpretOne,
// bypassing compilation entirely, until n instructions have run or an
// exit flag is pending. It exists for callers that want to single-step
// past a point the compiler cannot yet reach (e.g. before Init's
// memory map is fully populated) and for differential testing against
// the compiled path.
func (s *State) RunInterpreter(n int) {
	for i := 0; i < n; i++ {
		if s.exitFlags != ExitNormal {
			return
		}
		raw, ok := s.mmap.fetchWord(s.guest.PC)
		if !ok {
			s.SetExitFlags(ExitSegfault)
			return
		}
		op := decodeOpcode(raw)
		interpretOne(s, op)
		s.cycles++
	}
}
