package dynarec

func (em *emitter) emitLoad(op Opcode) {
	hs := em.rc.ReserveIn(int(op.Rs))
	hd := em.rc.ReserveOut(int(op.Rt))
	imm := op.Imm16
	primary := op.Op
	b := em.b
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		addr := hostOrZero(ctx, hs) + uint32(int32(imm))
		var v uint32
		switch primary {
		case opLB:
			v = uint32(int32(int8(s.mmap.readByte(addr))))
		case opLBU:
			v = uint32(s.mmap.readByte(addr))
		case opLH:
			v = uint32(int32(int16(s.mmap.readHalf(addr))))
		case opLHU:
			v = uint32(s.mmap.readHalf(addr))
		case opLW:
			v = s.mmap.readWord(addr)
		case opLWL:
			v = loadLeftMerge(hostOrZero(ctx, hd), s.mmap, addr)
		case opLWR:
			v = loadRightMerge(hostOrZero(ctx, hd), s.mmap, addr)
		}
		if hd != noHostReg {
			ctx.Host[hd] = v
		}
		return b.Here()
	})
}

// loadLeftMerge/loadRightMerge implement LWL/LWR's byte-at-a-time merge
// with the register's prior value, matching the reference
// implementation's handling of PlayStation's big-endian-style partial
// word loads over a little-endian bus.
func loadLeftMerge(prev uint32, m *memMapTable, addr uint32) uint32 {
	aligned := addr &^ 3
	word := m.readWord(aligned)
	shift := (addr & 3) * 8
	mask := uint32(0xffffffff) >> shift
	return (prev &^ mask) | (word << shift)
}

func loadRightMerge(prev uint32, m *memMapTable, addr uint32) uint32 {
	aligned := addr &^ 3
	word := m.readWord(aligned)
	shift := (addr & 3) * 8
	mask := uint32(0xffffffff) << (24 - shift)
	return (prev &^ mask) | (word >> (24 - shift))
}

func (em *emitter) emitStore(op Opcode) {
	hs := em.rc.ReserveIn(int(op.Rs))
	ht := em.rc.ReserveIn(int(op.Rt))
	imm := op.Imm16
	primary := op.Op
	b := em.b
	b.Emit(func(ctx *execContext) int {
		s := guestOf(ctx)
		addr := hostOrZero(ctx, hs) + uint32(int32(imm))
		v := hostOrZero(ctx, ht)
		switch primary {
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
		return b.Here()
	})
}

func storeLeftMerge(m *memMapTable, addr uint32, v uint32) {
	aligned := addr &^ 3
	shift := (addr & 3) * 8
	mask := uint32(0xffffffff) >> shift
	word := m.readWord(aligned)
	word = (word &^ mask) | (v >> shift)
	m.writeWord(aligned, word)
}

func storeRightMerge(m *memMapTable, addr uint32, v uint32) {
	aligned := addr &^ 3
	shift := (addr & 3) * 8
	mask := uint32(0xffffffff) << (24 - shift)
	word := m.readWord(aligned)
	word = (word &^ mask) | (v << (24 - shift))
	m.writeWord(aligned, word)
}
