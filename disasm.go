package dynarec

// disassemble decodes a linear run of guest instructions starting at
// guest address pc, stopping once a control-transfer opcode's delay
// slot has been consumed. A SYSCALL/BREAK (or an MTC0 to the status or
// cause register — see decodeOpcode) terminates the block immediately,
// without a delay slot.
//
// Instruction words are fetched through mmap, the same region table
// every data load/store resolves through (§6's abstract execute(state,
// pc, ...) takes no external buffer; the reference implementation
// resolves pc through lightrec_get_map over every declared map,
// including the BIOS and ScratchPad regions, not just a caller-supplied
// RAM slice). A fetch that misses every declared region stops the block
// immediately, the same way an overlong block would run off the end of
// its region; the caller is responsible for raising ExitSegfault when
// the very first fetch of a fresh block fails (see getOrCompile).
//
// Each decoded opcode's Addr field is stamped with its guest address
// as it is produced, so later passes never need to re-derive an
// instruction's address from its position in the list — a position
// the optimizer's dead-register-unload pass changes by inserting
// meta-opcodes.
//
// The returned slice is the block's full opcode list in program order;
// the optimizer mutates it in place afterwards.
func disassemble(mmap *memMapTable, pc uint32) []Opcode {
	var list []Opcode
	addr := pc

	for {
		raw, ok := mmap.fetchWord(addr)
		if !ok {
			break
		}
		op := decodeOpcode(raw)
		op.Addr = addr
		list = append(list, op)
		addr += 4

		if op.NoReturn {
			break
		}
		if op.IsBranch || op.IsJump {
			// Consume exactly one delay-slot instruction, then stop.
			raw, ok = mmap.fetchWord(addr)
			if !ok {
				break
			}
			dslot := decodeOpcode(raw)
			dslot.Addr = addr
			list = append(list, dslot)
			break
		}
	}

	return list
}

// countRealOps returns the number of list entries that correspond to
// an actual guest instruction, excluding meta-opcodes the optimizer
// synthesized (metaUnload markers do not occupy guest memory).
func countRealOps(list []Opcode) uint32 {
	var n uint32
	for i := range list {
		if list[i].Meta == metaNone {
			n++
		}
	}
	return n
}

// blockByteLength returns the number of guest bytes the opcode list in
// list spans, used to size a Block's source-byte snapshot. It counts
// only real opcodes: meta-opcodes inserted by the optimizer do not
// correspond to any guest byte.
func blockByteLength(list []Opcode) uint32 {
	return countRealOps(list) * 4
}
