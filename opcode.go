package dynarec

// Primary opcode field (bits 31:26 of a MIPS-I word).
const (
	opSPECIAL = 0x00
	opREGIMM  = 0x01
	opJ       = 0x02
	opJAL     = 0x03
	opBEQ     = 0x04
	opBNE     = 0x05
	opBLEZ    = 0x06
	opBGTZ    = 0x07
	opADDI    = 0x08
	opADDIU   = 0x09
	opSLTI    = 0x0a
	opSLTIU   = 0x0b
	opANDI    = 0x0c
	opORI     = 0x0d
	opXORI    = 0x0e
	opLUI     = 0x0f
	opCOP0    = 0x10
	opCOP2    = 0x12
	opLB      = 0x20
	opLH      = 0x21
	opLWL     = 0x22
	opLW      = 0x23
	opLBU     = 0x24
	opLHU     = 0x25
	opLWR     = 0x26
	opSB      = 0x28
	opSH      = 0x29
	opSWL     = 0x2a
	opSW      = 0x2b
	opSWR     = 0x2e
	opLWC2    = 0x32
	opSWC2    = 0x3a
)

// SPECIAL funct field (bits 5:0) when primary op is opSPECIAL.
const (
	fnSLL     = 0x00
	fnSRL     = 0x02
	fnSRA     = 0x03
	fnSLLV    = 0x04
	fnSRLV    = 0x06
	fnSRAV    = 0x07
	fnJR      = 0x08
	fnJALR    = 0x09
	fnSYSCALL = 0x0c
	fnBREAK   = 0x0d
	fnMFHI    = 0x10
	fnMTHI    = 0x11
	fnMFLO    = 0x12
	fnMTLO    = 0x13
	fnMULT    = 0x18
	fnMULTU   = 0x19
	fnDIV     = 0x1a
	fnDIVU    = 0x1b
	fnADD     = 0x20
	fnADDU    = 0x21
	fnSUB     = 0x22
	fnSUBU    = 0x23
	fnAND     = 0x24
	fnOR      = 0x25
	fnXOR     = 0x26
	fnNOR     = 0x27
	fnSLT     = 0x2a
	fnSLTU    = 0x2b
)

// REGIMM rt field (bits 20:16) when primary op is opREGIMM.
const (
	rtBLTZ   = 0x00
	rtBGEZ   = 0x01
	rtBLTZAL = 0x10
	rtBGEZAL = 0x11
)

// COP0/COP2 rs field (bits 25:21) selecting the coprocessor sub-operation.
const (
	copMF  = 0x00
	copCF  = 0x02
	copMT  = 0x04
	copCT  = 0x06
	copRS  = 0x10 // CP0 only: RFE et al. encoded under the CO sub-opcode
	copBC  = 0x08
)

// CP0 funct when rs == copRS.
const fnRFE = 0x10

// CP0 register numbers MTC0 writes that require re-checking pending
// interrupts once the write takes effect.
const (
	cp0Status = 12
	cp0Cause  = 13
)

// opFlags annotates an opcode with choices the optimizer made; they
// drive emission but never change architectural behaviour.
type opFlags uint8

const (
	flagDirectIO opFlags = 1 << iota
	flagNoInvalidate
	flagNoDelaySlot
	flagSkipPCUpdate
)

// metaKind distinguishes opcodes synthesized by the optimizer from ones
// decoded straight out of guest memory. A meta-opcode never appears in
// guest memory and is never invalidated.
type metaKind uint8

const (
	metaNone metaKind = iota
	metaUnload         // unload guest register Rs from the register cache
	metaBranchZero     // single-operand branch vs. register zero
)

// Opcode is a decoded 32-bit MIPS-I instruction plus the bookkeeping the
// optimizer and emitter attach to it. Once the optimizer finishes its
// passes, an Opcode's fields and Flags never change except that
// invalidation of the owning block clears DirectIO/NoInvalidate so the
// next compile re-learns them from scratch.
type Opcode struct {
	Raw uint32

	// Addr is the guest address this opcode was fetched from, fixed at
	// disassembly time. The optimizer may insert meta-opcodes between
	// real ones (see metaUnload), which would otherwise throw off any
	// addr-from-list-position arithmetic the emitter does for branch
	// targets and link-register values; meta-opcodes carry Addr == 0
	// and must never be used to derive one.
	Addr uint32

	Op    byte // primary opcode
	Funct byte // SPECIAL funct / REGIMM rt / COPz rs, depending on Op
	Rs    byte
	Rt    byte
	Rd    byte
	Shamt byte
	Imm16 int16
	Imm26 uint32

	Flags opFlags
	Meta  metaKind

	// BranchOffset/IsBranch let the disassembler and optimizer reason
	// about control flow uniformly across BEQ/BNE/BLEZ/BGTZ/REGIMM
	// branches, J/JAL, and JR/JALR without re-decoding Op/Funct.
	IsBranch   bool
	IsJump     bool
	IsUncond   bool
	NoReturn   bool // SYSCALL/BREAK/MTC0(status|cause): terminates the block with no delay slot
}

// decodeOpcode unpacks a raw 32-bit guest word into its typed fields.
// It never rejects a word: unrecognized primary/funct combinations are
// kept so the emitter's default case can warn and fall through to a
// no-op, and so the interpreter fallback can still execute it.
func decodeOpcode(raw uint32) Opcode {
	op := Opcode{
		Raw:   raw,
		Op:    byte(raw >> 26),
		Rs:    byte((raw >> 21) & 0x1f),
		Rt:    byte((raw >> 16) & 0x1f),
		Rd:    byte((raw >> 11) & 0x1f),
		Shamt: byte((raw >> 6) & 0x1f),
		Imm16: int16(raw & 0xffff),
		Imm26: raw & 0x03ffffff,
	}

	switch op.Op {
	case opSPECIAL:
		op.Funct = byte(raw & 0x3f)
		switch op.Funct {
		case fnJR, fnJALR:
			op.IsJump = true
		case fnSYSCALL, fnBREAK:
			op.NoReturn = true
		}
	case opREGIMM:
		op.Funct = op.Rt
		op.IsBranch = true
	case opJ, opJAL:
		op.IsJump = true
		op.IsUncond = true
	case opBEQ, opBNE, opBLEZ, opBGTZ:
		op.IsBranch = true
		if op.Op == opBEQ && op.Rs == op.Rt {
			op.IsUncond = true
		}
	case opCOP0, opCOP2:
		op.Funct = op.Rs
		if op.Op == opCOP0 && op.Funct == copMT && (op.Rd == cp0Status || op.Rd == cp0Cause) {
			// A write to CP0 status or cause can unmask or raise a
			// pending interrupt; ending the block here lets the
			// dispatcher re-check exit flags before running further
			// guest code under the old mask.
			op.NoReturn = true
		}
	}

	return op
}

// isZero reports whether raw decodes to the all-zero word, which is
// architecturally SLL r0, r0, 0 — a no-op.
func isZeroWord(raw uint32) bool { return raw == 0 }

// readsRegister reports whether op reads guest register reg (0..31) as
// a source operand. Used by the dead-register-unload pass.
func (op *Opcode) readsRegister(reg byte) bool {
	if reg == 0 {
		return false
	}
	switch op.Op {
	case opSPECIAL:
		switch op.Funct {
		case fnMFHI, fnMFLO, fnSLL, fnSRL, fnSRA:
			return false
		case fnJR, fnJALR, fnMTHI, fnMTLO:
			return op.Rs == reg
		default:
			return op.Rs == reg || op.Rt == reg
		}
	case opREGIMM, opBEQ, opBLEZ, opBGTZ:
		return op.Rs == reg
	case opBNE:
		return op.Rs == reg || op.Rt == reg
	case opJ, opJAL:
		return false
	case opADDI, opADDIU, opSLTI, opSLTIU, opANDI, opORI, opXORI,
		opLB, opLH, opLWL, opLW, opLBU, opLHU, opLWR:
		return op.Rs == reg
	case opSB, opSH, opSWL, opSW, opSWR:
		return op.Rs == reg || op.Rt == reg
	case opLUI:
		return false
	case opCOP0, opCOP2:
		if op.Funct == copMT || op.Funct == copCT {
			return op.Rt == reg
		}
		return false
	}
	return false
}

// writesRegister reports whether op writes guest register reg as a
// destination operand.
func (op *Opcode) writesRegister(reg byte) bool {
	if reg == 0 {
		return false
	}
	switch op.Op {
	case opSPECIAL:
		switch op.Funct {
		case fnJALR:
			return op.Rd == reg
		case fnMULT, fnMULTU, fnDIV, fnDIVU, fnJR, fnSYSCALL, fnBREAK:
			return false
		case fnMTHI, fnMTLO:
			return false
		default:
			return op.Rd == reg
		}
	case opREGIMM:
		return (op.Funct == rtBLTZAL || op.Funct == rtBGEZAL) && reg == 31
	case opJAL:
		return reg == 31
	case opADDI, opADDIU, opSLTI, opSLTIU, opANDI, opORI, opXORI, opLUI,
		opLB, opLH, opLW, opLBU, opLHU, opLWL, opLWR:
		return op.Rt == reg
	case opCOP0, opCOP2:
		if op.Funct == copMF || op.Funct == copCF {
			return op.Rt == reg
		}
		return false
	}
	return false
}
