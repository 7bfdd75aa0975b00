package dynarec

import "testing"

// wordCop encodes a COP0/COP2 register-transfer instruction: primary
// op selects the coprocessor, rs carries the sub-opcode (MF/CF/MT/CT),
// rt is the GPR side, rd is the coprocessor register number.
func wordCop(op, funct, rt, rd byte) uint32 {
	return uint32(op)<<26 | uint32(funct)<<21 | uint32(rt)<<16 | uint32(rd)<<11
}

func TestRotateCP0Status(t *testing.T) {
	// status = 0x...2c = 0b101100: mode stack bits [5:2] = 0b1011 pop
	// down into [3:0], giving 0xb; the high bits above bit 3 (0x20) and
	// the low nibble (dropped) are otherwise untouched.
	got := rotateCP0Status(0xdead002c)
	const want = 0xdead0020 | 0xb
	if got != want {
		t.Fatalf("rotateCP0Status(0xdead002c) = %#x, want %#x", got, want)
	}
}

func newCop0State(t *testing.T) (*State, *uint32) {
	t.Helper()
	status := new(uint32)
	cfg := Config{
		Maps: []MemMap{{Kind: MapKernelUserRAM, PC: 0, Length: 0x100, Data: make([]byte, 0x100)}},
		Ops: Ops{
			Cop0: CopOps{
				MFC: func(reg byte) uint32 {
					if reg == cp0Status {
						return *status
					}
					return 0
				},
				MTC: func(reg byte, val uint32) {
					if reg == cp0Status {
						*status = val
					}
				},
			},
		},
	}
	return Init(cfg), status
}

// MTC0 to the status register must end the block and raise
// ExitCheckInterrupt so the dispatcher re-evaluates pending interrupts
// under the new mask (§4.4 COP moves).
func TestMTC0StatusEndsBlockAndRaisesCheckInterrupt(t *testing.T) {
	s, status := newCop0State(t)
	mem := make([]byte, 0x100)
	putWord(mem, 0x00, wordI(opADDIU, 0, 1, 0x55))
	putWord(mem, 0x04, wordCop(opCOP0, copMT, 1, cp0Status))
	putWord(mem, 0x08, wordR(31, 0, 0, 0, fnJR))
	putWord(mem, 0x0c, 0)

	s.SetPC(0)
	flags := s.Execute(2)

	if *status != 0x55 {
		t.Fatalf("status = %#x, want 0x55", *status)
	}
	if flags&ExitCheckInterrupt == 0 {
		t.Fatalf("ExitFlags() = %v, want ExitCheckInterrupt set", flags)
	}
	if s.PC() != 0x08 {
		t.Fatalf("PC = %#x, want 0x08 (block must end at the MTC0, before JR)", s.PC())
	}
}

// RFE must rotate the CP0 status mode-stack bits per the MIPS-I
// convention: (status & 0x3c) >> 2 | (status &^ 0xf).
func TestRFERotatesStatusStack(t *testing.T) {
	s, status := newCop0State(t)
	*status = 0x3f // kernel/user + interrupt-enable stack all set, plus high bits
	mem := make([]byte, 0x100)
	putWord(mem, 0x00, uint32(opCOP0)<<26|uint32(copRS)<<21|fnRFE)
	putWord(mem, 0x04, wordR(31, 0, 0, 0, fnJR))
	putWord(mem, 0x08, 0)

	s.SetPC(0)
	s.Execute(2)

	want := rotateCP0Status(0x3f)
	if *status != want {
		t.Fatalf("status after RFE = %#x, want %#x", *status, want)
	}
}

// The interpreted path (used for single-stepping and the threaded
// recompiler's cold-block fallback) must agree with the compiled path
// on COP0 semantics (Testable Property #1).
func TestCOP0InterpreterMatchesCompiled(t *testing.T) {
	s, status := newCop0State(t)
	s.guest.GPR[2] = 0x1234
	op := decodeOpcode(wordCop(opCOP0, copMT, 2, cp0Cause))
	interpretOne(s, op)

	if *status != 0 {
		t.Fatalf("status should be untouched by MTC0 cause, got %#x", *status)
	}
	if s.ExitFlags()&ExitCheckInterrupt == 0 {
		t.Fatal("interpreted MTC0 cause must also raise ExitCheckInterrupt")
	}
}

// A plain MFC0 round-trips through the embedder's callback without
// touching guest register 0 or ending the block.
func TestMFC0RoundTrip(t *testing.T) {
	s, status := newCop0State(t)
	*status = 0xabcd
	mem := make([]byte, 0x100)
	putWord(mem, 0x00, wordCop(opCOP0, copMF, 1, cp0Status))
	putWord(mem, 0x04, wordR(31, 0, 0, 0, fnJR))
	putWord(mem, 0x08, 0)

	s.SetPC(0)
	flags := s.Execute(3)

	var regs [34]uint32
	s.DumpRegisters(&regs)
	if regs[1] != 0xabcd {
		t.Fatalf("r1 = %#x, want 0xabcd", regs[1])
	}
	if flags != ExitNormal {
		t.Fatalf("ExitFlags() = %v, want ExitNormal (MFC0 does not end the block)", flags)
	}
}
