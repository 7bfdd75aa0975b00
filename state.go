package dynarec

// guestState is the PlayStation CPU's architectural register file: the
// 32 general-purpose registers (GPR[0] always reads as zero and writes
// to it are dropped), the multiply/divide result halves, and the
// program counter execution resumes from between blocks.
type guestState struct {
	GPR [32]uint32
	HI  uint32
	LO  uint32
	PC  uint32
}

// Config bundles everything an embedder supplies at Init time: the
// memory regions the guest can see and the callbacks bridging
// hardware registers and the GTE coprocessor.
type Config struct {
	Maps []MemMap
	Ops  Ops

	// CycleBudget caps how many guest cycles a single Execute call runs
	// before returning ExitNormal even with no other exit condition
	// pending. Zero means run until some other exit flag fires.
	CycleBudget uint32

	// Threaded enables the background recompiler (see threaded.go).
	Threaded bool
}

// State is a running dynarec instance: one guest CPU plus its compiled
// block cache and memory map. It is not safe for concurrent use except
// through the explicit synchronization threaded.go installs when
// Config.Threaded is set.
type State struct {
	guest guestState

	mmap   *memMapTable
	blocks *blockCache

	exitFlags   ExitFlags
	cycles      uint64
	cycleBudget uint32 // from Config.CycleBudget; used by Execute when its own budget arg is 0

	// delayPending/delayArmed/delayTarget track a branch or jump
	// resolved by RunInterpreter's one-instruction-at-a-time path that
	// has not yet had its delay slot executed; see scheduleDelayedJump.
	delayPending bool
	delayArmed   bool
	delayTarget  uint32

	rec *threadedRecompiler // nil unless Config.Threaded
}

// Init constructs a State from cfg. The returned State owns cfg.Maps'
// backing byte slices; the caller must not mutate them outside the
// memory-map Ops callbacks it registered.
func Init(cfg Config) *State {
	s := &State{
		mmap:        newMemMapTable(cfg.Maps, cfg.Ops),
		blocks:      newBlockCache(),
		cycleBudget: cfg.CycleBudget,
	}
	s.mmap.onCodeWrite = s.Invalidate
	s.mmap.onSegfault = func() { s.SetExitFlags(ExitSegfault) }
	if cfg.Threaded {
		s.rec = newThreadedRecompiler(s)
	}
	return s
}

// Destroy releases resources held by s, stopping the background
// recompiler if one was started.
func (s *State) Destroy() {
	if s.rec != nil {
		s.rec.stop()
	}
}

// SetPC sets the guest program counter execution resumes from on the
// next Execute/ExecuteOne call.
func (s *State) SetPC(pc uint32) { s.guest.PC = pc }

// PC returns the guest program counter.
func (s *State) PC() uint32 { return s.guest.PC }

// SetExitFlags ORs extra bits into the flags Execute will report on
// its next return, letting an embedder request an early exit (e.g. to
// deliver a pending interrupt) from within a memory-map or coprocessor
// callback.
func (s *State) SetExitFlags(f ExitFlags) { s.exitFlags |= f }

// ExitFlags returns the flags set by the most recent Execute call.
func (s *State) ExitFlags() ExitFlags { return s.exitFlags }

// Cycles returns the total number of guest cycles executed so far.
func (s *State) Cycles() uint64 { return s.cycles }

// CurrentCycleCount is an alias for Cycles, named to match the
// reference implementation's accessor for embedders porting callers
// one function at a time.
func (s *State) CurrentCycleCount() uint64 { return s.cycles }

// ResetCycleCount zeroes the cycle counter without touching any other
// state, for embedders that track wall-clock/guest-cycle ratios across
// restart boundaries rather than ever-increasing since Init.
func (s *State) ResetCycleCount() { s.cycles = 0 }

// DumpRegisters copies the guest's GPR file, HI, and LO into a
// caller-owned snapshot, leaving out[32] as HI and out[33] as LO to
// match the register cache's slot numbering.
func (s *State) DumpRegisters(out *[34]uint32) {
	copy(out[:32], s.guest.GPR[:])
	out[slotHI] = s.guest.HI
	out[slotLO] = s.guest.LO
}

// RestoreRegisters is the inverse of DumpRegisters.
func (s *State) RestoreRegisters(in *[34]uint32) {
	copy(s.guest.GPR[:], in[:32])
	s.guest.HI = in[slotHI]
	s.guest.LO = in[slotLO]
}

// Invalidate marks every block whose source bytes intersect
// [addr, addr+length) as outdated, to be called whenever the embedder
// writes to guest memory outside the memory-map write path (e.g. a DMA
// transfer bypassing writeWord/writeByte).
func (s *State) Invalidate(addr, length uint32) {
	s.blocks.InvalidateRange(addr, addr+length)
}

// InvalidateAll marks every compiled block outdated.
func (s *State) InvalidateAll() {
	s.blocks.InvalidateAll()
}
