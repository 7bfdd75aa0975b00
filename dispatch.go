package dynarec

import "github.com/psxrec/dynarec/internal/codebuf"

// getOrCompile looks pc up in the block cache, compiling and
// registering a fresh Block on a miss or on a stale hit. It is the
// single chokepoint Execute/ExecuteOne go through, mirroring the
// reference implementation's get_next_block.
//
// Instruction bytes are resolved through s.mmap, the same region table
// every data load/store goes through, so BIOS- and ScratchPad-resident
// code compiles exactly like RAM-resident code. A pc that misses every
// declared region raises ExitSegfault immediately instead of being
// handed to the interpreter, which would only fail the identical lookup
// one instruction later.
//
// When the threaded recompiler is enabled (Config.Threaded), a miss
// does not block the caller on a synchronous compile: it queues pc for
// background compilation and returns nil, signalling the caller to
// step the interpreter once instead (see RunInterpreter) while the
// worker catches up. Once the worker publishes, subsequent lookups hit
// the cache and the interpreted detour stops.
func (s *State) getOrCompile(pc uint32) *Block {
	if b := s.blocks.Lookup(pc); b != nil {
		return b
	}
	if _, ok := s.mmap.fetchWord(pc); !ok {
		s.SetExitFlags(ExitSegfault)
		return nil
	}
	if s.rec != nil {
		s.rec.request(pc)
		return nil
	}
	b := compileBlock(s, pc)
	s.blocks.Register(b)
	return b
}

// runBlock executes one compiled block's closure chain and folds its
// cycle count and register writes back into s.
func (s *State) runBlock(b *Block) {
	ctx := &codebuf.Ctx{Aux: s}
	b.Entry(ctx)
}

// Execute runs compiled blocks in a loop, recompiling on cache misses,
// until the cumulative guest cycle count reaches budget (if nonzero)
// or an exit condition other than ExitNormal is pending. It returns
// the flags that stopped it and clears them for the next call. A zero
// budget falls back to Config.CycleBudget from Init; zero there too
// means run until some other exit condition fires.
func (s *State) Execute(budget uint32) ExitFlags {
	s.exitFlags = ExitNormal
	start := s.cycles
	if budget == 0 {
		budget = s.cycleBudget
	}

	for {
		b := s.getOrCompile(s.guest.PC)
		if s.exitFlags != ExitNormal {
			break
		}
		if b == nil {
			s.RunInterpreter(1)
		} else {
			s.runBlock(b)
		}

		if s.exitFlags != ExitNormal {
			break
		}
		if budget != 0 && s.cycles-start >= uint64(budget) {
			break
		}
	}

	return s.exitFlags
}

// ExecuteOne runs exactly one compiled block regardless of exit flags
// or budget, mirroring the reference implementation's single-block
// entry point used by frontends that want to interleave their own
// scheduling between blocks. In threaded mode, a cold PC falls back to
// a single interpreted instruction rather than blocking on a compile.
func (s *State) ExecuteOne() ExitFlags {
	s.exitFlags = ExitNormal
	b := s.getOrCompile(s.guest.PC)
	if s.exitFlags != ExitNormal {
		return s.exitFlags
	}
	if b == nil {
		s.RunInterpreter(1)
	} else {
		s.runBlock(b)
	}
	return s.exitFlags
}
