package dynarec

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// threadedRecompiler is the optional background recompiler (spec §5):
// one worker goroutine, managed by an errgroup.Group the way
// program_executor.go's async session ticket pattern supervises a
// worker, draining a channel of cold-PC compile requests while the
// calling thread keeps making forward progress through the
// interpreter (see getOrCompile/Execute). Publication of a finished
// block is a single call into blockCache.Publish, which takes the same
// mutex InvalidateRange/InvalidateAll do, so a publish can never race
// a store-path invalidate landing on the same PC.
type threadedRecompiler struct {
	state *State

	reqs  chan compileRequest
	group *errgroup.Group

	stopOnce sync.Once
}

type compileRequest struct {
	pc uint32
}

const recompileQueueDepth = 64

func newThreadedRecompiler(s *State) *threadedRecompiler {
	g := new(errgroup.Group)
	r := &threadedRecompiler{
		state: s,
		reqs:  make(chan compileRequest, recompileQueueDepth),
		group: g,
	}
	g.Go(r.loop)
	return r
}

func (r *threadedRecompiler) loop() error {
	for req := range r.reqs {
		r.compileAndPublish(req.pc)
	}
	return nil
}

func (r *threadedRecompiler) compileAndPublish(pc uint32) {
	b := compileBlock(r.state, pc)
	r.state.blocks.Publish(b)
}

// request enqueues pc for background compilation. A PC already pending
// is not queued twice; a full queue drops the request and clears the
// pending mark so a later cold dispatch can simply ask again — losing
// a request only costs another interpreted instruction, never
// correctness.
func (r *threadedRecompiler) request(pc uint32) {
	if r.state.blocks.Pending(pc) {
		return
	}
	r.state.blocks.markPending(pc)
	select {
	case r.reqs <- compileRequest{pc: pc}:
	default:
		r.state.blocks.clearPending(pc)
	}
}

// stop closes the request channel and waits for the worker to drain,
// called once from State.Destroy.
func (r *threadedRecompiler) stop() {
	r.stopOnce.Do(func() {
		close(r.reqs)
		r.group.Wait()
	})
}
