//go:build unix

package codebuf

import "golang.org/x/sys/unix"

// ExecPage is a page-aligned region of memory that can hold raw
// machine code and be flipped from writable to executable. It mirrors
// the allocate-emit-finalize lifecycle a raw-pointer back end follows:
// mmap RW, copy bytes in, mprotect RX, eventually munmap.
type ExecPage struct {
	mem   []byte
	exec  bool
}

// NewExecPage allocates a zeroed, read-write anonymous mapping at least
// size bytes long.
func NewExecPage(size int) (*ExecPage, error) {
	mem, err := unix.Mmap(-1, 0, pageRound(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return &ExecPage{mem: mem}, nil
}

func pageRound(n int) int {
	const page = 4096
	if n <= 0 {
		return page
	}
	return (n + page - 1) &^ (page - 1)
}

// Write copies code into the page starting at offset off. It must be
// called before Finalize.
func (p *ExecPage) Write(off int, code []byte) error {
	if p.exec {
		return errAlreadyFinalized
	}
	copy(p.mem[off:], code)
	return nil
}

// Bytes returns the page's backing slice, valid to inspect whether or
// not the page has been finalized.
func (p *ExecPage) Bytes() []byte { return p.mem }

// Finalize mprotects the page executable and read-only, matching the
// W^X discipline a real JIT back end must observe.
func (p *ExecPage) Finalize() error {
	if p.exec {
		return nil
	}
	if err := unix.Mprotect(p.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return err
	}
	p.exec = true
	return nil
}

// Free releases the mapping. The page must not be used afterwards.
func (p *ExecPage) Free() error {
	return unix.Munmap(p.mem)
}
