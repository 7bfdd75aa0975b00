package dynarec

// MapKind identifies one of the guest's memory regions. The ordering
// matches the reference implementation's enum so config dumps and log
// lines read the same way.
type MapKind int

const (
	MapKernelUserRAM MapKind = iota
	MapBIOS
	MapScratchPad
	MapParallelPort
	MapHWRegisters
	MapCacheControl
	MapMirror1
	MapMirror2
	MapMirror3
	numMapKinds
)

func (k MapKind) String() string {
	switch k {
	case MapKernelUserRAM:
		return "ram"
	case MapBIOS:
		return "bios"
	case MapScratchPad:
		return "scratchpad"
	case MapParallelPort:
		return "parallel-port"
	case MapHWRegisters:
		return "hw-registers"
	case MapCacheControl:
		return "cache-control"
	case MapMirror1:
		return "ram-mirror-1"
	case MapMirror2:
		return "ram-mirror-2"
	case MapMirror3:
		return "ram-mirror-3"
	default:
		return "unknown-map"
	}
}

// MemMap describes one mapped region: its guest physical base address
// (already unsegmented) and length, plus the host-backed bytes behind
// it when the region is directly addressable (RAM/BIOS/ScratchPad).
// Regions with no host backing (HWRegisters, ParallelPort,
// CacheControl) are routed through Ops instead.
type MemMap struct {
	Kind   MapKind
	PC     uint32
	Length uint32
	Data   []byte
}

func (m *MemMap) contains(addr uint32) bool {
	return addr >= m.PC && addr < m.PC+m.Length
}

// kunseg masks a guest virtual address down to its physical form,
// stripping the KSEG0/KSEG1 segment selector bits the MIPS-I CPU uses
// to toggle cache behaviour without changing the underlying address.
func kunseg(addr uint32) uint32 {
	switch addr >> 29 {
	case 4: // KSEG0: cached, 0x80000000-0x9fffffff
		return addr & 0x1fffffff
	case 5: // KSEG1: uncached, 0xa0000000-0xbfffffff
		return addr & 0x1fffffff
	default:
		return addr & 0x1f9fffff
	}
}

// MemMapOps lets the embedder intercept a load or store before it
// reaches a mapped region's backing bytes, mirroring the reference
// implementation's per-region read/write hooks. A nil entry falls back
// to direct access against Data.
type MemMapOps struct {
	SB func(addr uint32, val uint8)
	SH func(addr uint32, val uint16)
	SW func(addr uint32, val uint32)
	LB func(addr uint32) uint8
	LH func(addr uint32) uint16
	LW func(addr uint32) uint32
}

// CopOps lets the embedder supply the coprocessor instructions the
// compiler never inlines directly: COP2 (GTE) register moves and
// operation dispatch, and anything else routed through COP0/COP2 that
// the register cache should not be asked to model.
type CopOps struct {
	MFC func(reg byte) uint32
	CFC func(reg byte) uint32
	MTC func(reg byte, val uint32)
	CTC func(reg byte, val uint32)
	Op  func(funct uint32)
}

// Ops bundles the callbacks an embedder registers at Init time: one
// MemMapOps per region that needs interception, the COP0 bridge for
// MFC0/CFC0/MTC0/CTC0 (status/cause and the rest of the CP0 register
// file), and the COP2 bridge every block uses for LWC2/SWC2 and COP2
// SPECIAL instructions.
type Ops struct {
	Region map[MapKind]*MemMapOps
	Cop0   CopOps
	Cop2   CopOps
}

// memMapTable owns the set of regions a State was configured with, plus
// mirror auto-detection over the RAM region.
type memMapTable struct {
	maps [numMapKinds]*MemMap
	ops  Ops

	// onCodeWrite is called after a direct (non-Ops-intercepted) write
	// lands in a region that can hold executable guest code, so the
	// owning State can mark any block compiled from that range outdated.
	// nil until State.Init wires it up.
	onCodeWrite func(addr, length uint32)

	// onSegfault is called the instant an access (instruction fetch or
	// data load/store) misses every declared region, mirroring the
	// reference implementation's __segfault_cb. nil until State.Init
	// wires it up.
	onSegfault func()
}

func newMemMapTable(maps []MemMap, ops Ops) *memMapTable {
	t := &memMapTable{ops: ops}
	for i := range maps {
		m := maps[i]
		t.maps[m.Kind] = &m
	}
	t.detectMirrors()
	return t
}

// holdsCode reports whether a direct write landing in region kind can
// invalidate compiled blocks. RAM and its mirrors are the only regions
// the dispatcher ever fetches instructions from.
func holdsCode(kind MapKind) bool {
	switch kind {
	case MapKernelUserRAM, MapMirror1, MapMirror2, MapMirror3:
		return true
	default:
		return false
	}
}

// detectMirrors synthesizes MapMirror1..3 entries over a RAM region
// whose caller did not declare them explicitly, matching consoles that
// alias the first 2/4/6 MiB of the address space onto RAM without a
// dedicated MemMap entry. The formula follows the reference
// implementation: MIRROR{n}.PC == RAM.PC + n*0x200000.
func (t *memMapTable) detectMirrors() {
	ram := t.maps[MapKernelUserRAM]
	if ram == nil {
		return
	}
	offsets := [3]uint32{0x200000, 0x400000, 0x600000}
	kinds := [3]MapKind{MapMirror1, MapMirror2, MapMirror3}
	for i, off := range offsets {
		if t.maps[kinds[i]] != nil {
			continue
		}
		t.maps[kinds[i]] = &MemMap{
			Kind:   kinds[i],
			PC:     ram.PC + off,
			Length: ram.Length,
			Data:   ram.Data,
		}
	}
}

// lookup returns the mapped region containing the unsegmented address
// addr, or nil if addr falls outside every declared region.
func (t *memMapTable) lookup(addr uint32) *MemMap {
	phys := kunseg(addr)
	for _, m := range t.maps {
		if m != nil && m.contains(phys) {
			return m
		}
	}
	return nil
}

func (t *memMapTable) regionOps(kind MapKind) *MemMapOps {
	if t.ops.Region == nil {
		return nil
	}
	return t.ops.Region[kind]
}

// noteSegfault reports an access that missed every declared region to
// the owning State, if a hook has been installed.
func (t *memMapTable) noteSegfault() {
	if t.onSegfault != nil {
		t.onSegfault()
	}
}

// fetchWord reads the guest instruction word at unsegmented address
// addr for block disassembly and the interpreter's single-step fetch,
// resolving through the same region table data accesses use. ok is
// false when addr falls outside every declared region or the matching
// region has no host-backed bytes (an Ops-only region cannot supply
// code) — the caller is expected to raise ExitSegfault on miss, same
// as the data-access paths below.
func (t *memMapTable) fetchWord(addr uint32) (uint32, bool) {
	m := t.lookup(addr)
	if m == nil {
		return 0, false
	}
	off := kunseg(addr) - m.PC
	if int(off)+4 > len(m.Data) {
		return 0, false
	}
	return uint32(m.Data[off]) | uint32(m.Data[off+1])<<8 |
		uint32(m.Data[off+2])<<16 | uint32(m.Data[off+3])<<24, true
}

// snapshot copies the n guest bytes beginning at addr, used by
// compileBlock to record a block's source range for outdated
// detection. Assumes the block lies entirely within one region, which
// holds for the contiguous RAM/BIOS/ScratchPad regions (and their
// mirrors) code is ever fetched from.
func (t *memMapTable) snapshot(addr, n uint32) []byte {
	m := t.lookup(addr)
	if m == nil {
		return nil
	}
	off := kunseg(addr) - m.PC
	if int(off) > len(m.Data) {
		return nil
	}
	end := off + n
	if int(end) > len(m.Data) {
		end = uint32(len(m.Data))
	}
	return append([]byte(nil), m.Data[off:end]...)
}

// readByte/readHalf/readWord/writeByte/writeHalf/writeWord implement
// lightrec_rw: resolve addr to a region, then dispatch to its Ops hook
// if one is registered, falling back to direct access against Data. A
// miss against every declared region raises ExitSegfault through
// onSegfault rather than silently reading as zero or dropping the
// write, matching §4.7/§7's "unmapped guest access" handling.

func (t *memMapTable) readByte(addr uint32) uint8 {
	m := t.lookup(addr)
	if m == nil {
		t.noteSegfault()
		return 0
	}
	if ops := t.regionOps(m.Kind); ops != nil && ops.LB != nil {
		return ops.LB(addr)
	}
	off := kunseg(addr) - m.PC
	if int(off) >= len(m.Data) {
		return 0
	}
	return m.Data[off]
}

func (t *memMapTable) readHalf(addr uint32) uint16 {
	m := t.lookup(addr)
	if m == nil {
		t.noteSegfault()
		return 0
	}
	if ops := t.regionOps(m.Kind); ops != nil && ops.LH != nil {
		return ops.LH(addr)
	}
	off := kunseg(addr) - m.PC
	if int(off)+2 > len(m.Data) {
		return 0
	}
	return uint16(m.Data[off]) | uint16(m.Data[off+1])<<8
}

func (t *memMapTable) readWord(addr uint32) uint32 {
	m := t.lookup(addr)
	if m == nil {
		t.noteSegfault()
		return 0
	}
	if ops := t.regionOps(m.Kind); ops != nil && ops.LW != nil {
		return ops.LW(addr)
	}
	off := kunseg(addr) - m.PC
	if int(off)+4 > len(m.Data) {
		return 0
	}
	return uint32(m.Data[off]) | uint32(m.Data[off+1])<<8 |
		uint32(m.Data[off+2])<<16 | uint32(m.Data[off+3])<<24
}

func (t *memMapTable) writeByte(addr uint32, val uint8) {
	m := t.lookup(addr)
	if m == nil {
		t.noteSegfault()
		return
	}
	if ops := t.regionOps(m.Kind); ops != nil && ops.SB != nil {
		ops.SB(addr, val)
		return
	}
	off := kunseg(addr) - m.PC
	if int(off) < len(m.Data) {
		m.Data[off] = val
	}
	t.noteCodeWrite(m, addr, 1)
}

func (t *memMapTable) writeHalf(addr uint32, val uint16) {
	m := t.lookup(addr)
	if m == nil {
		t.noteSegfault()
		return
	}
	if ops := t.regionOps(m.Kind); ops != nil && ops.SH != nil {
		ops.SH(addr, val)
		return
	}
	off := kunseg(addr) - m.PC
	if int(off)+2 <= len(m.Data) {
		m.Data[off] = byte(val)
		m.Data[off+1] = byte(val >> 8)
	}
	t.noteCodeWrite(m, addr, 2)
}

func (t *memMapTable) writeWord(addr uint32, val uint32) {
	m := t.lookup(addr)
	if m == nil {
		t.noteSegfault()
		return
	}
	if ops := t.regionOps(m.Kind); ops != nil && ops.SW != nil {
		ops.SW(addr, val)
		return
	}
	off := kunseg(addr) - m.PC
	if int(off)+4 <= len(m.Data) {
		m.Data[off] = byte(val)
		m.Data[off+1] = byte(val >> 8)
		m.Data[off+2] = byte(val >> 16)
		m.Data[off+3] = byte(val >> 24)
	}
	t.noteCodeWrite(m, addr, 4)
}

// noteCodeWrite reports a completed direct write to the owning State,
// if the region can hold code and a hook has been installed. Ops-
// intercepted writes (m.regionOps(...).SW etc.) never reach here: an
// embedder supplying its own write callback is responsible for calling
// State.Invalidate itself if that path can also touch executable RAM.
func (t *memMapTable) noteCodeWrite(m *MemMap, addr uint32, length uint32) {
	if t.onCodeWrite == nil || !holdsCode(m.Kind) {
		return
	}
	t.onCodeWrite(addr, length)
}
