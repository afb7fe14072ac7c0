package snappy

import "encoding/binary"

// MinTableBits and MaxTableBits bound W, the working-memory power of two
// (spec §6): the hash table holds 1<<(W-1) uint16 entries, each an offset
// into the fragment currently being compressed.
const (
	MinTableBits = 9
	MaxTableBits = 15
)

// WorkMemSize returns the number of bytes a caller must provide as
// working memory for CompressFragment/Encode with table bits w.
func WorkMemSize(w uint) int {
	return 1 << w
}

// table is a thin view over a caller-provided byte slice, addressing it
// as 1<<(w-1) little-endian uint16 hash-table entries. It never
// allocates: reset zeroes the caller's bytes in place, exactly as spec
// §4.E requires between fragments.
type table struct {
	mem  []byte
	mask uint32
}

func newTable(workMem []byte, w uint) table {
	entries := 1 << (w - 1)
	return table{mem: workMem[:entries*2], mask: uint32(entries - 1)}
}

func (t table) reset() {
	clear(t.mem)
}

func (t table) get(h uint32) uint32 {
	i := (h & t.mask) * 2
	return uint32(binary.LittleEndian.Uint16(t.mem[i : i+2]))
}

func (t table) set(h uint32, v uint32) {
	i := (h & t.mask) * 2
	binary.LittleEndian.PutUint16(t.mem[i:i+2], uint16(v))
}

// hash mixes the low bytes of u with Snappy's fixed multiplier and keeps
// the top (32-shift) bits, where shift = 33-W.
func hash(u uint32, shift uint32) uint32 {
	return (u * 0x1e35a7bd) >> shift
}
