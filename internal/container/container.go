// Package container implements the page-indexed block container format
// described in spec.md §4.G/§6: a 4-byte little-endian page count, a
// page-count-sized table of 4-byte little-endian block sizes, and the
// concatenated block payloads, each either compressed under a pluggable
// Codec or stored verbatim when compression does not help.
//
// The layout and the stored-block fallback rule are ported from
// do_compress/do_decompress in original_source/block_compressor.c; the
// codec registry (struct compressor_funcs / compressors[]) is ported as
// the Codec interface and Registry below.
package container

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// PageSize is the fixed uncompressed size of every page but (possibly)
// the last, mirroring block_compressor.c's use of sysconf(_SC_PAGE_SIZE)
// as its fragment size. The reference driver picks the host's virtual
// memory page size at runtime; this port fixes it at the traditional
// 4 KiB so container files are portable across machines.
const PageSize = 4096

// sizeFieldLen is the width of the page-count header and each entry of
// the size table: a little-endian uint32 (spec §4.G).
const sizeFieldLen = 4

// Codec compresses and decompresses single pages. Implementations must
// be safe to reuse across pages; Compress/Decompress are called once
// per page in page order for writers and in any order for readers.
type Codec interface {
	// Name identifies the codec in command-line flags and error
	// messages ("snappy", "lz4", "zlib").
	Name() string
	// Compress appends the compressed form of src to dst and returns
	// the extended slice.
	Compress(dst, src []byte) ([]byte, error)
	// Decompress appends the decompressed form of src to dst and
	// returns the extended slice. maxLen bounds the number of bytes
	// that may be produced (the page size); Decompress determines the
	// actual output length itself rather than requiring the caller to
	// know it in advance, mirroring csnappy_decompress_noheader's
	// input-bounded decode loop.
	Decompress(dst, src []byte, maxLen int) ([]byte, error)
}

// Registry maps codec names to implementations, mirroring the
// compressors[] table in block_compressor.c keyed by COMPRESSORS[].
var Registry = map[string]Codec{}

// Register adds a codec to Registry under its own Name(). Codec
// packages call this from an init func.
func Register(c Codec) {
	Registry[c.Name()] = c
}

// Lookup returns the named codec, or an error if it is not registered.
func Lookup(name string) (Codec, error) {
	c, ok := Registry[name]
	if !ok {
		return nil, errors.Errorf("container: unknown codec %q", name)
	}
	return c, nil
}

func putU32(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}

func getU32(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

// divRoundUp mirrors block_compressor.c's DIV_ROUND_UP macro.
func divRoundUp(n, d int) int {
	return (n + d - 1) / d
}

var (
	// ErrHeaderTruncated is returned when src ends before a complete
	// page-count header or size table has been read.
	ErrHeaderTruncated = errors.New("container: truncated header")
	// ErrPageIndexOutOfRange is returned by Reader.Page for an index
	// outside [0, PageCount).
	ErrPageIndexOutOfRange = errors.New("container: page index out of range")
	// ErrBodyTruncated is returned when src ends before a page's
	// declared payload has been fully read.
	ErrBodyTruncated = errors.New("container: truncated page body")
)
