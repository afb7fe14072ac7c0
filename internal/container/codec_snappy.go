package container

import (
	"github.com/calmh/csnappy/internal/snappy"
)

// snappyCodec wires this module's own internal/snappy block codec into
// the container's Codec interface, playing the role of
// snappy_compress/snappy_decompress in block_compressor.c. Like that
// C driver, which calls csnappy_compress_fragment/
// csnappy_decompress_noheader, this codec writes no varint length
// header into a page payload: it compresses with CompressFragment and
// decodes with DecompressNoHeader, whose loop runs until the payload is
// consumed, bounded only by the maxLen-sized output buffer. The
// container's size table records each payload's compressed size, not
// its uncompressed one.
type snappyCodec struct{}

func init() {
	Register(snappyCodec{})
}

func (snappyCodec) Name() string { return "snappy" }

const snappyTableBits = 14

func (snappyCodec) Compress(dst, src []byte) ([]byte, error) {
	workMem := make([]byte, snappy.WorkMemSize(snappyTableBits))
	out := make([]byte, snappy.MaxEncodedLen(len(src)))
	n := snappy.CompressFragment(out, src, workMem, snappyTableBits)
	return append(dst, out[:n]...), nil
}

func (snappyCodec) Decompress(dst, src []byte, maxLen int) ([]byte, error) {
	out := make([]byte, maxLen)
	n, err := snappy.DecompressNoHeader(out, src)
	if err != nil {
		return nil, err
	}
	return append(dst, out[:n]...), nil
}
