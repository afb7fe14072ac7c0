package container

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// lz4Codec takes the LZO slot in COMPRESSORS from block_compressor.c.
// LZO itself has no maintained pure-Go port in the example pack; lz4 is
// the closest available byte-oriented, dictionary-free LZ codec with a
// comparable speed/ratio tradeoff, so it stands in under the name the
// CLI exposes as "lz4" rather than pretending to be LZO-compatible.
type lz4Codec struct{}

func init() {
	Register(lz4Codec{})
}

func (lz4Codec) Name() string { return "lz4" }

func (lz4Codec) Compress(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, errors.Wrap(err, "lz4 compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "lz4 compress")
	}
	return append(dst, buf.Bytes()...), nil
}

func (lz4Codec) Decompress(dst, src []byte, maxLen int) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(src))
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(maxLen)); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "lz4 decompress")
	}
	return append(dst, buf.Bytes()...), nil
}
