package container

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// zlibCodec takes the ZLIB slot in COMPRESSORS from
// block_compressor.c, backed by klauspost/compress's drop-in zlib
// package rather than compress/zlib so the container's codec set
// shares one third-party compression library's maintenance and
// performance work with the rest of the pack.
type zlibCodec struct{}

func init() {
	Register(zlibCodec{})
}

func (zlibCodec) Name() string { return "zlib" }

func (zlibCodec) Compress(dst, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, errors.Wrap(err, "zlib compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "zlib compress")
	}
	return append(dst, buf.Bytes()...), nil
}

func (zlibCodec) Decompress(dst, src []byte, maxLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(err, "zlib decompress")
	}
	defer r.Close()
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(maxLen)); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "zlib decompress")
	}
	return append(dst, buf.Bytes()...), nil
}
