package container

import (
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/calmh/csnappy/internal/logger"
)

// Reader provides random access to the pages of a container previously
// written by Compress, decompressing each page on first access and
// caching the result. It ports do_decompress in block_compressor.c,
// generalized from that function's single sequential pass to support
// pages being requested in any order (spec §4.G: "blocks decodable out
// of order").
type Reader struct {
	data  []byte
	sizes []uint32
	// offsets[i] is the byte offset of page i's payload within data:
	// the end of the size table plus the sizes of pages 0..i-1.
	offsets []int
	codec   Codec
	cache   *lru.Cache[int, []byte]
}

// NewReader parses the header and size table out of src, which must
// hold the complete container (this implementation is in-memory, unlike
// the reference driver's seek-based streaming over a file). cacheSize
// bounds the number of decompressed pages kept resident at once.
func NewReader(src []byte, codec Codec, cacheSize int) (*Reader, error) {
	if len(src) < sizeFieldLen {
		return nil, ErrHeaderTruncated
	}
	nrPages := int(getU32(src))
	tableEnd := sizeFieldLen + nrPages*sizeFieldLen
	if tableEnd > len(src) {
		return nil, ErrHeaderTruncated
	}

	sizes := make([]uint32, nrPages)
	offsets := make([]int, nrPages)
	pos := tableEnd
	for i := 0; i < nrPages; i++ {
		sz := getU32(src[sizeFieldLen+i*sizeFieldLen:])
		sizes[i] = sz
		offsets[i] = pos
		pos += int(sz)
	}
	if pos > len(src) {
		return nil, ErrBodyTruncated
	}

	cache, err := lru.New[int, []byte](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "container: new page cache")
	}
	return &Reader{data: src, sizes: sizes, offsets: offsets, codec: codec, cache: cache}, nil
}

// PageCount returns the number of pages in the container.
func (r *Reader) PageCount() int {
	return len(r.sizes)
}

// Page returns the decompressed content of page i, decoding it on first
// access and serving subsequent requests from the page cache.
func (r *Reader) Page(i int) ([]byte, error) {
	if i < 0 || i >= len(r.sizes) {
		return nil, ErrPageIndexOutOfRange
	}
	if page, ok := r.cache.Get(i); ok {
		return page, nil
	}

	size := int(r.sizes[i])
	start := r.offsets[i]
	body := r.data[start : start+size]

	var page []byte
	if size == PageSize {
		// Stored verbatim: block_compressor.c writes a page's raw
		// bytes and records its true length whenever compression
		// failed to shrink it, so an entry equal to the full page
		// size is never produced by a successful compression of a
		// full page and is read back unchanged.
		page = append([]byte(nil), body...)
	} else {
		decoded, err := r.codec.Decompress(nil, body, PageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "container: decompress page %d", i)
		}
		page = decoded
	}
	r.cache.Add(i, page)
	return page, nil
}

// WriteTo writes every page of the container, in order, to w.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := 0; i < r.PageCount(); i++ {
		page, err := r.Page(i)
		if err != nil {
			return total, err
		}
		n, err := w.Write(page)
		total += int64(n)
		if err != nil {
			return total, errors.Wrapf(err, "container: write page %d", i)
		}
	}
	return total, nil
}

// Decompress reads a complete container from r and writes its
// decompressed contents to w, matching do_decompress's sequential pass
// over block_compressor.c's container format. log may be nil; when
// given, each page's input/output sizes are reported the way
// do_decompress prints "ilen -> olen" per page.
func Decompress(w io.Writer, r io.Reader, codec Codec, cacheSize int, log *logger.Logger) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "container: read input")
	}
	rd, err := NewReader(src, codec, cacheSize)
	if err != nil {
		return err
	}
	for i := 0; i < rd.PageCount(); i++ {
		page, err := rd.Page(i)
		if err != nil {
			return err
		}
		if log != nil {
			log.Debugf("page %d: %d -> %d", i, rd.sizes[i], len(page))
		}
		if _, err := w.Write(page); err != nil {
			return errors.Wrapf(err, "container: write page %d", i)
		}
	}
	return nil
}
