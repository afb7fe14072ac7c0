package container

import (
	"io"

	"github.com/pkg/errors"

	"github.com/calmh/csnappy/internal/logger"
)

// Compress reads all of r, splits it into PageSize pages, compresses
// each independently under codec, and writes the page-indexed
// container to w: a page-count header, the size table, then the
// concatenated page payloads. It mirrors do_compress in
// block_compressor.c, including the stored-block fallback: a page
// whose compressed form is not smaller than its input is written
// verbatim, and its size-table entry equals the page's uncompressed
// length so the reader can tell the two apart (spec §4.G, §9 design
// note on the size==PageSize ambiguity for a short final page).
//
// log may be nil; when given, each page's outcome is reported the way
// do_compress tallies its ">100%/>50%/<=50%" counters, as an Okf for a
// page that shrank to half or less and a Warnf for one that fell back
// to stored.
func Compress(w io.Writer, r io.Reader, codec Codec, log *logger.Logger) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "container: read input")
	}

	nrPages := divRoundUp(len(input), PageSize)
	if nrPages > 1<<32-1 {
		return errors.New("container: input too large")
	}

	sizes := make([]uint32, nrPages)
	bodies := make([][]byte, nrPages)
	for i := 0; i < nrPages; i++ {
		start := i * PageSize
		end := start + PageSize
		if end > len(input) {
			end = len(input)
		}
		page := input[start:end]

		compressed, err := codec.Compress(nil, page)
		if err != nil {
			return errors.Wrapf(err, "container: compress page %d", i)
		}
		if len(compressed) >= len(page) {
			sizes[i] = uint32(len(page))
			bodies[i] = page
			if log != nil {
				log.Warnf("page %d: stored (compressed %d >= input %d)", i, len(compressed), len(page))
			}
		} else {
			sizes[i] = uint32(len(compressed))
			bodies[i] = compressed
			if log != nil && len(compressed) <= len(page)/2 {
				log.Okf("page %d: %d -> %d bytes", i, len(page), len(compressed))
			}
		}
	}

	hdr := make([]byte, sizeFieldLen)
	putU32(hdr, uint32(nrPages))
	if _, err := w.Write(hdr); err != nil {
		return errors.Wrap(err, "container: write header")
	}

	sizeTable := make([]byte, nrPages*sizeFieldLen)
	for i, sz := range sizes {
		putU32(sizeTable[i*sizeFieldLen:], sz)
	}
	if _, err := w.Write(sizeTable); err != nil {
		return errors.Wrap(err, "container: write size table")
	}

	for i, body := range bodies {
		if _, err := w.Write(body); err != nil {
			return errors.Wrapf(err, "container: write page %d", i)
		}
	}
	return nil
}
