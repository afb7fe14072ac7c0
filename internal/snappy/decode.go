package snappy

// DecodedLen parses just the varint uncompressed-length header at the
// front of src (spec §4.B / snappy_get_uncompressed_length in
// original_source/csnappy_decompress.c) without running the decoder. It
// returns the declared length and the number of header bytes consumed.
func DecodedLen(src []byte) (length, headerLen int, err error) {
	v, n, ok := uvarint32(src)
	if !ok {
		return 0, 0, ErrHeaderBad
	}
	return int(v), n, nil
}

// Decompress writes the decoded form of src to dst and returns the
// number of bytes written. dst must have at least as much capacity as
// the declared uncompressed length. Decompress returns an error from
// the taxonomy in errors.go rather than ever reading outside src or
// writing outside dst (spec §8, "No OOB").
//
// Unlike original_source/csnappy_decompress.c's csnappy_decompress,
// which delegates to csnappy_decompress_noheader and simply reports
// back however many bytes it produced, this port enforces the two
// stricter invariants spec.md §7 names explicitly:
// InputNotConsumed (stop exactly at the declared length and treat any
// byte still unread as an error) and UnexpectedOutputLen (running out
// of input before reaching the declared length is also an error). That
// requires decoding bounded by *output* reaching declaredLen, which is
// why this is its own loop rather than a thin wrapper around
// DecompressNoHeader.
func Decompress(dst, src []byte) (int, error) {
	declaredLen, hdrLen, err := DecodedLen(src)
	if err != nil {
		return 0, err
	}
	if declaredLen > len(dst) {
		return 0, ErrOutputInsufficient
	}

	dst = dst[:declaredLen]
	ip := src[hdrLen:]
	op := 0
	for op < declaredLen {
		if len(ip) == 0 {
			return 0, ErrUnexpectedOutputLen
		}
		op, ip, _, err = decodeOne(dst, op, ip)
		if err != nil {
			return 0, err
		}
	}

	if len(ip) != 0 {
		return 0, ErrInputNotConsumed
	}
	return op, nil
}

// DecompressNoHeader runs the opcode-decoding loop over src with no
// varint length header, stopping once src is fully consumed rather than
// once any particular output length is reached, and returns the number
// of bytes produced. It ports csnappy_decompress_noheader in
// original_source/csnappy_decompress.c directly: the loop condition is
// "input remains", not "output reaches a target length", and (like the
// reference) it never checks the produced length against anything.
// block_compressor.c calls the same noheader routine for its pages,
// since the container's size table carries the compressed length and
// never the uncompressed one (the latter is implied by PageSize except
// possibly for the file's last page, per the ambiguity recorded in
// DESIGN.md).
func DecompressNoHeader(dst, ip []byte) (int, error) {
	op := 0
	var err error
	for len(ip) > 0 {
		op, ip, _, err = decodeOne(dst, op, ip)
		if err != nil {
			return 0, err
		}
	}
	return op, nil
}

// decodeOne decodes a single opcode from the front of ip, writing into
// dst starting at op, and returns the updated output cursor, the
// remaining input, the number of bytes written by this opcode, and any
// error. Shared by Decompress's output-bounded loop and
// DecompressNoHeader's input-bounded one.
func decodeOne(dst []byte, op int, ip []byte) (newOp int, rest []byte, n int, err error) {
	c := ip[0]
	entry := decodeTable[c]
	trailerLen := int(entry >> 11)
	if 1+trailerLen > len(ip) {
		// Truncated opcode trailer: not enough input left even to read
		// the tag's fixed-size metadata.
		return 0, nil, 0, ErrDataMalformed
	}
	var trailer uint32
	for j := 0; j < trailerLen; j++ {
		trailer |= uint32(ip[1+j]) << (8 * uint(j))
	}
	length := int(entry & 0xff)
	ip = ip[1+trailerLen:]

	if c&3 == tagLiteral {
		litLen := length + int(trailer)
		if litLen > len(ip) {
			return 0, nil, 0, ErrDataMalformed
		}
		if op+litLen > len(dst) {
			return 0, nil, 0, ErrOutputOverrun
		}
		copy(dst[op:op+litLen], ip[:litLen])
		return op + litLen, ip[litLen:], litLen, nil
	}

	var offset int
	if c&3 == tagCopy1 {
		offset = int(entry&0x700) + int(trailer)
	} else {
		offset = int(trailer)
	}
	if op+length > len(dst) {
		return 0, nil, 0, ErrOutputOverrun
	}
	newOp, err = appendFromSelf(dst, op, offset, length)
	if err != nil {
		return 0, nil, 0, err
	}
	return newOp, ip, length, nil
}

// appendFromSelf replays length bytes starting offset bytes before the
// current output position op, per spec §4.F/§8: for all i in [0,length),
// dst[op+i] = dst[op+i-offset]. It rejects offset 0 and offset > op
// (copy referencing data before the start of output) as malformed.
//
// The reference C/Go implementations use an unaligned 8-byte-at-a-time
// fast path here that deliberately overwrites up to 10 bytes past the
// logical end of the copy, relying on destination slack the caller is
// required to reserve. This port instead always stays within
// dst[:op+length], matching design note §9's allowance for
// safety-oriented languages to drop that fast path: the byte-wise
// result is identical, just computed with a bounds-checked loop instead
// of an overlapping unaligned store.
func appendFromSelf(dst []byte, op, offset, length int) (int, error) {
	if offset <= 0 || offset > op {
		return 0, ErrDataMalformed
	}
	if op+length > len(dst) {
		return 0, ErrOutputOverrun
	}
	src := op - offset
	if offset >= length {
		// Source and destination ranges cannot overlap.
		copy(dst[op:op+length], dst[src:src+length])
		return op + length, nil
	}
	for i := 0; i < length; i++ {
		dst[op+i] = dst[src+i]
	}
	return op + length, nil
}
