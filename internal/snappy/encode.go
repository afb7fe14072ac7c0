package snappy

// Tag bits, bottom 2 bits of every opcode byte.
const (
	tagLiteral = 0x00
	tagCopy1   = 0x01
	tagCopy2   = 0x02
	tagCopy4   = 0x03
)

// BlockSize is the largest fragment the match finder will look inside in
// one call: 32 KiB, so that every valid back-reference offset fits in 16
// bits and COPY_2_BYTE_OFFSET is always sufficient (spec §4.C).
const BlockSize = 1 << 15

// inputMargin is kInputMarginBytes from spec §4.C: the match finder's
// main scan never looks past ip_end-inputMargin, which leaves slack for
// the unaligned 8-byte loads used to test and extend candidate matches.
const inputMargin = 15

// MaxEncodedLen returns the largest number of bytes Encode could need to
// hold the compressed form of an n-byte input, or -1 if n cannot be
// expressed (spec §3: max_compressed_length(n) = 32 + n + n/6).
func MaxEncodedLen(n int) int {
	if uint64(n) > 0xffffffff {
		return -1
	}
	total := 32 + uint64(n) + uint64(n)/6
	if total > 0xffffffff {
		return -1
	}
	return int(total)
}

// emitLiteral writes a literal run of lit and returns the number of
// bytes written to dst. dst must have at least len(lit)+5 bytes free.
func emitLiteral(dst, lit []byte) int {
	n := uint32(len(lit) - 1)
	i := 0
	switch {
	case n < 60:
		dst[0] = uint8(n<<2) | tagLiteral
		i = 1
	default:
		// Emit n in the minimum number of little-endian bytes, k in
		// {1,2,3,4}, preceded by a tag byte carrying (59+k).
		k := 1
		m := n
		for m >= 0x100 {
			m >>= 8
			k++
		}
		dst[0] = uint8((59+k)<<2) | tagLiteral
		for j := 0; j < k; j++ {
			dst[1+j] = uint8(n >> (8 * uint(j)))
		}
		i = 1 + k
	}
	return i + copy(dst[i:], lit)
}

// emitCopy writes one or more copy opcodes totaling length bytes at the
// given offset, decomposing lengths above 64 per spec §4.D, and returns
// the number of bytes written.
func emitCopy(dst []byte, offset, length int) int {
	i := 0
	for length >= 68 {
		dst[i+0] = 63<<2 | tagCopy2
		dst[i+1] = uint8(offset)
		dst[i+2] = uint8(offset >> 8)
		i += 3
		length -= 64
	}
	if length > 64 {
		dst[i+0] = 59<<2 | tagCopy2
		dst[i+1] = uint8(offset)
		dst[i+2] = uint8(offset >> 8)
		i += 3
		length -= 60
	}
	if length < 12 && offset < 2048 {
		dst[i+0] = uint8(offset>>8)<<5 | uint8(length-4)<<2 | tagCopy1
		dst[i+1] = uint8(offset)
		return i + 2
	}
	dst[i+0] = uint8(length-1)<<2 | tagCopy2
	dst[i+1] = uint8(offset)
	dst[i+2] = uint8(offset >> 8)
	return i + 3
}

// findMatchLength returns the number of bytes s1 and s2 agree on, up to
// len(s2). It compares 8 bytes at a time and uses the trailing-zero
// count of the XOR to locate the first differing byte.
func findMatchLength(s1, s2 []byte) int {
	n := len(s2)
	matched := 0
	for matched+8 <= n {
		x := loadU64(s1, matched) ^ loadU64(s2, matched)
		if x != 0 {
			return matched + trailingZeroBytes(x)
		}
		matched += 8
	}
	for matched < n && s1[matched] == s2[matched] {
		matched++
	}
	return matched
}

func trailingZeroBytes(x uint64) int {
	n := 0
	for x&0xff == 0 {
		x >>= 8
		n++
	}
	return n
}

// CompressFragment compresses a single fragment src (len(src) <=
// BlockSize) into dst, which must have at least MaxEncodedLen(len(src))
// bytes free, and returns the number of bytes written. No header is
// written; callers that need the varint length prefix use Encode.
//
// workMem must hold WorkMemSize(w) bytes and is read and written as the
// match finder's hash table; it is the caller's responsibility to zero
// it before a call that should not see stale entries from a previous
// fragment (spec §4.E: the compressor itself does this in Encode).
func CompressFragment(dst, src, workMem []byte, w uint) int {
	if len(src) < inputMargin+2 {
		return emitLiteral(dst, src)
	}

	tbl := newTable(workMem, w)
	shift := uint32(33) - uint32(w)

	sLimit := len(src) - inputMargin
	nextEmit := 0
	s := 1
	nextHash := hash(loadU32(src, s), shift)

	d := 0
	for {
		skip := 32
		nextS := s
		var candidate int
		for {
			s = nextS
			bytesBetween := skip >> 5
			nextS = s + bytesBetween
			skip += bytesBetween
			if nextS > sLimit {
				goto emitRemainder
			}
			candidate = int(tbl.get(nextHash))
			tbl.set(nextHash, uint32(s))
			nextHash = hash(loadU32(src, nextS), shift)
			if loadU32(src, s) == loadU32(src, candidate) {
				break
			}
		}

		d += emitLiteral(dst[d:], src[nextEmit:s])

		for {
			base := s
			matched := 4 + findMatchLength(src[candidate+4:], src[base+4:])
			s = base + matched
			d += emitCopy(dst[d:], base-candidate, matched)
			nextEmit = s
			if s >= sLimit {
				goto emitRemainder
			}

			// Tail-hash insertion (spec §4.C): index the byte just
			// behind s as well as s itself before deciding whether
			// another copy starts immediately.
			x := loadU64(src, s-1)
			prevHash := hash(uint32(x), shift)
			tbl.set(prevHash, uint32(s-1))
			currHash := hash(uint32(x>>8), shift)
			candidate = int(tbl.get(currHash))
			tbl.set(currHash, uint32(s))
			if uint32(x>>8) != loadU32(src, candidate) {
				nextHash = hash(uint32(x>>16), shift)
				s++
				break
			}
		}
	}

emitRemainder:
	if nextEmit < len(src) {
		d += emitLiteral(dst[d:], src[nextEmit:])
	}
	return d
}

// Encode writes the varint uncompressed-length header followed by the
// compressed body of src to dst, chopping src into BlockSize fragments
// each compressed independently, and returns the number of bytes
// written to dst. dst must have at least MaxEncodedLen(len(src)) bytes
// free. workMem must hold WorkMemSize(w) bytes; it is zeroed before
// every fragment.
func Encode(dst, src, workMem []byte, w uint) (int, error) {
	if uint64(len(src)) > 0xffffffff {
		return 0, ErrTooLarge
	}
	d := putUvarint32(dst, uint32(len(src)))
	for len(src) > 0 {
		frag := src
		if len(frag) > BlockSize {
			frag = src[:BlockSize]
		}
		src = src[len(frag):]

		tbl := newTable(workMem, w)
		tbl.reset()
		if len(frag) < inputMargin+2 {
			d += emitLiteral(dst[d:], frag)
		} else {
			d += CompressFragment(dst[d:], frag, workMem, w)
		}
	}
	return d, nil
}
