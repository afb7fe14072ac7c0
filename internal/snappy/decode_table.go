package snappy

// wordMask masks the low 8*i bits of a little-endian trailer word,
// i in [0,4] (spec §4.F / original_source/csnappy_decompress.c).
var wordMask = [5]uint32{0, 0xff, 0xffff, 0xffffff, 0xffffffff}

// decodeTable is the static 256-entry opcode table (spec §3/§4.F). Each
// entry packs, for the opcode byte used as index:
//
//	bits 0..7   literal/copy length encoded in the opcode byte
//	bits 8..10  copy offset encoded in the opcode byte, divided by 256
//	bits 11..13 number of trailer bytes following the opcode
//
// It is generated once at init from the tag/length/offset arithmetic
// rather than hand-transcribed, but is numerically identical to the
// table baked into the reference C decoder.
var decodeTable [256]uint16

func init() {
	for c := 0; c < 256; c++ {
		tag := c & 3
		var length, extra, trailerBytes int
		switch tag {
		case tagLiteral:
			n := c >> 2
			switch {
			case n < 60:
				length = n + 1
				trailerBytes = 0
			case n == 60:
				length = 1
				trailerBytes = 1
			case n == 61:
				length = 1
				trailerBytes = 2
			case n == 62:
				length = 1
				trailerBytes = 3
			default: // n == 63
				length = 1
				trailerBytes = 4
			}
		case tagCopy1:
			length = 4 + ((c >> 2) & 0x7)
			extra = (c >> 5) & 0x7
			trailerBytes = 1
		case tagCopy2:
			length = 1 + (c >> 2)
			trailerBytes = 2
		default: // tagCopy4
			length = 1 + (c >> 2)
			trailerBytes = 4
		}
		decodeTable[c] = uint16(length&0xff) | uint16(extra<<8) | uint16(trailerBytes<<11)
	}
}
