package snappy

import "testing"

// adversarial streams must return an error, never panic or corrupt
// dst beyond its declared bounds (spec §8).
func TestDecompressAdversarial(t *testing.T) {
	cases := []struct {
		name string
		src  []byte
		dst  int
	}{
		{
			name: "copy offset zero",
			// varint(4), then COPY_1B tag with offset bits zero.
			src: []byte{0x04, 0x01, 0x00},
			dst: 4,
		},
		{
			name: "copy offset past current output",
			// varint(10), literal "a", then a 4-byte copy referencing
			// offset 5 when only 1 byte has been produced so far.
			src: []byte{0x0a, 0x00, 'a', tagCopy1, 0x05},
			dst: 10,
		},
		{
			name: "truncated trailer at EOF",
			// varint(4), then a COPY_2_BYTE_OFFSET tag whose 2-byte
			// offset trailer is cut short to 1 byte.
			src: []byte{0x04, 0x12, 0x05},
			dst: 4,
		},
		{
			name: "declared length exceeds destination capacity",
			src:  []byte{0x80, 0x80, 0x80, 0x80, 0x08}, // varint for 2^31
			dst:  16,
		},
		{
			name: "copy4 with missing trailer bytes",
			src:  []byte{0x04, 0x00, 'a', tagCopy4, 0x01, 0x00},
			dst:  4,
		},
		{
			name: "literal length runs past end of input",
			// the opcode alone claims a 60-byte literal run with none
			// of the literal payload actually present.
			src: []byte{0x0a, 0xec},
			dst: 10,
		},
		{
			name: "trailing bytes after declared length satisfied",
			src:  []byte{0x01, 0x00 /* literal "a" */, 'a', 0xff},
			dst:  1,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dst := make([]byte, c.dst)
			if _, err := Decompress(dst, c.src); err == nil {
				t.Fatalf("Decompress(%x) succeeded, want an error", c.src)
			}
		})
	}
}

func TestDecompressInputNotConsumed(t *testing.T) {
	// declares a 1-byte output, decodes the literal "a" satisfying it
	// exactly, then leaves a stray trailing byte unconsumed.
	src := []byte{0x01, 0x00, 'a', 0xff}
	dst := make([]byte, 1)
	if _, err := Decompress(dst, src); err != ErrInputNotConsumed {
		t.Fatalf("Decompress with trailing bytes: got %v, want ErrInputNotConsumed", err)
	}
}

func TestDecompressOutputInsufficient(t *testing.T) {
	src := []byte{0x05, 0x00, 'h', 'e', 'l', 'l', 'o'}
	dst := make([]byte, 4)
	if _, err := Decompress(dst, src); err != ErrOutputInsufficient {
		t.Fatalf("Decompress with undersized dst: got %v, want ErrOutputInsufficient", err)
	}
}

func TestAppendFromSelfOverlap(t *testing.T) {
	// Reproduce the "ab" * 11 example from the reference implementation:
	// offset 2, length 20 after 2 bytes have already been written.
	dst := make([]byte, 2+20)
	copy(dst, []byte("ab"))
	op, err := appendFromSelf(dst, 2, 2, 20)
	if err != nil {
		t.Fatal(err)
	}
	if op != 22 {
		t.Fatalf("op = %d, want 22", op)
	}
	want := make([]byte, 22)
	for i := range want {
		if i%2 == 0 {
			want[i] = 'a'
		} else {
			want[i] = 'b'
		}
	}
	for i, b := range dst {
		if b != want[i] {
			t.Fatalf("byte %d = %q, want %q", i, b, want[i])
		}
	}
}
