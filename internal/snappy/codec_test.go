package snappy

import (
	"bytes"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, src []byte) {
	t.Helper()
	const w = 14
	workMem := make([]byte, WorkMemSize(w))
	dst := make([]byte, MaxEncodedLen(len(src)))
	n, err := Encode(dst, src, workMem, w)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if n > MaxEncodedLen(len(src)) {
		t.Fatalf("Encode wrote %d bytes, exceeding MaxEncodedLen %d", n, MaxEncodedLen(len(src)))
	}
	encoded := dst[:n]

	out := make([]byte, len(src))
	m, err := Decompress(out, encoded)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if m != len(src) {
		t.Fatalf("Decompress returned %d bytes, want %d", m, len(src))
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("round trip mismatch: got %x, want %x", out, src)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	roundTrip(t, nil)
}

func TestEmptyWireFormat(t *testing.T) {
	workMem := make([]byte, WorkMemSize(14))
	dst := make([]byte, MaxEncodedLen(0))
	n, err := Encode(dst, nil, workMem, 14)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || dst[0] != 0x00 {
		t.Fatalf("compress([]) = %x, want [0x00]", dst[:n])
	}
	out := make([]byte, 0)
	m, err := Decompress(out, []byte{0x00})
	if err != nil || m != 0 {
		t.Fatalf("decompress([0x00]) = (%d, %v), want (0, nil)", m, err)
	}
}

func TestRoundTripAllZero1KiB(t *testing.T) {
	roundTrip(t, make([]byte, 1024))
}

func TestSingle60ByteLiteralOpcode(t *testing.T) {
	// A 60-byte literal run with no internal repetition (so the match
	// finder cannot turn any of it into a copy) must be emitted as a
	// single LITERAL opcode carrying n=59 in its top six bits: 0xec.
	src := make([]byte, 60)
	for i := range src {
		// Strictly ascending bytes: no 4-byte window repeats anywhere
		// in the fragment, so the match finder cannot find a copy.
		src[i] = byte(i)
	}
	workMem := make([]byte, WorkMemSize(14))
	dst := make([]byte, MaxEncodedLen(len(src)))
	n, err := Encode(dst, src, workMem, 14)
	if err != nil {
		t.Fatal(err)
	}
	encoded := dst[:n]
	if encoded[1] != 0xec {
		t.Fatalf("opcode byte = %#x, want 0xec", encoded[1])
	}
	roundTrip(t, src)
}

func TestRoundTripUniformByteRun(t *testing.T) {
	// 60 repeats of the same byte lets the match finder's zero-
	// initialized hash table slot 0 double as an implicit candidate at
	// position 0 (the same mechanism that makes an all-zero buffer
	// compress to a short literal plus one long copy); the output is
	// not a flat literal run, but it must still round-trip exactly.
	roundTrip(t, bytes.Repeat([]byte("a"), 60))
}

func TestRoundTripRepeatedPattern(t *testing.T) {
	src := bytes.Repeat([]byte("abcd"), 512) // 2 KiB
	workMem := make([]byte, WorkMemSize(14))
	dst := make([]byte, MaxEncodedLen(len(src)))
	n, err := Encode(dst, src, workMem, 14)
	if err != nil {
		t.Fatal(err)
	}
	// varint(2048) is 2 bytes, the literal "abcd" 5 bytes, and the
	// 2044-byte copy at offset 4 needs 32 three-byte copy opcodes, since
	// a single copy opcode carries at most 64 bytes: 2+5+96 = 103.
	if n > 103 {
		t.Errorf("compressed %d bytes of repeated input down to %d bytes, expected 103", len(src), n)
	}
	roundTrip(t, src)
}

func TestRoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	sizes := []int{0, 1, 4, 15, 16, 17, 100, 1000, BlockSize - 1, BlockSize, BlockSize + 1, 3 * BlockSize}
	for _, n := range sizes {
		buf := make([]byte, n)
		r.Read(buf)
		roundTrip(t, buf)
	}
}

func TestRoundTripCompressibleMix(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	var buf bytes.Buffer
	for buf.Len() < 5*BlockSize {
		if r.Intn(2) == 0 {
			buf.Write(bytes.Repeat([]byte{byte(r.Intn(256))}, 1+r.Intn(500)))
		} else {
			chunk := make([]byte, 1+r.Intn(500))
			r.Read(chunk)
			buf.Write(chunk)
		}
	}
	roundTrip(t, buf.Bytes())
}

func TestMaxEncodedLenBounds(t *testing.T) {
	if got := MaxEncodedLen(0); got != 32 {
		t.Errorf("MaxEncodedLen(0) = %d, want 32", got)
	}
	if got := MaxEncodedLen(1 << 20); got != 32+1<<20+(1<<20)/6 {
		t.Errorf("MaxEncodedLen(1<<20) = %d, want %d", got, 32+1<<20+(1<<20)/6)
	}
	if got := MaxEncodedLen(1 << 32); got != -1 {
		t.Errorf("MaxEncodedLen(1<<32) = %d, want -1 (too large)", got)
	}
}
