package snappy

// Error is the decompressor's error taxonomy (spec §7). There is no
// recovery path inside the codec: any of these aborts the call with the
// output cursor left wherever it had advanced to.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrHeaderBad means the varint length prefix was malformed or the
	// input ended before it was complete.
	ErrHeaderBad = Error("snappy: corrupt header")
	// ErrOutputInsufficient means the destination buffer is smaller than
	// the declared uncompressed length.
	ErrOutputInsufficient = Error("snappy: destination buffer too small")
	// ErrOutputOverrun means a copy or literal would write past the
	// declared uncompressed length.
	ErrOutputOverrun = Error("snappy: decoded block would overrun output")
	// ErrDataMalformed means a copy referenced offset zero or an offset
	// past the current output, or an opcode's trailer was truncated.
	ErrDataMalformed = Error("snappy: corrupt input")
	// ErrInputNotConsumed means bytes remained in the source after the
	// declared uncompressed length was reached.
	ErrInputNotConsumed = Error("snappy: trailing bytes after decoded block")
	// ErrUnexpectedOutputLen means decoding ran out of input before
	// producing the declared uncompressed length.
	ErrUnexpectedOutputLen = Error("snappy: decoded length does not match header")
	// ErrTooLarge means the input is too large to express as a snappy
	// stream (declared length would not fit a uint32).
	ErrTooLarge = Error("snappy: source buffer is too large")
)
