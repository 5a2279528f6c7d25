// Package rapidbase64 implements the standard Base64 alphabet (RFC 4648, '+' and
// '/') with vectorized kernels.
//
// Whole 24 byte (encode) or 32 character (decode) blocks go through a vector
// kernel; anything shorter, and any block that fails validation, is finished by a
// scalar codec that agrees with the vector path byte for byte. Encoding always
// pads. Decoding accepts an optional trailing padding and rejects every other byte
// outside the alphabet, including whitespace and line breaks.
//
// All functions are pure: they keep no state between calls and are safe for
// concurrent use as long as the buffers passed to concurrent calls do not overlap.
package rapidbase64

import (
	"errors"
	"fmt"
	"slices"
	"unsafe"
)

var (
	// ErrCorrupt matches every CorruptInputError via errors.Is.
	ErrCorrupt = errors.New("illegal base64 data")

	errDestinationTooSmall = errors.New("destination too small")
)

// CorruptInputError is the offset of the first byte of the input that is not
// valid Base64.
type CorruptInputError int64

func (e CorruptInputError) Error() string {
	return fmt.Sprintf("illegal base64 data at input byte %d", int64(e))
}

func (e CorruptInputError) Is(target error) bool {
	return target == ErrCorrupt
}

// EncodedLen returns the length of the Base64 encoding of n bytes.
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// DecodedLen returns the size dst must have to decode n characters.
// The actual result is shorter when the input carries padding.
func DecodedLen(n int) int {
	return (n + 3) / 4 * 3
}

// Codec binds the encode and decode operations to one Kernel.
// The zero value is not usable; see NewCodec.
type Codec struct {
	kernel Kernel

	// vector phase; nil for the scalar kernel
	encodeVector func(dst, src []byte) (nDst, nSrc int)
	decodeVector func(dst, src []byte) (nDst, nSrc int)
}

// NewCodec returns a Codec running kernel k. KernelAuto picks the fastest
// kernel the CPU supports; an explicit kernel the CPU lacks is an error
// matching ErrKernelUnavailable.
func NewCodec(k Kernel) (*Codec, error) {
	k, err := resolveKernel(k)
	if err != nil {
		return nil, err
	}

	c := &Codec{kernel: k}
	switch k {
	case KernelGeneric:
		c.encodeVector = encodeGeneric
		c.decodeVector = decodeGeneric
	case KernelAVX2:
		c.encodeVector = encodeAVX2
		c.decodeVector = decodeAVX2
	}
	return c, nil
}

// Kernel returns the concrete kernel of c.
func (c *Codec) Kernel() Kernel {
	return c.kernel
}

// Encode writes the Base64 encoding of src to dst and returns the number of
// bytes written, always EncodedLen(len(src)). dst must be at least that long.
func (c *Codec) Encode(dst, src []byte) (int, error) {
	if len(dst) < EncodedLen(len(src)) {
		return 0, errDestinationTooSmall
	}

	var d, s int
	if c.encodeVector != nil {
		d, s = c.encodeVector(dst, src)
	}
	return d + encodeScalar(dst[d:], src[s:]), nil
}

// Decode writes the bytes represented by the Base64 text src to dst and returns
// the number of bytes written. dst must be at least DecodedLen(len(src)) long.
//
// If src contains a byte outside the alphabet, misplaced padding or a dangling
// final character, Decode returns a CorruptInputError; the contents of dst and
// the returned count are then unspecified.
func (c *Codec) Decode(dst, src []byte) (int, error) {
	return c.decode(dst, src, true)
}

// decode is Decode for one chunk of a larger input; only the final chunk may end
// with padding.
func (c *Codec) decode(dst, src []byte, final bool) (int, error) {
	if len(dst) < DecodedLen(len(src)) {
		return 0, errDestinationTooSmall
	}

	var d, s int
	if c.decodeVector != nil {
		d, s = c.decodeVector(dst, src)
	}

	n, err := decodeScalar(dst[d:], src[s:], final)
	if err != nil {
		var corrupt CorruptInputError
		if errors.As(err, &corrupt) {
			err = corrupt + CorruptInputError(s)
		}
		return d + n, err
	}
	return d + n, nil
}

// std backs the package level functions.
var std = func() *Codec {
	c, err := NewCodec(KernelAuto)
	if err != nil {
		panic(err)
	}
	return c
}()

// Encode encodes src into dst using the fastest available kernel.
// See Codec.Encode.
func Encode(dst, src []byte) (int, error) {
	return std.Encode(dst, src)
}

// Decode decodes src into dst using the fastest available kernel.
// See Codec.Decode.
func Decode(dst, src []byte) (int, error) {
	return std.Decode(dst, src)
}

// AppendEncode appends the Base64 encoding of src to dst and returns the
// extended buffer.
func AppendEncode(dst, src []byte) []byte {
	n := EncodedLen(len(src))
	dst = slices.Grow(dst, n)
	// Cannot fail: the window is exactly EncodedLen long.
	_, _ = std.Encode(dst[len(dst):len(dst)+n], src)
	return dst[:len(dst)+n]
}

// AppendDecode appends the decoded form of src to dst and returns the extended
// buffer. On error dst is returned unchanged.
func AppendDecode(dst, src []byte) ([]byte, error) {
	size := DecodedLen(len(src))
	dst = slices.Grow(dst, size)
	n, err := std.Decode(dst[len(dst):len(dst)+size], src)
	if err != nil {
		return dst, err
	}
	return dst[:len(dst)+n], nil
}

// EncodeToString returns the Base64 encoding of src.
func EncodeToString(src []byte) string {
	buf := make([]byte, EncodedLen(len(src)))
	_, _ = std.Encode(buf, src)
	return string(buf)
}

// DecodeString returns the bytes represented by the Base64 string s.
func DecodeString(s string) ([]byte, error) {
	dst := make([]byte, DecodedLen(len(s)))
	n, err := std.Decode(dst, unsafe.Slice(unsafe.StringData(s), len(s)))
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
