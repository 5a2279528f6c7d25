// Package vec256 is a pure Go model of a 256-bit integer SIMD register.
//
// Each operation reproduces the lane semantics of the AVX2 instruction it is
// named after, including the split into two independent 128-bit halves for
// byte shuffles, so kernels written against Vec produce the same bytes as the
// assembly kernels built from the same algorithm.
package vec256

import "encoding/binary"

// Size is the width of a Vec in bytes.
const Size = 32

// Vec holds 32 byte lanes. Wider lanes are little-endian views over the bytes.
type Vec [Size]byte

// Load reads the first 32 bytes of src.
func Load(src []byte) Vec {
	var v Vec
	copy(v[:], src[:Size])
	return v
}

// MaskLoad32 loads the eight dwords at logical offset off of src, reading dword
// i only when bit i of mask is set. Masked-off dwords are zero and never touch
// memory, so off may point before the start of src as long as every enabled
// dword is in range (VPMASKMOVD).
func MaskLoad32(src []byte, off int, mask uint8) Vec {
	var v Vec
	for i := 0; i < Size/4; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		p := off + 4*i
		copy(v[4*i:4*i+4], src[p:p+4])
	}
	return v
}

// Store writes the vector to dst, truncated to len(dst), and returns the
// number of bytes written.
func (v Vec) Store(dst []byte) int {
	return copy(dst, v[:])
}

// Broadcast8 sets every byte lane to b.
func Broadcast8(b byte) Vec {
	var v Vec
	for i := range v {
		v[i] = b
	}
	return v
}

// Broadcast32 sets every dword lane to u.
func Broadcast32(u uint32) Vec {
	var v Vec
	for i := 0; i < Size; i += 4 {
		binary.LittleEndian.PutUint32(v[i:], u)
	}
	return v
}

// Dup128 repeats a 16-byte pattern into both halves, the layout expected by
// ShuffleBytes lookup tables.
func Dup128(half [16]byte) Vec {
	var v Vec
	copy(v[:16], half[:])
	copy(v[16:], half[:])
	return v
}

// Dwords builds a vector from eight dword lanes.
func Dwords(d [8]uint32) Vec {
	var v Vec
	for i, u := range d {
		binary.LittleEndian.PutUint32(v[4*i:], u)
	}
	return v
}

// ShuffleBytes selects bytes of t within each 128-bit half using the low nibble
// of the matching index byte; an index with its high bit set yields zero (VPSHUFB).
func ShuffleBytes(t, idx Vec) Vec {
	var v Vec
	for i := range v {
		if idx[i]&0x80 != 0 {
			continue
		}
		v[i] = t[i&^15|int(idx[i]&15)]
	}
	return v
}

// Permute32 gathers dword lanes of a across the full register using the low
// three bits of each dword of idx (VPERMD).
func Permute32(a, idx Vec) Vec {
	var v Vec
	for i := 0; i < Size/4; i++ {
		j := int(binary.LittleEndian.Uint32(idx[4*i:]) & 7)
		copy(v[4*i:4*i+4], a[4*j:4*j+4])
	}
	return v
}

func And(a, b Vec) Vec {
	var v Vec
	for i := range v {
		v[i] = a[i] & b[i]
	}
	return v
}

func Or(a, b Vec) Vec {
	var v Vec
	for i := range v {
		v[i] = a[i] | b[i]
	}
	return v
}

// Add8 adds byte lanes with wraparound.
func Add8(a, b Vec) Vec {
	var v Vec
	for i := range v {
		v[i] = a[i] + b[i]
	}
	return v
}

// Sub8 subtracts byte lanes with wraparound.
func Sub8(a, b Vec) Vec {
	var v Vec
	for i := range v {
		v[i] = a[i] - b[i]
	}
	return v
}

// SubSatU8 subtracts unsigned byte lanes, clamping at zero (VPSUBUSB).
func SubSatU8(a, b Vec) Vec {
	var v Vec
	for i := range v {
		if a[i] > b[i] {
			v[i] = a[i] - b[i]
		}
	}
	return v
}

// CmpGtI8 sets a byte lane to 0xFF where int8(a) > int8(b), zero otherwise.
func CmpGtI8(a, b Vec) Vec {
	var v Vec
	for i := range v {
		if int8(a[i]) > int8(b[i]) {
			v[i] = 0xFF
		}
	}
	return v
}

// CmpEq8 sets a byte lane to 0xFF where a and b are equal, zero otherwise.
func CmpEq8(a, b Vec) Vec {
	var v Vec
	for i := range v {
		if a[i] == b[i] {
			v[i] = 0xFF
		}
	}
	return v
}

// Blend picks b where the high bit of the mask byte is set and a elsewhere (VPBLENDVB).
func Blend(a, b, mask Vec) Vec {
	var v Vec
	for i := range v {
		if mask[i]&0x80 != 0 {
			v[i] = b[i]
		} else {
			v[i] = a[i]
		}
	}
	return v
}

// ShiftRight32 shifts each dword lane right by n bits, filling with zeros.
func ShiftRight32(a Vec, n uint) Vec {
	var v Vec
	for i := 0; i < Size; i += 4 {
		binary.LittleEndian.PutUint32(v[i:], binary.LittleEndian.Uint32(a[i:])>>n)
	}
	return v
}

// MulHiU16 keeps the high half of the unsigned 16x16 bit products (VPMULHUW).
func MulHiU16(a, b Vec) Vec {
	var v Vec
	for i := 0; i < Size; i += 2 {
		p := uint32(binary.LittleEndian.Uint16(a[i:])) * uint32(binary.LittleEndian.Uint16(b[i:]))
		binary.LittleEndian.PutUint16(v[i:], uint16(p>>16))
	}
	return v
}

// MulLo16 keeps the low half of the 16x16 bit products (VPMULLW).
func MulLo16(a, b Vec) Vec {
	var v Vec
	for i := 0; i < Size; i += 2 {
		p := binary.LittleEndian.Uint16(a[i:]) * binary.LittleEndian.Uint16(b[i:])
		binary.LittleEndian.PutUint16(v[i:], p)
	}
	return v
}

// MulAddUbs multiplies unsigned bytes of a by signed bytes of b and adds
// adjacent products into saturated int16 lanes (VPMADDUBSW).
func MulAddUbs(a, b Vec) Vec {
	var v Vec
	for i := 0; i < Size; i += 2 {
		s := int32(a[i])*int32(int8(b[i])) + int32(a[i+1])*int32(int8(b[i+1]))
		switch {
		case s > 32767:
			s = 32767
		case s < -32768:
			s = -32768
		}
		binary.LittleEndian.PutUint16(v[i:], uint16(int16(s)))
	}
	return v
}

// MulAdd16 multiplies signed int16 lanes and adds adjacent products into int32
// lanes (VPMADDWD).
func MulAdd16(a, b Vec) Vec {
	var v Vec
	for i := 0; i < Size; i += 4 {
		a0 := int32(int16(binary.LittleEndian.Uint16(a[i:])))
		a1 := int32(int16(binary.LittleEndian.Uint16(a[i+2:])))
		b0 := int32(int16(binary.LittleEndian.Uint16(b[i:])))
		b1 := int32(int16(binary.LittleEndian.Uint16(b[i+2:])))
		binary.LittleEndian.PutUint32(v[i:], uint32(a0*b0+a1*b1))
	}
	return v
}

// MoveMask gathers the high bit of every byte lane into a 32-bit mask (VPMOVMSKB).
func (v Vec) MoveMask() uint32 {
	var m uint32
	for i := range v {
		m |= uint32(v[i]>>7) << i
	}
	return m
}
