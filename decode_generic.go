package rapidbase64

import "github.com/mnightingale/rapidbase64/internal/vec256"

const (
	// decodeMinLen is the remaining input required to run another iteration.
	// It keeps the final partial group and any padding on the scalar path.
	decodeMinLen = 45
	// decodeBlock is the number of bytes produced per iteration.
	decodeBlock = 24
)

// The five valid ranges, keyed by high nibble:
//
//	'+'       43       -> 62       +19
//	'/'       47       -> 63       +16 (overridden, shares a nibble with '+')
//	'0'..'9'  48..57   -> 52..61   +4
//	'A'..'Z'  65..90   -> 0..25    -65
//	'a'..'z'  97..122  -> 26..51   -71
var (
	decShiftLUT = vec256.Dup128([16]byte{0, 0, 19, 4, 0xbf, 0xbf, 0xb9, 0xb9})

	// decMaskLUT holds, per low nibble, the set of high nibbles forming a valid
	// character, as a bitmap over decBitposLUT.
	decMaskLUT = vec256.Dup128([16]byte{
		0xa8,
		0xf8, 0xf8, 0xf8, 0xf8, 0xf8, 0xf8, 0xf8, 0xf8, 0xf8,
		0xf0,
		0x54,
		0x50, 0x50, 0x50,
		0x54,
	})
	decBitposLUT = vec256.Dup128([16]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80})

	nibbleMask = vec256.Broadcast8(0x0f)
	slash      = vec256.Broadcast8('/')
	slashShift = vec256.Broadcast8(16)

	decMergePairs = vec256.Broadcast32(0x01400140)
	decMergeQuads = vec256.Broadcast32(0x00011000)
	// decPack keeps the three payload bytes of every dword in stream order.
	decPack = vec256.Dup128([16]byte{2, 1, 0, 6, 5, 4, 10, 9, 8, 14, 13, 12, 0x80, 0x80, 0x80, 0x80})
	// decCompact moves the 12 byte results of the high half next to the low half.
	decCompact = vec256.Dwords([8]uint32{0, 1, 2, 4, 5, 6, 0xFFFFFFFF, 0xFFFFFFFF})
)

// decodeLookup returns the per-lane offsets that turn characters into 6-bit
// values, and false if any lane holds a byte outside the alphabet.
func decodeLookup(in vec256.Vec) (vec256.Vec, bool) {
	hi := vec256.And(vec256.ShiftRight32(in, 4), nibbleMask)
	lo := vec256.And(in, nibbleMask)

	shift := vec256.ShuffleBytes(decShiftLUT, hi)
	shift = vec256.Blend(shift, slashShift, vec256.CmpEq8(in, slash))

	rows := vec256.ShuffleBytes(decMaskLUT, lo)
	bits := vec256.ShuffleBytes(decBitposLUT, hi)
	nonMatch := vec256.CmpEq8(vec256.And(rows, bits), vec256.Vec{})

	return shift, nonMatch.MoveMask() == 0
}

// decodeReshuffle packs 32 6-bit values into 24 contiguous bytes.
func decodeReshuffle(in vec256.Vec) vec256.Vec {
	merged := vec256.MulAddUbs(in, decMergePairs)   // c0<<6|c1, c2<<6|c3
	merged = vec256.MulAdd16(merged, decMergeQuads) // 24 bit group per dword

	return vec256.Permute32(vec256.ShuffleBytes(merged, decPack), decCompact)
}

// decodeGeneric is the vector decoder written against the portable vec256 model.
// It stops before the first 32 byte block holding an illegal byte, leaving that
// block and everything after it to the scalar decoder, so no output is written
// for a rejected block.
func decodeGeneric(dst, src []byte) (nDst, nSrc int) {
	for len(src)-nSrc >= decodeMinLen {
		in := vec256.Load(src[nSrc:])

		shift, ok := decodeLookup(in)
		if !ok {
			break
		}

		out := decodeReshuffle(vec256.Add8(in, shift))
		out.Store(dst[nDst : nDst+decodeBlock])

		nSrc += vec256.Size
		nDst += decodeBlock
	}
	return nDst, nSrc
}
