package rapidbase64

import "github.com/mnightingale/rapidbase64/internal/vec256"

const (
	// encodeMinLen is the shortest input the vector encoder accepts: the first
	// load covers 28 bytes because its leading dword is masked off.
	encodeMinLen = vec256.Size - 4
	// encodeBlock is the number of raw bytes consumed per iteration.
	encodeBlock = 24
)

// firstLoadMask enables dwords 1..7 for the first load, which starts 4 bytes
// before src.
const firstLoadMask = 0xFE

var (
	// encShuffle gathers bytes b,a,c,b of each source triplet into every dword.
	// The low half reads src[0:12] (shifted by 4), the high half src[12:24].
	encShuffle = vec256.Vec{
		5, 4, 6, 5, 8, 7, 9, 8, 11, 10, 12, 11, 14, 13, 15, 14,
		1, 0, 2, 1, 4, 3, 5, 4, 7, 6, 8, 7, 10, 9, 11, 10,
	}
	encMaskHi = vec256.Broadcast32(0x0fc0fc00)
	encMulHi  = vec256.Broadcast32(0x04000040)
	encMaskLo = vec256.Broadcast32(0x003f03f0)
	encMulLo  = vec256.Broadcast32(0x01000010)

	encRange   = vec256.Broadcast8(51)
	encLetters = vec256.Broadcast8(25)
	// encOffsets holds the value to add per range:
	// 'A'-0, 'a'-26, '0'-52 (x10), '+'-62, '/'-63.
	encOffsets = vec256.Dup128([16]byte{
		65, 71, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xed, 0xf0, 0, 0,
	})
)

// encodeReshuffle spreads 24 raw bytes into 32 lanes, each holding one 6-bit index.
func encodeReshuffle(in vec256.Vec) vec256.Vec {
	in = vec256.ShuffleBytes(in, encShuffle)

	// a>>2 into byte 0 and (b<<2|c>>6)&0x3f into byte 2.
	hi := vec256.MulHiU16(vec256.And(in, encMaskHi), encMulHi)
	// (a<<4|b>>4)&0x3f into byte 1 and c&0x3f into byte 3.
	lo := vec256.MulLo16(vec256.And(in, encMaskLo), encMulLo)

	return vec256.Or(hi, lo)
}

// encodeTranslate maps 6-bit indices to alphabet characters without branching.
func encodeTranslate(in vec256.Vec) vec256.Vec {
	// 0 for A-Z, 1 for a-z, 2..11 for digits, 12 for '+', 13 for '/'.
	idx := vec256.SubSatU8(in, encRange)
	idx = vec256.Sub8(idx, vec256.CmpGtI8(in, encLetters))

	return vec256.Add8(in, vec256.ShuffleBytes(encOffsets, idx))
}

// encodeGeneric is the vector encoder written against the portable vec256 model.
// It consumes whole 24 byte blocks from src while a full load stays in bounds and
// returns how much of dst and src it used; the caller encodes the rest.
func encodeGeneric(dst, src []byte) (nDst, nSrc int) {
	if len(src) < encodeMinLen {
		return 0, 0
	}

	in := vec256.MaskLoad32(src, -4, firstLoadMask)
	for {
		out := encodeTranslate(encodeReshuffle(in))
		out.Store(dst[nDst : nDst+vec256.Size])

		nSrc += encodeBlock
		nDst += vec256.Size

		if len(src)-nSrc < vec256.Size {
			return nDst, nSrc
		}
		in = vec256.Load(src[nSrc-4:])
	}
}
