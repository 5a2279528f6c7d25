//go:build !amd64 || purego

package rapidbase64

// No AVX2 assembly on this platform.
var hasAVX2 = false

// encodeAVX2 is never selected without AVX2 and processes nothing.
func encodeAVX2(dst, src []byte) (nDst, nSrc int) { return 0, 0 }

// decodeAVX2 is never selected without AVX2 and processes nothing.
func decodeAVX2(dst, src []byte) (nDst, nSrc int) { return 0, 0 }
