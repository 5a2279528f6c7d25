//go:build amd64 && !purego

package rapidbase64

import (
	"golang.org/x/sys/cpu"
)

var hasAVX2 = cpu.X86.HasAVX && cpu.X86.HasAVX2

// encodeAVX2 is encodeGeneric in AVX2 assembly. Its first load is a VPMASKMOVD
// starting 4 bytes before src with that dword masked off, which never faults.
//
//go:noescape
func encodeAVX2(dst, src []byte) (nDst, nSrc int)

// decodeAVX2 is decodeGeneric in AVX2 assembly.
//
//go:noescape
func decodeAVX2(dst, src []byte) (nDst, nSrc int)
