package main

import (
	. "github.com/mmcloughlin/avo/build"
	. "github.com/mmcloughlin/avo/operand"
	. "github.com/mmcloughlin/avo/reg"
)

//go:generate go run main.go -out ../../base64_amd64.s

func main() {
	Package("github.com/mnightingale/rapidbase64")
	ConstraintExpr("amd64,!purego")

	encodeAVX2()
	decodeAVX2()

	Generate()
}

// table declares a 32 byte read-only constant from four little-endian qwords.
func table(name string, q0, q1, q2, q3 uint64) Mem {
	m := GLOBL(name, RODATA|NOPTR)
	for i, q := range []uint64{q0, q1, q2, q3} {
		DATA(8*i, U64(q))
	}
	return m
}

// broadcast declares a 32 byte constant repeating q.
func broadcast(name string, q uint64) Mem {
	return table(name, q, q, q, q)
}

// dup128 declares a 32 byte constant repeating a 16 byte lookup table in both lanes.
func dup128(name string, lo, hi uint64) Mem {
	return table(name, lo, hi, lo, hi)
}

func encodeAVX2() {
	loadMask := table("encLoadMask", 0x8000000000000000, 0x8000000080000000, 0x8000000080000000, 0x8000000080000000)
	shuffle := table("encShuffle", 0x0809070805060405, 0x0e0f0d0e0b0c0a0b, 0x0405030401020001, 0x0a0b090a07080607)
	maskHi := broadcast("encMaskHi", 0x0fc0fc000fc0fc00)
	mulHi := broadcast("encMulHi", 0x0400004004000040)
	maskLo := broadcast("encMaskLo", 0x003f03f0003f03f0)
	mulLo := broadcast("encMulLo", 0x0100001001000010)
	rng := broadcast("encRange", 0x3333333333333333)
	letters := broadcast("encLetters", 0x1919191919191919)
	offsets := dup128("encOffsets", 0xfcfcfcfcfcfc4741, 0x0000f0edfcfcfcfc)

	TEXT("encodeAVX2", NOSPLIT, "func(dst, src []byte) (nDst, nSrc int)")
	Pragma("noescape")
	Doc("encodeAVX2 encodes whole 24 byte blocks while a 32 byte load stays in bounds.")

	Load(Param("dst").Base(), RDI)
	Load(Param("src").Base(), RSI)
	Load(Param("src").Len(), RCX)
	MOVQ(RDI, R8)
	MOVQ(RSI, R9)

	CMPQ(RCX, Imm(0x1c))
	JB(LabelRef("encodeDone"))

	VMOVDQU(shuffle, Y10)
	VMOVDQU(maskHi, Y11)
	VMOVDQU(mulHi, Y12)
	VMOVDQU(maskLo, Y13)
	VMOVDQU(mulLo, Y14)
	VMOVDQU(rng, Y15)
	VMOVDQU(letters, Y9)
	VMOVDQU(offsets, Y8)

	Comment("First load starts 4 bytes early with that dword masked off")
	VMOVDQU(loadMask, Y0)
	VPMASKMOVD(Mem{Base: RSI, Disp: -4}, Y0, Y1)

	Label("encodeLoop")
	Comment("Reshuffle")
	VPSHUFB(Y10, Y1, Y1)
	VPAND(Y11, Y1, Y2)
	VPMULHUW(Y12, Y2, Y2)
	VPAND(Y13, Y1, Y3)
	VPMULLW(Y14, Y3, Y3)
	VPOR(Y3, Y2, Y1)

	Comment("Translate")
	VPSUBUSB(Y15, Y1, Y2)
	VPCMPGTB(Y9, Y1, Y3)
	VPSUBB(Y3, Y2, Y2)
	VPSHUFB(Y2, Y8, Y3)
	VPADDB(Y3, Y1, Y1)
	VMOVDQU(Y1, Mem{Base: RDI})

	ADDQ(Imm(0x18), RSI)
	ADDQ(Imm(0x20), RDI)
	SUBQ(Imm(0x18), RCX)
	CMPQ(RCX, Imm(0x20))
	JB(LabelRef("encodeVZeroUpper"))
	VMOVDQU(Mem{Base: RSI, Disp: -4}, Y1)
	JMP(LabelRef("encodeLoop"))

	Label("encodeVZeroUpper")
	VZEROUPPER()

	Label("encodeDone")
	SUBQ(R8, RDI)
	SUBQ(R9, RSI)
	Store(RDI, ReturnIndex(0))
	Store(RSI, ReturnIndex(1))
	RET()
}

func decodeAVX2() {
	nibble := broadcast("decNibble", 0x0f0f0f0f0f0f0f0f)
	shiftLUT := dup128("decShiftLUT", 0xb9b9bfbf04130000, 0)
	maskLUT := dup128("decMaskLUT", 0xf8f8f8f8f8f8f8a8, 0x5450505054f0f8f8)
	bitposLUT := dup128("decBitposLUT", 0x8040201008040201, 0)
	slash := broadcast("decSlash", 0x2f2f2f2f2f2f2f2f)
	slashShift := broadcast("decSlashShift", 0x1010101010101010)
	mergePairs := broadcast("decMergePairs", 0x0140014001400140)
	mergeQuads := broadcast("decMergeQuads", 0x0001100000011000)
	pack := dup128("decPack", 0x090a040506000102, 0x808080800c0d0e08)
	compact := table("decCompact", 0x0000000100000000, 0x0000000400000002, 0x0000000600000005, 0xffffffffffffffff)

	TEXT("decodeAVX2", NOSPLIT, "func(dst, src []byte) (nDst, nSrc int)")
	Pragma("noescape")
	Doc("decodeAVX2 decodes 32 character blocks until fewer than 45 remain or a block fails validation.")

	Load(Param("dst").Base(), RDI)
	Load(Param("src").Base(), RSI)
	Load(Param("src").Len(), RCX)
	MOVQ(RDI, R8)
	MOVQ(RSI, R9)

	CMPQ(RCX, Imm(0x2d))
	JB(LabelRef("decodeDone"))

	VMOVDQU(nibble, Y15)
	VMOVDQU(shiftLUT, Y14)
	VMOVDQU(maskLUT, Y13)
	VMOVDQU(bitposLUT, Y12)
	VMOVDQU(slash, Y11)
	VMOVDQU(slashShift, Y10)
	VMOVDQU(mergePairs, Y9)
	VMOVDQU(mergeQuads, Y8)
	VMOVDQU(pack, Y7)
	VMOVDQU(compact, Y6)

	Label("decodeLoop")
	VMOVDQU(Mem{Base: RSI}, Y0)

	Comment("Lookup")
	VPSRLD(Imm(4), Y0, Y1)
	VPAND(Y15, Y1, Y1)
	VPAND(Y15, Y0, Y2)
	VPSHUFB(Y1, Y14, Y3)
	VPCMPEQB(Y11, Y0, Y4)
	VPBLENDVB(Y4, Y10, Y3, Y3)
	VPSHUFB(Y2, Y13, Y4)
	VPSHUFB(Y1, Y12, Y5)
	VPAND(Y5, Y4, Y4)
	VPXOR(Y5, Y5, Y5)
	VPCMPEQB(Y5, Y4, Y4)
	VPMOVMSKB(Y4, EAX)
	TESTL(EAX, EAX)
	JNZ(LabelRef("decodeVZeroUpper"))

	Comment("Reshuffle")
	VPADDB(Y3, Y0, Y0)
	VPMADDUBSW(Y9, Y0, Y0)
	VPMADDWD(Y8, Y0, Y0)
	VPSHUFB(Y7, Y0, Y0)
	VPERMD(Y0, Y6, Y0)

	Comment("Store exactly 24 bytes")
	VMOVDQU(X0, Mem{Base: RDI})
	VEXTRACTI128(Imm(1), Y0, X1)
	MOVQ(X1, Mem{Base: RDI, Disp: 16})

	ADDQ(Imm(0x20), RSI)
	ADDQ(Imm(0x18), RDI)
	SUBQ(Imm(0x20), RCX)
	CMPQ(RCX, Imm(0x2d))
	JAE(LabelRef("decodeLoop"))

	Label("decodeVZeroUpper")
	VZEROUPPER()

	Label("decodeDone")
	SUBQ(R8, RDI)
	SUBQ(R9, RSI)
	Store(RDI, ReturnIndex(0))
	Store(RSI, ReturnIndex(1))
	RET()
}
