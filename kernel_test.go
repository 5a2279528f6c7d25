package rapidbase64

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

type kernelFunc func(dst, src []byte) (nDst, nSrc int)

func vectorKernels() map[string][2]kernelFunc {
	ks := map[string][2]kernelFunc{
		"generic": {encodeGeneric, decodeGeneric},
	}
	if hasAVX2 {
		ks["avx2"] = [2]kernelFunc{encodeAVX2, decodeAVX2}
	}
	return ks
}

func TestVectorEncodeConsumption(t *testing.T) {
	cases := []struct {
		n          int
		nDst, nSrc int
	}{
		{0, 0, 0},
		{27, 0, 0},
		{28, 32, 24},
		{55, 32, 24},
		{56, 64, 48},
		{79, 64, 48},
		{80, 96, 72},
	}

	for name, k := range vectorKernels() {
		for _, tc := range cases {
			raw := randomBytes(7, tc.n)
			dst, check := guarded(t, EncodedLen(tc.n))
			nDst, nSrc := k[0](dst, raw)
			check()
			require.Equal(t, tc.nDst, nDst, "%s length %d", name, tc.n)
			require.Equal(t, tc.nSrc, nSrc, "%s length %d", name, tc.n)
			require.Equal(t, base64.StdEncoding.EncodeToString(raw[:nSrc]), string(dst[:nDst]))
		}
	}
}

func TestVectorDecodeConsumption(t *testing.T) {
	cases := []struct {
		n          int
		nDst, nSrc int
	}{
		{0, 0, 0},
		{44, 0, 0},
		{45, 24, 32},
		{76, 24, 32},
		{77, 48, 64},
		{108, 48, 64},
		{109, 72, 96},
	}

	text := []byte(base64.StdEncoding.EncodeToString(randomBytes(8, 120)))
	for name, k := range vectorKernels() {
		for _, tc := range cases {
			dst, check := guarded(t, DecodedLen(tc.n))
			nDst, nSrc := k[1](dst, text[:tc.n])
			check()
			require.Equal(t, tc.nDst, nDst, "%s length %d", name, tc.n)
			require.Equal(t, tc.nSrc, nSrc, "%s length %d", name, tc.n)

			want, err := base64.StdEncoding.DecodeString(string(text[:nSrc]))
			require.NoError(t, err)
			require.Equal(t, want, dst[:nDst])
		}
	}
}

// Padding never reaches the vector decoder: 45 characters are required to run
// an iteration, so the last 13 always go through the scalar path.
func TestVectorDecodeLeavesPadding(t *testing.T) {
	for n := 30; n < 40; n++ {
		text := []byte(base64.StdEncoding.EncodeToString(randomBytes(9, n)))
		for name, k := range vectorKernels() {
			_, nSrc := k[1](make([]byte, DecodedLen(len(text))), text)
			require.LessOrEqual(t, nSrc, len(text)-13, "%s length %d", name, n)
		}
	}
}

func TestVectorDecodeStopsAtInvalidBlock(t *testing.T) {
	text := []byte(base64.StdEncoding.EncodeToString(randomBytes(10, 96)))
	text[70] = '-'

	for name, k := range vectorKernels() {
		dst := make([]byte, DecodedLen(len(text)))
		nDst, nSrc := k[1](dst, text)
		require.Equal(t, 64, nSrc, name)
		require.Equal(t, 48, nDst, name)
	}
}

func TestAVX2MatchesGeneric(t *testing.T) {
	if !hasAVX2 {
		t.Skip("AVX2 not available")
	}

	for n := 0; n < 400; n += 13 {
		raw := randomBytes(byte(n), n)

		a := make([]byte, EncodedLen(n))
		g := make([]byte, EncodedLen(n))
		aDst, aSrc := encodeAVX2(a, raw)
		gDst, gSrc := encodeGeneric(g, raw)
		require.Equal(t, gDst, aDst)
		require.Equal(t, gSrc, aSrc)
		require.Equal(t, g, a)

		text := []byte(base64.StdEncoding.EncodeToString(raw))
		a = make([]byte, DecodedLen(len(text)))
		g = make([]byte, DecodedLen(len(text)))
		aDst, aSrc = decodeAVX2(a, text)
		gDst, gSrc = decodeGeneric(g, text)
		require.Equal(t, gDst, aDst)
		require.Equal(t, gSrc, aSrc)
		require.Equal(t, g, a)
	}
}
