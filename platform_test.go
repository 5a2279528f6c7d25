package rapidbase64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKernel(t *testing.T) {
	cases := []struct {
		name string
		want Kernel
	}{
		{"auto", KernelAuto},
		{"scalar", KernelScalar},
		{"Generic", KernelGeneric},
		{"AVX2", KernelAVX2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := ParseKernel(tc.name)
			require.NoError(t, err)
			require.Equal(t, tc.want, k)
		})
	}

	_, err := ParseKernel("neon")
	require.Error(t, err)
}

func TestKernelString(t *testing.T) {
	require.Equal(t, "avx2", KernelAVX2.String())
	require.Equal(t, "Kernel(42)", Kernel(42).String())
}

func TestNewCodec(t *testing.T) {
	c, err := NewCodec(KernelAuto)
	require.NoError(t, err)
	if hasAVX2 {
		require.Equal(t, KernelAVX2, c.Kernel())
	} else {
		require.Equal(t, KernelScalar, c.Kernel())
	}
	require.Equal(t, c.Kernel().String(), EncodeKernel())
	require.Equal(t, c.Kernel().String(), DecodeKernel())

	c, err = NewCodec(KernelAVX2)
	if hasAVX2 {
		require.NoError(t, err)
		require.Equal(t, KernelAVX2, c.Kernel())
	} else {
		require.ErrorIs(t, err, ErrKernelUnavailable)
	}

	_, err = NewCodec(Kernel(-1))
	require.Error(t, err)
}

func TestAvailableKernels(t *testing.T) {
	ks := AvailableKernels()
	require.Equal(t, []Kernel{KernelScalar, KernelGeneric}, ks[:2])
	require.Equal(t, hasAVX2, len(ks) == 3)
	require.NotContains(t, ks, KernelAuto)
}

func TestVersion(t *testing.T) {
	require.Equal(t, "1.0.0", Version())
}
