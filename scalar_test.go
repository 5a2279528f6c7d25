package rapidbase64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeScalar(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		final    bool
		expected string
		err      error
	}{
		{"empty", "", true, "", nil},
		{"padded one", "TQ==", true, "M", nil},
		{"padded two", "TWE=", true, "Ma", nil},
		{"unpadded one", "TQ", true, "M", nil},
		{"unpadded two", "TWE", true, "Ma", nil},
		{"slash and plus", "+/+/", true, "\xfb\xff\xbf", nil},
		{"dangling", "TWFuT", true, "Man", CorruptInputError(4)},
		{"pad on inner chunk", "TWE=", false, "", CorruptInputError(3)},
		{"lone pad", "=", true, "", CorruptInputError(0)},
		{"four pads", "TWFu====", true, "Man", CorruptInputError(4)},
		{"bad before bad pad", "T!Fu=", true, "", CorruptInputError(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dst := make([]byte, DecodedLen(len(tc.src)))
			n, err := decodeScalar(dst, []byte(tc.src), tc.final)
			require.Equal(t, tc.err, err)
			if tc.err == nil {
				require.Equal(t, tc.expected, string(dst[:n]))
			}
		})
	}
}

func TestEncodeScalarWritesEncodedLen(t *testing.T) {
	for n := 0; n < 10; n++ {
		dst := make([]byte, EncodedLen(n))
		require.Equal(t, EncodedLen(n), encodeScalar(dst, make([]byte, n)))
	}
}
