package rapidbase64

// invalid marks bytes outside the alphabet in decodeLUT.
const invalid = 0xFF

// decodeLUT maps each byte to its 6-bit value, or invalid.
var decodeLUT [256]byte

func init() {
	for i := range decodeLUT {
		decodeLUT[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		decodeLUT[alphabet[i]] = byte(i)
	}
}

// decodeScalar is the pure Go Base64 decoder. It decodes src into dst and returns
// the number of bytes written.
//
// When final is set, one or two trailing '=' are accepted as padding, in which
// case len(src) must be a multiple of 4. Without padding a last group of 2 or 3
// characters is accepted. Every other byte outside the alphabet, a dangling
// single character, or padding on a non-final chunk yields a CorruptInputError
// holding the offset of the first offending byte relative to src.
func decodeScalar(dst, src []byte, final bool) (int, error) {
	length := len(src)
	if length == 0 {
		return 0, nil
	}

	// Misplaced padding is reported only after the data before it checked out,
	// keeping the reported offset the lowest one.
	badPad := -1
	if final && src[length-1] == padChar {
		pad := 1
		if length > 1 && src[length-2] == padChar {
			pad = 2
		}
		if length%4 != 0 {
			badPad = length - pad
		}
		length -= pad
	}

	full := length / 4 * 4
	p := 0

	for i := 0; i < full; i += 4 {
		a, b, c, d := decodeLUT[src[i]], decodeLUT[src[i+1]], decodeLUT[src[i+2]], decodeLUT[src[i+3]]
		// Valid values never set the top two bits.
		if (a|b|c|d)&0xC0 != 0 {
			return p, firstInvalid(src, i)
		}
		w := uint32(a)<<18 | uint32(b)<<12 | uint32(c)<<6 | uint32(d)
		_ = dst[p+2] // BCE hint.
		dst[p] = byte(w >> 16)
		dst[p+1] = byte(w >> 8)
		dst[p+2] = byte(w)
		p += 3
	}

	switch length - full {
	case 1:
		return p, CorruptInputError(full)
	case 2:
		a, b := decodeLUT[src[full]], decodeLUT[src[full+1]]
		if (a|b)&0xC0 != 0 {
			return p, firstInvalid(src, full)
		}
		dst[p] = a<<2 | b>>4
		p++
	case 3:
		a, b, c := decodeLUT[src[full]], decodeLUT[src[full+1]], decodeLUT[src[full+2]]
		if (a|b|c)&0xC0 != 0 {
			return p, firstInvalid(src, full)
		}
		_ = dst[p+1]
		dst[p] = a<<2 | b>>4
		dst[p+1] = b<<4 | c>>2
		p += 2
	}

	if badPad >= 0 {
		return p, CorruptInputError(badPad)
	}
	return p, nil
}

// firstInvalid returns the position of the first byte at or after from that is
// not part of the alphabet.
func firstInvalid(src []byte, from int) CorruptInputError {
	for i := from; i < len(src); i++ {
		if decodeLUT[src[i]] == invalid {
			return CorruptInputError(i)
		}
	}
	return CorruptInputError(len(src))
}
