package rapidbase64

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	padChar  = '='
)

// encodeScalar is the pure Go Base64 encoder used for anything that does not fill
// a whole vector iteration. It writes exactly EncodedLen(len(src)) bytes to dst,
// padding a final group of 1 or 2 bytes with '='.
func encodeScalar(dst, src []byte) int {
	n := len(src) / 3 * 3
	p := 0

	for i := 0; i < n; i += 3 {
		w := uint32(src[i])<<16 | uint32(src[i+1])<<8 | uint32(src[i+2])
		_ = dst[p+3] // BCE hint.
		dst[p] = alphabet[w>>18&0x3F]
		dst[p+1] = alphabet[w>>12&0x3F]
		dst[p+2] = alphabet[w>>6&0x3F]
		dst[p+3] = alphabet[w&0x3F]
		p += 4
	}

	switch len(src) - n {
	case 1:
		w := uint32(src[n]) << 16
		_ = dst[p+3]
		dst[p] = alphabet[w>>18&0x3F]
		dst[p+1] = alphabet[w>>12&0x3F]
		dst[p+2] = padChar
		dst[p+3] = padChar
		p += 4
	case 2:
		w := uint32(src[n])<<16 | uint32(src[n+1])<<8
		_ = dst[p+3]
		dst[p] = alphabet[w>>18&0x3F]
		dst[p+1] = alphabet[w>>12&0x3F]
		dst[p+2] = alphabet[w>>6&0x3F]
		dst[p+3] = padChar
		p += 4
	}

	return p
}
