package rapidbase64

import (
	"errors"

	"golang.org/x/sync/errgroup"
)

// minConcurrentLen is the input size below which splitting the work across
// goroutines costs more than it saves.
const minConcurrentLen = 64 * 1024

// Chunks are cut on vector block boundaries so every worker except the last
// runs only whole vector iterations and the results tile dst exactly.
const (
	encodeChunkAlign = encodeBlock
	decodeChunkAlign = decodeBlock * 4 / 3
)

// EncodeConcurrent is Encode split across up to workers goroutines.
// The output is identical to Encode.
func (c *Codec) EncodeConcurrent(dst, src []byte, workers int) (int, error) {
	if workers <= 1 || len(src) < minConcurrentLen {
		return c.Encode(dst, src)
	}
	if len(dst) < EncodedLen(len(src)) {
		return 0, errDestinationTooSmall
	}

	chunk := chunkSize(len(src), workers, encodeChunkAlign)

	var g errgroup.Group
	g.SetLimit(workers)
	for off := 0; off < len(src); off += chunk {
		in := src[off:min(off+chunk, len(src))]
		out := dst[off/3*4 : off/3*4+EncodedLen(len(in))]
		g.Go(func() error {
			_, err := c.Encode(out, in)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return EncodedLen(len(src)), nil
}

// DecodeConcurrent is Decode split across up to workers goroutines.
// On corrupt input the reported offset is the lowest one in src, the same as
// Decode would report.
func (c *Codec) DecodeConcurrent(dst, src []byte, workers int) (int, error) {
	if workers <= 1 || len(src) < minConcurrentLen {
		return c.Decode(dst, src)
	}
	if len(dst) < DecodedLen(len(src)) {
		return 0, errDestinationTooSmall
	}

	chunk := chunkSize(len(src), workers, decodeChunkAlign)
	chunks := (len(src) + chunk - 1) / chunk
	written := make([]int, chunks)
	errs := make([]error, chunks)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range chunks {
		off := i * chunk
		in := src[off:min(off+chunk, len(src))]
		out := dst[off/4*3 : off/4*3+DecodedLen(len(in))]
		final := i == chunks-1
		g.Go(func() error {
			written[i], errs[i] = c.decode(out, in, final)
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for i, err := range errs {
		n += written[i]
		if err == nil {
			continue
		}
		var corrupt CorruptInputError
		if errors.As(err, &corrupt) {
			err = corrupt + CorruptInputError(i*chunk)
		}
		return n, err
	}
	return n, nil
}

// chunkSize divides n into at most workers parts rounded up to align.
func chunkSize(n, workers, align int) int {
	chunk := (n + workers - 1) / workers
	return (chunk + align - 1) / align * align
}

// EncodeConcurrent encodes src into dst on up to workers goroutines using the
// fastest available kernel.
func EncodeConcurrent(dst, src []byte, workers int) (int, error) {
	return std.EncodeConcurrent(dst, src, workers)
}

// DecodeConcurrent decodes src into dst on up to workers goroutines using the
// fastest available kernel.
func DecodeConcurrent(dst, src []byte, workers int) (int, error) {
	return std.DecodeConcurrent(dst, src, workers)
}
