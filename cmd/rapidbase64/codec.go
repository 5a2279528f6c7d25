package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mnightingale/rapidbase64"
)

// newCodec builds the codec named by cfg.
func newCodec(cfg Configuration) (*rapidbase64.Codec, error) {
	k, err := rapidbase64.ParseKernel(cfg.Kernel)
	if err != nil {
		return nil, err
	}
	c, err := rapidbase64.NewCodec(k)
	if err != nil {
		return nil, errors.Wrap(err, "unable to select kernel")
	}
	return c, nil
}

// encode writes the Base64 form of everything read from r to w, followed by a
// newline.
func encode(logger *zap.Logger, cfg Configuration, r io.Reader, w io.Writer) error {
	c, err := newCodec(cfg)
	if err != nil {
		return err
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "unable to read input")
	}

	dst := make([]byte, rapidbase64.EncodedLen(len(src)), rapidbase64.EncodedLen(len(src))+1)
	var n int
	if cfg.Workers > 1 && len(src) >= cfg.ConcurrentThreshold {
		n, err = c.EncodeConcurrent(dst, src, cfg.Workers)
	} else {
		n, err = c.Encode(dst, src)
	}
	if err != nil {
		return errors.Wrap(err, "encode failed")
	}

	logger.Debug("encoded",
		zap.Stringer("kernel", c.Kernel()),
		zap.Int("input_bytes", len(src)),
		zap.Int("output_bytes", n),
	)

	if _, err := w.Write(append(dst[:n], '\n')); err != nil {
		return errors.Wrap(err, "unable to write output")
	}
	return nil
}

// decode writes the bytes represented by the Base64 text read from r to w.
// Trailing line breaks are dropped; any other whitespace is corrupt input.
func decode(logger *zap.Logger, cfg Configuration, r io.Reader, w io.Writer) error {
	c, err := newCodec(cfg)
	if err != nil {
		return err
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "unable to read input")
	}
	src = bytes.TrimRight(src, "\r\n")

	dst := make([]byte, rapidbase64.DecodedLen(len(src)))
	var n int
	if cfg.Workers > 1 && len(src) >= cfg.ConcurrentThreshold {
		n, err = c.DecodeConcurrent(dst, src, cfg.Workers)
	} else {
		n, err = c.Decode(dst, src)
	}
	if err != nil {
		return errors.Wrap(err, "decode failed")
	}

	logger.Debug("decoded",
		zap.Stringer("kernel", c.Kernel()),
		zap.Int("input_bytes", len(src)),
		zap.Int("output_bytes", n),
	)

	if _, err := w.Write(dst[:n]); err != nil {
		return errors.Wrap(err, "unable to write output")
	}
	return nil
}

// kernels prints one line per usable kernel, marking the one picked by auto.
func kernels(w io.Writer) error {
	auto, err := rapidbase64.NewCodec(rapidbase64.KernelAuto)
	if err != nil {
		return err
	}
	for _, k := range rapidbase64.AvailableKernels() {
		mark := ""
		if k == auto.Kernel() {
			mark = " (default)"
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", k, mark); err != nil {
			return errors.Wrap(err, "unable to write output")
		}
	}
	return nil
}

// version prints the library version, the kernel cfg selects and the package
// default.
func version(w io.Writer, cfg Configuration) error {
	c, err := newCodec(cfg)
	if err != nil {
		return err
	}

	names := make([]string, 0, 4)
	for _, k := range rapidbase64.AvailableKernels() {
		names = append(names, k.String())
	}
	_, err = fmt.Fprintf(w, "rapidbase64 %s\n  kernel: %s\n  default: %s\n  available: %s\n",
		rapidbase64.Version(),
		c.Kernel(),
		rapidbase64.EncodeKernel(),
		strings.Join(names, ", "),
	)
	return err
}
