package rapidbase64

import (
	"errors"
	"fmt"
	"strings"
)

var version = 0x010000

// Version returns the version of the rapidbase64 library.
func Version() string {
	return fmt.Sprintf("%d.%d.%d", version>>16&0xff, version>>8&0xff, version&0xff)
}

// Kernel selects the implementation behind a Codec.
type Kernel int

const (
	KernelAuto    Kernel = iota // best kernel the CPU supports
	KernelScalar                // table driven scalar code only
	KernelGeneric               // vector algorithm on the portable vec256 model
	KernelAVX2                  // vector algorithm in AVX2 assembly
)

var kernelNames = map[Kernel]string{
	KernelAuto:    "auto",
	KernelScalar:  "scalar",
	KernelGeneric: "generic",
	KernelAVX2:    "avx2",
}

func (k Kernel) String() string {
	if name, ok := kernelNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kernel(%d)", int(k))
}

var ErrKernelUnavailable = errors.New("kernel not supported on this CPU")

// ParseKernel returns the Kernel with the given name, case-insensitively.
func ParseKernel(s string) (Kernel, error) {
	for k, name := range kernelNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("[rapidbase64] unknown kernel %q", s)
}

// AvailableKernels lists the concrete kernels usable on this machine, fastest last.
func AvailableKernels() []Kernel {
	kernels := []Kernel{KernelScalar, KernelGeneric}
	if hasAVX2 {
		kernels = append(kernels, KernelAVX2)
	}
	return kernels
}

// resolveKernel turns KernelAuto into a concrete kernel and checks availability.
func resolveKernel(k Kernel) (Kernel, error) {
	switch k {
	case KernelAuto:
		if hasAVX2 {
			return KernelAVX2, nil
		}
		return KernelScalar, nil
	case KernelScalar, KernelGeneric:
		return k, nil
	case KernelAVX2:
		if !hasAVX2 {
			return 0, fmt.Errorf("[rapidbase64] %s: %w", k, ErrKernelUnavailable)
		}
		return k, nil
	}
	return 0, fmt.Errorf("[rapidbase64] unknown kernel %d", int(k))
}

// DecodeKernel returns the name of the implementation used by the package level decode functions
func DecodeKernel() string {
	return std.kernel.String()
}

// EncodeKernel returns the name of the implementation used by the package level encode functions
func EncodeKernel() string {
	return std.kernel.String()
}
