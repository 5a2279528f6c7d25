package main

import (
	"io"
)

const usageFmt = `
rapidbase64 encodes and decodes standard Base64 with vectorized kernels.

Usage:

    rapidbase64 [options...] <command> [file]

Commands:

    encode    Encodes file (or stdin) to padded Base64
    decode    Decodes the Base64 text in file (or stdin)
    kernels   Lists the kernels usable on this CPU
    version   Displays the library version and the active kernels
    help      Displays this information

Options:

    -c <file>        YAML config (kernel, workers, concurrent_threshold, logger)
    -kernel <name>   auto, scalar, generic or avx2
    -workers <n>     Goroutines used for inputs above concurrent_threshold
    -o <file>        Output file instead of stdout
`

func usage(w io.Writer) {
	_, _ = io.WriteString(w, usageFmt)
}
