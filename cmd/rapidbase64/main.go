package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/lomik/zapwriter"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	cmdEncode  = "encode"
	cmdDecode  = "decode"
	cmdKernels = "kernels"
	cmdVersion = "version"
	cmdHelp    = "help"
)

func main() {
	err := zapwriter.ApplyConfig([]zapwriter.Config{DefaultLoggerConfig})
	if err != nil {
		log.Fatal("Failed to initialize logger with default configuration")
	}
	logger := zapwriter.Logger("main")

	configFile := flag.String("c", "", "config file (yaml)")
	kernel := flag.String("kernel", "", "kernel to use, overrides the config file")
	workers := flag.Int("workers", 0, "goroutines for large inputs, overrides the config file")
	output := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	if *configFile != "" {
		if err := loadConfig(*configFile, &Config); err != nil {
			logger.Fatal("failed to load config",
				zap.String("config_file", *configFile),
				zap.Error(err),
			)
		}

		err = zapwriter.ApplyConfig(Config.Logger)
		if err != nil {
			logger.Fatal("failed to apply config",
				zap.Any("config", Config.Logger),
				zap.Error(err),
			)
		}
		logger = zapwriter.Logger("main")
	}
	if *kernel != "" {
		Config.Kernel = *kernel
	}
	if *workers > 0 {
		Config.Workers = *workers
	}

	logger.Debug("loaded config", zap.Any("config", Config))

	os.Exit(run(logger, Config, flag.Args(), *output))
}

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// run executes one command and returns the process exit code.
func run(logger *zap.Logger, cfg Configuration, args []string, output string) int {
	if len(args) == 0 || len(args) > 2 {
		usage(os.Stderr)
		return exitUsage
	}

	switch args[0] {
	case cmdEncode, cmdDecode, cmdKernels, cmdVersion:
	case cmdHelp:
		usage(os.Stdout)
		return exitOK
	default:
		usage(os.Stderr)
		return exitUsage
	}

	var r io.Reader = os.Stdin
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			logger.Error("unable to open input file",
				zap.String("input", args[1]),
				zap.Error(err),
			)
			return exitError
		}
		defer f.Close()
		r = f
	}

	var w io.Writer = os.Stdout
	var out *os.File
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			logger.Error("unable to create output file",
				zap.String("output", output),
				zap.Error(err),
			)
			return exitError
		}
		out = f
		w = f
	}

	var err error
	switch args[0] {
	case cmdEncode:
		err = encode(logger, cfg, r, w)
	case cmdDecode:
		err = decode(logger, cfg, r, w)
	case cmdKernels:
		err = kernels(w)
	case cmdVersion:
		err = version(w, cfg)
	}

	if out != nil {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "unable to close %s", output)
		}
	}

	if err != nil {
		logger.Error(args[0]+" failed",
			zap.String("kernel", cfg.Kernel),
			zap.Error(err),
		)
		return exitError
	}
	return exitOK
}
