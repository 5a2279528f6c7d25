package main

import (
	"os"
	"runtime"

	"github.com/lomik/zapwriter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Logs go to stderr; stdout carries only codec output.
var DefaultLoggerConfig = zapwriter.Config{
	Logger:           "",
	File:             "stderr",
	Level:            "info",
	Encoding:         "json",
	EncodingTime:     "iso8601",
	EncodingDuration: "seconds",
}

type Configuration struct {
	Kernel              string             `yaml:"kernel"`
	Workers             int                `yaml:"workers"`
	ConcurrentThreshold int                `yaml:"concurrent_threshold"`
	Logger              []zapwriter.Config `yaml:"logger"`
}

var Config = Configuration{
	Kernel:              "auto",
	Workers:             runtime.GOMAXPROCS(0),
	ConcurrentThreshold: 1 << 20,
	Logger:              []zapwriter.Config{DefaultLoggerConfig},
}

// loadConfig overlays the YAML file at path onto cfg.
func loadConfig(path string, cfg *Configuration) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "unable to load config file")
	}
	if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
		return errors.Wrapf(err, "error parsing config file %s", path)
	}
	if cfg.Workers < 1 {
		return errors.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	return nil
}
