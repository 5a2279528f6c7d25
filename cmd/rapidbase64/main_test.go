package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunExitCodes(t *testing.T) {
	cfg := Config
	cfg.Workers = 1

	cases := []struct {
		name string
		args []string
		want int
	}{
		{"no command", nil, exitUsage},
		{"unknown command", []string{"compress"}, exitUsage},
		{"too many args", []string{"encode", "a", "b"}, exitUsage},
		{"help", []string{"help"}, exitOK},
		{"missing input", []string{"encode", filepath.Join(t.TempDir(), "nope")}, exitError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, run(zap.NewNop(), cfg, tc.args, ""))
		})
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	cfg := Config
	cfg.Workers = 1

	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("Man"), 0o600))

	encoded := filepath.Join(dir, "out.b64")
	require.Equal(t, exitOK, run(zap.NewNop(), cfg, []string{cmdEncode, in}, encoded))
	got, err := os.ReadFile(encoded)
	require.NoError(t, err)
	require.Equal(t, "TWFu\n", string(got))

	decoded := filepath.Join(dir, "out.bin")
	require.Equal(t, exitOK, run(zap.NewNop(), cfg, []string{cmdDecode, encoded}, decoded))
	got, err = os.ReadFile(decoded)
	require.NoError(t, err)
	require.Equal(t, "Man", string(got))
}

func TestRunCorruptInput(t *testing.T) {
	cfg := Config
	cfg.Workers = 1

	dir := t.TempDir()
	in := filepath.Join(dir, "bad.b64")
	require.NoError(t, os.WriteFile(in, []byte("TW!u"), 0o600))

	require.Equal(t, exitError, run(zap.NewNop(), cfg, []string{cmdDecode, in}, filepath.Join(dir, "out")))
}

func TestRunUnwritableOutput(t *testing.T) {
	cfg := Config
	out := filepath.Join(t.TempDir(), "missing", "out")
	require.Equal(t, exitError, run(zap.NewNop(), cfg, []string{cmdKernels}, out))
}
