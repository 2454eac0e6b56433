package diro_installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testBinaryContent = "#!/bin/sh\necho DirO\n"
	testIconContent   = "\x89PNG\r\n\x1a\n"
)

// fakeRunner records commands instead of running them. Commands listed in fail
// return the given error.
type fakeRunner struct {
	calls []string
	fail  map[string]error
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	r.calls = append(r.calls, strings.Join(append([]string{name}, args...), " "))
	return r.fail[name]
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	config, err := NewConfig()
	require.NoError(t, err)
	return config
}

func writeTestFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
}

// placeArtifacts puts a fresh binary and icon into sourceDir.
func placeArtifacts(t *testing.T, config *Config, sourceDir string) {
	t.Helper()
	writeTestFile(t, filepath.Join(sourceDir, config.BinaryName), testBinaryContent, 0644)
	writeTestFile(t, filepath.Join(sourceDir, config.IconName), testIconContent, 0600)
}

// newTestInstaller returns an installer for a fresh home directory, with the
// install files already placed in the source directory.
func newTestInstaller(t *testing.T) (*Installer, *fakeRunner) {
	t.Helper()
	config := testConfig(t)
	home, sourceDir := t.TempDir(), t.TempDir()
	placeArtifacts(t, config, sourceDir)
	installer := NewInstaller(config, home, sourceDir)
	runner := &fakeRunner{}
	installer.Runner = runner
	return installer, runner
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func dirEntries(t *testing.T, dir string) (names []string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
