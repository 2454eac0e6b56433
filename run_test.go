package diro_installer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diro-app/diro_installer/log"
)

func TestRunCliInstall(t *testing.T) {
	installer, _ := newTestInstaller(t)
	var out bytes.Buffer

	code := RunCliInstall(context.Background(), installer, newTestTranslator(t), &out)

	require.Equal(t, exitOK, code)
	require.Contains(t, out.String(), "Installing DirO to "+installer.Paths.InstallDir)
	require.Contains(t, out.String(), installer.Paths.MenuEntry)
	require.Contains(t, out.String(), "Installation complete!")
	require.NotContains(t, out.String(), "Warning")
}

func TestRunCliInstallRefreshFailure(t *testing.T) {
	installer, runner := newTestInstaller(t)
	runner.fail = map[string]error{
		"update-desktop-database": errors.New("not found"),
		"gtk-update-icon-cache":   errors.New("not found"),
	}
	var out bytes.Buffer

	code := RunCliInstall(context.Background(), installer, newTestTranslator(t), &out)

	require.Equal(t, exitOK, code)
	require.Contains(t, out.String(), "Warning: could not update the desktop database (not found).")
	require.Contains(t, out.String(), "Warning: could not update the icon cache (not found).")
	require.Contains(t, out.String(), "Installation complete!")
}

func TestRunCliInstallMissingArtifact(t *testing.T) {
	installer, _ := newTestInstaller(t)
	icon := filepath.Join(installer.SourceDir, "DirO.png")
	require.NoError(t, os.Remove(icon))
	var out bytes.Buffer

	code := RunCliInstall(context.Background(), installer, newTestTranslator(t), &out)

	require.Equal(t, exitMissingArtifact, code)
	require.Contains(t, out.String(), "Error: "+icon+" not found.")
	require.NotContains(t, out.String(), "Installation complete!")
	require.FileExists(t, filepath.Join(installer.SourceDir, "DirO"))
}

func TestRunCliInstallFailure(t *testing.T) {
	installer, _ := newTestInstaller(t)
	writeTestFile(t, installer.Paths.InstallDir, "", 0644)
	var out bytes.Buffer

	code := RunCliInstall(context.Background(), installer, newTestTranslator(t), &out)

	require.Equal(t, exitFailed, code)
	require.Contains(t, out.String(), "Installation failed:")
}

func TestAppVersion(t *testing.T) {
	config := testConfig(t)
	var out bytes.Buffer
	exitCode := -1

	app := newApp(context.Background(), config, newTestTranslator(t), &out, &exitCode)
	require.NoError(t, app.Run([]string{"diro-install", "--version"}))

	require.Contains(t, out.String(), Version)
	require.Equal(t, -1, exitCode, "version must not install")
}

func TestStartLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), logFilename)
	logfile, err := startLogging(path)
	require.NoError(t, err)
	defer logfile.Close()
	defer log.SetOutput(os.Stderr)

	log.L.Info("hello from the installer")
	require.Contains(t, readFile(t, path), "hello from the installer")
}
