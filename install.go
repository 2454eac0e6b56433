package diro_installer

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/diro-app/diro_installer/log"
)

const (
	dirMode  = 0755
	iconMode = 0644
)

type (
	// Artifact is one of the prebuilt files to install, with both source and target
	// path, and a flag indicating whether it has been moved to the target yet.
	Artifact struct {
		Name       string
		Source     string
		Target     string
		Executable bool
		size       int64
		installed  bool
	}
	// InstalledFile describes a file the installer has written.
	InstalledFile struct {
		Path string
		Mode os.FileMode
		Size int64
	}
	// Report summarizes a completed installation. Warnings holds the non-fatal
	// failures, i.e. cache refreshes that did not work.
	Report struct {
		Paths      Paths
		Files      []InstalledFile
		MovedBytes int64
		Warnings   []error
	}
	// Installer moves the DirO binary and icon from SourceDir into the user's home
	// and creates launchers for them.
	Installer struct {
		Config    *Config
		Paths     Paths
		SourceDir string
		Runner    CommandRunner
		artifacts []*Artifact
	}
)

// NewInstaller creates an installer for the given home directory, picking up the
// install files from sourceDir. Cache refresh commands are run with ExecRunner.
func NewInstaller(config *Config, home, sourceDir string) *Installer {
	paths := ResolvePaths(home, config)
	return &Installer{
		Config:    config,
		Paths:     paths,
		SourceDir: sourceDir,
		Runner:    ExecRunner{},
		artifacts: []*Artifact{
			{
				Name:       config.BinaryName,
				Source:     filepath.Join(sourceDir, config.BinaryName),
				Target:     paths.Binary,
				Executable: true,
			},
			{
				Name:   config.IconName,
				Source: filepath.Join(sourceDir, config.IconName),
				Target: paths.Icon,
			},
		},
	}
}

// Install runs the complete installation: create directories, check for the install
// files, move them into place, write both launchers and refresh the desktop caches.
//
// A *MissingArtifactError is returned if any install file is missing; nothing has been
// moved in that case. Cache refresh failures don't fail the installation, they are
// returned as Report.Warnings.
func (i *Installer) Install(ctx context.Context) (*Report, error) {
	logger := log.G(ctx).WithField("installDir", i.Paths.InstallDir)
	ctx = log.WithLogger(ctx, logger)

	i.Preflight(ctx)
	if err := i.CreateDirs(ctx); err != nil {
		return nil, err
	}
	if err := i.CheckArtifacts(); err != nil {
		logger.Error(err)
		return nil, err
	}
	if err := i.MoveArtifacts(ctx); err != nil {
		return nil, err
	}
	if err := i.SetPermissions(); err != nil {
		return nil, err
	}
	if err := i.WriteLaunchers(ctx); err != nil {
		return nil, err
	}
	report := &Report{Paths: i.Paths, MovedBytes: i.MovedBytes()}
	for _, path := range []string{i.Paths.Binary, i.Paths.Icon, i.Paths.MenuEntry, i.Paths.Shortcut} {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "checking %s", path)
		}
		report.Files = append(report.Files, InstalledFile{path, info.Mode().Perm(), info.Size()})
	}
	report.Warnings = i.RefreshCaches(ctx)
	logger.Infof("Installed %s (%s moved, %d warnings)",
		i.Config.Product, report.SizeString(), len(report.Warnings))
	return report, nil
}

// Preflight logs the free disk space below the home directory and warns if it is not
// writable. Neither is fatal; a real problem will surface in a later step.
func (i *Installer) Preflight(ctx context.Context) {
	logger := log.G(ctx)
	if !osFileWriteAccess(i.Paths.Home) {
		logger.Warnf("Home directory '%s' is not writable", i.Paths.Home)
	}
	if space := osDiskSpace(i.Paths.Home); space >= 0 {
		logger.Debugf("%s available in '%s'", humanize.Bytes(uint64(space)), i.Paths.Home)
	}
}

// CreateDirs creates the install, icon, desktop and applications directories. Existing
// directories are left alone.
func (i *Installer) CreateDirs(ctx context.Context) error {
	for _, dir := range i.Paths.Dirs() {
		log.G(ctx).Debugf("Creating directory %s", dir)
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return errors.Wrapf(err, "creating directory %s", dir)
		}
	}
	return nil
}

// CheckArtifacts checks that all install files exist as regular files in the source
// directory.
func (i *Installer) CheckArtifacts() error {
	var missing []string
	for _, artifact := range i.artifacts {
		info, err := os.Stat(artifact.Source)
		if err != nil || !info.Mode().IsRegular() {
			missing = append(missing, artifact.Source)
			continue
		}
		artifact.size = info.Size()
	}
	if len(missing) > 0 {
		return &MissingArtifactError{Paths: missing}
	}
	return nil
}

// MoveArtifacts moves the install files into the install directory, replacing files
// from a previous installation. The sources are gone afterwards.
func (i *Installer) MoveArtifacts(ctx context.Context) error {
	for _, artifact := range i.artifacts {
		log.G(ctx).Debugf("Moving %s -> %s", artifact.Source, artifact.Target)
		if err := moveFile(artifact.Source, artifact.Target); err != nil {
			return errors.Wrapf(err, "moving %s", artifact.Name)
		}
		artifact.installed = true
	}
	return nil
}

// SetPermissions makes the binary executable like 'chmod +x' does, i.e. for everyone
// the umask allows, and makes the icon world-readable.
func (i *Installer) SetPermissions() error {
	for _, artifact := range i.artifacts {
		info, err := os.Stat(artifact.Target)
		if err != nil {
			return errors.Wrapf(err, "checking %s", artifact.Target)
		}
		mode := os.FileMode(iconMode)
		if artifact.Executable {
			mode = executableMode(info.Mode().Perm(), osUmask())
		}
		if err := os.Chmod(artifact.Target, mode); err != nil {
			return errors.Wrapf(err, "setting mode of %s", artifact.Target)
		}
	}
	return nil
}

// WriteLaunchers writes the application menu entry and the desktop shortcut.
func (i *Installer) WriteLaunchers(ctx context.Context) error {
	launchers := []struct {
		kind LauncherKind
		path string
	}{
		{MenuEntry, i.Paths.MenuEntry},
		{Shortcut, i.Paths.Shortcut},
	}
	for _, launcher := range launchers {
		log.G(ctx).Debugf("Writing %s %s", launcher.kind, launcher.path)
		if err := writeLauncher(launcher.path, launcher.kind, i.Config, i.Paths); err != nil {
			return err
		}
	}
	return nil
}

// Artifacts returns the install files.
func (i *Installer) Artifacts() []*Artifact { return i.artifacts }

// MovedBytes returns the size of all install files moved so far.
func (i *Installer) MovedBytes() (size int64) {
	for _, artifact := range i.artifacts {
		if artifact.installed {
			size += artifact.size
		}
	}
	return size
}

// SizeString returns a human-readable version of MovedBytes.
func (r *Report) SizeString() string {
	return humanize.Bytes(uint64(r.MovedBytes))
}

func executableMode(mode os.FileMode, umask int) os.FileMode {
	return mode | (0111 &^ os.FileMode(umask))
}

// moveFile renames src to dst. If both are on different file systems, the file is
// copied and the source removed.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !osIsCrossDevice(err) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()
	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
