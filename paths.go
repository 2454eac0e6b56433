package diro_installer

import (
	"os"
	"path/filepath"
)

// Paths are the absolute install locations for one user.
type Paths struct {
	Home            string
	InstallDir      string
	ApplicationsDir string
	DesktopDir      string
	IconThemeDir    string
	IconDir         string
	Binary          string
	Icon            string
	MenuEntry       string
	Shortcut        string
}

// ResolvePaths computes the install layout below home. The desktop directory is the
// first of config.DesktopDirs that exists, or the last one if none of the others do.
func ResolvePaths(home string, config *Config) Paths {
	installDir := filepath.Join(home, config.InstallDirName)
	applicationsDir := filepath.Join(home, config.ApplicationsDir)
	desktopDir := findDesktopDir(home, config.DesktopDirs)
	iconThemeDir := filepath.Join(home, config.IconThemeDir)
	return Paths{
		Home:            home,
		InstallDir:      installDir,
		ApplicationsDir: applicationsDir,
		DesktopDir:      desktopDir,
		IconThemeDir:    iconThemeDir,
		IconDir:         filepath.Join(iconThemeDir, config.IconSize, "apps"),
		Binary:          filepath.Join(installDir, config.BinaryName),
		Icon:            filepath.Join(installDir, config.IconName),
		MenuEntry:       filepath.Join(applicationsDir, config.DesktopFilename),
		Shortcut:        filepath.Join(desktopDir, config.DesktopFilename),
	}
}

func findDesktopDir(home string, names []string) string {
	for _, name := range names[:len(names)-1] {
		dir := filepath.Join(home, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return filepath.Join(home, names[len(names)-1])
}

// Dirs returns all directories the installer creates, in creation order.
func (p Paths) Dirs() []string {
	return []string{p.InstallDir, p.IconDir, p.DesktopDir, p.ApplicationsDir}
}

// Variables returns the paths as template variables, for refresh command arguments
// and translated strings.
func (p Paths) Variables() StringMap {
	return StringMap{
		"home":            p.Home,
		"installDir":      p.InstallDir,
		"applicationsDir": p.ApplicationsDir,
		"desktopDir":      p.DesktopDir,
		"iconThemeDir":    p.IconThemeDir,
		"iconDir":         p.IconDir,
	}
}
