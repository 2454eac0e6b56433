package diro_installer

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LauncherKind selects which desktop entry variant is rendered.
type LauncherKind int

const (
	// MenuEntry is the application menu launcher in ~/.local/share/applications.
	MenuEntry LauncherKind = iota
	// Shortcut is the launcher on the user's desktop. It carries no categories.
	Shortcut
)

const (
	launcherFileMode    = 0755
	desktopFileTemplate = `[Desktop Entry]
Version={{.entryVersion}}
Type=Application
Name={{.product}}
GenericName={{.genericName}}
Comment={{.comment}}
Exec={{.exec}}
Icon={{.iconPath}}
Terminal=false
StartupNotify=true
{{- if .categories}}
Categories={{.categories}}
{{- end}}
`
)

func (k LauncherKind) String() string {
	switch k {
	case MenuEntry:
		return "menu entry"
	case Shortcut:
		return "desktop shortcut"
	default:
		return "unknown launcher"
	}
}

// LauncherVariables returns the template variables for a launcher of the given kind.
func LauncherVariables(kind LauncherKind, config *Config, paths Paths) StringMap {
	categories := ""
	if kind == MenuEntry {
		categories = config.Categories
	}
	return StringMap{
		"entryVersion": config.EntryVersion,
		"product":      config.Product,
		"genericName":  config.GenericName,
		"comment":      config.Comment,
		"exec":         quoteExec(paths.Binary),
		"iconPath":     paths.Icon,
		"categories":   categories,
	}
}

// RenderDesktopEntry renders the desktop entry text from the given variables.
func RenderDesktopEntry(variables StringMap) (string, error) {
	return ExpandVariablesStrict(desktopFileTemplate, variables)
}

// writeLauncher renders and writes a launcher file, replacing any previous one. The
// mode is set explicitly, since an existing file keeps its old mode on write.
func writeLauncher(path string, kind LauncherKind, config *Config, paths Paths) error {
	content, err := RenderDesktopEntry(LauncherVariables(kind, config, paths))
	if err != nil {
		return errors.Wrapf(err, "rendering %s", kind)
	}
	if err := os.WriteFile(path, []byte(content), launcherFileMode); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(os.Chmod(path, launcherFileMode), "setting mode of %s", path)
}

// quoteExec quotes an executable path for the Exec key if it contains characters
// that the desktop entry format reserves.
func quoteExec(path string) string {
	if !strings.ContainsAny(path, " \t\n\"'\\><~|&;$*?#()`") {
		return path
	}
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + replacer.Replace(path) + `"`
}
