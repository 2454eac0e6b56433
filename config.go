package diro_installer

import (
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const configFilename = "config.yml"

type (
	// RefreshCommand is an external command that refreshes a desktop cache after
	// installation. Args may contain template variables (see Paths.Variables).
	RefreshCommand struct {
		Name    string   `yaml:"name"`
		Command string   `yaml:"command"`
		Args    []string `yaml:"args"`
	}
	// Config holds the product metadata and the fixed install layout.
	Config struct {
		Product         string           `yaml:"product"`
		GenericName     string           `yaml:"generic_name"`
		Comment         string           `yaml:"comment"`
		EntryVersion    string           `yaml:"entry_version"`
		Categories      string           `yaml:"categories"`
		InstallDirName  string           `yaml:"install_dir"`
		BinaryName      string           `yaml:"binary"`
		IconName        string           `yaml:"icon"`
		DesktopFilename string           `yaml:"desktop_file"`
		ApplicationsDir string           `yaml:"applications_dir"`
		IconThemeDir    string           `yaml:"icon_theme_dir"`
		IconSize        string           `yaml:"icon_size"`
		DesktopDirs     []string         `yaml:"desktop_dirs"`
		RefreshCommands []RefreshCommand `yaml:"refresh_commands"`

		// Variables are available to all translated strings.
		Variables StringMap `yaml:"-"`
	}
)

// NewConfig reads the bundled config file.
func NewConfig() (*Config, error) {
	configFile, err := GetResource(configFilename)
	if err != nil {
		return nil, err
	}
	return ParseConfig([]byte(configFile))
}

// ParseConfig parses and validates a yaml config.
func ParseConfig(data []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", configFilename)
	}
	if err := config.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", configFilename)
	}
	config.Variables = StringMap{
		"product":     config.Product,
		"genericName": config.GenericName,
		"binary":      config.BinaryName,
		"icon":        config.IconName,
	}
	return config, nil
}

func (c *Config) validate() error {
	required := map[string]string{
		"product":          c.Product,
		"install_dir":      c.InstallDirName,
		"binary":           c.BinaryName,
		"icon":             c.IconName,
		"desktop_file":     c.DesktopFilename,
		"applications_dir": c.ApplicationsDir,
		"icon_theme_dir":   c.IconThemeDir,
		"icon_size":        c.IconSize,
	}
	for key, value := range required {
		if value == "" {
			return errors.Errorf("missing '%s'", key)
		}
	}
	for _, name := range []string{c.InstallDirName, c.BinaryName, c.IconName, c.DesktopFilename} {
		if filepath.Base(name) != name {
			return errors.Errorf("'%s' must be a plain file name", name)
		}
	}
	if len(c.DesktopDirs) == 0 {
		return errors.New("missing 'desktop_dirs'")
	}
	for _, cmd := range c.RefreshCommands {
		if cmd.Command == "" {
			return errors.Errorf("refresh command '%s' has no command", cmd.Name)
		}
	}
	return nil
}
