package diro_installer

import (
	"os"
	"path/filepath"
	"regexp"
	"sync"

	rice "github.com/GeertJohan/go.rice"
	"github.com/pkg/errors"
)

var (
	resourcesBox *rice.Box
	boxesOnce    sync.Once
	boxesOpenErr error
)

// openBoxes opens all payload boxes needed, once.
// For go.rice's 'append' mode to work, all calls to FindBox() have to be with a literal
// string parameter.
func openBoxes() error {
	boxesOnce.Do(func() {
		resourcesBox, boxesOpenErr = rice.FindBox("resources")
	})
	return boxesOpenErr
}

// GetResource returns the content of a single file from the resources box.
func GetResource(name string) (string, error) {
	if err := openBoxes(); err != nil {
		return "", errors.Wrap(err, "opening resources")
	}
	text, err := resourcesBox.String(name)
	if err != nil {
		return "", errors.Errorf("resource '%s' not found", name)
	}
	return text, nil
}

// MustGetResource is GetResource, but panics if the file can't be read.
func MustGetResource(name string) string {
	text, err := GetResource(name)
	if err != nil {
		panic(err)
	}
	return text
}

// GetResourceFiltered returns the contents of all files directly inside the resource
// directory dir whose path matches the filter, indexed by their path inside the box.
// Subdirectories are skipped.
func GetResourceFiltered(dir string, filter *regexp.Regexp) (map[string]string, error) {
	if err := openBoxes(); err != nil {
		return nil, errors.Wrap(err, "opening resources")
	}
	files := make(map[string]string)
	err := resourcesBox.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if info.IsDir() {
			return filepath.SkipDir
		}
		if filter.MatchString(path) {
			content, err := resourcesBox.String(path)
			if err != nil {
				return err
			}
			files[path] = content
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading resource dir '%s'", dir)
	}
	return files, nil
}
