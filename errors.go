package diro_installer

import (
	"fmt"
	"strings"
)

// MissingArtifactError is returned when one or more of the files to install are not
// found next to the installer.
type MissingArtifactError struct {
	Paths []string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing install files: %s", strings.Join(e.Paths, ", "))
}

// RefreshError is a failed cache refresh command. It is never fatal.
type RefreshError struct {
	Name    string
	Command string
	Err     error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("updating %s with %s: %s", e.Name, e.Command, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
