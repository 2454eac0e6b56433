package diro_installer

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/diro-app/diro_installer/log"
)

// CommandRunner runs an external command to completion.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec. Any output of a failed command is added to
// the returned error.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(output)); msg != "" {
			return errors.Wrap(err, msg)
		}
		return err
	}
	return nil
}

// RefreshCaches runs all configured refresh commands, one after the other. A failing
// command is logged and returned as a *RefreshError, and does not stop the others.
func (i *Installer) RefreshCaches(ctx context.Context) (warnings []error) {
	variables := i.Paths.Variables()
	for _, refresh := range i.Config.RefreshCommands {
		args := make([]string, len(refresh.Args))
		for n, arg := range refresh.Args {
			args[n] = ExpandVariables(arg, variables)
		}
		logger := log.G(ctx).WithField("command", refresh.Command)
		logger.Debugf("Updating %s: %s", refresh.Name, strings.Join(args, " "))
		if err := i.Runner.Run(ctx, refresh.Command, args...); err != nil {
			logger.Warnf("Could not update %s: %s", refresh.Name, err)
			warnings = append(warnings, &RefreshError{refresh.Name, refresh.Command, err})
		}
	}
	return warnings
}
