package diro_installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/diro-app/diro_installer/log"
)

const (
	logFilename = "installer.log"

	exitOK              = 0
	exitMissingArtifact = 1
	exitFailed          = 2
)

// Version of the installer, set at build time with -ldflags "-X ...".
var Version = "1.0.0"

// Run installs DirO for the current user and returns the process exit code.
//
// It takes no arguments. Optional flags are:
//	-lang     // Language for installer messages
//	-verbose  // Write debug output to the log file
//
// The exit code is 1 if the binary or icon is missing next to the installer, 2 on any
// other failure, and 0 otherwise, even if the desktop caches could not be refreshed.
func Run() int {
	logfile, err := startLogging(logFilename)
	if err != nil {
		log.SetOutput(io.Discard)
		warnColor.Fprintf(os.Stderr, "Unable to open %s: %s\n", logFilename, err)
	} else {
		defer logfile.Close()
	}

	config, err := NewConfig()
	if err != nil {
		log.L.Error(err)
		errColor.Fprintln(os.Stderr, err)
		return exitFailed
	}
	config.Variables["installerName"] = filepath.Base(os.Args[0])
	translator, err := NewTranslatorVar(config.Variables)
	if err != nil {
		log.L.Error(err)
		errColor.Fprintln(os.Stderr, err)
		return exitFailed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exitCode := exitOK
	app := newApp(ctx, config, translator, os.Stdout, &exitCode)
	if err := app.Run(os.Args); err != nil {
		log.L.Error(err)
		errColor.Fprintln(os.Stderr, err)
		return exitFailed
	}
	return exitCode
}

// newApp sets up the commandline interface. The action stores the installation's exit
// code in exitCode.
func newApp(
	ctx context.Context, config *Config, translator *Translator, out io.Writer, exitCode *int,
) *cli.App {
	var lang string
	var verbose bool

	app := cli.NewApp()
	app.Name = "diro-install"
	app.Usage = translator.Get("cli_usage")
	app.Version = Version
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "lang",
			Usage:       translator.Get("cli_help_lang") + " " + strings.Join(translator.GetLanguages(), ", "),
			Destination: &lang,
		},
		cli.BoolFlag{
			Name:        "verbose",
			Usage:       translator.Get("cli_help_verbose"),
			Destination: &verbose,
		},
	}
	app.Action = func(c *cli.Context) error {
		log.SetVerbose(verbose)
		if len(lang) > 0 {
			if err := translator.SetLanguage(lang); err != nil {
				warnColor.Fprintf(out, "Language '%s' not available\n", lang)
			}
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "finding home directory")
		}
		sourceDir, err := installerDir()
		if err != nil {
			return err
		}
		log.L.Infof("Installer %s started from %s", Version, sourceDir)
		*exitCode = RunCliInstall(ctx, NewInstaller(config, home, sourceDir), translator, out)
		return nil
	}
	return app
}

// RunCliInstall runs the installation on the command line, with no further user
// interaction, and returns the exit code.
func RunCliInstall(
	ctx context.Context, installer *Installer, translator *Translator, out io.Writer,
) int {
	pathVariables := installer.Paths.Variables()
	fmt.Fprintln(out, translator.GetVar("installing", pathVariables))

	report, err := installer.Install(ctx)
	if err != nil {
		var missing *MissingArtifactError
		if errors.As(err, &missing) {
			for _, path := range missing.Paths {
				errColor.Fprintln(out, translator.GetVar("err_missing_artifact", StringMap{"path": path}))
			}
			fmt.Fprintln(out, translator.Get("err_missing_artifact_hint"))
			return exitMissingArtifact
		}
		log.G(ctx).Error(err)
		errColor.Fprintln(out, translator.GetVar("err_install_failed", StringMap{"error": err.Error()}))
		return exitFailed
	}

	for _, warning := range report.Warnings {
		var refreshErr *RefreshError
		if errors.As(warning, &refreshErr) {
			warnColor.Fprintln(out, translator.GetVar("warn_refresh_failed", StringMap{
				"name":  refreshErr.Name,
				"error": refreshErr.Err.Error(),
			}))
		}
	}
	PrintSummary(out, report, translator)
	okColor.Fprintln(out, translator.Get("done"))
	fmt.Fprintln(out, translator.Get("done_hint_menu"))
	fmt.Fprintln(out, translator.GetVar("done_hint_desktop", pathVariables))
	fmt.Fprintln(out, translator.Get("done_hint_refresh"))
	return exitOK
}

// startLogging sets up logging into the given file.
func startLogging(logFilename string) (*os.File, error) {
	logfile, err := os.OpenFile(logFilename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	log.SetOutput(logfile)
	return logfile, nil
}

// installerDir returns the directory containing the running installer, which is where
// the install files are expected.
func installerDir() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "finding installer executable")
	}
	executable, err = filepath.EvalSymlinks(executable)
	if err != nil {
		return "", errors.Wrap(err, "resolving installer executable")
	}
	return filepath.Dir(executable), nil
}
