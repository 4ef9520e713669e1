// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cli implements the panelcfg command line application.
package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/z5labs/panelcfg/internal/try"

	"github.com/spf13/cobra"
)

// Option are used to configure an App.
type Option func(*App)

// Name configures the name of the application.
func Name(name string) Option {
	return func(a *App) {
		a.name = name
	}
}

// Stdin sets the reader used for the file name "-".
func Stdin(r io.Reader) Option {
	return func(a *App) {
		a.stdin = r
	}
}

// Stdout sets where command output is written.
func Stdout(w io.Writer) Option {
	return func(a *App) {
		a.stdout = w
	}
}

// Stderr sets where logs, traces and errors are written.
func Stderr(w io.Writer) Option {
	return func(a *App) {
		a.stderr = w
	}
}

// FS sets the file system screen configs and settings files are read from.
// By default paths are opened relative to the working directory.
func FS(fsys fs.FS) Option {
	return func(a *App) {
		a.fs = fsys
	}
}

// EnvPrefix sets the prefix of environment variables read as settings.
func EnvPrefix(prefix string) Option {
	return func(a *App) {
		a.envPrefix = prefix
	}
}

// App is the panelcfg command line application. It is responsible for:
//   - reading and merging settings
//   - building the logger and tracer provider
//   - running the selected command until it completes or the
//     process is interrupted
type App struct {
	name      string
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	fs        fs.FS
	envPrefix string
}

// New returns a fully initialized App.
func New(opts ...Option) *App {
	name := "panelcfg"
	if len(os.Args) > 0 {
		name = filepath.Base(os.Args[0])
	}
	app := &App{
		name:      name,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		fs:        osFS{},
		envPrefix: "PANELCFG_",
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run executes the application. It also handles listening
// for interrupts from the underlying OS and terminates
// the application when one is received.
func (app *App) Run(args ...string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return app.Execute(ctx, args...)
}

// Execute runs the command selected by args. The tracer provider is
// flushed and shut down before Execute returns, even on failure.
func (app *App) Execute(ctx context.Context, args ...string) (err error) {
	defer try.Recover(&err)

	sess := &session{app: app}
	defer func() {
		serr := sess.shutdown(context.WithoutCancel(ctx))
		if serr != nil && err == nil {
			err = TelemetryShutdownError{Cause: serr}
		}
	}()

	cmd := buildCmd(app, sess)
	cmd.SetArgs(args)
	cmd.SetIn(app.stdin)
	cmd.SetOut(app.stdout)
	cmd.SetErr(app.stderr)

	return cmd.ExecuteContext(ctx)
}

func buildCmd(app *App, sess *session) *cobra.Command {
	var settingsPath string

	cmd := &cobra.Command{
		Use:           app.name,
		Short:         "Inspect, validate and preview workstation screen configs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			settings, err := readSettings(app, cmd, settingsPath)
			if err != nil {
				return err
			}
			return sess.init(settings)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&settingsPath, "config", "", "YAML settings file")
	flags.String("encoding", "", "character encoding of screen config files (default \"koi8-r\")")
	flags.String("log-level", "", "minimum level of logs written to stderr (default \"warn\")")
	flags.Bool("trace", false, "write trace spans to stderr")

	cmd.AddCommand(
		inspectCmd(sess),
		validateCmd(sess),
		renderCmd(sess),
		getCmd(sess),
	)
	return cmd
}

// osFS opens paths as given, so both relative and absolute
// paths work, unlike with os.DirFS.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ConfigReadError occurs when one of the settings sources could not be read.
type ConfigReadError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigReadError) Error() string {
	return fmt.Sprintf("failed to read settings: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigReadError) Unwrap() error {
	return e.Cause
}

// ConfigUnmarshalError occurs when the merged settings do not fit [Settings].
type ConfigUnmarshalError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigUnmarshalError) Error() string {
	return fmt.Sprintf("failed to unmarshal settings: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigUnmarshalError) Unwrap() error {
	return e.Cause
}

// TelemetryShutdownError occurs when pending spans could not be flushed.
type TelemetryShutdownError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e TelemetryShutdownError) Error() string {
	return fmt.Sprintf("failed to shut down tracer provider: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e TelemetryShutdownError) Unwrap() error {
	return e.Cause
}
