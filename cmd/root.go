package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/changelog-gen/config"
	"github.com/masmgr/changelog-gen/internal/changelog"
	apperrors "github.com/masmgr/changelog-gen/internal/errors"
	"github.com/masmgr/changelog-gen/internal/git"
)

const version = "1.0.0"

// Deps are the collaborators a run is wired with. Zero fields fall back to
// the process streams and the real implementations.
type Deps struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	NewSummarizer func(cfg *config.Config, logger *slog.Logger) (changelog.Summarizer, error)
	Clone         git.CloneFunc
	Now           func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Stdin == nil {
		d.Stdin = os.Stdin
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.NewSummarizer == nil {
		d.NewSummarizer = changelog.NewSummarizer
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// App creates the CLI application wired to the process streams.
func App() *cli.App {
	return NewApp(Deps{})
}

// NewApp creates the CLI application wired to deps.
func NewApp(deps Deps) *cli.App {
	deps = deps.withDefaults()
	return &cli.App{
		Name:                      "changelog-gen",
		Usage:                     "Generate a changelog from git history",
		UsageText:                 "changelog-gen [flags] <repository> <count>",
		Version:                   version,
		Flags:                     flags(),
		Reader:                    deps.Stdin,
		Writer:                    deps.Stdout,
		ErrWriter:                 deps.Stderr,
		DisableSliceFlagSeparator: true,
		// Errors are reported once, by RunWith.
		ExitErrHandler: func(*cli.Context, error) {},
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return apperrors.NewInvalidArgumentErrorWithCause("flags", err.Error(), err)
		},
		Action: func(c *cli.Context) error {
			return generateAction(c, deps)
		},
	}
}

// Run executes the CLI with the process streams and returns the exit code.
func Run(args []string) int {
	return RunWith(Deps{}, args)
}

// RunWith executes the CLI with deps and returns the exit code. Errors are
// printed to stderr as "Error: <msg>" even in silent mode.
func RunWith(deps Deps, args []string) int {
	deps = deps.withDefaults()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := NewApp(deps)
	if err := app.RunContext(ctx, reorderArgs(args, app.Flags)); err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return apperrors.ExitCodeOf(err)
	}
	return apperrors.ExitSuccess
}
