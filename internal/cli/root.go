// Package cli implements the mockctl commands.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/rpggio/mockdata/internal/config"
	"github.com/rpggio/mockdata/internal/notify"
	"github.com/rpggio/mockdata/internal/store"
	"github.com/spf13/cobra"
)

// ErrFailed reports that a command already told the user why it failed.
var ErrFailed = errors.New("command failed")

// Options configures the root command.
type Options struct {
	Config  config.Config
	Out     io.Writer
	Err     io.Writer
	NoColor bool
	Version string
	Logger  *slog.Logger
}

type app struct {
	cfg     config.Config
	out     io.Writer
	errOut  io.Writer
	noColor bool
	version string
	logger  *slog.Logger
}

// NewRootCommand builds the mockctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{
		cfg:     opts.Config,
		out:     opts.Out,
		errOut:  opts.Err,
		noColor: opts.NoColor,
		version: opts.Version,
		logger:  opts.Logger,
	}
	if a.out == nil {
		a.out = io.Discard
	}
	if a.errOut == nil {
		a.errOut = io.Discard
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	root := &cobra.Command{
		Use:           "mockctl",
		Short:         "Manage the mock data of a mock server project",
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.AddCommand(
		a.projectsCmd(),
		a.projectCmd(),
		a.useCmd(),
		a.listCmd(),
		a.draftCmd(),
		a.createCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.mcpCmd(),
	)
	return root
}

// console returns the notifier used by interactive commands.
func (a *app) console() store.Notifier {
	return notify.NewConsole(a.errOut, a.noColor)
}

// withSession opens a session for fn and closes it afterwards.
func (a *app) withSession(ctx context.Context, notifier store.Notifier, fn func(*session) error) error {
	s, err := openSession(ctx, a.cfg, notifier, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			a.logger.Warn("failed to close state", "error", err)
		}
	}()
	return fn(s)
}
