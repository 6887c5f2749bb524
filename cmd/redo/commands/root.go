// Package commands implements the redo command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/redo/internal/app"
	"go.trai.ch/redo/internal/build"
)

// Names the binary answers to.
const (
	NameRedo     = "redo"
	NameIfChange = "redo-ifchange"
	NameIfCreate = "redo-ifcreate"
)

// Application represents the application logic interface.
type Application interface {
	Redo(ctx context.Context, targets []string, opts app.Options) error
	IfChange(ctx context.Context, targets []string, opts app.Options) error
	IfCreate(ctx context.Context, targets []string, opts app.Options) error
	Clean(ctx context.Context, roots []string, opts app.CleanOptions) ([]string, error)
}

// CLI represents the command line interface for redo.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	getwd   func() (string, error)
	environ func() []string
}

// New creates the CLI for the program invoked as name. redo-ifchange and
// redo-ifcreate get a root command of their own; anything else is redo.
func New(a Application, name string) *CLI {
	c := &CLI{
		app:     a,
		getwd:   os.Getwd,
		environ: os.Environ,
	}

	switch name {
	case NameIfChange:
		c.rootCmd = c.newTargetsCmd(NameIfChange+" [targets...]", "Build targets that do not exist yet", a.IfChange)
	case NameIfCreate:
		c.rootCmd = c.newTargetsCmd(NameIfCreate+" [targets...]", "Record targets without building them", a.IfCreate)
	default:
		c.rootCmd = c.newTargetsCmd(NameRedo+" [targets...]", "Build targets from .do rule scripts", a.Redo)
		c.rootCmd.AddCommand(
			c.newTargetsCmd("ifchange [targets...]", "Build targets that do not exist yet", a.IfChange),
			c.newTargetsCmd("ifcreate [targets...]", "Record targets without building them", a.IfCreate),
			c.newCleanCmd(),
			c.newVersionCmd(),
		)
		c.rootCmd.Version = build.Version
		c.rootCmd.SetVersionTemplate(fmt.Sprintf(
			"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
			build.Commit,
			build.Date,
		))
		c.rootCmd.InitDefaultVersionFlag()
		c.rootCmd.Flags().Lookup("version").Usage = "Print the application version"
	}

	c.rootCmd.SilenceUsage = true
	c.rootCmd.SilenceErrors = true

	flags := c.rootCmd.PersistentFlags()
	flags.BoolP("xtrace", "x", false, "Trace rule scripts with sh -x")
	flags.Bool("fail-fast", false, "Stop at the first failed target")
	flags.StringP("config", "c", "", "Path to redo.yaml instead of searching upward")
	flags.Bool("verbose", false, "Enable debug logging")

	c.rootCmd.InitDefaultHelpFlag()
	c.rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetWorkDir pins the working directory instead of asking the OS. Used for testing.
func (c *CLI) SetWorkDir(dir string) {
	c.getwd = func() (string, error) { return dir, nil }
}

type targetsFunc func(ctx context.Context, targets []string, opts app.Options) error

func (c *CLI) newTargetsCmd(use, short string, fn targetsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			opts, err := c.options(cmd)
			if err != nil {
				return err
			}
			return fn(cmd.Context(), args, opts)
		},
	}
}

func (c *CLI) options(cmd *cobra.Command) (app.Options, error) {
	wd, err := c.getwd()
	if err != nil {
		return app.Options{}, err
	}

	flags := cmd.Flags()
	trace, _ := flags.GetBool("xtrace")
	failFast, _ := flags.GetBool("fail-fast")
	configPath, _ := flags.GetString("config")
	verbose, _ := flags.GetBool("verbose")

	return app.Options{
		WorkDir:    wd,
		Environ:    c.environ(),
		ConfigPath: configPath,
		Trace:      trace,
		FailFast:   failFast,
		Verbose:    verbose,
	}, nil
}
