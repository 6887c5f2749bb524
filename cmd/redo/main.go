// Package main is the entry point for redo. The binary is multi-call: run as
// redo-ifchange or redo-ifcreate it behaves like the matching subcommand.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/cmd/redo/commands"
	"go.trai.ch/redo/internal/app"
	"go.trai.ch/redo/internal/core/domain"
	_ "go.trai.ch/redo/internal/wiring"
)

// ComponentProvider returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr, provide))
}

func provide(ctx context.Context) (*app.Components, error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, err
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer, provider ComponentProvider) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		// The logger is not available yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	name := "redo"
	if len(argv) > 0 {
		name = filepath.Base(argv[0])
		argv = argv[1:]
	}

	cli := commands.New(components.App, name)
	cli.SetArgs(argv)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		// Failed targets were already reported one by one.
		if !errors.Is(err, domain.ErrBuildFailed) {
			components.Logger.Error(err)
		}
		return 1
	}
	return 0
}
