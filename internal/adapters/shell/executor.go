// Package shell provides the rule script executor.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/redo/internal/adapters/fs"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// waitDelay bounds how long output copying may outlive a killed script.
const waitDelay = 2 * time.Second

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger  ports.Logger
	scratch *fs.ScratchAllocator
	stderr  io.Writer
}

// NewExecutor creates a new Executor. Script stderr goes to os.Stderr.
func NewExecutor(logger ports.Logger, scratch *fs.ScratchAllocator) *Executor {
	return NewExecutorWithStderr(logger, scratch, os.Stderr)
}

// NewExecutorWithStderr creates an Executor that copies script stderr to w.
func NewExecutorWithStderr(logger ports.Logger, scratch *fs.ScratchAllocator, w io.Writer) *Executor {
	return &Executor{
		logger:  logger,
		scratch: scratch,
		stderr:  w,
	}
}

// Perform runs rule to build target. The script runs from the rule's
// directory with $1 the target relative to that directory, $2 the base name
// and $3 a scratch file it may write its result to. Its stdout is captured
// in a second scratch file. On success exactly one of the two is renamed
// onto the target; on any failure the target is left untouched.
func (e *Executor) Perform(ctx context.Context, inv domain.Invocation, target domain.Target, rule *domain.Rule) error {
	files, err := e.scratch.Allocate(target.Dir, domain.ScratchStdoutSuffix, domain.ScratchOutputSuffix)
	if err != nil {
		return err
	}
	defer fs.DiscardAll(files)

	stdout, output := files[0], files[1]
	// The script opens $3 by path.
	if err := output.Close(); err != nil {
		return err
	}

	args, err := scriptArgs(target, rule, output.Path())
	if err != nil {
		return err
	}

	if err := e.run(ctx, inv, target, rule, args, stdout.File()); err != nil {
		return err
	}
	if err := stdout.Close(); err != nil {
		return err
	}

	chosen, err := selectOutput(target, stdout, output)
	if err != nil {
		return err
	}
	return chosen.Promote(target.Path)
}

// scriptArgs computes the three positional parameters, each relative to the
// rule's directory.
func scriptArgs(target domain.Target, rule *domain.Rule, outputPath string) ([]string, error) {
	targetArg, err := domain.RelativeToDir(target.Path, rule.Dir)
	if err != nil {
		return nil, zerr.With(err, "target", target.Name)
	}
	baseArg, err := rule.BaseName(targetArg)
	if err != nil {
		return nil, err
	}
	outputArg, err := domain.RelativeToDir(outputPath, rule.Dir)
	if err != nil {
		return nil, zerr.With(err, "target", target.Name)
	}
	return []string{targetArg, baseArg, outputArg}, nil
}

func (e *Executor) run(
	ctx context.Context,
	inv domain.Invocation,
	target domain.Target,
	rule *domain.Rule,
	args []string,
	stdout io.Writer,
) error {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmdEnv := resolveEnvironment(inv.Environ, inv.Env)
	name, cmdArgs := command(inv, rule, args)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, cmdArgs...) //nolint:gosec // Rule files are user provided
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = rule.Dir
	cmd.WaitDelay = waitDelay
	cmd.Env = cmdEnv
	cmd.Stdout = stdout
	cmd.Stderr = e.stderr
	if vertex := ports.VertexFromContext(ctx); vertex != nil {
		cmd.Stderr = io.MultiWriter(e.stderr, vertex.Stderr())
		vertex.Log(domain.LogLevelDebug, strings.Join(cmd.Args, " "))
	}

	e.logger.Debug(fmt.Sprintf("%s: running %s in %s", target.Name, strings.Join(cmd.Args, " "), cmd.Dir))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			wrapped := zerr.With(zerr.Wrap(errors.Join(domain.ErrScriptStartFailed, err), "exec failed"), "rule", rule.Path)
			return zerr.With(wrapped, "command", name)
		}

		wrapped := zerr.With(zerr.Wrap(errors.Join(domain.ErrScriptFailed, err), "script failed"), "rule", rule.Path)
		wrapped = zerr.With(wrapped, "exit_code", exitErr.ExitCode())
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			wrapped = zerr.With(wrapped, "timeout", inv.Timeout.String())
		}
		return wrapped
	}
	return nil
}

// command returns the program and arguments that run rule. Executable rules
// run directly; anything else is fed to the shell with -e.
func command(inv domain.Invocation, rule *domain.Rule, args []string) (string, []string) {
	if rule.Executable {
		return rule.Path, args
	}

	shell := inv.Shell
	if shell == "" {
		shell = domain.DefaultShell
	}
	flags := []string{"-e"}
	if inv.Trace {
		flags = append(flags, "-x")
	}
	return shell, slices.Concat(flags, []string{rule.Path}, args)
}

// selectOutput picks the scratch file holding the script's result. Writing
// both stdout and $3 is an error.
func selectOutput(target domain.Target, stdout, output *fs.Scratch) (*fs.Scratch, error) {
	stdoutSize, err := stdout.Size()
	if err != nil {
		return nil, err
	}
	outputSize, err := output.Size()
	if err != nil {
		return nil, err
	}

	switch {
	case stdoutSize > 0 && outputSize > 0:
		wrapped := zerr.With(zerr.Wrap(domain.ErrDualOutput, "ambiguous result"), "target", target.Name)
		wrapped = zerr.With(wrapped, "stdout_bytes", stdoutSize)
		return nil, zerr.With(wrapped, "output_bytes", outputSize)
	case outputSize > 0:
		return output, nil
	default:
		return stdout, nil
	}
}

// resolveEnvironment applies overrides on top of the base environment and
// marks the process as running under redo.
func resolveEnvironment(base []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(base)+len(overrides)+1)
	for _, entry := range base {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}
	envMap[domain.BuiltEnvVar] = "t"

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env rather than the current process environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" || strings.ContainsRune(file, filepath.Separator) {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
