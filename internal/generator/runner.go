package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"git.home.luguber.info/inful/kbits/internal/logfields"
)

var (
	// ErrGeneratorNotFound indicates the generator command is not on PATH.
	ErrGeneratorNotFound = errors.New("generator command not found")
	// ErrGeneratorFailed indicates the generator ran and exited with failure.
	ErrGeneratorFailed = errors.New("generator execution failed")
)

// Runner executes a generator invocation.
type Runner interface {
	Execute(ctx context.Context, inv Invocation) error
}

// BinaryRunner runs the generator as a child process. Output is always
// captured for diagnostics and additionally copied to Stdout and Stderr when
// they are set.
type BinaryRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (b *BinaryRunner) Execute(ctx context.Context, inv Invocation) error {
	path, err := exec.LookPath(inv.Command)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGeneratorNotFound, err)
	}

	// #nosec G204 - command and args come from the site's own settings
	cmd := exec.CommandContext(ctx, path, inv.Args...)
	cmd.Dir = inv.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, b.Stdout)
	cmd.Stderr = tee(&stderr, b.Stderr)
	slog.Debug("Invoking generator", logfields.Command(path), slog.String("dir", inv.Dir), slog.Any("args", inv.Args))

	err = cmd.Run()

	outStr, errStr := stdout.String(), stderr.String()
	if outStr != "" {
		slog.Debug("generator stdout", "output", outStr)
	}
	if errStr != "" && b.Stderr == nil {
		slog.Warn("generator stderr", "error_output", errStr)
	}

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// The generator reports errors on either stream.
		output := errStr
		if output == "" {
			output = outStr
		}
		if output != "" {
			return fmt.Errorf("%w: %w: %s", ErrGeneratorFailed, err, output)
		}
		return fmt.Errorf("%w: %w", ErrGeneratorFailed, err)
	}
	return nil
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// NoopRunner performs no generation; useful for dry runs and tests.
type NoopRunner struct{}

func (NoopRunner) Execute(_ context.Context, inv Invocation) error {
	slog.Debug("NoopRunner skipping generator", logfields.Command(inv.Command), slog.String("dir", inv.Dir))
	return nil
}
