package integrationtests

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"testing"
)

// ricatBinary is built with "go build -o ricat ./cmd/ricat" from the
// repository root.
const ricatBinary = "../ricat"

// runCommand runs cmdStr, writes its standard output to stdoutFile and
// returns the exit code together with standard error.
func runCommand(ctx context.Context, t *testing.T, stdinFile, stdoutFile, cmdStr string,
	args ...string) (int, string, error) {

	if _, err := os.Stat(cmdStr); err != nil {
		return 0, "", fmt.Errorf("no such executable '%s', please compile first: %v", cmdStr, err)
	}

	t.Log("Creating stdout file", stdoutFile)
	fd, err := os.Create(stdoutFile)
	if err != nil {
		return 0, "", err
	}
	defer fd.Close()

	if logger := GetTestLogger(ctx); logger != nil {
		logger.LogCommand(cmdStr, args)
	}
	t.Log("Running command", cmdStr, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, cmdStr, args...)
	cmd.Stdout = fd
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if stdinFile != "" {
		in, err := os.Open(stdinFile)
		if err != nil {
			return 0, "", err
		}
		defer in.Close()
		cmd.Stdin = in
	}

	err = cmd.Run()
	t.Log("Done running command!", err)

	code, codeErr := exitCodeFromError(err)
	if codeErr != nil {
		return code, stderr.String(), codeErr
	}
	return code, stderr.String(), nil
}

// startCommand starts cmdStr with a pipe as standard input. Lines written to
// the returned writer reach the command as they are written.
func startCommand(ctx context.Context, t *testing.T, cmdStr string,
	args ...string) (io.WriteCloser, io.ReadCloser, <-chan error, error) {

	if _, err := os.Stat(cmdStr); err != nil {
		return nil, nil, nil, fmt.Errorf("no such executable '%s', please compile first: %v", cmdStr, err)
	}

	t.Log(cmdStr, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, cmdStr, args...)

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, nil, err
	}

	cmdErrCh := make(chan error, 1)
	go func() {
		cmdErrCh <- cmd.Wait()
	}()

	return stdinPipe, stdoutPipe, cmdErrCh, nil
}

func exitCodeFromError(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	if exitError, ok := err.(*exec.ExitError); ok {
		ws := exitError.Sys().(syscall.WaitStatus)
		return ws.ExitStatus(), nil
	}
	return 0, fmt.Errorf("unable to get process exit code from error: %w", err)
}
