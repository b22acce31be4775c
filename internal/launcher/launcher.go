// Package launcher runs the configured opener command against a plan file.
package launcher

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	apperrors "github.com/kingrea/planpick/internal/errors"
)

// Launcher opens path with the command described by template.
type Launcher interface {
	Launch(template, path string) error
}

// ParseTemplate splits a command template on whitespace into the executable
// and its fixed leading arguments.
func ParseTemplate(template string) (string, []string, error) {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return "", nil, apperrors.Configuration("launcher: empty command")
	}
	return fields[0], fields[1:], nil
}

// Exec starts the command as a child process and waits for it. Nil streams
// inherit the current process's stdin, stdout and stderr.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Launch runs `<template tokens...> <absolute path>` and blocks until the
// child exits. There is no timeout and no retry.
func (e Exec) Launch(template, path string) error {
	program, args, err := ParseTemplate(template)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return apperrors.IO(err, "launcher: resolve %s", path)
	}

	cmd := exec.Command(program, append(args, abs)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if e.Stdin != nil {
		cmd.Stdin = e.Stdin
	}
	if e.Stdout != nil {
		cmd.Stdout = e.Stdout
	}
	if e.Stderr != nil {
		cmd.Stderr = e.Stderr
	}

	if err := cmd.Start(); err != nil {
		return apperrors.Execution(err, "launcher: failed to execute %s", template)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &apperrors.NonZeroExitError{
				Command: template,
				Status:  exitErr.ExitCode(),
				State:   exitErr.ProcessState.String(),
			}
		}
		return apperrors.Execution(err, "launcher: wait for %s", template)
	}
	return nil
}
