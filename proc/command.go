/*
 * command.go, part of gmxpipe.
 *
 * Copyright 2024 The gmxpipe Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package proc

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"slices"
	"strings"
)

// HelpFlag is accepted by every command.
const HelpFlag = "-h"

// Option is a command line flag and its value. A true value adds only the
// flag, a false or nil value omits the option, anything else adds "flag value".
type Option struct {
	Flag  string
	Value any
}

// OptionCheck is the result of filtering options against the flags a command accepts.
type OptionCheck struct {
	Accepted []string
	Rejected []string
}

// OK returns true if no option was rejected.
func (O OptionCheck) OK() bool { return len(O.Rejected) == 0 }

// Command is an external program, usually a Gromacs tool, run as executable + task + options.
type Command struct {
	Base
	Executable string   //"gmx" for Gromacs. If empty the task is run directly
	Task       string   //i.e. "grompp"
	Flags      []string //accepted flags, besides HelpFlag
	UserInput  string   //if not empty, piped to the standard input of the command
	Logger     *slog.Logger
	options    []Option
}

// NewCommand returns a Command, in dry-run mode, accepting only the given flags.
func NewCommand(executable, task string, flags ...string) *Command {
	C := &Command{Executable: executable, Task: task, Flags: flags}
	C.SetDryRun(true)
	return C
}

func (C *Command) logger() *slog.Logger {
	if C.Logger == nil {
		return slog.Default()
	}
	return C.Logger
}

// Accepts returns true if flag is accepted by the command.
func (C *Command) Accepts(flag string) bool {
	return flag == HelpFlag || slices.Contains(C.Flags, flag)
}

// SetOptions replaces the options of the command with the accepted ones in opts,
// in the given order. The rejected flags are logged and returned in the check.
func (C *Command) SetOptions(opts ...Option) OptionCheck {
	var check OptionCheck
	C.options = make([]Option, 0, len(opts))
	for _, o := range opts {
		if !C.Accepts(o.Flag) {
			check.Rejected = append(check.Rejected, o.Flag)
			continue
		}
		check.Accepted = append(check.Accepted, o.Flag)
		C.options = append(C.options, o)
	}
	if !check.OK() {
		C.logger().Warn("flags not accepted", "command", C.Task, "rejected", check.Rejected)
	}
	return check
}

// Options returns a copy of the options of the command.
func (C *Command) Options() []Option {
	return slices.Clone(C.options)
}

// CommandLine returns the command, with its options, as it would be typed in a terminal.
func (C *Command) CommandLine() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(C.Executable + " " + C.Task))
	for _, o := range C.options {
		switch v := o.Value.(type) {
		case nil:
		case bool:
			if v {
				b.WriteString(" " + o.Flag)
			}
		default:
			fmt.Fprintf(&b, " %s %v", o.Flag, v)
		}
	}
	return b.String()
}

func (C *Command) input() string {
	return strings.Join(strings.Fields(C.UserInput), " ")
}

// BashScript returns the command line, with the user input piped in through echo, if any.
func (C *Command) BashScript() string {
	if C.UserInput != "" {
		return fmt.Sprintf("echo '%s' | %s", C.UserInput, C.CommandLine())
	}
	return C.CommandLine()
}

// Run runs the command and waits for it to finish. In dry-run mode nothing is run and
// a return code of 0 with empty output is recorded. Every call overwrites the recorded
// output, a command that could not be started records a return code of -1.
func (C *Command) Run() (int, error) {
	if C.DryRun() {
		C.Record(nil, nil, 0)
		return 0, nil
	}
	line := C.CommandLine()
	f := strings.Fields(line)
	if len(f) == 0 {
		C.Record(nil, nil, -1)
		return -1, &ExecutionError{Command: line, ReturnCode: -1, Stderr: "empty command", deco: []string{"Run"}}
	}
	var stdout, stderr bytes.Buffer
	command := exec.Command(f[0], f[1:]...)
	command.Stdout = &stdout
	command.Stderr = &stderr
	if C.UserInput != "" {
		command.Stdin = strings.NewReader(C.input() + "\n")
	}
	err := command.Run()
	var exiterr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exiterr):
		C.Record(stdout.Bytes(), stderr.Bytes(), exiterr.ExitCode())
		return exiterr.ExitCode(), &ExecutionError{Command: line, ReturnCode: exiterr.ExitCode(), Stderr: stderr.String(), deco: []string{"Run"}}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		C.Record(stdout.Bytes(), stderr.Bytes(), -1)
		return -1, &NotFoundError{Command: f[0], Err: err, deco: []string{"Run"}}
	default:
		C.Record(stdout.Bytes(), stderr.Bytes(), -1)
		return -1, fmt.Errorf("can't run %s: %w", line, err)
	}
	C.Record(stdout.Bytes(), stderr.Bytes(), 0)
	return 0, nil
}
