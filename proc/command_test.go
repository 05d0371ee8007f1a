/*
 * command_test.go, part of gmxpipe.
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
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func quiet(C *Command) *Command {
	C.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return C
}

func needs(Te *testing.T, programs ...string) {
	for _, p := range programs {
		if _, err := exec.LookPath(p); err != nil {
			Te.Skipf("%s not available", p)
		}
	}
}

func TestCommandLine(Te *testing.T) {
	C := NewCommand("genbox", "", "-cp", "-nmol", "-try")
	C.SetOptions(Option{"-cp", "a.gro"}, Option{"-nmol", 30}, Option{"-try", true})
	line := C.BashScript()
	if line != "genbox -cp a.gro -nmol 30 -try" {
		Te.Errorf("unexpected command line %q", line)
	}
	if strings.Contains(line, "true") {
		Te.Errorf("boolean value written: %s", line)
	}
	C.SetOptions(Option{"-cp", nil}, Option{"-try", false})
	if line := C.CommandLine(); line != "genbox" {
		Te.Errorf("nil and false options should be omitted: %q", line)
	}
}

func TestSetOptions(Te *testing.T) {
	var buf bytes.Buffer
	C := NewGrompp()
	C.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	check := C.SetOptions(Option{"-f", "em.mdp"}, Option{"-fx", "x"}, Option{"-h", true}, Option{"-c", "conf.gro"})
	if check.OK() || len(check.Rejected) != 1 || check.Rejected[0] != "-fx" {
		Te.Errorf("unexpected check %+v", check)
	}
	if len(check.Accepted) != 3 {
		Te.Errorf("unexpected accepted flags %v", check.Accepted)
	}
	if line := C.CommandLine(); line != "gmx grompp -f em.mdp -h -c conf.gro" {
		Te.Errorf("unexpected command line %q", line)
	}
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "-fx") {
		Te.Errorf("rejected flags not logged: %s", buf.String())
	}
	if len(C.Options()) != 3 {
		Te.Errorf("wrong number of options %d", len(C.Options()))
	}
}

func TestUserInput(Te *testing.T) {
	C := NewGenion()
	C.UserInput = "SOL"
	C.SetOptions(Option{"-s", "ions.tpr"})
	if s := C.BashScript(); s != "echo 'SOL' | gmx genion -s ions.tpr" {
		Te.Errorf("unexpected script %q", s)
	}
}

func TestDryRun(Te *testing.T) {
	C := quiet(NewCommand("surely-not-a-program", "x", "-a"))
	C.SetOptions(Option{"-a", 1})
	if C.State() != Built {
		Te.Errorf("new command should be built, is %v", C.State())
	}
	code, err := C.Run()
	if code != 0 || err != nil || C.RecallStdout() != "" || C.RecallStderr() != "" {
		Te.Errorf("dry run: %d %v %q %q", code, err, C.RecallStdout(), C.RecallStderr())
	}
	if C.State() != Executed {
		Te.Errorf("state should be executed, is %v", C.State())
	}
}

func TestRun(Te *testing.T) {
	needs(Te, "echo")
	C := NewCommand("echo", "hello", "-n")
	C.SetDryRun(false)
	code, err := C.Run()
	if code != 0 || err != nil {
		Te.Fatal(code, err)
	}
	if C.RecallStdout() != "hello\n" {
		Te.Errorf("unexpected stdout %q", C.RecallStdout())
	}
}

func TestRunInput(Te *testing.T) {
	needs(Te, "uniq")
	C := NewCommand("", "uniq")
	C.UserInput = "  Protein   SOL "
	C.SetDryRun(false)
	if _, err := C.Run(); err != nil {
		Te.Fatal(err)
	}
	if C.RecallStdout() != "Protein SOL\n" {
		Te.Errorf("unexpected stdout %q", C.RecallStdout())
	}
}

func TestRunErrors(Te *testing.T) {
	C := NewCommand("surely-not-a-program", "x")
	C.SetDryRun(false)
	var nferr *NotFoundError
	if _, err := C.Run(); !errors.As(err, &nferr) || nferr.Command != "surely-not-a-program" {
		Te.Errorf("expected a NotFoundError, got %v", err)
	}
	needs(Te, "sh")
	script := filepath.Join(Te.TempDir(), "fail.sh")
	if err := os.WriteFile(script, []byte("echo broken >&2\nexit 3\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	C = NewCommand("sh", script)
	C.SetDryRun(false)
	code, err := C.Run()
	var exerr *ExecutionError
	if !errors.As(err, &exerr) || code != 3 || exerr.ReturnCode != 3 {
		Te.Fatalf("expected an ExecutionError with code 3, got %d %v", code, err)
	}
	if !strings.Contains(err.Error(), "Error code: 3, 'broken'") {
		Te.Errorf("unexpected message %s", err.Error())
	}
	if C.ReturnCode() != 3 || C.RecallStderr() != "broken\n" {
		Te.Errorf("output not recorded: %d %q", C.ReturnCode(), C.RecallStderr())
	}
}

func TestRunOverwritesOutput(Te *testing.T) {
	needs(Te, "echo")
	C := NewCommand("echo", "hi")
	C.SetDryRun(false)
	if _, err := C.Run(); err != nil || C.RecallStdout() != "hi\n" {
		Te.Fatalf("first run: %v %q", err, C.RecallStdout())
	}
	C.Executable = "surely-not-a-program"
	code, err := C.Run()
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		Te.Fatalf("expected a NotFoundError, got %v", err)
	}
	if code != -1 || C.ReturnCode() != -1 {
		Te.Errorf("return code after a failed start: %d %d", code, C.ReturnCode())
	}
	if C.RecallStdout() != "" || C.RecallStderr() != "" {
		Te.Errorf("output of the previous run kept: %q %q", C.RecallStdout(), C.RecallStderr())
	}
	C.Executable, C.Task = "", ""
	if code, err := C.Run(); err == nil || code != -1 || C.ReturnCode() != -1 {
		Te.Errorf("empty command: %d %v", code, err)
	}
}
