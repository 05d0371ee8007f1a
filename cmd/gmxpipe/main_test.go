/*
 * main_test.go, part of gmxpipe.
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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScript(Te *testing.T) {
	var out, errout bytes.Buffer
	if code := run([]string{"-c", "../../config/testdata/gmxpipe.yaml", "script"}, &out, &errout); code != 0 {
		Te.Fatalf("exit code %d: %s", code, errout.String())
	}
	if !strings.Contains(out.String(), "gmx genbox -cp box.gro -nmol 216 -try\n") {
		Te.Errorf("unexpected script:\n%s", out.String())
	}
}

func TestRunReport(Te *testing.T) {
	var out, errout bytes.Buffer
	report := filepath.Join(Te.TempDir(), "report.yaml")
	args := []string{"-c", "../../config/testdata/gmxpipe.yaml", "run", "--report", report}
	if code := run(args, &out, &errout); code != 0 {
		Te.Fatalf("exit code %d: %s", code, errout.String())
	}
	b, err := os.ReadFile(report)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(string(b), "dry_run: true") || !strings.Contains(string(b), "name: production") {
		Te.Errorf("unexpected report:\n%s", b)
	}
}

func TestReaders(Te *testing.T) {
	var out, errout bytes.Buffer
	cfg := "../../config/testdata/gmxpipe.yaml"
	if code := run([]string{"-c", cfg, "top", "../../top/testdata/example.itp"}, &out, &errout); code != 0 {
		Te.Fatalf("exit code %d: %s", code, errout.String())
	}
	if !strings.Contains(out.String(), "So\tatoms: 3") {
		Te.Errorf("unexpected top output:\n%s", out.String())
	}
	out.Reset()
	if code := run([]string{"-c", cfg, "gro", "-n", "1", "-s", "PS1", "../../traj/gro/testdata/example.gro"}, &out, &errout); code != 0 {
		Te.Fatalf("exit code %d: %s", code, errout.String())
	}
	if !strings.HasPrefix(out.String(), "frames: 1\tatoms: 2\n") {
		Te.Errorf("unexpected gro output:\n%s", out.String())
	}
	if code := run([]string{"-c", cfg, "gro", "missing.gro"}, &out, &errout); code != 1 {
		Te.Errorf("missing file should exit with 1, got %d", code)
	}
}

func TestUsage(Te *testing.T) {
	var out, errout bytes.Buffer
	if code := run(nil, &out, &errout); code != 2 {
		Te.Errorf("no command should exit with 2, got %d", code)
	}
	if !strings.Contains(errout.String(), "Usage: gmxpipe") {
		Te.Errorf("usage not printed: %s", errout.String())
	}
}

func TestRunReportOnFailure(Te *testing.T) {
	var out, errout bytes.Buffer
	dir := Te.TempDir()
	report := filepath.Join(dir, "report.yaml")
	Te.Setenv("GMXPIPE_DIRECTORY", dir)
	Te.Setenv("GMXPIPE_EXECUTABLE", "surely-not-gromacs")
	args := []string{"-c", "testdata/fail.yaml", "run", "--report", report}
	if code := run(args, &out, &errout); code != 1 {
		Te.Fatalf("a failing step should exit with 1, got %d", code)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		Te.Fatalf("report not written after a failure: %v", err)
	}
	if !strings.Contains(string(b), "name: first") || strings.Contains(string(b), "name: broken") {
		Te.Errorf("unexpected partial report:\n%s", b)
	}
}

func TestTopDefines(Te *testing.T) {
	var out, errout bytes.Buffer
	args := []string{"-c", "../../config/testdata/gmxpipe.yaml", "top", "-D", "FLEXIBLE", "../../top/testdata/flexible.itp"}
	if code := run(args, &out, &errout); code != 0 {
		Te.Fatalf("exit code %d: %s", code, errout.String())
	}
	if !strings.Contains(out.String(), "SOL\tatoms: 3\tbonds: 2") {
		Te.Errorf("unexpected top output:\n%s", out.String())
	}
}
