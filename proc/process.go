/*
 * process.go, part of gmxpipe.
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

// Process is anything that can be run as a step of a simulation setup.
type Process interface {
	DryRun() bool
	SetDryRun(bool)
	BashScript() string //pure, it never runs anything
	Run() (int, error)  //returns the return code of the process
	RecallStdout() string
	RecallStderr() string
}

// State is the state of a Process
type State int

const (
	Built    State = iota //configured, not run yet
	Executed              //run at least once, output captured
)

func (S State) String() string {
	if S == Executed {
		return "executed"
	}
	return "built"
}

// Base implements the bookkeeping common to all processes: the dry-run
// flag and the captured output of the last run. It is meant to be embedded.
type Base struct {
	dryRun     bool
	state      State
	stdout     []byte
	stderr     []byte
	returnCode int
}

func (B *Base) DryRun() bool       { return B.dryRun }
func (B *Base) SetDryRun(dry bool) { B.dryRun = dry }

// State returns the state of the process.
func (B *Base) State() State { return B.state }

// ReturnCode returns the return code of the last run.
func (B *Base) ReturnCode() int { return B.returnCode }

func (B *Base) RecallStdout() string { return string(B.stdout) }
func (B *Base) RecallStderr() string { return string(B.stderr) }

// Record stores the output of a run, overwriting the previous one,
// and marks the process as executed.
func (B *Base) Record(stdout, stderr []byte, code int) {
	B.stdout = stdout
	B.stderr = stderr
	B.returnCode = code
	B.state = Executed
}
