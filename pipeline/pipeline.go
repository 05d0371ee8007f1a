/*
 * pipeline.go, part of gmxpipe.
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

// Package pipeline chains processes into the steps of a simulation setup, run in order.
package pipeline

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rmera/gmxpipe/proc"
)

// ErrSlice is returned when a range of steps is requested from a Pipeline.
var ErrSlice = errors.New("pipeline does not support slicing")

// Span is a range of step indexes. Pipelines can't be sliced, so
// Item returns ErrSlice for a Span key.
type Span struct {
	From, To int
}

// Step is a named process in a Pipeline
type Step struct {
	Name    string
	Process proc.Process
}

// Output is what a step left after running.
type Output struct {
	ReturnCode int    `yaml:"returncode"`
	Stdout     string `yaml:"stdout"`
	Stderr     string `yaml:"stderr"`
}

// StepError is returned when a step of a pipeline fails.
type StepError struct {
	Step string
	Err  error
}

func (E *StepError) Error() string {
	return fmt.Sprintf("pipeline step %s failed: %s", E.Step, E.Err.Error())
}

func (E *StepError) Unwrap() error { return E.Err }

// Pipeline is an ordered sequence of steps. The dry-run flag of the pipeline
// is pushed onto every step each time the flag or the steps change.
// A Pipeline is itself a proc.Process, so pipelines can be nested.
type Pipeline struct {
	Logger *slog.Logger //slog.Default() if nil
	dryRun bool
	steps  []Step
	output map[string]Output
	ran    []StepReport //output of each step run, in order
	runID  string
}

// New returns a pipeline with the given steps and dry-run flag.
func New(dryRun bool, steps ...Step) *Pipeline {
	P := &Pipeline{dryRun: dryRun}
	P.SetSteps(steps...)
	return P
}

func (P *Pipeline) logger() *slog.Logger {
	if P.Logger == nil {
		return slog.Default()
	}
	return P.Logger
}

func (P *Pipeline) sync() {
	for _, s := range P.steps {
		s.Process.SetDryRun(P.dryRun)
	}
}

func (P *Pipeline) DryRun() bool { return P.dryRun }

// SetDryRun sets the dry-run flag of the pipeline and all its steps.
func (P *Pipeline) SetDryRun(dry bool) {
	P.dryRun = dry
	P.sync()
}

// Append adds steps at the end of the pipeline.
func (P *Pipeline) Append(steps ...Step) {
	P.steps = append(P.steps, steps...)
	P.sync()
}

// Add is a shortcut to Append a single process.
func (P *Pipeline) Add(name string, p proc.Process) {
	P.Append(Step{name, p})
}

// SetSteps replaces all the steps of the pipeline.
func (P *Pipeline) SetSteps(steps ...Step) {
	P.steps = slices.Clone(steps)
	P.sync()
}

// Remove deletes the step i. Negative indexes count from the end.
func (P *Pipeline) Remove(i int) error {
	i, err := P.index(i)
	if err != nil {
		return err
	}
	P.steps = slices.Delete(P.steps, i, i+1)
	P.sync()
	return nil
}

// Len returns the number of steps.
func (P *Pipeline) Len() int { return len(P.steps) }

// Steps returns a copy of the steps.
func (P *Pipeline) Steps() []Step { return slices.Clone(P.steps) }

// All iterates over the names and processes of the steps, in order.
func (P *Pipeline) All() iter.Seq2[string, proc.Process] {
	return func(yield func(string, proc.Process) bool) {
		for _, s := range P.steps {
			if !yield(s.Name, s.Process) {
				return
			}
		}
	}
}

func (P *Pipeline) index(i int) (int, error) {
	if i < 0 {
		i += len(P.steps)
	}
	if i < 0 || i >= len(P.steps) {
		return 0, fmt.Errorf("step index %d out of range for a pipeline of %d steps", i, len(P.steps))
	}
	return i, nil
}

// Item returns the process for key, which can be an int, the index of the step
// (negative indexes count from the end) or a string, the name of the step. If several steps
// have the same name, the first one is returned. A Span key returns ErrSlice.
func (P *Pipeline) Item(key any) (proc.Process, error) {
	switch k := key.(type) {
	case int:
		i, err := P.index(k)
		if err != nil {
			return nil, err
		}
		return P.steps[i].Process, nil
	case string:
		for _, s := range P.steps {
			if s.Name == k {
				return s.Process, nil
			}
		}
		return nil, fmt.Errorf("no step named %q", k)
	case Span, *Span:
		return nil, ErrSlice
	}
	return nil, fmt.Errorf("invalid step key of type %T", key)
}

// BashScript returns the bash scripts of all steps, one per line, in order.
func (P *Pipeline) BashScript() string {
	s := make([]string, 0, len(P.steps))
	for _, st := range P.steps {
		s = append(s, st.Process.BashScript())
	}
	return strings.Join(s, "\n")
}

// Run runs all the steps in order, and records their output. The first failing step
// stops the pipeline, and its error is returned in a *StepError. The output of the steps
// that ran before it is kept.
func (P *Pipeline) Run() (int, error) {
	P.output = make(map[string]Output, len(P.steps))
	P.ran = make([]StepReport, 0, len(P.steps))
	P.runID = uuid.NewString()
	for _, s := range P.steps {
		if P.dryRun {
			P.logger().Debug("running step", "step", s.Name, "dry_run", true)
		} else {
			P.logger().Info("running step", "step", s.Name)
		}
		code, err := s.Process.Run()
		if err != nil {
			P.logger().Error("step failed", "step", s.Name, "returncode", code, "error", err)
			return code, &StepError{Step: s.Name, Err: err}
		}
		P.logger().Debug("step finished", "step", s.Name, "returncode", code)
		o := Output{ReturnCode: code, Stdout: s.Process.RecallStdout(), Stderr: s.Process.RecallStderr()}
		P.output[s.Name] = o
		P.ran = append(P.ran, StepReport{Name: s.Name, Output: o})
	}
	return 0, nil
}

// RunOutput returns the output of each step in the last run, by step name.
// If several steps share a name, the entry holds the output of the last of them
// that ran. Report keeps them apart.
func (P *Pipeline) RunOutput() map[string]Output {
	ret := make(map[string]Output, len(P.output))
	for k, v := range P.output {
		ret[k] = v
	}
	return ret
}

// Stdouts returns the current standard output of each step, by name.
func (P *Pipeline) Stdouts() map[string]string {
	ret := make(map[string]string, len(P.steps))
	for _, s := range P.steps {
		ret[s.Name] = s.Process.RecallStdout()
	}
	return ret
}

// Stderrs returns the current standard error of each step, by name.
func (P *Pipeline) Stderrs() map[string]string {
	ret := make(map[string]string, len(P.steps))
	for _, s := range P.steps {
		ret[s.Name] = s.Process.RecallStderr()
	}
	return ret
}

// RecallStdout returns the standard output of all steps, in order.
func (P *Pipeline) RecallStdout() string {
	var b strings.Builder
	for _, s := range P.steps {
		b.WriteString(s.Process.RecallStdout())
	}
	return b.String()
}

// RecallStderr returns the standard error of all steps, in order.
func (P *Pipeline) RecallStderr() string {
	var b strings.Builder
	for _, s := range P.steps {
		b.WriteString(s.Process.RecallStderr())
	}
	return b.String()
}
