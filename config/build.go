/*
 * build.go, part of gmxpipe.
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

package config

import (
	"fmt"
	"log/slog"

	"github.com/rmera/gmxpipe/pipeline"
	"github.com/rmera/gmxpipe/proc"
	"github.com/rmera/gmxpipe/top"
)

// Step commands that are not Gromacs tools.
const (
	FileTreeCommand = "mkdir"
	TopologyCommand = "topology"
)

// TopologyData returns the topology data declared in the configuration.
func (C *Config) TopologyData() *top.Data {
	D := top.NewData()
	for _, f := range C.Topology.Files {
		D.AddMoleculeFile(f)
	}
	for _, m := range C.Topology.Molecules {
		D.AddFragment(m.Symbol, m.Number)
	}
	return D
}

// Build returns the pipeline declared in the configuration. A nil logger means slog.Default().
func (C *Config) Build(logger *slog.Logger) (*pipeline.Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	steps := make([]pipeline.Step, 0, len(C.Steps))
	for i, s := range C.Steps {
		p, err := C.process(s, logger)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, s.Command, err)
		}
		name := s.Name
		if name == "" {
			name = s.Command
		}
		steps = append(steps, pipeline.Step{Name: name, Process: p})
	}
	P := pipeline.New(C.DryRun, steps...)
	P.Logger = logger
	return P, nil
}

func (C *Config) process(s StepConfig, logger *slog.Logger) (proc.Process, error) {
	switch s.Command {
	case FileTreeCommand:
		return proc.NewFileTree(C.SimulationDir(), C.Folders...), nil
	case TopologyCommand:
		data := C.TopologyData()
		if C.Verify {
			R := top.NewReader()
			R.Logger = logger
			R.Defines = C.Defines
			if err := data.Verify(R); err != nil {
				return nil, err
			}
		}
		return top.NewWriter(data, C.Name, C.Directory), nil
	}
	var cmd *proc.Command
	var err error
	if s.Command == "mdrun" && s.MPI {
		cmd = proc.NewMdrun(max(s.NProc, 1))
	} else if cmd, err = proc.NewGromacs(C.Executable, s.Command); err != nil {
		return nil, err
	}
	if flags, ok := C.Flags[s.Command]; ok {
		cmd.Flags = flags
	}
	cmd.UserInput = s.Input
	cmd.Logger = logger
	opts := make([]proc.Option, 0, len(s.Options))
	for _, o := range s.Options {
		opts = append(opts, proc.Option{Flag: o.Flag, Value: o.Value})
	}
	if check := cmd.SetOptions(opts...); C.StrictFlags && !check.OK() {
		return nil, fmt.Errorf("flags not accepted by %s: %v", s.Command, check.Rejected)
	}
	return cmd, nil
}
