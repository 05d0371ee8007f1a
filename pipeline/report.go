/*
 * report.go, part of gmxpipe.
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

package pipeline

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// StepReport is the output of one step in a Report.
type StepReport struct {
	Name   string `yaml:"name"`
	Output `yaml:",inline"`
}

// Report summarizes the last run of a pipeline.
type Report struct {
	ID     string       `yaml:"id"`
	DryRun bool         `yaml:"dry_run"`
	Steps  []StepReport `yaml:"steps"`
}

// Report returns the results of the last run, one entry per step run, in pipeline order.
// Steps that didn't run are left out, and steps sharing a name keep their own output.
// The ID is empty if the pipeline has not run.
func (P *Pipeline) Report() *Report {
	return &Report{ID: P.runID, DryRun: P.dryRun, Steps: slices.Clone(P.ran)}
}

// YAML returns the report in YAML format.
func (R *Report) YAML() ([]byte, error) {
	return yaml.Marshal(R)
}
