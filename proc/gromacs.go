/*
 * gromacs.go, part of gmxpipe.
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
	"fmt"
	"slices"
)

// Executable is the default Gromacs executable.
const Executable = "gmx"

// DefaultFlags contains the flags accepted by each Gromacs tool in the catalogue.
// See http://manual.gromacs.org/documentation/2018/onlinehelp/
var DefaultFlags = map[string][]string{
	"genconf": {"-f", "-o", "-trj", "-nbox"},

	//as of Gromacs 5.0 genbox was split into solvate and insert-molecules.
	"genbox": {"-cp", "-cs", "-ci", "-maxsol", "-o", "-box", "-try", "-nmol"},

	"grompp": {"-f", "-c", "-r", "-rb", "-n", "-p", "-t", "-e", "-ref", "-po", "-pp",
		"-o", "-idm", "-time", "-maxwarn"},

	"genion": {"-s", "-n", "-p", "-o", "-np", "-pname", "-pq", "-nn", "-nname", "-nq",
		"-rmin", "-seed", "-conc"},

	"mdrun": {"-s", "-g", "-e", "-o", "-x", "-c", "-cpo"},

	"select": {"-f", "-s", "-n", "-os", "-oc", "-oi", "-on", "-om", "-of", "-ofpdb",
		"-olt", "-b", "-e", "-dt", "-tu", "-fgroup", "-xvg", "-rmpbc", "-normpbc", "-pbc",
		"-nopbc", "-sf", "-selrpos", "-seltype", "-select", "-norm", "-nonorm", "-resnr",
		"-pdbatoms", "-cumlt", "-nocumlt"},

	"trjconv": {"-f", "-s", "-n", "-fr", "-sub", "-drop", "-o", "-b", "-e", "-tu", "-w",
		"-now", "-xvg", "-skip", "-dt", "-round", "-noround", "-dump", "-timestep", "-pbc",
		"-ur", "-centre", "-nocentre", "-boxcenter", "-box", "-trans", "-shift", "-fit",
		"-ndec", "-vel", "-novel", "-force", "-noforce", "-trunc", "-exec", "-split", "-sep",
		"-nosep", "-nzero", "-dropunder", "-dropover", "-conect", "-noconect"},
}

// Tools returns the names of the Gromacs tools in the catalogue, sorted.
func Tools() []string {
	ret := make([]string, 0, len(DefaultFlags))
	for k := range DefaultFlags {
		ret = append(ret, k)
	}
	slices.Sort(ret)
	return ret
}

// NewGromacs returns, in dry-run mode, the Gromacs tool task of the catalogue run through
// executable (Executable if empty). flags, if given, replace the default accepted flags.
func NewGromacs(executable, task string, flags ...string) (*Command, error) {
	def, ok := DefaultFlags[task]
	if !ok {
		return nil, fmt.Errorf("unknown Gromacs tool %q", task)
	}
	if len(flags) == 0 {
		flags = def
	}
	if executable == "" {
		executable = Executable
	}
	return NewCommand(executable, task, slices.Clone(flags)...), nil
}

func mustGromacs(task string) *Command {
	C, _ := NewGromacs(Executable, task)
	return C
}

func NewGenconf() *Command { return mustGromacs("genconf") }
func NewGenbox() *Command  { return mustGromacs("genbox") }
func NewGrompp() *Command  { return mustGromacs("grompp") }
func NewGenion() *Command  { return mustGromacs("genion") }
func NewSelect() *Command  { return mustGromacs("select") }
func NewTrjconv() *Command { return mustGromacs("trjconv") }

// NewMdrun returns a Gromacs mdrun command. If nproc is larger than 0,
// the MPI version is run in nproc processes through mpirun.
func NewMdrun(nproc int) *Command {
	C := mustGromacs("mdrun")
	if nproc > 0 {
		C.Executable = ""
		C.Task = fmt.Sprintf("mpirun -np %d mdrun_mpi", nproc)
	}
	return C
}
