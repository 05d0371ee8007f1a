/*
 * doc.go, part of gmxpipe.
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

/*
Package chem is the root package of gmxpipe. It provides the particle, fragment and
molecule structures used to describe the contents of a Gromacs simulation, the
errors shared by all the packages in the library and a few helpers to load the
text files Gromacs uses.


	**gmxpipe Capabilities**

	Reads Gromacs molecule topologies (itp) into fragments with their particles and bonds
	(package top).

	Reads Gromacs coordinate files (gro), with one or more frames, into gonum matrices
	(package traj/gro).

	Writes simulation topologies (top) and keeps track of the fragments in a simulation.

	Builds, previews (dry-run) and runs Gromacs commands, alone or chained in a
	pipeline (packages proc and pipeline). A pipeline can be written as a bash script.

	Plots the simulation cell along a trajectory (package chemplot).

Input files ending in .zst are decompressed on the fly.
*/
package chem
