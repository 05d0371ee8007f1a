/*
 * registry.go, part of gmxpipe.
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

package top

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Gromacs file types
const (
	Coordinate           = "coordinate"
	Binary               = "binary"
	Topology             = "topology"
	Energy               = "energy"
	Log                  = "log"
	State                = "state"
	CompressedTrajectory = "compressed trajectory"
	Trajectory           = "trajectory"
	Molecule             = "molecule"
	Index                = "index"
	Parameter            = "parameter"
)

// Registry formats file names for the file types of a simulation program.
// Extensions maps each file type to its extension (without the dot).
type Registry struct {
	Extensions map[string]string
}

// FormatFileName returns name with the extension for the file type ftype.
// An existing extension is removed first if it is one of the registry's.
func (R *Registry) FormatFileName(name, ftype string) (string, error) {
	ext, ok := R.Extensions[ftype]
	if !ok {
		return "", fmt.Errorf("unknown file type %q", ftype)
	}
	if e := strings.TrimPrefix(filepath.Ext(name), "."); e != "" {
		for _, v := range R.Extensions {
			if v == e {
				name = strings.TrimSuffix(name, "."+e)
				break
			}
		}
	}
	return name + "." + ext, nil
}

// GromacsRegistry names the most common files of a Gromacs simulation. See
// http://manual.gromacs.org/documentation/2018/user-guide/file-formats.html
type GromacsRegistry struct {
	Registry
	Prefix string
}

// NewGromacsRegistry returns a registry where all file names start with prefix.
func NewGromacsRegistry(prefix string) *GromacsRegistry {
	return &GromacsRegistry{
		Registry: Registry{Extensions: map[string]string{
			Coordinate:           "gro",
			Binary:               "tpr",
			Topology:             "top",
			Energy:               "edr",
			Log:                  "log",
			State:                "cpt",
			CompressedTrajectory: "xtc",
			Trajectory:           "trr",
			Molecule:             "itp",
			Index:                "ndx",
			Parameter:            "mdp",
		}},
		Prefix: prefix,
	}
}

func (G *GromacsRegistry) name(suffix, ftype string) string {
	//all the types used here are in the registry
	n, _ := G.FormatFileName(G.Prefix+suffix, ftype)
	return n
}

func (G *GromacsRegistry) CoordFile() string    { return G.name("_coord", Coordinate) }
func (G *GromacsRegistry) BinaryFile() string   { return G.name("_topol", Binary) }
func (G *GromacsRegistry) TopFile() string      { return G.name("_topol", Topology) }
func (G *GromacsRegistry) EnergyFile() string   { return G.name("_ener", Energy) }
func (G *GromacsRegistry) TrajFile() string     { return G.name("_traj", Trajectory) }
func (G *GromacsRegistry) CompTrajFile() string { return G.name("_traj", CompressedTrajectory) }
func (G *GromacsRegistry) LogFile() string      { return G.name("_md", Log) }
func (G *GromacsRegistry) StateFile() string    { return G.name("_state", State) }
