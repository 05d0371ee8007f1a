/*
 * writer.go, part of gmxpipe.
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
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/gmxpipe/proc"
)

// Writer is a process that writes the human-readable topology (top) file of a
// Gromacs simulation.
type Writer struct {
	proc.Base
	Data      *Data
	Directory string //where the file is written
	TopName   string //name of the file
	SimName   string //reference name of the simulation, in the [ system ] section
}

// NewWriter returns a Writer, in dry-run mode, for a simulation called simname. The file
// is <workdir>/<simname>/<simname>_topol.top.
func NewWriter(data *Data, simname, workdir string) *Writer {
	W := &Writer{
		Data:      data,
		SimName:   simname,
		Directory: filepath.Join(workdir, simname),
		TopName:   NewGromacsRegistry(simname).TopFile(),
	}
	W.SetDryRun(true)
	return W
}

// Path returns the path of the topology file
func (W *Writer) Path() string {
	return filepath.Join(W.Directory, W.TopName)
}

// Topology returns the contents of the topology file.
func (W *Writer) Topology() string {
	var b strings.Builder
	if W.Data != nil {
		for _, f := range W.Data.MoleculeFiles {
			fmt.Fprintf(&b, "#include \"%s\"\n", f)
		}
	}
	fmt.Fprintf(&b, "\n[ system ]\n%s\n", W.SimName)
	b.WriteString("\n[ molecules ]\n")
	if W.Data != nil {
		for _, e := range W.Data.Ledger() {
			fmt.Fprintf(&b, "%s %d\n", e.Symbol, e.Number)
		}
	}
	return b.String()
}

// BashScript returns a here-document that writes the topology file.
func (W *Writer) BashScript() string {
	return fmt.Sprintf("cat <<EOM > %s\n%sEOM", W.Path(), W.Topology())
}

// Run writes the topology file, unless in dry-run mode.
func (W *Writer) Run() (int, error) {
	if !W.DryRun() {
		if err := os.WriteFile(W.Path(), []byte(W.Topology()), 0o644); err != nil {
			W.Record(nil, []byte(err.Error()), 1)
			return 1, fmt.Errorf("can't write topology %s: %w", W.Path(), err)
		}
	}
	W.Record(nil, nil, 0)
	return 0, nil
}
