/*
 * reader.go, part of gmxpipe.
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

package gro

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	chem "github.com/rmera/gmxpipe"
	"gonum.org/v1/gonum/mat"
)

// Ext is the extension of Gromacs coordinate files.
const Ext = "gro"

// Frames contains the data read from a Gromacs coordinate file.
type Frames struct {
	MolRef  []string     //molecule reference of each atom, i.e. "12SOL"
	AtomRef []string     //atom reference of each atom
	Coords  []*mat.Dense //one natoms x 3 matrix per frame
	Dims    *mat.Dense   //nframes x 3, the box of each frame
}

// Len returns the number of frames.
func (F *Frames) Len() int { return len(F.Coords) }

// Atoms returns the number of atoms in each frame.
func (F *Frames) Atoms() int { return len(F.AtomRef) }

// Subset returns new Frames with only the atoms in the positions indexes, in that order.
// The box dimensions are copied unchanged.
func (F *Frames) Subset(indexes []int) *Frames {
	S := &Frames{
		MolRef:  make([]string, 0, len(indexes)),
		AtomRef: make([]string, 0, len(indexes)),
		Coords:  make([]*mat.Dense, 0, len(F.Coords)),
	}
	for _, i := range indexes {
		S.MolRef = append(S.MolRef, F.MolRef[i])
		S.AtomRef = append(S.AtomRef, F.AtomRef[i])
	}
	for _, c := range F.Coords {
		var n *mat.Dense
		if len(indexes) > 0 {
			n = mat.NewDense(len(indexes), 3, nil)
			for j, i := range indexes {
				n.SetRow(j, c.RawRowView(i))
			}
		} else {
			n = &mat.Dense{}
		}
		S.Coords = append(S.Coords, n)
	}
	if F.Dims != nil {
		S.Dims = mat.DenseCopyOf(F.Dims)
	}
	return S
}

// RemoveIndex strips the leading run of digits from a molecule reference,
// so "12SOL" becomes "SOL".
func RemoveIndex(ref string) string {
	return strings.TrimLeft(ref, "0123456789")
}

// ExtractMolecules returns the positions in molRef of the atoms that belong to
// one of the molecule types in symbols.
func ExtractMolecules(molRef []string, symbols ...string) []int {
	ret := make([]int, 0, len(molRef))
	for i, r := range molRef {
		if slices.Contains(symbols, RemoveIndex(r)) {
			ret = append(ret, i)
		}
	}
	return ret
}

// Reader parses Gromacs coordinate files. The zero value is ready to use.
type Reader struct {
	Logger *slog.Logger //slog.Default() if nil
}

// NewReader returns a new Reader
func NewReader() *Reader {
	return new(Reader)
}

func (R *Reader) logger() *slog.Logger {
	if R.Logger == nil {
		return slog.Default()
	}
	return R.Logger
}

// Read reads the Gromacs coordinate file filename. If nframes is larger than zero
// only the first nframes frames are read, otherwise all of them. If symbols
// are given, only the atoms of those molecule types are returned.
func (R *Reader) Read(filename string, nframes int, symbols ...string) (*Frames, error) {
	lines, err := chem.ReadLines(filename, Ext)
	if err != nil {
		R.logger().Error(fmt.Sprintf("unable to open %q", filename), "path", filename, "error", err)
		return nil, chem.ErrDecorate(err, "Read")
	}
	F, err := Parse(lines, filename, nframes)
	if err != nil {
		R.logger().Error(fmt.Sprintf("unable to load data from %q", filename), "path", filename, "error", err)
		return nil, chem.ErrDecorate(err, "Read")
	}
	if len(symbols) > 0 {
		F = F.Subset(ExtractMolecules(F.MolRef, symbols...))
	}
	return F, nil
}

// Parse builds Frames from the lines of a Gromacs coordinate file. The number of atoms
// is taken from the second line and must be the same in all frames. nframes
// is handled as in Reader.Read. Trailing lines that do not fill a whole frame are ignored.
func Parse(lines []string, filename string, nframes int) (*Frames, error) {
	if len(lines) < 2 {
		return nil, chem.NewFormatError(filename, "coordinate file without an atom count", "Parse")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil || natoms < 0 {
		return nil, chem.NewParseError(filename, lines[1], "invalid atom count", err, "Parse")
	}
	perframe := natoms + 3
	available := len(lines) / perframe
	if nframes <= 0 {
		nframes = available
	}
	if nframes > available {
		return nil, chem.NewParseError(filename, "", fmt.Sprintf("%d frames requested, only %d in file", nframes, available), nil, "Parse")
	}
	F := &Frames{
		MolRef:  make([]string, 0, natoms),
		AtomRef: make([]string, 0, natoms),
		Coords:  make([]*mat.Dense, 0, nframes),
		Dims:    mat.NewDense(max(nframes, 1), 3, nil),
	}
	var c *mat.Dense
	atom := 0
	for i, l := range lines[:nframes*perframe] {
		switch Classify(i, natoms) {
		case Title:
			atom = 0
			if natoms > 0 {
				c = mat.NewDense(natoms, 3, nil)
			} else {
				c = &mat.Dense{}
			}
			F.Coords = append(F.Coords, c)
		case Count:
			n, err := strconv.Atoi(strings.TrimSpace(l))
			if err != nil || n != natoms {
				return nil, chem.NewParseError(filename, l, fmt.Sprintf("atom count in frame %d differs from %d", i/perframe, natoms), err, "Parse")
			}
		case Atom:
			mol, at, xyz, err := parseAtom(l, filename)
			if err != nil {
				return nil, err
			}
			if i < perframe {
				F.MolRef = append(F.MolRef, mol)
				F.AtomRef = append(F.AtomRef, at)
			}
			c.SetRow(atom, xyz)
			atom++
		case Box:
			xyz, err := parsefloats(l, filename, 0)
			if err != nil {
				return nil, err
			}
			F.Dims.SetRow(i/perframe, xyz)
		}
	}
	if nframes == 0 {
		F.Dims = &mat.Dense{}
	}
	return F, nil
}

func parseAtom(row, filename string) (string, string, []float64, error) {
	f := strings.Fields(row)
	if len(f) < 6 {
		return "", "", nil, chem.NewParseError(filename, row, fmt.Sprintf("atom row with %d columns, 6 expected", len(f)), nil, "parseAtom")
	}
	xyz, err := parsefloats(row, filename, 3)
	if err != nil {
		return "", "", nil, chem.ErrDecorate(err, "parseAtom")
	}
	return f[0], f[1], xyz, nil
}

// parsefloats reads the three floats starting at field from of row.
func parsefloats(row, filename string, from int) ([]float64, error) {
	f := strings.Fields(row)
	if len(f) < from+3 {
		return nil, chem.NewParseError(filename, row, "fewer than 3 coordinates", nil, "parsefloats")
	}
	ret := make([]float64, 3)
	for i := range ret {
		v, err := strconv.ParseFloat(f[from+i], 64)
		if err != nil {
			return nil, chem.NewParseError(filename, row, "non-numeric coordinate", err, "parsefloats")
		}
		ret[i] = v
	}
	return ret, nil
}
