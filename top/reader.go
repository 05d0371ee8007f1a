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

package top

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	chem "github.com/rmera/gmxpipe"
)

const (
	//Ext is the extension of Gromacs molecule topology files
	Ext = "itp"
	//Comment starts a comment in Gromacs topology files
	Comment = ";"
)

// Column layout of a row in an atoms sub-section.
const (
	colLocal = iota
	colElement
	_
	colMolecule
	colAtom
	colIndex
	colCharge
	colMass
	atomCols
)

// Reader parses Gromacs molecule topology files and returns one fragment
// for each molecule type declared. The zero value is ready to use.
type Reader struct {
	Ext     string       //accepted extension, Ext if empty
	Comment string       //comment marker, Comment if empty
	Logger  *slog.Logger //slog.Default() if nil
	Defines []string     //symbols defined for #ifdef/#ifndef blocks, i.e. "FLEXIBLE"
}

// NewReader returns a reader for itp files.
func NewReader() *Reader {
	return &Reader{Ext: Ext, Comment: Comment}
}

func (R *Reader) ext() string {
	if R.Ext == "" {
		return Ext
	}
	return R.Ext
}

func (R *Reader) comment() string {
	if R.Comment == "" {
		return Comment
	}
	return R.Comment
}

func (R *Reader) logger() *slog.Logger {
	if R.Logger == nil {
		return slog.Default()
	}
	return R.Logger
}

// Read opens the Gromacs topology file filename and returns its fragments, with the
// fragment symbols as keys. If a symbol is declared more than once, the last declaration wins.
func (R *Reader) Read(filename string) (map[string]*chem.Fragment, error) {
	frags, err := R.ReadFragments(filename)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Read")
	}
	ret := make(map[string]*chem.Fragment, len(frags))
	for _, f := range frags {
		ret[f.Symbol] = f
	}
	return ret, nil
}

// ReadFragments is like Read, but returns the fragments in the order they are declared in the file.
func (R *Reader) ReadFragments(filename string) ([]*chem.Fragment, error) {
	lines, err := chem.ReadLines(filename, R.ext())
	if err != nil {
		R.logger().Error(fmt.Sprintf("unable to open %q", filename), "path", filename, "error", err)
		return nil, chem.ErrDecorate(err, "ReadFragments")
	}
	lines = chem.StripComments(lines, R.comment())
	frags, err := Fragments(lines, filename, R.Defines...)
	if err != nil {
		R.logger().Error(fmt.Sprintf("unable to load data from %q", filename), "path", filename, "error", err)
		return nil, chem.ErrDecorate(err, "ReadFragments")
	}
	return frags, nil
}

// Sections splits comment-free topology lines in molecule type sections. Each section starts at a
// molecule type marker and spans up to the next one or the end of the lines.
// It returns a *chem.FormatError if there are no molecule types.
func Sections(lines []string, filename string) ([][]string, error) {
	starts := make([]int, 0, 4)
	for i, l := range lines {
		if Classify(l) == MoleculeType {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return nil, chem.NewFormatError(filename, "Gromacs topology file does not include any molecule types", "Sections")
	}
	ret := make([][]string, 0, len(starts))
	for i, s := range starts {
		end := len(lines)
		if i < len(starts)-1 {
			end = starts[i+1]
		}
		ret = append(ret, lines[s:end])
	}
	return ret, nil
}

// Fragments builds one fragment per molecule type section in the comment-free lines.
// filename is stamped on each fragment as its topology file. The lines are run through
// Preprocess with defines first.
func Fragments(lines []string, filename string, defines ...string) ([]*chem.Fragment, error) {
	sections, err := Sections(Preprocess(lines, defines...), filename)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Fragments")
	}
	ret := make([]*chem.Fragment, 0, len(sections))
	for _, s := range sections {
		f, err := sectionFragment(s, filename)
		if err != nil {
			return nil, chem.ErrDecorate(err, "Fragments")
		}
		ret = append(ret, f)
	}
	return ret, nil
}

const (
	modeNone = iota
	modeAtoms
	modeBonds
)

// sectionFragment parses one molecule type section. The first line is the marker,
// the second one declares the symbol.
func sectionFragment(section []string, filename string) (*chem.Fragment, error) {
	if len(section) < 2 {
		return nil, chem.NewParseError(filename, section[0], "molecule type without a symbol line", nil, "sectionFragment")
	}
	symbol := strings.Fields(section[1])[0]
	var particles []chem.Particle
	var rawbonds [][2]int
	positions := make(map[int]int) //local index -> position in particles
	mode := modeNone
	atomsfound := false
	for _, l := range section[2:] {
		switch Classify(l) {
		case AtomsHeader:
			mode = modeAtoms
			atomsfound = true
			continue
		case BondsHeader:
			mode = modeBonds
			continue
		case OtherHeader, MoleculeType:
			mode = modeNone
			continue
		case Directive:
			continue
		}
		switch mode {
		case modeAtoms:
			local, p, err := parseAtom(l, filename)
			if err != nil {
				return nil, err
			}
			positions[local] = len(particles)
			particles = append(particles, p)
		case modeBonds:
			b, err := parseBond(l, filename)
			if err != nil {
				return nil, err
			}
			rawbonds = append(rawbonds, b)
		}
	}
	if !atomsfound {
		return nil, chem.NewParseError(filename, "", fmt.Sprintf("molecule type %s has no atoms section", symbol), nil, "sectionFragment")
	}
	bonds := make([][2]int, 0, len(rawbonds))
	for _, b := range rawbonds {
		i, ok1 := positions[b[0]]
		j, ok2 := positions[b[1]]
		if !ok1 || !ok2 {
			return nil, chem.NewFormatError(filename, fmt.Sprintf("bond %d-%d in molecule type %s references an undeclared atom", b[0], b[1], symbol), "sectionFragment")
		}
		bonds = append(bonds, [2]int{i, j})
	}
	f, err := chem.NewFragment(symbol, particles, bonds)
	if err != nil {
		var ferr *chem.FormatError
		if errors.As(err, &ferr) {
			ferr.File = filename
		}
		return nil, chem.ErrDecorate(err, "sectionFragment")
	}
	f.Topology = filename
	return f, nil
}

// parseAtom reads a row of an atoms sub-section. It returns the local index of the atom
// and the corresponding particle.
func parseAtom(row, filename string) (int, chem.Particle, error) {
	f := strings.Fields(row)
	if len(f) < atomCols {
		return 0, chem.Particle{}, chem.NewParseError(filename, row, fmt.Sprintf("atom row with %d columns, %d expected", len(f), atomCols), nil, "parseAtom")
	}
	ints, err := parseints(f[colLocal], f[colIndex])
	if err != nil {
		return 0, chem.Particle{}, chem.NewParseError(filename, row, "non-integer atom index", err, "parseAtom")
	}
	fl, err := parsefloats(f[colCharge], f[colMass])
	if err != nil {
		return 0, chem.Particle{}, chem.NewParseError(filename, row, "non-numeric charge or mass", err, "parseAtom")
	}
	return ints[0], chem.NewParticle(f[colAtom], f[colElement], ints[1], fl[1], fl[0]), nil
}

// parseBond reads the two atom indexes of a bonds row. Further columns
// (function type, parameters) are ignored.
func parseBond(row, filename string) ([2]int, error) {
	f := strings.Fields(row)
	if len(f) < 2 {
		return [2]int{}, chem.NewParseError(filename, row, "bond row with less than 2 columns", nil, "parseBond")
	}
	ints, err := parseints(f[:2]...)
	if err != nil {
		return [2]int{}, chem.NewParseError(filename, row, "non-integer bond index", err, "parseBond")
	}
	return [2]int{ints[0], ints[1]}, nil
}

func parseints(s ...string) ([]int, error) {
	r := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

func parsefloats(s ...string) ([]float64, error) {
	r := make([]float64, 0, len(s))
	for _, v := range s {
		i, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}
