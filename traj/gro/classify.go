/*
 * classify.go, part of gmxpipe.
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

// LineKind is the role of a line in a frame of a Gromacs coordinate file.
type LineKind int

const (
	Title LineKind = iota
	Count
	Atom
	Box
)

func (K LineKind) String() string {
	return [...]string{"title", "count", "atom", "box"}[K]
}

// Classify returns the kind of the line at position i of a file
// where each frame has natoms atoms.
func Classify(i, natoms int) LineKind {
	switch j := i % (natoms + 3); {
	case j == 0:
		return Title
	case j == 1:
		return Count
	case j == natoms+2:
		return Box
	}
	return Atom
}
