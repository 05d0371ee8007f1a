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

package top

import (
	"slices"
	"strings"
)

// LineKind is the role a comment-free line plays in a Gromacs molecule topology.
type LineKind int

const (
	Row          LineKind = iota //a data row, its meaning depends on the current sub-section
	MoleculeType                 //starts a new molecule type section
	AtomsHeader                  //starts an atoms sub-section
	BondsHeader                  //starts a bonds sub-section
	OtherHeader                  //any other "[ header ]", which closes the current sub-section
	Directive                    //a preprocessor line: #ifdef, #ifndef, #else, #endif, #include, #define...
)

func (K LineKind) String() string {
	switch K {
	case MoleculeType:
		return "moleculetype"
	case AtomsHeader:
		return "atoms"
	case BondsHeader:
		return "bonds"
	case OtherHeader:
		return "header"
	case Directive:
		return "directive"
	}
	return "row"
}

// Classify returns the kind of the line, which must have no comments.
// The section markers are matched anywhere in the line, so both "[moleculetype]"
// and "[ moleculetype ]" count. Only lines starting with "[" close a sub-section.
// Lines starting with "#" are directives, whatever they contain.
func Classify(line string) LineKind {
	switch {
	case strings.HasPrefix(line, "#"):
		return Directive
	case strings.Contains(line, "moleculetype"):
		return MoleculeType
	case strings.Contains(line, "atoms"):
		return AtomsHeader
	case strings.Contains(line, "bonds"):
		return BondsHeader
	case strings.HasPrefix(line, "["):
		return OtherHeader
	}
	return Row
}

// cond keeps track of the conditional blocks of a topology.
// Each element of the stack tells whether its block is being read.
type cond struct {
	stack []bool
}

func (c *cond) reading() bool {
	for _, v := range c.stack {
		if !v {
			return false
		}
	}
	return true
}

// read processes the directive line and returns whether the following
// rows are to be read.
func (c *cond) read(line string, defines []string) bool {
	f := strings.Fields(line)
	switch f[0] {
	case "#ifdef", "#ifndef":
		defined := len(f) > 1 && slices.Contains(defines, f[1])
		c.stack = append(c.stack, defined == (f[0] == "#ifdef"))
	case "#else":
		if n := len(c.stack); n > 0 {
			c.stack[n-1] = !c.stack[n-1]
		}
	case "#endif":
		if n := len(c.stack); n > 0 {
			c.stack = c.stack[:n-1]
		}
	}
	return c.reading()
}

// Preprocess removes the directives from comment-free topology lines, together with the
// rows in conditional blocks (#ifdef/#ifndef ... #else ... #endif) that are not active
// for the given defines. Other directives, such as #include and #define, are dropped.
func Preprocess(lines []string, defines ...string) []string {
	ret := make([]string, 0, len(lines))
	c := new(cond)
	reading := true
	for _, l := range lines {
		if Classify(l) == Directive {
			reading = c.read(l, defines)
			continue
		}
		if reading {
			ret = append(ret, l)
		}
	}
	return ret
}
