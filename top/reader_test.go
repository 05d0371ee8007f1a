/*
 * reader_test.go, part of gmxpipe.
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
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	chem "github.com/rmera/gmxpipe"
)

func quietReader() *Reader {
	R := NewReader()
	R.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return R
}

func TestClassify(Te *testing.T) {
	cases := map[string]LineKind{
		"[ moleculetype ]": MoleculeType,
		"[moleculetype]":   MoleculeType,
		"[ atoms ]":        AtomsHeader,
		"[ bonds ]":        BondsHeader,
		"[ angles ]":       OtherHeader,
		"[ atomtypes ]":    OtherHeader,
		"1 O 1 So O 1 -0.8 16.0": Row,
	}
	for l, k := range cases {
		if got := Classify(l); got != k {
			Te.Errorf("Classify(%q) = %v, expected %v", l, got, k)
		}
	}
}

func TestRead(Te *testing.T) {
	frags, err := quietReader().Read("testdata/example.itp")
	if err != nil {
		Te.Fatal(err)
	}
	if len(frags) != 2 {
		Te.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	so, ok := frags["So"]
	if !ok {
		Te.Fatal("fragment So not found")
	}
	if so.Len() != 3 {
		Te.Errorf("So should have 3 atoms, has %d", so.Len())
	}
	if math.Abs(so.Mass()-20) > 1e-9 || math.Abs(so.Charge()) > 1e-9 {
		Te.Errorf("So mass/charge: %f %f", so.Mass(), so.Charge())
	}
	atoms := so.Atoms()
	if atoms[0] != "O" || atoms[1] != "H1" || atoms[2] != "H2" {
		Te.Errorf("unexpected atoms %v", atoms)
	}
	b := so.Bonds()
	if len(b) != 2 || b[0] != [2]int{0, 1} || b[1] != [2]int{0, 2} {
		Te.Errorf("unexpected bonds %v", b)
	}
	if so.Topology != "testdata/example.itp" {
		Te.Errorf("topology not stamped: %q", so.Topology)
	}
	ion := frags["I"]
	if ion == nil || ion.Charge() != 1 || ion.Mass() != 24 || len(ion.Bonds()) != 0 {
		Te.Errorf("unexpected ion %v", ion)
	}
	if ion.Particle(0).Element() != "Mg" || ion.Particle(0).Index() != 1 {
		Te.Errorf("unexpected ion particle %v", ion.Particle(0))
	}
}

func TestReadFragmentsOrder(Te *testing.T) {
	frags, err := quietReader().ReadFragments("testdata/example.itp")
	if err != nil {
		Te.Fatal(err)
	}
	if frags[0].Symbol != "So" || frags[1].Symbol != "I" {
		Te.Errorf("wrong order %s %s", frags[0].Symbol, frags[1].Symbol)
	}
}

func TestReadErrors(Te *testing.T) {
	R := quietReader()
	var ferr *chem.FormatError
	if _, err := R.Read("testdata/example.gro"); !errors.As(err, &ferr) {
		Te.Errorf("wrong extension should give a FormatError, got %v", err)
	}
	if _, err := R.Read("testdata/nomol.itp"); !errors.As(err, &ferr) {
		Te.Errorf("file without molecule types should give a FormatError, got %v", err)
	}
	var perr *chem.ParseError
	if _, err := R.Read("testdata/noatoms.itp"); !errors.As(err, &perr) {
		Te.Errorf("molecule without atoms should give a ParseError, got %v", err)
	}
	if _, err := R.Read("testdata/missing.itp"); err == nil {
		Te.Error("missing file should give an error")
	}
}

func TestFragmentsBadRows(Te *testing.T) {
	lines := []string{"[ moleculetype ]", "A 1", "[ atoms ]", "1 C 1 A C1 1 zero 12.0"}
	var perr *chem.ParseError
	if _, err := Fragments(lines, "x.itp"); !errors.As(err, &perr) {
		Te.Errorf("non-numeric charge should give a ParseError, got %v", err)
	}
	lines = []string{"[ moleculetype ]", "A 1", "[ atoms ]", "1 C 1 A C1 1 0.0 12.0", "[ bonds ]", "1 5 1"}
	var ferr *chem.FormatError
	if _, err := Fragments(lines, "x.itp"); !errors.As(err, &ferr) {
		Te.Errorf("bond to an undeclared atom should give a FormatError, got %v", err)
	}
}

func TestFragmentsIdempotent(Te *testing.T) {
	lines := chem.StripComments([]string{
		"[ moleculetype ]", "; name nrexcl", "So 1",
		"[ atoms ]", "1 So 1 So So 1 0 18.0 ; water bead",
		"[ moleculetype ]", "I 1",
		"[ atoms ]", "1 I 1 I I 1 1 24",
	}, Comment)
	first, err := Fragments(lines, "ions.itp")
	if err != nil {
		Te.Fatal(err)
	}
	second, err := Fragments(lines, "ions.itp")
	if err != nil {
		Te.Fatal(err)
	}
	if len(first) != 2 || first[0].Mass() != 18 || first[0].Charge() != 0 || first[1].Mass() != 24 || first[1].Charge() != 1 {
		Te.Fatalf("unexpected fragments %v %v", first[0], first[1])
	}
	for i := range first {
		if first[i].Symbol != second[i].Symbol || first[i].Mass() != second[i].Mass() || first[i].Len() != second[i].Len() {
			Te.Errorf("fragment %d differs between reads", i)
		}
	}
}

func TestPreprocess(Te *testing.T) {
	lines := []string{"[ bonds ]", "#ifdef FLEXIBLE", "1 2 1", "#else", "1 3 1", "#endif", "#ifndef POSRES", "2 3 1", "#endif", "#define X"}
	got := Preprocess(lines)
	want := []string{"[ bonds ]", "1 3 1", "2 3 1"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		Te.Errorf("got %q, expected %q", got, want)
	}
	got = Preprocess(lines, "FLEXIBLE", "POSRES")
	want = []string{"[ bonds ]", "1 2 1"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		Te.Errorf("with defines got %q, expected %q", got, want)
	}
	//nested blocks are only read if all the enclosing ones are
	nested := []string{"#ifdef A", "#ifdef B", "x", "#endif", "y", "#endif", "z"}
	if got := Preprocess(nested, "B"); strings.Join(got, "|") != "z" {
		Te.Errorf("nested blocks: got %q", got)
	}
	if Classify(`#include "atoms.itp"`) != Directive {
		Te.Error("an include mentioning atoms should be a directive")
	}
}

func TestFragmentsDirectives(Te *testing.T) {
	lines := []string{"[ moleculetype ]", "W 1", "[ atoms ]", "1 O 1 W O 1 0 16.0", "2 H 1 W H 1 0 2.0",
		"[ bonds ]", "#ifdef FLEXIBLE", "1 2 1", "#endif"}
	frags, err := Fragments(lines, "w.itp")
	if err != nil {
		Te.Fatal(err)
	}
	if len(frags[0].Bonds()) != 0 {
		Te.Errorf("inactive bonds read: %v", frags[0].Bonds())
	}
	frags, err = Fragments(lines, "w.itp", "FLEXIBLE")
	if err != nil {
		Te.Fatal(err)
	}
	if b := frags[0].Bonds(); len(b) != 1 || b[0] != [2]int{0, 1} {
		Te.Errorf("unexpected bonds with FLEXIBLE: %v", b)
	}
}

func TestReadDefines(Te *testing.T) {
	R := quietReader()
	frags, err := R.Read("testdata/flexible.itp")
	if err != nil {
		Te.Fatal(err)
	}
	sol := frags["SOL"]
	if sol == nil || sol.Len() != 3 || len(sol.Bonds()) != 0 {
		Te.Fatalf("unexpected rigid water %v", sol)
	}
	R.Defines = []string{"FLEXIBLE"}
	frags, err = R.Read("testdata/flexible.itp")
	if err != nil {
		Te.Fatal(err)
	}
	if b := frags["SOL"].Bonds(); len(b) != 2 || b[1] != [2]int{0, 2} {
		Te.Errorf("unexpected flexible water bonds %v", b)
	}
}

func TestFragmentsSubBlocks(Te *testing.T) {
	lines := []string{"[ moleculetype ]", "CC 1",
		"[ atoms ]", "1 C 1 CC C1 1 0 12.0",
		"[ bonds ]", "1 2 1",
		"[ atoms ]", "2 C 1 CC C2 2 0 12.0",
		"[ bonds ]", "2 1 1",
	}
	frags, err := Fragments(lines, "cc.itp")
	if err != nil {
		Te.Fatal(err)
	}
	f := frags[0]
	if a := f.Atoms(); len(a) != 2 || a[0] != "C1" || a[1] != "C2" {
		Te.Errorf("atom sub-blocks not concatenated in order: %v", a)
	}
	if b := f.Bonds(); len(b) != 2 || b[0] != [2]int{0, 1} || b[1] != [2]int{1, 0} {
		Te.Errorf("bond sub-blocks not concatenated in order: %v", b)
	}
	if f.Mass() != 24 {
		Te.Errorf("mass %v, expected 24", f.Mass())
	}
}
