/*
 * ledger.go, part of gmxpipe.
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
	"slices"
)

// LedgerEntry is the number of copies of a fragment in a simulation.
type LedgerEntry struct {
	Symbol string
	Number int
}

// Data contains the information about the chemical topologies in a simulation:
// the molecule (itp) files with the force-field models, and how many copies of each
// fragment the simulation has. All the parameters for each fragment are expected to be
// in the molecule files.
type Data struct {
	MoleculeFiles []string
	ledger        []LedgerEntry
}

// NewData returns an empty Data.
func NewData() *Data {
	return new(Data)
}

// AddMoleculeFile adds filename to the molecule files, if not already included.
func (D *Data) AddMoleculeFile(filename string) {
	if !slices.Contains(D.MoleculeFiles, filename) {
		D.MoleculeFiles = append(D.MoleculeFiles, filename)
	}
}

// RemoveMoleculeFile removes filename from the molecule files, if present.
func (D *Data) RemoveMoleculeFile(filename string) {
	if i := slices.Index(D.MoleculeFiles, filename); i >= 0 {
		D.MoleculeFiles = slices.Delete(D.MoleculeFiles, i, i+1)
	}
}

func (D *Data) find(symbol string) int {
	return slices.IndexFunc(D.ledger, func(e LedgerEntry) bool { return e.Symbol == symbol })
}

// AddFragment adds number copies of the fragment symbol to the ledger. It does nothing
// if the fragment is already in the ledger (use EditFragmentNumber for that).
func (D *Data) AddFragment(symbol string, number int) {
	if D.find(symbol) < 0 {
		D.ledger = append(D.ledger, LedgerEntry{symbol, number})
	}
}

// RemoveFragment removes the fragment symbol from the ledger, if present.
func (D *Data) RemoveFragment(symbol string) {
	if i := D.find(symbol); i >= 0 {
		D.ledger = slices.Delete(D.ledger, i, i+1)
	}
}

// EditFragmentNumber adds delta (which can be negative) copies of symbol.
// If less than one copy is left, the fragment is removed from the ledger.
func (D *Data) EditFragmentNumber(symbol string, delta int) error {
	i := D.find(symbol)
	if i < 0 {
		return fmt.Errorf("fragment %s not in the ledger", symbol)
	}
	D.ledger[i].Number += delta
	if D.ledger[i].Number < 1 {
		D.RemoveFragment(symbol)
	}
	return nil
}

// Number returns the number of copies of symbol and whether it is in the ledger.
func (D *Data) Number(symbol string) (int, bool) {
	if i := D.find(symbol); i >= 0 {
		return D.ledger[i].Number, true
	}
	return 0, false
}

// Ledger returns a copy of the ledger, in insertion order.
func (D *Data) Ledger() []LedgerEntry {
	return slices.Clone(D.ledger)
}

// Verify checks that each molecule file can be read with R and that each fragment
// in the ledger is declared in at least one of them. A nil R means NewReader().
func (D *Data) Verify(R *Reader) error {
	if R == nil {
		R = NewReader()
	}
	declared := make(map[string]bool)
	for _, f := range D.MoleculeFiles {
		frags, err := R.Read(f)
		if err != nil {
			return fmt.Errorf("molecule file %s: %w", f, err)
		}
		for k := range frags {
			declared[k] = true
		}
	}
	for _, e := range D.ledger {
		if !declared[e.Symbol] {
			return fmt.Errorf("fragment %s is not declared in any molecule file", e.Symbol)
		}
	}
	return nil
}
