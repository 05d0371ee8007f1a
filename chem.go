/*
 * chem.go, part of gmxpipe.
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

package chem

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Particle is a particle species defined, in terms of classical mechanics, by a
// mass and a charge: an atom, a coarse-grained bead or an ion. It also keeps the
// Gromacs information of the particle. A Particle doesn't change once built.
type Particle struct {
	id      string
	element string
	index   int
	mass    float64
	charge  float64
}

// NewParticle returns a particle with reference id id, elemental symbol (or atom type)
// element, index in its parent file, mass in g/mol and charge.
func NewParticle(id, element string, index int, mass, charge float64) Particle {
	return Particle{id: id, element: element, index: index, mass: mass, charge: charge}
}

// ID returns the reference id of the particle
func (P Particle) ID() string { return P.id }

// Element returns the elemental symbol of the particle
func (P Particle) Element() string { return P.element }

// Index returns the index of the particle in its parent file
func (P Particle) Index() int { return P.index }

// Mass returns the mass of the particle in g/mol
func (P Particle) Mass() float64 { return P.mass }

// Charge returns the charge of the particle
func (P Particle) Charge() float64 { return P.charge }

func (P Particle) String() string {
	return fmt.Sprintf("%s(%s) %d m=%.4f q=%.4f", P.id, P.element, P.index, P.mass, P.charge)
}

// ParticleGroup is a single particle or a collection of covalently bonded particles,
// which therefore behave as a fixed body. Bonds are pairs of 0-based positions in the
// particle sequence.
type ParticleGroup struct {
	particles []Particle
	bonds     [][2]int
}

// NewParticleGroup returns a group with the given particles and bonds. It returns a *FormatError
// if a bond references a position outside the particle sequence.
func NewParticleGroup(particles []Particle, bonds [][2]int) (*ParticleGroup, error) {
	G := new(ParticleGroup)
	G.particles = append(make([]Particle, 0, len(particles)), particles...)
	for i, b := range bonds {
		for _, v := range b {
			if v < 0 || v >= len(particles) {
				return nil, NewFormatError("", fmt.Sprintf("bond %d (%d-%d) references a particle outside [0,%d)", i, b[0], b[1], len(particles)), "NewParticleGroup")
			}
		}
	}
	G.bonds = append(make([][2]int, 0, len(bonds)), bonds...)
	return G, nil
}

// Len returns the number of particles in the group
func (G *ParticleGroup) Len() int { return len(G.particles) }

// Particle returns the ith particle of the group. It panics if i is out of range.
func (G *ParticleGroup) Particle(i int) Particle { return G.particles[i] }

// Particles returns a copy of the particle sequence
func (G *ParticleGroup) Particles() []Particle {
	return append([]Particle(nil), G.particles...)
}

// Bonds returns a copy of the bond list
func (G *ParticleGroup) Bonds() [][2]int {
	return append([][2]int(nil), G.bonds...)
}

// Masses returns the mass of each particle, in order.
func (G *ParticleGroup) Masses() []float64 {
	r := make([]float64, len(G.particles))
	for i, v := range G.particles {
		r[i] = v.Mass()
	}
	return r
}

// Charges returns the charge of each particle, in order.
func (G *ParticleGroup) Charges() []float64 {
	r := make([]float64, len(G.particles))
	for i, v := range G.particles {
		r[i] = v.Charge()
	}
	return r
}

// Atoms returns the reference ids of the particles, in order.
func (G *ParticleGroup) Atoms() []string {
	r := make([]string, len(G.particles))
	for i, v := range G.particles {
		r[i] = v.ID()
	}
	return r
}

// Mass returns the total mass of the group.
func (G *ParticleGroup) Mass() float64 {
	return floats.Sum(G.Masses())
}

// Charge returns the total charge of the group.
func (G *ParticleGroup) Charge() float64 {
	return floats.Sum(G.Charges())
}

// Fragment is a group of particles that may become dissociated from the rest of
// its molecule (i.e. an ion), and so requires its own chemical and structural
// information. A fragment can't be an isolated species, it always belongs to a
// Molecule, where it appears Number times.
type Fragment struct {
	ParticleGroup
	Symbol     string //Symbol referring to the fragment in Gromacs input files
	Name       string //Human readable name
	Number     int    //Stoichiometric number of the fragment in its molecule
	Topology   string //Gromacs topology (itp) file
	Coordinate string //Gromacs coordinate (gro) file
}

// NewFragment returns a fragment with the given symbol, particles and bonds,
// with stoichiometric number 1 and the symbol as name.
func NewFragment(symbol string, particles []Particle, bonds [][2]int) (*Fragment, error) {
	g, err := NewParticleGroup(particles, bonds)
	if err != nil {
		return nil, ErrDecorate(err, "NewFragment")
	}
	return &Fragment{ParticleGroup: *g, Symbol: symbol, Name: symbol, Number: 1}, nil
}

// Molecule is a molecular species made of one or more fragments.
type Molecule struct {
	Fragments []*Fragment
	NMol      int //Number of molecules to be added to a simulation
	name      string
}

// NewMolecule returns a molecule made of the given fragments.
func NewMolecule(fragments ...*Fragment) *Molecule {
	return &Molecule{Fragments: fragments}
}

// SetName sets an explicit name for the molecule. An empty name
// restores the default one.
func (M *Molecule) SetName(name string) { M.name = name }

// Name returns the name set with SetName or, if none was given, the
// default name built from the fragment names.
func (M *Molecule) Name() string {
	if M.name != "" {
		return M.name
	}
	return M.DefaultName()
}

// DefaultName returns a naive name built following the nomenclature for
// ionic compounds: the names of positive (and neutral) fragments go first,
// the names of negative fragments go last.
func (M *Molecule) DefaultName() string {
	name := ""
	for _, f := range M.Fragments {
		if f.Charge() < 0 {
			name = strings.TrimSpace(name + " " + f.Name)
		} else {
			name = strings.TrimSpace(f.Name + " " + name)
		}
	}
	return name
}

// weights returns the stoichiometric numbers of the fragments as floats.
func (M *Molecule) weights() []float64 {
	w := make([]float64, len(M.Fragments))
	for i, f := range M.Fragments {
		w[i] = float64(f.Number)
	}
	return w
}

// Mass returns the molecular mass: the sum of the fragment masses times their
// stoichiometric numbers.
func (M *Molecule) Mass() float64 {
	if len(M.Fragments) == 0 {
		return 0
	}
	m := make([]float64, len(M.Fragments))
	for i, f := range M.Fragments {
		m[i] = f.Mass()
	}
	return floats.Dot(m, M.weights())
}

// Charge returns the molecular charge: the sum of the fragment charges times
// their stoichiometric numbers.
func (M *Molecule) Charge() float64 {
	if len(M.Fragments) == 0 {
		return 0
	}
	q := make([]float64, len(M.Fragments))
	for i, f := range M.Fragments {
		q[i] = f.Charge()
	}
	return floats.Dot(q, M.weights())
}

// Neutral returns true if the molecule has no net charge.
func (M *Molecule) Neutral() bool {
	return M.Charge() == 0
}
