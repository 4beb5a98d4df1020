/*
 * structure.go, part of goProcar.
 *
 * Copyright 2024 The goProcar authors
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

package procar

import (
	"fmt"
	"math"

	v3 "github.com/rmera/goprocar/v3"
)

//Structure is a crystal structure: lattice vectors (rows, in Angstrom),
//the species of each atom and the fractional positions of the atoms.
type Structure struct {
	Comment   string
	Lattice   *v3.Matrix
	Atoms     []string
	Positions *v3.Matrix
}

//NewStructure returns a new structure, checking the dimensions of its parts.
func NewStructure(lattice *v3.Matrix, atoms []string, positions *v3.Matrix) (*Structure, error) {
	if lattice == nil || positions == nil {
		return nil, NewError(ErrShape, "nil lattice or positions", "NewStructure")
	}
	if lattice.NVecs() != 3 {
		return nil, NewError(ErrShape, fmt.Sprintf("lattice with %d vectors", lattice.NVecs()), "NewStructure")
	}
	if positions.NVecs() != len(atoms) {
		return nil, NewError(ErrShape, fmt.Sprintf("%d positions for %d atoms", positions.NVecs(), len(atoms)), "NewStructure")
	}
	return &Structure{Lattice: lattice, Atoms: atoms, Positions: positions}, nil
}

//NAtoms returns the number of atoms in the cell.
func (S *Structure) NAtoms() int {
	return len(S.Atoms)
}

//Species returns the species present, in order of first appearance.
func (S *Structure) Species() []string {
	ret := make([]string, 0, 4)
	for _, v := range S.Atoms {
		if !isInString(ret, v) {
			ret = append(ret, v)
		}
	}
	return ret
}

//AtomsOf returns the indexes of the atoms of the given species.
func (S *Structure) AtomsOf(species ...string) []int {
	ret := make([]int, 0, len(S.Atoms))
	for i, v := range S.Atoms {
		if isInString(species, v) {
			ret = append(ret, i)
		}
	}
	return ret
}

//Position returns the fractional position of atom i.
func (S *Structure) Position(i int) [3]float64 {
	return S.Positions.Vec(i)
}

//Volume returns the volume of the cell.
func (S *Structure) Volume() float64 {
	return math.Abs(v3.Det(S.Lattice))
}

//ReciprocalLattice returns the reciprocal lattice vectors (rows), including the 2*pi factor.
func (S *Structure) ReciprocalLattice() (*v3.Matrix, error) {
	r, err := v3.Reciprocal(S.Lattice)
	if err != nil {
		return nil, errDecorate(err, "ReciprocalLattice")
	}
	return r, nil
}
