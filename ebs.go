/*
 * ebs.go, part of goProcar.
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
	"sort"

	v3 "github.com/rmera/goprocar/v3"
)

//EBS is the electronic band structure of a calculation.
type EBS struct {
	//Kpoints in fractional reciprocal coordinates of the cell used in the calculation.
	Kpoints *v3.Matrix
	//Bands holds the band energies in eV.
	Bands *BandValues
	//Projected holds the projection of each band onto the atomic orbitals.
	Projected *Projections
	//ProjectedPhase holds the complex projection coefficients. It is nil if the
	//calculation did not write them.
	ProjectedPhase *Phases
	//Weights are the unfolding weights. Nil until Unfold is called.
	Weights           *BandValues
	Efermi            float64
	ReciprocalLattice *v3.Matrix
}

//NewEBS checks that the dimensions of the given data agree, and returns
//a new EBS. phases can be nil.
func NewEBS(kpoints *v3.Matrix, bands *BandValues, projected *Projections, phases *Phases, efermi float64, reciprocal *v3.Matrix) (*EBS, error) {
	nk, nb, ns := bands.Dims()
	if kpoints.NVecs() != nk {
		return nil, NewError(ErrShape, fmt.Sprintf("%d kpoints but bands for %d", kpoints.NVecs(), nk), "NewEBS")
	}
	if projected != nil {
		pk, pb, _, _, ps := projected.Dims()
		if pk != nk || pb != nb || ps != ns {
			return nil, NewError(ErrShape, "projections don't match the bands", "NewEBS")
		}
	}
	if phases != nil {
		if projected == nil {
			return nil, NewError(ErrShape, "phases given without projections", "NewEBS")
		}
		pk, pb, pa, po, ps := phases.Dims()
		_, _, na, no, _ := projected.Dims()
		if pk != nk || pb != nb || pa != na || po != no || ps != ns {
			return nil, NewError(ErrShape, "phases don't match the projections", "NewEBS")
		}
	}
	return &EBS{Kpoints: kpoints, Bands: bands, Projected: projected, ProjectedPhase: phases, Efermi: efermi, ReciprocalLattice: reciprocal}, nil
}

func (E *EBS) NKpoints() int {
	nk, _, _ := E.Bands.Dims()
	return nk
}

func (E *EBS) NBands() int {
	_, nb, _ := E.Bands.Dims()
	return nb
}

func (E *EBS) NSpins() int {
	_, _, ns := E.Bands.Dims()
	return ns
}

//NAtoms returns the number of atoms in the projections, 0 if there are none.
func (E *EBS) NAtoms() int {
	if E.Projected == nil {
		return 0
	}
	_, _, na, _, _ := E.Projected.Dims()
	return na
}

//NOrbitals returns the number of orbitals in the projections, 0 if there are none.
func (E *EBS) NOrbitals() int {
	if E.Projected == nil {
		return 0
	}
	_, _, _, no, _ := E.Projected.Dims()
	return no
}

//IsSpinPolarized returns true for collinear spin-polarized calculations.
func (E *EBS) IsSpinPolarized() bool {
	return E.NSpins() == 2
}

//ShiftBands adds delta to all the band energies.
func (E *EBS) ShiftBands(delta float64) {
	E.Bands.AddScalar(delta)
}

//EbsSum sums the projections over the given atoms and orbitals, for
//each of the given spins. Nil slices select everything. The result keeps
//all the spin channels of the EBS; channels not in spins are left at zero.
func (E *EBS) EbsSum(atoms, orbitals, spins []int) (*BandValues, error) {
	if E.Projected == nil {
		return nil, NewError(ErrShape, "the band structure has no projections", "EbsSum")
	}
	nk, nb, na, no, ns := E.Projected.Dims()
	var err error
	if atoms, err = rangeOrAll(atoms, na, "atom", "EbsSum"); err != nil {
		return nil, err
	}
	if orbitals, err = rangeOrAll(orbitals, no, "orbital", "EbsSum"); err != nil {
		return nil, err
	}
	if spins, err = rangeOrAll(spins, ns, "spin", "EbsSum"); err != nil {
		return nil, err
	}
	ret := NewBandValues(nk, nb, ns, nil)
	for k := 0; k < nk; k++ {
		for b := 0; b < nb; b++ {
			for _, s := range spins {
				var sum float64
				for _, a := range atoms {
					for _, o := range orbitals {
						sum += E.Projected.At(k, b, a, o, s)
					}
				}
				ret.Set(k, b, s, sum)
			}
		}
	}
	return ret, nil
}

//KDistances returns the distance along the path for each kpoint, in
//cartesian reciprocal units if the reciprocal lattice is known, in fractional
//units otherwise. If kpath is not nil, the distance does not advance across
//the discontinuities of the path.
func (E *EBS) KDistances(kpath *KPath) []float64 {
	nk := E.NKpoints()
	ret := make([]float64, nk)
	var jumps []int
	if kpath != nil && kpath.NKpoints() == nk {
		jumps = kpath.Discontinuities()
		sort.Ints(jumps)
	}
	for k := 1; k < nk; k++ {
		ret[k] = ret[k-1]
		if isInInt(jumps, k) {
			continue
		}
		d := v3.Sub(E.Kpoints.Vec(k), E.Kpoints.Vec(k-1))
		if E.ReciprocalLattice != nil {
			d = v3.VecTimes(d, E.ReciprocalLattice)
		}
		ret[k] += v3.Norm(d)
	}
	return ret
}

//Calculation is everything a parser reads from a calculation directory.
type Calculation struct {
	EBS       *EBS
	Structure *Structure
	//KPath is nil if the calculation was not done along a line-mode path.
	KPath *KPath
}
