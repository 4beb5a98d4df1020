/*
 * unfold.go, part of goProcar.
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
	"math/cmplx"

	v3 "github.com/rmera/goprocar/v3"
	"gonum.org/v1/gonum/mat"
)

//DefaultUnfoldTolerance is the tolerance, in fractional coordinates, used
//to decide whether two positions differ by a lattice vector.
const DefaultUnfoldTolerance = 0.1

//Unfolder projects supercell states onto the Brillouin zone of the
//primitive cell. The transformation matrix M gives the supercell lattice
//vectors (rows) in units of the primitive ones.
type Unfolder struct {
	translations [][3]float64
	//maps[r][a] is the atom found at the position of atom a translated by
	//translations[r], or -1.
	maps [][]int
	tol  float64
}

//NewUnfolder builds the translation maps for the structure S (the supercell)
//and the transformation matrix M. tol is optional.
func NewUnfolder(M mat.Matrix, S *Structure, tol ...float64) (*Unfolder, error) {
	U := &Unfolder{tol: DefaultUnfoldTolerance}
	if len(tol) > 0 && tol[0] > 0 {
		U.tol = tol[0]
	}
	r, c := M.Dims()
	if r != 3 || c != 3 {
		return nil, NewError(ErrTransformation, fmt.Sprintf("the transformation matrix must be 3x3, not %dx%d", r, c), "NewUnfolder")
	}
	var err error
	U.translations, err = primitiveTranslations(M)
	if err != nil {
		return nil, errDecorate(err, "NewUnfolder")
	}
	U.maps = make([][]int, len(U.translations))
	for i, t := range U.translations {
		U.maps[i] = U.translationMap(S, t)
	}
	return U, nil
}

//Translations returns the primitive lattice translations within the supercell, in
//fractional supercell coordinates.
func (U *Unfolder) Translations() [][3]float64 {
	return U.translations
}

//translationMap returns, for each atom a, the atom of the same species
//sitting at the position of a translated by t, or -1 if there is none.
func (U *Unfolder) translationMap(S *Structure, t [3]float64) []int {
	n := S.NAtoms()
	ret := make([]int, n)
	for a := 0; a < n; a++ {
		ret[a] = -1
		moved := v3.Add(S.Position(a), t)
		for b := 0; b < n; b++ {
			if S.Atoms[a] != S.Atoms[b] {
				continue
			}
			if v3.CloseToInt(v3.Sub(moved, S.Position(b)), U.tol) {
				ret[a] = b
				break
			}
		}
	}
	return ret
}

//primitiveTranslations returns the lattice vectors of the primitive cell
//that fall inside the supercell given by M, in fractional coordinates of the
//supercell. There must be |det M| of them.
func primitiveTranslations(M mat.Matrix) ([][3]float64, error) {
	det := v3.Det(M)
	n := int(math.Round(math.Abs(det)))
	if n == 0 || math.Abs(math.Abs(det)-float64(n)) > 1e-6 {
		return nil, NewError(ErrTransformation, fmt.Sprintf("determinant %g is not a non-zero integer", det), "primitiveTranslations")
	}
	inv, err := v3.Inverse(M)
	if err != nil {
		return nil, NewError(ErrTransformation, err.Error(), "primitiveTranslations")
	}
	//the corners of the supercell, in primitive units, bound the search.
	var lo, hi [3]int
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			v := M.At(r, c)
			if v < 0 {
				lo[c] += int(math.Floor(v))
			} else {
				hi[c] += int(math.Ceil(v))
			}
		}
	}
	const eps = 1e-6
	ret := make([][3]float64, 0, n)
	for i := lo[0]; i <= hi[0]; i++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for k := lo[2]; k <= hi[2]; k++ {
				s := v3.VecTimes([3]float64{float64(i), float64(j), float64(k)}, inv)
				inside := true
				for _, x := range s {
					if x < -eps || x >= 1-eps {
						inside = false
						break
					}
				}
				if !inside {
					continue
				}
				for l := range s {
					s[l] = v3.WrapFloat(s[l], eps)
				}
				if !containsVec(ret, s, eps) {
					ret = append(ret, s)
				}
			}
		}
	}
	if len(ret) != n {
		return nil, NewError(ErrTransformation, fmt.Sprintf("found %d primitive translations, expected %d", len(ret), n), "primitiveTranslations")
	}
	return ret, nil
}

func containsVec(list [][3]float64, v [3]float64, eps float64) bool {
	for _, w := range list {
		if math.Abs(w[0]-v[0]) < eps && math.Abs(w[1]-v[1]) < eps && math.Abs(w[2]-v[2]) < eps {
			return true
		}
	}
	return false
}

//Weight returns the spectral weight of the state with coefficients evec
//(atom-major, norbitals per atom) at the kpoint k (fractional supercell
//reciprocal coordinates). evec doesn't need to be normalized.
func (U *Unfolder) Weight(evec []complex128, norbitals int, k [3]float64) float64 {
	var norm float64
	for _, v := range evec {
		norm += real(v)*real(v) + imag(v)*imag(v)
	}
	if norm == 0 {
		return 0
	}
	var w complex128
	for i, t := range U.translations {
		var overlap complex128
		for a, b := range U.maps[i] {
			if b < 0 {
				continue
			}
			for o := 0; o < norbitals; o++ {
				overlap += cmplx.Conj(evec[a*norbitals+o]) * evec[b*norbitals+o]
			}
		}
		w += overlap * cmplx.Exp(complex(0, -2*math.Pi*v3.Dot(k, t)))
	}
	return real(w) / (norm * float64(len(U.translations)))
}

//Weights returns the unfolding weights of every band of E at every kpoint and spin.
func (U *Unfolder) Weights(E *EBS) (*BandValues, error) {
	if E.ProjectedPhase == nil {
		return nil, NewError(ErrNoPhase, ErrNoPhase.Error(), "Unfolder.Weights")
	}
	nk, nb, na, no, ns := E.ProjectedPhase.Dims()
	if len(U.maps) > 0 && len(U.maps[0]) != na {
		return nil, NewError(ErrShape, fmt.Sprintf("structure has %d atoms, projections %d", len(U.maps[0]), na), "Unfolder.Weights")
	}
	ret := NewBandValues(nk, nb, ns, nil)
	var evec []complex128
	for k := 0; k < nk; k++ {
		kp := E.Kpoints.Vec(k)
		for b := 0; b < nb; b++ {
			for s := 0; s < ns; s++ {
				evec = E.ProjectedPhase.Vector(k, b, s, evec)
				ret.Set(k, b, s, U.Weight(evec, no, kp))
			}
		}
	}
	return ret, nil
}

//Unfold computes the unfolding weights of the bands, given the
//transformation matrix from the primitive cell to the supercell
//of the calculation, and the supercell structure. The weights are
//stored in E.Weights.
func (E *EBS) Unfold(transformation mat.Matrix, S *Structure) error {
	if E.ProjectedPhase == nil {
		return NewError(ErrNoPhase, ErrNoPhase.Error(), "Unfold")
	}
	U, err := NewUnfolder(transformation, S)
	if err != nil {
		return errDecorate(err, "Unfold")
	}
	w, err := U.Weights(E)
	if err != nil {
		return errDecorate(err, "Unfold")
	}
	E.Weights = w
	return nil
}
