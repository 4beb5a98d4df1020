/*
 * bandvalues.go, part of goProcar.
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
	"gonum.org/v1/gonum/floats"
)

//BandValues is a dense (kpoint, band, spin) array of float64. It is used
//for band energies, unfolding weights and projection sums.
type BandValues struct {
	nk, nb, ns int
	data       []float64
}

//NewBandValues returns a BandValues with the given dimensions. If data is nil
//a zero-filled array is allocated, otherwise data is used as the backing slice,
//and it must have nk*nb*ns elements.
func NewBandValues(nk, nb, ns int, data []float64) *BandValues {
	if data == nil {
		data = make([]float64, nk*nb*ns)
	}
	if len(data) != nk*nb*ns {
		panic(ErrDataLength)
	}
	return &BandValues{nk: nk, nb: nb, ns: ns, data: data}
}

//Dims returns the number of kpoints, bands and spins.
func (B *BandValues) Dims() (nk, nb, ns int) {
	return B.nk, B.nb, B.ns
}

func (B *BandValues) index(k, b, s int) int {
	if k < 0 || k >= B.nk || b < 0 || b >= B.nb || s < 0 || s >= B.ns {
		panic(ErrIndexOutOfRange)
	}
	return (k*B.nb+b)*B.ns + s
}

func (B *BandValues) At(k, b, s int) float64 {
	return B.data[B.index(k, b, s)]
}

func (B *BandValues) Set(k, b, s int, v float64) {
	B.data[B.index(k, b, s)] = v
}

//RawData returns the backing slice, k-major, spin-minor.
func (B *BandValues) RawData() []float64 {
	return B.data
}

//Clone returns a deep copy of B.
func (B *BandValues) Clone() *BandValues {
	d := make([]float64, len(B.data))
	copy(d, B.data)
	return NewBandValues(B.nk, B.nb, B.ns, d)
}

//AddScalar adds v to every element of B.
func (B *BandValues) AddScalar(v float64) {
	floats.AddConst(v, B.data)
}

//Max returns the largest element. Panics on an empty array.
func (B *BandValues) Max() float64 {
	return floats.Max(B.data)
}

//Min returns the smallest element. Panics on an empty array.
func (B *BandValues) Min() float64 {
	return floats.Min(B.data)
}

//Series puts in dst (allocated if too short) the values of band b, spin s
//along the kpoints, and returns it.
func (B *BandValues) Series(b, s int, dst []float64) []float64 {
	if len(dst) < B.nk {
		dst = make([]float64, B.nk)
	}
	dst = dst[:B.nk]
	for k := 0; k < B.nk; k++ {
		dst[k] = B.At(k, b, s)
	}
	return dst
}

//Mask is a dense (kpoint, band, spin) array of bools. A nil *Mask
//selects everything.
type Mask struct {
	nk, nb, ns int
	data       []bool
}

//NewMask returns a mask with every element set to true.
func NewMask(nk, nb, ns int) *Mask {
	d := make([]bool, nk*nb*ns)
	for i := range d {
		d[i] = true
	}
	return &Mask{nk: nk, nb: nb, ns: ns, data: d}
}

//NewThresholdMask returns a mask that is true where values is >= cutoff.
func NewThresholdMask(values *BandValues, cutoff float64) *Mask {
	M := NewMask(values.Dims())
	for i, v := range values.data {
		M.data[i] = v >= cutoff
	}
	return M
}

func (M *Mask) Dims() (nk, nb, ns int) {
	return M.nk, M.nb, M.ns
}

func (M *Mask) index(k, b, s int) int {
	if k < 0 || k >= M.nk || b < 0 || b >= M.nb || s < 0 || s >= M.ns {
		panic(ErrIndexOutOfRange)
	}
	return (k*M.nb+b)*M.ns + s
}

//At returns the value of the mask at k, b, s. A nil mask is true everywhere.
func (M *Mask) At(k, b, s int) bool {
	if M == nil {
		return true
	}
	return M.data[M.index(k, b, s)]
}

func (M *Mask) Set(k, b, s int, v bool) {
	M.data[M.index(k, b, s)] = v
}

//Count returns the number of true elements.
func (M *Mask) Count() int {
	var n int
	for _, v := range M.data {
		if v {
			n++
		}
	}
	return n
}

//MaskAnd returns the element-wise logical and of a and b. If one of them
//is nil, the other is returned. Returns an error if the dimensions don't match.
func MaskAnd(a, b *Mask) (*Mask, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if a.nk != b.nk || a.nb != b.nb || a.ns != b.ns {
		return nil, NewError(ErrShape, "masks with different dimensions", "MaskAnd")
	}
	r := NewMask(a.Dims())
	for i := range r.data {
		r.data[i] = a.data[i] && b.data[i]
	}
	return r, nil
}

//Projections is a dense (kpoint, band, atom, orbital, spin) array with
//the projections of each band on the atomic orbitals.
type Projections struct {
	nk, nb, na, no, ns int
	data               []float64
}

//NewProjections returns a zero-filled Projections.
func NewProjections(nk, nb, na, no, ns int) *Projections {
	return &Projections{nk: nk, nb: nb, na: na, no: no, ns: ns, data: make([]float64, nk*nb*na*no*ns)}
}

func (P *Projections) Dims() (nk, nb, na, no, ns int) {
	return P.nk, P.nb, P.na, P.no, P.ns
}

func (P *Projections) index(k, b, a, o, s int) int {
	if k < 0 || k >= P.nk || b < 0 || b >= P.nb || a < 0 || a >= P.na || o < 0 || o >= P.no || s < 0 || s >= P.ns {
		panic(ErrIndexOutOfRange)
	}
	return (((k*P.nb+b)*P.na+a)*P.no+o)*P.ns + s
}

func (P *Projections) At(k, b, a, o, s int) float64 {
	return P.data[P.index(k, b, a, o, s)]
}

func (P *Projections) Set(k, b, a, o, s int, v float64) {
	P.data[P.index(k, b, a, o, s)] = v
}

//Phases has the same layout as Projections, but holds the complex
//projection coefficients needed for unfolding.
type Phases struct {
	nk, nb, na, no, ns int
	data               []complex128
}

//NewPhases returns a zero-filled Phases.
func NewPhases(nk, nb, na, no, ns int) *Phases {
	return &Phases{nk: nk, nb: nb, na: na, no: no, ns: ns, data: make([]complex128, nk*nb*na*no*ns)}
}

func (P *Phases) Dims() (nk, nb, na, no, ns int) {
	return P.nk, P.nb, P.na, P.no, P.ns
}

func (P *Phases) index(k, b, a, o, s int) int {
	if k < 0 || k >= P.nk || b < 0 || b >= P.nb || a < 0 || a >= P.na || o < 0 || o >= P.no || s < 0 || s >= P.ns {
		panic(ErrIndexOutOfRange)
	}
	return (((k*P.nb+b)*P.na+a)*P.no+o)*P.ns + s
}

func (P *Phases) At(k, b, a, o, s int) complex128 {
	return P.data[P.index(k, b, a, o, s)]
}

func (P *Phases) Set(k, b, a, o, s int, v complex128) {
	P.data[P.index(k, b, a, o, s)] = v
}

//Vector puts in dst (allocated if too short) the coefficients of band b,
//spin s at kpoint k, atom-major, and returns it.
func (P *Phases) Vector(k, b, s int, dst []complex128) []complex128 {
	n := P.na * P.no
	if len(dst) < n {
		dst = make([]complex128, n)
	}
	dst = dst[:n]
	for a := 0; a < P.na; a++ {
		for o := 0; o < P.no; o++ {
			dst[a*P.no+o] = P.At(k, b, a, o, s)
		}
	}
	return dst
}
