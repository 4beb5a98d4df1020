/*
 * gocoords.go, part of goProcar.
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

package v3

import (
	"fmt"
	"math"
	"strings"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//METHODS

//SwapVecs exchanges the vectors i and j of F.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrShape)
	}
	rowi := F.Vec(i)
	rowj := F.Vec(j)
	F.SetVec(i, rowj)
	F.SetVec(j, rowi)
}

//Cartesian puts in F the cartesian version of the fractional
//coordinates in A, given the lattice (rows are lattice vectors).
func (F *Matrix) Cartesian(A, lattice *Matrix) {
	ar := A.NVecs()
	if F.NVecs() != ar || lattice.NVecs() != 3 {
		panic(ErrShape)
	}
	F.Mul(A, lattice)
}

//Fractional puts in F the fractional version of the cartesian
//coordinates in A, given the lattice. Returns error if the lattice
//is singular.
func (F *Matrix) Fractional(A, lattice *Matrix) error {
	inv, err := Inverse(lattice)
	if err != nil {
		return errDecorate(err, "Fractional")
	}
	F.Mul(A, inv)
	return nil
}

//Wrap puts in F the coordinates of A reduced to the [0,1) interval.
//Values within tol of 1 are taken as 0.
func (F *Matrix) Wrap(A *Matrix, tol float64) {
	r := A.NVecs()
	if F.NVecs() != r {
		panic(ErrShape)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, WrapFloat(A.At(i, j), tol))
		}
	}
}

//WrapFloat reduces v to the [0,1) interval. Values within tol of 1
//are taken as 0.
func WrapFloat(v, tol float64) float64 {
	v = v - math.Floor(v)
	if v > 1-tol {
		v = 0
	}
	return v
}

//CloseToInt returns true if every component of v is within tol of an integer.
func CloseToInt(v [3]float64, tol float64) bool {
	for _, x := range v {
		if math.Abs(x-math.Round(x)) >= tol {
			return false
		}
	}
	return true
}

//Dot returns the dot product of two 3-vectors.
func Dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

//Norm returns the Euclidean norm of a 3-vector.
func Norm(a [3]float64) float64 {
	return math.Sqrt(Dot(a, a))
}

//Sub returns a-b.
func Sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

//Add returns a+b.
func Add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

//VecTimes returns the row vector v multiplied by the matrix A (v*A).
func VecTimes(v [3]float64, A *Matrix) [3]float64 {
	var r [3]float64
	for j := 0; j < 3; j++ {
		r[j] = v[0]*A.At(0, j) + v[1]*A.At(1, j) + v[2]*A.At(2, j)
	}
	return r
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r)
	for i := 0; i < r; i++ {
		row := make([]string, c)
		for j := 0; j < c; j++ {
			row[j] = fmt.Sprintf("%12.8f", F.At(i, j))
		}
		v[i] = strings.Join(row, " ")
	}
	return strings.Join(v, "\n")
}
