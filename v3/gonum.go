/*
 * gonum.go, part of goProcar.
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

//gonum.go contains what is needed for handling the gonum/mat types.
//A "vector" is always a row vector, i.e. one point or lattice vector.

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space.
type Matrix struct {
	*mat.Dense
}

func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//Diag returns a 3x3 matrix with a, b and c in the diagonal.
func Diag(a, b, c float64) *Matrix {
	r := Zeros(3)
	r.Set(0, 0, a)
	r.Set(1, 1, b)
	r.Set(2, 2, c)
	return r
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the ith vector of the matrix.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Vec copies the ith vector into a [3]float64.
func (F *Matrix) Vec(i int) [3]float64 {
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

//SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	for j := 0; j < 3; j++ {
		F.Set(i, j, v[j])
	}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns. Changes in the view are reflected in F and vice-versa.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//Mul wraps mat.Dense.Mul to take care of the case when one of the
//arguments is also the receiver.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if A, ok := A.(*Matrix); ok {
		if B, ok := B.(*Matrix); ok {
			F.Dense.Mul(A.Dense, B.Dense)
			return
		}
		F.Dense.Mul(A.Dense, B)
		return
	}
	if B, ok := B.(*Matrix); ok {
		F.Dense.Mul(A, B.Dense)
		return
	}
	F.Dense.Mul(A, B)
}

//Det returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func Det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return (A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) - A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) + A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2)))
}

//Inverse returns the inverse of the 3x3 matrix A, or an error if
//A is singular.
func Inverse(A mat.Matrix) (*Matrix, error) {
	if math.Abs(Det(A)) < appzero {
		return nil, Error{"Singular matrix", []string{"Inverse"}, true}
	}
	r := Zeros(3)
	if err := r.Dense.Inverse(A); err != nil {
		return nil, Error{fmt.Sprintf("%s: %s", ErrGonum, err.Error()), []string{"Inverse"}, true}
	}
	return r, nil
}

//Reciprocal returns the reciprocal lattice of the lattice in A
//(rows are lattice vectors), including the 2*pi factor.
func Reciprocal(A *Matrix) (*Matrix, error) {
	inv, err := Inverse(A)
	if err != nil {
		return nil, errDecorate(err, "Reciprocal")
	}
	r := Zeros(3)
	r.Dense.CloneFrom(inv.T())
	r.Scale(2*math.Pi, r.Dense)
	return r, nil
}

//Errors

//errorInt is the interface the package errors satisfy.
type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//errDecorate is a helper function that asserts that the error
//implements errorInt and decorates the error with the caller's name before returning it.
//Other errors are returned untouched.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.deco = err2.Decorate(caller)
	return err2
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("goProcar/v3: A Matrix should have 3 columns")
	ErrGonum        = PanicMsg("goProcar/v3: Error in gonum function")
	ErrDeterminant  = PanicMsg("goProcar/v3: Determinants are only available for 3x3 matrices")
	ErrShape        = PanicMsg("goProcar/v3: Dimension mismatch")
)
