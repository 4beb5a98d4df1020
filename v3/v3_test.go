/*
 * v3_test.go, part of goProcar.
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
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Error(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("view did not modify the original matrix:\n%s", A)
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("expected an error for a slice not divisible by 3")
	}
}

func TestInverseAndDet(Te *testing.T) {
	A := Diag(2, 2, 2)
	if d := Det(A); d != 8 {
		Te.Errorf("Det: expected 8, got %f", d)
	}
	inv, err := Inverse(A)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if inv.At(i, i) != 0.5 {
			Te.Errorf("Inverse: wrong diagonal element %d: %f", i, inv.At(i, i))
		}
	}
	if _, err := Inverse(Zeros(3)); err == nil {
		Te.Error("Inverse: expected an error for a singular matrix")
	}
}

func TestReciprocal(Te *testing.T) {
	A := Diag(2, 4, 5)
	B, err := Reciprocal(A)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("Reciprocal lattice\n", B)
	want := []float64{math.Pi, math.Pi / 2, 2 * math.Pi / 5}
	for i, v := range want {
		if math.Abs(B.At(i, i)-v) > 1e-12 {
			Te.Errorf("Reciprocal: element %d: want %f got %f", i, v, B.At(i, i))
		}
	}
}

func TestWrap(Te *testing.T) {
	A, _ := NewMatrix([]float64{1.25, -0.25, 0.9999999, 3, 0.5, -1.5})
	F := Zeros(2)
	F.Wrap(A, 1e-5)
	want := []float64{0.25, 0.75, 0, 0, 0.5, 0.5}
	if !floats.EqualApprox(F.RawMatrix().Data, want, 1e-9) {
		Te.Errorf("Wrap: want %v got %v", want, F.RawMatrix().Data)
	}
	if !CloseToInt([3]float64{0.99, 2.02, -1}, 0.1) {
		Te.Error("CloseToInt: expected true")
	}
	if CloseToInt([3]float64{0.5, 0, 0}, 0.1) {
		Te.Error("CloseToInt: expected false")
	}
}

func TestCartesianFractional(Te *testing.T) {
	lattice, _ := NewMatrix([]float64{3, 0, 0, 0, 4, 0, 1, 0, 5})
	frac, _ := NewMatrix([]float64{0.5, 0.5, 0.5})
	cart := Zeros(1)
	cart.Cartesian(frac, lattice)
	back := Zeros(1)
	if err := back.Fractional(cart, lattice); err != nil {
		Te.Fatal(err)
	}
	if !floats.EqualApprox(back.RawMatrix().Data, frac.RawMatrix().Data, 1e-12) {
		Te.Errorf("round trip failed: %v", back.RawMatrix().Data)
	}
	v := VecTimes([3]float64{1, 0, 1}, lattice)
	if v != [3]float64{4, 0, 5} {
		Te.Errorf("VecTimes: got %v", v)
	}
}
