/*
 * procar_test.go, part of goProcar.
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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	v3 "github.com/rmera/goprocar/v3"
)

//chain returns a two-atom supercell of a monoatomic chain along x, with
//two kpoints (Gamma and the supercell zone boundary) and two bands: the
//bonding (1,1) state and the antibonding (1,-1) one.
func chain(Te *testing.T, spins int) *Calculation {
	Te.Helper()
	lattice := v3.Diag(2, 10, 10)
	pos, _ := v3.NewMatrix([]float64{0, 0, 0, 0.5, 0, 0})
	S, err := NewStructure(lattice, []string{"C", "C"}, pos)
	if err != nil {
		Te.Fatal(err)
	}
	kp, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0})
	bands := NewBandValues(2, 2, spins, nil)
	proj := NewProjections(2, 2, 2, 1, spins)
	ph := NewPhases(2, 2, 2, 1, spins)
	for k := 0; k < 2; k++ {
		for s := 0; s < spins; s++ {
			bands.Set(k, 0, s, -1+float64(k))
			bands.Set(k, 1, s, 1+float64(k))
			for a := 0; a < 2; a++ {
				ph.Set(k, 0, a, 0, s, complex(1/math.Sqrt2, 0))
				ph.Set(k, 1, a, 0, s, complex(math.Pow(-1, float64(a))/math.Sqrt2, 0))
				proj.Set(k, 0, a, 0, s, 0.5)
				proj.Set(k, 1, a, 0, s, 0.5)
			}
		}
	}
	rec, err := S.ReciprocalLattice()
	if err != nil {
		Te.Fatal(err)
	}
	E, err := NewEBS(kp, bands, proj, ph, 0, rec)
	if err != nil {
		Te.Fatal(err)
	}
	return &Calculation{EBS: E, Structure: S}
}

func TestPrimitiveTranslations(Te *testing.T) {
	tr, err := primitiveTranslations(v3.Diag(2, 2, 2))
	if err != nil {
		Te.Fatal(err)
	}
	if len(tr) != 8 {
		Te.Errorf("expected 8 translations, got %d: %v", len(tr), tr)
	}
	M, _ := v3.NewMatrix([]float64{1, 1, 0, -1, 1, 0, 0, 0, 1})
	tr, err = primitiveTranslations(M)
	if err != nil {
		Te.Fatal(err)
	}
	want := [][3]float64{{0, 0, 0}, {0.5, 0.5, 0}}
	if diff := cmp.Diff(want, tr, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		Te.Errorf("translations mismatch (-want +got):\n%s", diff)
	}
	if _, err := primitiveTranslations(v3.Diag(1.5, 1, 1)); !errors.Is(err, ErrTransformation) {
		Te.Errorf("expected ErrTransformation, got %v", err)
	}
}

func TestUnfoldChain(Te *testing.T) {
	C := chain(Te, 1)
	if err := C.EBS.Unfold(v3.Diag(2, 1, 1), C.Structure); err != nil {
		Te.Fatal(err)
	}
	want := []float64{1, 0, 0, 1} //k-major: (k0,b0) (k0,b1) (k1,b0) (k1,b1)
	if diff := cmp.Diff(want, C.EBS.Weights.RawData(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		Te.Errorf("weights mismatch (-want +got):\n%s", diff)
	}
}

func TestUnfoldUnnormalized(Te *testing.T) {
	C := chain(Te, 1)
	U, err := NewUnfolder(v3.Diag(2, 1, 1), C.Structure)
	if err != nil {
		Te.Fatal(err)
	}
	w := U.Weight([]complex128{3, 3}, 1, [3]float64{0, 0, 0})
	if math.Abs(w-1) > 1e-12 {
		Te.Errorf("expected weight 1 for an unnormalized vector, got %f", w)
	}
	if w := U.Weight([]complex128{0, 0}, 1, [3]float64{}); w != 0 {
		Te.Errorf("expected weight 0 for a null vector, got %f", w)
	}
}

func TestUnfoldNoPhase(Te *testing.T) {
	C := chain(Te, 1)
	C.EBS.ProjectedPhase = nil
	err := C.EBS.Unfold(v3.Diag(2, 1, 1), C.Structure)
	if !errors.Is(err, ErrNoPhase) {
		Te.Fatalf("expected ErrNoPhase, got %v", err)
	}
	if err.Error() != ErrNoPhase.Error() {
		Te.Errorf("unexpected message: %s", err.Error())
	}
	if C.EBS.Weights != nil {
		Te.Error("weights should not be set")
	}
}

func TestEbsSum(Te *testing.T) {
	C := chain(Te, 2)
	sum, err := C.EBS.EbsSum([]int{0}, nil, []int{0})
	if err != nil {
		Te.Fatal(err)
	}
	if _, _, ns := sum.Dims(); ns != 2 {
		Te.Errorf("the sum should keep 2 spin channels, got %d", ns)
	}
	if v := sum.At(1, 1, 0); math.Abs(v-0.5) > 1e-12 {
		Te.Errorf("expected 0.5, got %f", v)
	}
	if v := sum.At(1, 1, 1); v != 0 {
		Te.Errorf("unselected spin should be zero, got %f", v)
	}
	all, err := C.EBS.EbsSum(nil, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if v := all.At(0, 0, 1); math.Abs(v-1) > 1e-12 {
		Te.Errorf("expected 1, got %f", v)
	}
	if _, err := C.EBS.EbsSum([]int{5}, nil, nil); !errors.Is(err, ErrSelection) {
		Te.Errorf("expected ErrSelection, got %v", err)
	}
}

func TestKDistances(Te *testing.T) {
	C := chain(Te, 1)
	d := C.EBS.KDistances(nil)
	if diff := cmp.Diff([]float64{0, math.Pi}, d, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		Te.Errorf("distances mismatch (-want +got):\n%s", diff)
	}
	C.EBS.ReciprocalLattice = nil
	d = C.EBS.KDistances(nil)
	if d[1] != 1 {
		Te.Errorf("expected a fractional distance of 1, got %f", d[1])
	}
}

func TestKPath(Te *testing.T) {
	K := &KPath{NGrids: 3, Segments: []KSegment{
		{Start: [3]float64{0, 0, 0}, End: [3]float64{0.5, 0, 0}, StartLabel: "G", EndLabel: "X"},
		{Start: [3]float64{0.5, 0, 0}, End: [3]float64{0.5, 0.5, 0}, StartLabel: "X", EndLabel: "M"},
		{Start: [3]float64{0.5, 0.5, 0.5}, End: [3]float64{0, 0, 0}, StartLabel: "R", EndLabel: "G"},
	}}
	if n := K.NKpoints(); n != 9 {
		Te.Errorf("expected 9 kpoints, got %d", n)
	}
	if diff := cmp.Diff([]int{0, 2, 5, 8}, K.TickPositions()); diff != "" {
		Te.Errorf("tick positions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"G", "X", "M|R", "G"}, K.TickNames()); diff != "" {
		Te.Errorf("tick names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{6}, K.Discontinuities()); diff != "" {
		Te.Errorf("discontinuities (-want +got):\n%s", diff)
	}
	for in, out := range map[string]string{"G": "Γ", `$\Gamma$`: "Γ", "X": "X", `\Sigma_1`: "Σ₁"} {
		if p := PrettyLabel(in); p != out {
			Te.Errorf("PrettyLabel(%q): want %q got %q", in, out, p)
		}
	}
}

func TestSelections(Te *testing.T) {
	orb, err := ResolveOrbitals(Selection{"p", "s"})
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 0}, orb); diff != "" {
		Te.Errorf("orbitals (-want +got):\n%s", diff)
	}
	if _, err := ResolveOrbitals(Selection{"q"}); !errors.Is(err, ErrSelection) {
		Te.Errorf("expected ErrSelection, got %v", err)
	}
	pos, _ := v3.NewMatrix(make([]float64, 12))
	S, err := NewStructure(v3.Diag(1, 1, 1), []string{"Mo", "S", "S", "Mo"}, pos)
	if err != nil {
		Te.Fatal(err)
	}
	at, err := ResolveAtoms(S, Selection{"S", "Mo", "S"})
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 3, 1, 2}, at); diff != "" {
		Te.Errorf("atoms (-want +got):\n%s", diff)
	}
	at, _ = ResolveAtoms(S, IntSelection(2, 0))
	if diff := cmp.Diff([]int{2, 0}, at); diff != "" {
		Te.Errorf("atoms by index (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Mo", "S"}, S.Species()); diff != "" {
		Te.Errorf("species (-want +got):\n%s", diff)
	}
}

func TestMasks(Te *testing.T) {
	v := NewBandValues(1, 3, 1, []float64{0.1, 0.5, 0.9})
	a := NewThresholdMask(v, 0.5)
	if a.Count() != 2 {
		Te.Errorf("expected 2 true values, got %d", a.Count())
	}
	b := NewMask(1, 3, 1)
	b.Set(0, 2, 0, false)
	c, err := MaskAnd(a, b)
	if err != nil {
		Te.Fatal(err)
	}
	if c.Count() != 1 || !c.At(0, 1, 0) {
		Te.Errorf("wrong mask combination")
	}
	if d, _ := MaskAnd(nil, a); d != a {
		Te.Errorf("MaskAnd with nil should return the other mask")
	}
	var none *Mask
	if !none.At(3, 3, 3) {
		Te.Errorf("a nil mask should select everything")
	}
	if _, err := MaskAnd(a, NewMask(2, 3, 1)); !errors.Is(err, ErrShape) {
		Te.Errorf("expected ErrShape, got %v", err)
	}
}

func TestParserRegistry(Te *testing.T) {
	RegisterParser("registry-test", func(dir string) (*Calculation, error) {
		return chain(Te, 1), nil
	})
	if !isInString(Codes(), "registry-test") {
		Te.Errorf("code not registered: %v", Codes())
	}
	if _, err := Parse("registry-test", "."); err != nil {
		Te.Error(err)
	}
	_, err := Parse("abinit-that-does-not-exist", ".")
	if !errors.Is(err, ErrUnknownCode) {
		Te.Errorf("expected ErrUnknownCode, got %v", err)
	}
}
