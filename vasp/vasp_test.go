/*
 * vasp_test.go, part of goProcar.
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

package vasp

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	procar "github.com/rmera/goprocar"
	v3 "github.com/rmera/goprocar/v3"
)

func TestReadPoscar(Te *testing.T) {
	S, err := ReadPoscar("testdata/chain/POSCAR")
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff([]string{"C", "C"}, S.Atoms); diff != "" {
		Te.Errorf("atoms (-want +got):\n%s", diff)
	}
	if S.Position(1) != [3]float64{0.5, 0, 0} {
		Te.Errorf("wrong position: %v", S.Position(1))
	}
	if v := S.Lattice.At(0, 0); v != 2.8 {
		Te.Errorf("wrong lattice: %f", v)
	}
	//VASP 4, volume scale, selective dynamics and cartesian coordinates.
	S, err = ReadPoscar("testdata/spin/POSCAR")
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(S.Volume()-56) > 1e-9 {
		Te.Errorf("expected a volume of 56, got %f", S.Volume())
	}
	if p := S.Position(1); math.Abs(p[0]-0.7) > 1e-9 || S.Atoms[1] != "C" {
		Te.Errorf("wrong second atom: %s %v", S.Atoms[1], p)
	}
}

func TestReadProcar(Te *testing.T) {
	D, err := ReadProcar("testdata/chain/PROCAR")
	if err != nil {
		Te.Fatal(err)
	}
	nk, nb, na, no, ns := D.Projected.Dims()
	if diff := cmp.Diff([]int{3, 2, 2, 9, 1}, []int{nk, nb, na, no, ns}); diff != "" {
		Te.Errorf("dimensions (-want +got):\n%s", diff)
	}
	if D.Orbitals[8] != "x2-y2" {
		Te.Errorf("wrong orbital names: %v", D.Orbitals)
	}
	if e := D.Bands.At(2, 1, 0); e != 2 {
		Te.Errorf("expected an energy of 2, got %f", e)
	}
	if D.Kpoints.Vec(1) != [3]float64{0.5, 0, 0} {
		Te.Errorf("wrong kpoint: %v", D.Kpoints.Vec(1))
	}
	if D.Phases == nil {
		Te.Fatal("phases not read")
	}
	if c := D.Phases.At(0, 1, 1, 0, 0); real(c) != -0.707 || imag(c) != 0 {
		Te.Errorf("wrong phase: %v", c)
	}
	if p := D.Projected.At(0, 1, 1, 0, 0); p != 0.5 {
		Te.Errorf("wrong projection: %f", p)
	}
}

func TestReadProcarSpin(Te *testing.T) {
	D, err := ReadProcar("testdata/spin/PROCAR")
	if err != nil {
		Te.Fatal(err)
	}
	if _, _, ns := D.Bands.Dims(); ns != 2 {
		Te.Fatalf("expected 2 spin channels, got %d", ns)
	}
	if d := D.Bands.At(0, 0, 1) - D.Bands.At(0, 0, 0); math.Abs(d-0.25) > 1e-9 {
		Te.Errorf("wrong spin splitting: %f", d)
	}
	if c := D.Phases.At(2, 1, 1, 0, 1); real(c) != -0.707 {
		Te.Errorf("wrong phase from the real/imaginary line format: %v", c)
	}
}

func TestReadProcarNonCollinear(Te *testing.T) {
	_, err := ReadProcar("testdata/noncollinear/PROCAR")
	if !errors.Is(err, procar.ErrNonCollinear) {
		Te.Errorf("expected ErrNonCollinear, got %v", err)
	}
}

func TestReadKpointsAndFermi(Te *testing.T) {
	K, err := ReadKpoints("testdata/chain/KPOINTS")
	if err != nil {
		Te.Fatal(err)
	}
	if K.NGrids != 3 || len(K.Segments) != 1 {
		Te.Fatalf("wrong path: %+v", K)
	}
	if diff := cmp.Diff([]string{"Γ", "X"}, K.TickNames()); diff != "" {
		Te.Errorf("labels (-want +got):\n%s", diff)
	}
	ef, err := ReadFermi("testdata/chain/OUTCAR")
	if err != nil {
		Te.Fatal(err)
	}
	if ef != -0.5 {
		Te.Errorf("expected the last Fermi energy, -0.5, got %f", ef)
	}
	auto := filepath.Join(Te.TempDir(), "KPOINTS")
	os.WriteFile(auto, []byte("Automatic mesh\n0\nGamma\n 4 4 4\n"), 0o644)
	if K, err := ReadKpoints(auto); err != nil || K != nil {
		Te.Errorf("expected no path for a mesh file, got %v %v", K, err)
	}
}

//copies the files of src into dst, compressing them as name+ext
func copyCompressed(Te *testing.T, src, dst, ext string) {
	Te.Helper()
	entries, err := os.ReadDir(src)
	if err != nil {
		Te.Fatal(err)
	}
	for _, e := range entries {
		in, err := os.Open(filepath.Join(src, e.Name()))
		if err != nil {
			Te.Fatal(err)
		}
		out, err := procar.CreateFile(filepath.Join(dst, e.Name()+ext))
		if err != nil {
			Te.Fatal(err)
		}
		if _, err := io.Copy(out, in); err != nil {
			Te.Fatal(err)
		}
		in.Close()
		if err := out.Close(); err != nil {
			Te.Fatal(err)
		}
	}
}

func TestParse(Te *testing.T) {
	plain, err := procar.Parse("vasp", "testdata/chain")
	if err != nil {
		Te.Fatal(err)
	}
	if plain.KPath == nil || plain.EBS.Efermi != -0.5 {
		Te.Errorf("KPOINTS or OUTCAR not used")
	}
	for _, ext := range []string{".gz", ".zst"} {
		dir := Te.TempDir()
		copyCompressed(Te, "testdata/chain", dir, ext)
		C, err := Parse(dir)
		if err != nil {
			Te.Fatalf("%s: %v", ext, err)
		}
		if diff := cmp.Diff(plain.EBS.Bands.RawData(), C.EBS.Bands.RawData(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			Te.Errorf("%s: bands differ (-plain +compressed):\n%s", ext, diff)
		}
	}
	//no OUTCAR nor KPOINTS
	C, err := Parse("testdata/spin")
	if err != nil {
		Te.Fatal(err)
	}
	if C.KPath != nil || C.EBS.Efermi != 0 || !C.EBS.IsSpinPolarized() {
		Te.Errorf("unexpected calculation: %+v", C)
	}
	if _, err := Parse("testdata/noncollinear"); err == nil {
		Te.Error("expected an error for a directory without POSCAR")
	}
}

func TestUnfoldFromFiles(Te *testing.T) {
	C, err := Parse("testdata/chain")
	if err != nil {
		Te.Fatal(err)
	}
	M := [9]float64{2, 0, 0, 0, 1, 0, 0, 0, 1}
	U, err := procar.NewUnfolder(denseOf(M), C.Structure)
	if err != nil {
		Te.Fatal(err)
	}
	w, err := U.Weights(C.EBS)
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{1, 0, 0.5, 0.5, 0, 1}
	if diff := cmp.Diff(want, w.RawData(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		Te.Errorf("weights (-want +got):\n%s", diff)
	}
}

func denseOf(m [9]float64) *v3.Matrix {
	r, _ := v3.NewMatrix(m[:])
	return r
}
