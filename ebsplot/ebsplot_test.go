/*
 * ebsplot_test.go, part of goProcar.
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

package ebsplot

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	procar "github.com/rmera/goprocar"
	"github.com/rmera/goprocar/cfg"
	v3 "github.com/rmera/goprocar/v3"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/plot/vg"
)

//bands returns a spin polarized band structure with 3 bands along
//a 2-segment path of 4 points each (8 kpoints), with weights growing with k.
func bands(Te *testing.T) (*procar.EBS, *procar.KPath) {
	Te.Helper()
	K := &procar.KPath{NGrids: 4, Segments: []procar.KSegment{
		{Start: [3]float64{0, 0, 0}, End: [3]float64{0.5, 0, 0}, StartLabel: "G", EndLabel: "X"},
		{Start: [3]float64{0.5, 0, 0}, End: [3]float64{0.5, 0.5, 0}, StartLabel: "X", EndLabel: "M"},
	}}
	kp := v3.Zeros(8)
	B := procar.NewBandValues(8, 3, 2, nil)
	for k := 0; k < 8; k++ {
		seg := K.Segments[k/4]
		f := float64(k%4) / 3
		for i := 0; i < 3; i++ {
			kp.Set(k, i, seg.Start[i]+f*(seg.End[i]-seg.Start[i]))
		}
		for b := 0; b < 3; b++ {
			for s := 0; s < 2; s++ {
				B.Set(k, b, s, float64(b*2-2)+0.1*float64(k)+0.05*float64(s))
			}
		}
	}
	E, err := procar.NewEBS(kp, B, nil, nil, 0, v3.Diag(1, 1, 1))
	if err != nil {
		Te.Fatal(err)
	}
	return E, K
}

func config(Te *testing.T) *cfg.Config {
	Te.Helper()
	c, err := cfg.ConfigFactory{}.CreateConfig(cfg.BandStructure)
	if err != nil {
		Te.Fatal(err)
	}
	return c
}

func ramp(Te *testing.T, E *procar.EBS) *procar.BandValues {
	Te.Helper()
	nk, nb, ns := E.Bands.Dims()
	w := procar.NewBandValues(nk, nb, ns, nil)
	for k := 0; k < nk; k++ {
		for b := 0; b < nb; b++ {
			for s := 0; s < ns; s++ {
				w.Set(k, b, s, float64(k)/float64(nk-1))
			}
		}
	}
	return w
}

func TestKgrid(Te *testing.T) {
	//the 4th and 5th points are the same (a joint between segments)
	x := []float64{0, 1, 2, 3, 3, 4, 5}
	G := newKgrid(x, 1)
	if diff := cmp.Diff([][2]int{{0, 4}, {4, 7}}, G.pieces); diff != "" {
		Te.Errorf("pieces (-want +got):\n%s", diff)
	}
	if G.joined[4] || !G.joined[5] {
		Te.Errorf("wrong joints: %v", G.joined)
	}
	G = newKgrid(x, 2)
	if len(G.x) != 4+3+3+2 {
		Te.Fatalf("expected 12 points, got %d: %v", len(G.x), G.x)
	}
	if G.x[1] != 0.5 || G.src[1] != 1 || G.src[2] != 1 {
		Te.Errorf("wrong subdivision: %v %v", G.x, G.src)
	}
	y := []float64{0, 1, 4, 9, 9, 16, 25}
	lin, err := G.values(x, y, "linear")
	if err != nil {
		Te.Fatal(err)
	}
	if lin[1] != 0.5 || lin[len(lin)-1] != 25 {
		Te.Errorf("wrong linear interpolation: %v", lin)
	}
	cub, err := G.values(x, y, "cubic")
	if err != nil {
		Te.Fatal(err)
	}
	if len(cub) != len(G.x) || !scalar.EqualWithinAbs(cub[2], 1, 1e-9) {
		Te.Errorf("cubic interpolation should go through the data: %v", cub)
	}
	if _, err := newPredictor("spline9", 10); !errors.Is(err, ErrOption) {
		Te.Errorf("expected ErrOption, got %v", err)
	}
}

func TestParseColor(Te *testing.T) {
	c, err := ParseColor("#ff000080")
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff(color.NRGBA{R: 255, A: 128}, c); diff != "" {
		Te.Errorf("color (-want +got):\n%s", diff)
	}
	if _, err := ParseColor("Black"); err != nil {
		Te.Error(err)
	}
	if _, err := ParseColor("#12"); !errors.Is(err, ErrOption) {
		Te.Errorf("expected ErrOption, got %v", err)
	}
	for _, name := range []string{"jet", "coolwarm", "viridis", "hot", "PuOr"} {
		cm, err := ColorMap(name)
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		cm.SetMax(2)
		cm.SetMin(1)
		if c := mapColor(cm, 5); c == nil {
			Te.Errorf("%s: no color for a value out of range", name)
		}
	}
	if r, g, b := hsv2rgb(240, 1, 1); r != 0 || g != 0 || b != 255 {
		Te.Errorf("hue 240 should be blue, got %d %d %d", r, g, b)
	}
	if rampColor(0, 3) == rampColor(1, 3) {
		Te.Error("the ramp should give different colors")
	}
}

func TestPlotBandsAndLegend(Te *testing.T) {
	E, K := bands(Te)
	P, err := New(E, K, nil, nil, config(Te))
	if err != nil {
		Te.Fatal(err)
	}
	if err := P.PlotBands(); err != nil {
		Te.Fatal(err)
	}
	if P.NSpins() != 2 || len(P.Handles) != 2 || P.Handles[1].Label != "spin-down" {
		Te.Errorf("wrong handles: %+v", P.Handles)
	}
	if err := P.SetXTicks(nil, nil); err != nil {
		Te.Fatal(err)
	}
	ticks := P.Plot.X.Tick.Marker.Ticks(0, 1)
	want := []string{"Γ", "X", "M"}
	got := make([]string, len(ticks))
	for i, t := range ticks {
		got[i] = t.Label
	}
	if diff := cmp.Diff(want, got); diff != "" {
		Te.Errorf("tick labels (-want +got):\n%s", diff)
	}
	if err := P.SetXTicks([]int{0, 7}, []string{"A"}); !errors.Is(err, procar.ErrShape) {
		Te.Errorf("expected ErrShape, got %v", err)
	}
	if err := P.Legend([]string{"one"}); !errors.Is(err, procar.ErrShape) {
		Te.Errorf("expected ErrShape for a label mismatch, got %v", err)
	}
	if err := P.Legend(nil); err != nil {
		Te.Error(err)
	}
	if _, err := New(E, K, nil, []int{2}, config(Te)); !errors.Is(err, procar.ErrSelection) {
		Te.Errorf("expected ErrSelection for a bad spin, got %v", err)
	}
}

func TestParametricMasks(Te *testing.T) {
	E, K := bands(Te)
	P, err := New(E, K, nil, []int{0}, config(Te))
	if err != nil {
		Te.Fatal(err)
	}
	w := ramp(Te, E)
	all, err := P.parametricSegments(WeightOptions{ColorWeights: w, WidthWeights: w})
	if err != nil {
		Te.Fatal(err)
	}
	//7 intervals per band, one of them is the joint at X.
	if len(all) != 3*6 {
		Te.Errorf("expected 18 segments, got %d", len(all))
	}
	if all[0].width >= all[5].width {
		Te.Errorf("widths should grow with the weights: %v %v", all[0].width, all[5].width)
	}
	mask := procar.NewThresholdMask(w, 0.5)
	masked, err := P.parametricSegments(WeightOptions{ColorWeights: w, ColorMask: mask})
	if err != nil {
		Te.Fatal(err)
	}
	//kpoints 4..7 pass, with 3 drawn intervals each band.
	if len(masked) != 3*3 {
		Te.Errorf("expected 9 segments, got %d", len(masked))
	}
	if P.cmap == nil || P.cmap.Max() != 1 {
		Te.Error("the colormap limits should come from the weights")
	}
	vmax := 4.0
	P.parametricSegments(WeightOptions{ColorWeights: w, VMax: &vmax})
	if P.cmap.Max() != 4 {
		Te.Errorf("vmax not applied: %f", P.cmap.Max())
	}
	big := w.Clone()
	for i := range big.RawData() {
		big.RawData()[i] *= 10
	}
	scaled, _ := P.parametricSegments(WeightOptions{WidthWeights: big})
	for _, s := range scaled {
		if s.width > 1.0001*vgPoints(P.Config.LineWidth) {
			Te.Fatalf("width weights above 1 should be rescaled, got %v", s.width)
		}
	}
}

func TestOverlayAndRender(Te *testing.T) {
	E, K := bands(Te)
	c := config(Te)
	c.Grid = true
	P, err := New(E, K, nil, nil, c)
	if err != nil {
		Te.Fatal(err)
	}
	if err := P.SetInterpolation(3, "akima"); err != nil {
		Te.Fatal(err)
	}
	w := ramp(Te, E)
	if err := P.PlotParametricOverlay(nil, nil, nil, []*procar.BandValues{w, w.Clone()}); err != nil {
		Te.Fatal(err)
	}
	if err := P.Legend([]string{"Mo", "S"}); err != nil {
		Te.Fatal(err)
	}
	if err := P.PlotScatter(WeightOptions{ColorWeights: w}); err != nil {
		Te.Fatal(err)
	}
	P.SetXTicks(nil, nil)
	P.SetYTicks([]float64{-2, 2})
	P.SetXLim()
	P.SetYLim(nil)
	if P.Plot.Y.Min != -2 {
		Te.Errorf("wrong y range: %f", P.Plot.Y.Min)
	}
	if err := P.DrawFermi(0); err != nil {
		Te.Fatal(err)
	}
	P.SetYLabel("E - E_F (eV)")
	if err := P.Grid(); err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := P.Render(&buf, "svg"); err != nil {
		Te.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("<svg")) {
		Te.Error("the output is not an svg")
	}
	name := filepath.Join(Te.TempDir(), "bands.png")
	if err := P.Save(name); err != nil {
		Te.Fatal(err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		Te.Error("the output is not a png")
	}
	if err := P.Save(name + ".bmp"); !errors.Is(err, ErrOption) {
		Te.Errorf("expected ErrOption for an unknown format, got %v", err)
	}
}

func TestColorbarRender(Te *testing.T) {
	E, K := bands(Te)
	P, err := New(E, K, nil, []int{1}, config(Te))
	if err != nil {
		Te.Fatal(err)
	}
	if P.colorbar() != nil {
		Te.Error("colorbar without a colormap")
	}
	if err := P.PlotParametric(WeightOptions{ColorWeights: ramp(Te, E)}); err != nil {
		Te.Fatal(err)
	}
	if P.colorbar() == nil {
		Te.Fatal("no colorbar after a color weighted plot")
	}
	for _, format := range []string{"svg", "png", "pdf"} {
		var buf bytes.Buffer
		if err := P.Render(&buf, format); err != nil {
			Te.Fatalf("%s: %v", format, err)
		}
		if buf.Len() == 0 {
			Te.Errorf("%s: empty figure", format)
		}
	}
	P.Config.Colorbar = false
	if P.colorbar() != nil {
		Te.Error("colorbar drawn with plot_color_bar off")
	}
}

func TestShow(Te *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		Te.Skip("no true command to use as a viewer")
	}
	E, K := bands(Te)
	c := config(Te)
	c.Viewer = "true"
	P, err := New(E, K, nil, nil, c)
	if err != nil {
		Te.Fatal(err)
	}
	if err := P.PlotBands(); err != nil {
		Te.Fatal(err)
	}
	if err := P.Show(); err != nil {
		Te.Fatal(err)
	}
	c.Viewer = "goprocar-no-such-viewer"
	if err := P.Show(); err == nil {
		Te.Error("expected an error for a missing viewer")
	}
	c.Viewer = ""
	if err := P.Show(); !errors.Is(err, ErrOption) {
		Te.Errorf("expected ErrOption without a viewer, got %v", err)
	}
}

func vgPoints(pt float64) vg.Length { return vg.Points(pt) }
