/*
 * ebsplot.go, part of goProcar.
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
	"fmt"
	"image/color"
	"math"

	procar "github.com/rmera/goprocar"
	"github.com/rmera/goprocar/cfg"
	"github.com/rmera/goprocar/internal/logging"
	"github.com/rs/zerolog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Handle is an entry of the legend.
type Handle struct {
	Label string
	Thumb plot.Thumbnailer
}

//EBSPlot draws an electronic band structure on a gonum plot. The x axis
//is the distance along the k-path.
type EBSPlot struct {
	EBS    *procar.EBS
	KPath  *procar.KPath
	Plot   *plot.Plot
	Spins  []int
	Config *cfg.Config
	//Handles are the legend entries added by the plotting methods.
	Handles []Handle
	//InterpolationFactor and InterpolationType control the resampling
	//of the bands along k.
	InterpolationFactor int
	InterpolationType   string

	x    []float64
	cmap palette.ColorMap
	log  zerolog.Logger
}

//WeightOptions are the weights and masks of parametric and scatter plots.
//Nil weights and masks are ignored. VMin and VMax, when set, are the limits
//of the color scale.
type WeightOptions struct {
	ColorWeights *procar.BandValues
	WidthWeights *procar.BandValues
	ColorMask    *procar.Mask
	WidthMask    *procar.Mask
	Spins        []int
	VMin, VMax   *float64
}

//New returns an EBSPlot for ebs. kpath can be nil. If p is nil a new plot
//is created. A nil spins selects all the spin channels.
func New(ebs *procar.EBS, kpath *procar.KPath, p *plot.Plot, spins []int, config *cfg.Config) (*EBSPlot, error) {
	if ebs == nil || config == nil {
		return nil, procar.NewError(procar.ErrShape, "nil band structure or configuration", "ebsplot.New")
	}
	ns := ebs.NSpins()
	if spins == nil {
		for s := 0; s < ns; s++ {
			spins = append(spins, s)
		}
	}
	for _, s := range spins {
		if s < 0 || s >= ns {
			return nil, procar.NewError(procar.ErrSelection, fmt.Sprintf("spin %d not in the band structure", s), "ebsplot.New")
		}
	}
	if p == nil {
		p = plot.New()
	}
	p.Title.Text = config.Title
	p.X.Label.Text = config.XLabel
	E := &EBSPlot{
		EBS:                 ebs,
		KPath:               kpath,
		Plot:                p,
		Spins:               spins,
		Config:              config,
		InterpolationFactor: 1,
		InterpolationType:   "cubic",
		x:                   ebs.KDistances(kpath),
		log:                 logging.WithComponent("ebsplot"),
	}
	return E, nil
}

//NSpins returns the number of spin channels plotted.
func (E *EBSPlot) NSpins() int {
	return len(E.Spins)
}

//KDistances returns the x coordinate of each kpoint.
func (E *EBSPlot) KDistances() []float64 {
	return E.x
}

//SetInterpolation sets the resampling of the bands. A factor of 1 or less
//disables it.
func (E *EBSPlot) SetInterpolation(factor int, kind string) error {
	if err := validInterpolation(kind); err != nil {
		return err
	}
	E.InterpolationFactor = factor
	E.InterpolationType = kind
	return nil
}

func (E *EBSPlot) grid() *kgrid {
	return newKgrid(E.x, E.InterpolationFactor)
}

func (E *EBSPlot) spinStyle(s int) (draw.LineStyle, error) {
	c := E.Config
	col, err := ParseColor(c.SpinColors[s%len(c.SpinColors)])
	if err != nil {
		return draw.LineStyle{}, err
	}
	sty := draw.LineStyle{Color: withAlpha(col, c.Opacity), Width: vg.Points(c.LineWidth)}
	sty.Dashes = dashes(c.LineStyles[s%len(c.LineStyles)])
	return sty, nil
}

func dashes(style string) []vg.Length {
	switch style {
	case "dashed", "--":
		return []vg.Length{vg.Points(5), vg.Points(3)}
	case "dotted", ":":
		return []vg.Length{vg.Points(1), vg.Points(2)}
	case "dashdot", "-.":
		return []vg.Length{vg.Points(5), vg.Points(2), vg.Points(1), vg.Points(2)}
	}
	return nil
}

func (E *EBSPlot) spinLabel(s int) string {
	if E.EBS.IsSpinPolarized() && s < len(E.Config.SpinLabels) {
		return E.Config.SpinLabels[s]
	}
	return "bands"
}

//PlotBands draws every band of every selected spin as a line, and adds
//one legend handle per spin.
func (E *EBSPlot) PlotBands() error {
	G := E.grid()
	var y []float64
	for _, s := range E.Spins {
		sty, err := E.spinStyle(s)
		if err != nil {
			return err
		}
		for b := 0; b < E.EBS.NBands(); b++ {
			y = E.EBS.Bands.Series(b, s, y)
			ys, err := G.values(E.x, y, E.InterpolationType)
			if err != nil {
				return err
			}
			for _, piece := range G.gpieces {
				xys := make(plotter.XYs, 0, piece[1]-piece[0])
				for i := piece[0]; i < piece[1]; i++ {
					xys = append(xys, plotter.XY{X: G.x[i], Y: ys[i]})
				}
				l, err := plotter.NewLine(xys)
				if err != nil {
					return procar.NewError(procar.ErrShape, err.Error(), "PlotBands")
				}
				l.LineStyle = sty
				E.Plot.Add(l)
			}
		}
		E.Handles = append(E.Handles, Handle{Label: E.spinLabel(s), Thumb: lineThumb{style: sty}})
	}
	return nil
}

//colorScale sets up the colormap for the given weights, with limits from
//vmin/vmax, the configuration, or the weights themselves, in that order.
func (E *EBSPlot) colorScale(w *procar.BandValues, vmin, vmax *float64) (palette.ColorMap, error) {
	cm, err := ColorMap(E.Config.Cmap)
	if err != nil {
		return nil, err
	}
	lo, hi := w.Min(), w.Max()
	if len(E.Config.Clim) == 2 {
		lo, hi = E.Config.Clim[0], E.Config.Clim[1]
	}
	if vmin != nil {
		lo = *vmin
	}
	if vmax != nil {
		hi = *vmax
	}
	if hi <= lo {
		hi = lo + 1
	}
	cm.SetMax(hi)
	cm.SetMin(lo)
	E.cmap = cm
	return cm, nil
}

//normalizedWidths returns a function giving the relative width of each
//point. Weights whose maximum exceeds 1 are rescaled into [0,1].
func normalizedWidths(w *procar.BandValues) func(k, b, s int) float64 {
	if w == nil {
		return func(k, b, s int) float64 { return 1 }
	}
	scale := 1.0
	if max := w.Max(); max > 1 {
		scale = max
	}
	return func(k, b, s int) float64 {
		return math.Max(0, w.At(k, b, s)/scale)
	}
}

//series interpolates the values of band b, spin s of w on the grid, or returns nil if w is nil.
func (E *EBSPlot) series(G *kgrid, w *procar.BandValues, b, s int, kind string) ([]float64, error) {
	if w == nil {
		return nil, nil
	}
	return G.values(E.x, w.Series(b, s, nil), kind)
}

//PlotParametric draws the bands as segments colored by the color weights
//and as wide as the width weights. Segments with an end point excluded by
//either mask are not drawn.
func (E *EBSPlot) PlotParametric(opts WeightOptions) error {
	segs, err := E.parametricSegments(opts)
	if err != nil {
		return err
	}
	E.Plot.Add(&segments{segs: segs})
	return nil
}

func (E *EBSPlot) parametricSegments(opts WeightOptions) ([]segment, error) {
	spins := opts.Spins
	if spins == nil {
		spins = E.Spins
	}
	mask, err := procar.MaskAnd(opts.ColorMask, opts.WidthMask)
	if err != nil {
		return nil, err
	}
	var cm palette.ColorMap
	if opts.ColorWeights != nil {
		if cm, err = E.colorScale(opts.ColorWeights, opts.VMin, opts.VMax); err != nil {
			return nil, err
		}
	}
	G := E.grid()
	lw := E.Config.LineWidth
	var segs []segment
	for _, s := range spins {
		sty, err := E.spinStyle(s)
		if err != nil {
			return nil, err
		}
		for b := 0; b < E.EBS.NBands(); b++ {
			ys, err := G.values(E.x, E.EBS.Bands.Series(b, s, nil), E.InterpolationType)
			if err != nil {
				return nil, err
			}
			cw, err := E.series(G, opts.ColorWeights, b, s, "linear")
			if err != nil {
				return nil, err
			}
			ww, err := E.series(G, normalizedSeries(opts.WidthWeights), b, s, "linear")
			if err != nil {
				return nil, err
			}
			for i := 1; i < len(G.x); i++ {
				if !G.joined[i] || !mask.At(G.src[i-1], b, s) || !mask.At(G.src[i], b, s) {
					continue
				}
				seg := segment{x0: G.x[i-1], y0: ys[i-1], x1: G.x[i], y1: ys[i], color: sty.Color, width: vg.Points(lw)}
				if cw != nil {
					seg.color = withAlpha(mapColor(cm, (cw[i-1]+cw[i])/2), E.Config.Opacity)
				}
				if ww != nil {
					seg.width = vg.Points(lw * math.Max(0, (ww[i-1]+ww[i])/2))
				}
				segs = append(segs, seg)
			}
		}
		E.Handles = append(E.Handles, Handle{Label: E.spinLabel(s), Thumb: lineThumb{style: sty}})
	}
	return segs, nil
}

//normalizedSeries returns w rescaled into [0,1] when its maximum exceeds 1.
func normalizedSeries(w *procar.BandValues) *procar.BandValues {
	if w == nil {
		return nil
	}
	f := normalizedWidths(w)
	nk, nb, ns := w.Dims()
	ret := procar.NewBandValues(nk, nb, ns, nil)
	for k := 0; k < nk; k++ {
		for b := 0; b < nb; b++ {
			for s := 0; s < ns; s++ {
				ret.Set(k, b, s, f(k, b, s))
			}
		}
	}
	return ret
}

//PlotScatter draws one marker per kpoint and band, colored by the color
//weights and sized by the width weights. Masked points are not drawn.
func (E *EBSPlot) PlotScatter(opts WeightOptions) error {
	spins := opts.Spins
	if spins == nil {
		spins = E.Spins
	}
	mask, err := procar.MaskAnd(opts.ColorMask, opts.WidthMask)
	if err != nil {
		return err
	}
	var cm palette.ColorMap
	if opts.ColorWeights != nil {
		if cm, err = E.colorScale(opts.ColorWeights, opts.VMin, opts.VMax); err != nil {
			return err
		}
	}
	width := normalizedWidths(opts.WidthWeights)
	radius := vg.Points(E.Config.MarkerSize)
	for _, s := range spins {
		sty, err := E.spinStyle(s)
		if err != nil {
			return err
		}
		var xys plotter.XYs
		var styles []draw.GlyphStyle
		for k := 0; k < E.EBS.NKpoints(); k++ {
			for b := 0; b < E.EBS.NBands(); b++ {
				if !mask.At(k, b, s) {
					continue
				}
				g := draw.GlyphStyle{Color: sty.Color, Radius: radius * vg.Length(width(k, b, s)), Shape: draw.CircleGlyph{}}
				if cm != nil {
					g.Color = withAlpha(mapColor(cm, opts.ColorWeights.At(k, b, s)), E.Config.Opacity)
				}
				xys = append(xys, plotter.XY{X: E.x[k], Y: E.EBS.Bands.At(k, b, s)})
				styles = append(styles, g)
			}
		}
		if len(xys) > 0 {
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return procar.NewError(procar.ErrShape, err.Error(), "PlotScatter")
			}
			sc.GlyphStyleFunc = func(i int) draw.GlyphStyle { return styles[i] }
			E.Plot.Add(sc)
		}
		E.Handles = append(E.Handles, Handle{Label: E.spinLabel(s), Thumb: lineThumb{style: sty}})
	}
	return nil
}

//PlotParametricOverlay draws one layer per set of weights, each in its own
//color, with width and opacity proportional to the weight. The weights are
//scaled to [vmin, vmax], by default 0 and the largest weight of all the sets.
func (E *EBSPlot) PlotParametricOverlay(spins []int, vmin, vmax *float64, weights []*procar.BandValues) error {
	if spins == nil {
		spins = E.Spins
	}
	lo, hi := 0.0, 0.0
	for _, w := range weights {
		hi = math.Max(hi, w.Max())
	}
	if vmin != nil {
		lo = *vmin
	}
	if vmax != nil {
		hi = *vmax
	}
	if hi <= lo {
		hi = lo + 1
	}
	G := E.grid()
	lw := E.Config.LineWidth
	for iw, w := range weights {
		col := rampColor(iw, len(weights))
		var segs []segment
		for _, s := range spins {
			for b := 0; b < E.EBS.NBands(); b++ {
				ys, err := G.values(E.x, E.EBS.Bands.Series(b, s, nil), E.InterpolationType)
				if err != nil {
					return err
				}
				ws, err := E.series(G, w, b, s, "linear")
				if err != nil {
					return err
				}
				for i := 1; i < len(G.x); i++ {
					if !G.joined[i] {
						continue
					}
					f := math.Max(0, math.Min(1, ((ws[i-1]+ws[i])/2-lo)/(hi-lo)))
					segs = append(segs, segment{
						x0: G.x[i-1], y0: ys[i-1], x1: G.x[i], y1: ys[i],
						color: withAlpha(col, E.Config.OverlayOpacity*f),
						width: vg.Points(lw * f),
					})
				}
			}
		}
		E.Plot.Add(&segments{segs: segs})
		E.Handles = append(E.Handles, Handle{Label: fmt.Sprintf("set %d", iw), Thumb: lineThumb{style: draw.LineStyle{Color: col, Width: vg.Points(lw)}}})
	}
	return nil
}

//SetXTicks puts ticks, and vertical lines, at the given kpoints. Without
//kticks, the ends of the k-path segments are used.
func (E *EBSPlot) SetXTicks(kticks []int, knames []string) error {
	if kticks == nil && E.KPath != nil && E.KPath.NKpoints() == E.EBS.NKpoints() {
		kticks = E.KPath.TickPositions()
		if knames == nil {
			for _, n := range E.KPath.TickNames() {
				knames = append(knames, procar.PrettyLabel(n))
			}
		}
	}
	if kticks == nil {
		return nil
	}
	if knames != nil && len(knames) != len(kticks) {
		return procar.NewError(procar.ErrShape, fmt.Sprintf("%d tick names for %d ticks", len(knames), len(kticks)), "SetXTicks")
	}
	ticks := make([]plot.Tick, len(kticks))
	xs := make([]float64, len(kticks))
	for i, k := range kticks {
		if k < 0 || k >= len(E.x) {
			return procar.NewError(procar.ErrSelection, fmt.Sprintf("tick at kpoint %d out of range", k), "SetXTicks")
		}
		xs[i] = E.x[k]
		ticks[i].Value = xs[i]
		if knames != nil {
			ticks[i].Label = knames[i]
		}
	}
	E.Plot.X.Tick.Marker = plot.ConstantTicks(ticks)
	E.Plot.Add(&vlines{xs: xs, style: draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}})
	return nil
}

//SetYTicks limits the ticks of the energy axis to interval, if given.
func (E *EBSPlot) SetYTicks(interval []float64) {
	if len(interval) != 2 {
		return
	}
	lo, hi := interval[0], interval[1]
	var ticks []plot.Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(lo, hi) {
		if t.Value >= lo && t.Value <= hi {
			ticks = append(ticks, t)
		}
	}
	E.Plot.Y.Tick.Marker = plot.ConstantTicks(ticks)
}

//SetXLim sets the x axis to span the whole path.
func (E *EBSPlot) SetXLim() {
	if len(E.x) == 0 {
		return
	}
	E.Plot.X.Min = E.x[0]
	E.Plot.X.Max = E.x[len(E.x)-1]
}

//SetYLim sets the energy range. Without elimit, the range of the plotted
//bands is used.
func (E *EBSPlot) SetYLim(elimit []float64) {
	if len(elimit) == 2 {
		E.Plot.Y.Min, E.Plot.Y.Max = elimit[0], elimit[1]
		return
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for k := 0; k < E.EBS.NKpoints(); k++ {
		for b := 0; b < E.EBS.NBands(); b++ {
			for _, s := range E.Spins {
				v := E.EBS.Bands.At(k, b, s)
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}
	if lo <= hi {
		E.Plot.Y.Min, E.Plot.Y.Max = lo, hi
	}
}

//DrawFermi draws a horizontal line at level.
func (E *EBSPlot) DrawFermi(level float64) error {
	col, err := ParseColor(E.Config.FermiColor)
	if err != nil {
		return err
	}
	f := plotter.NewFunction(func(float64) float64 { return level })
	f.Samples = 2
	f.LineStyle = draw.LineStyle{Color: col, Width: vg.Points(E.Config.FermiLineWidth), Dashes: dashes(E.Config.FermiLineStyle)}
	E.Plot.Add(f)
	return nil
}

func (E *EBSPlot) SetYLabel(label string) {
	E.Plot.Y.Label.Text = label
}

//Grid adds a grid if the configuration asks for it.
func (E *EBSPlot) Grid() error {
	if !E.Config.Grid {
		return nil
	}
	col, err := ParseColor(E.Config.GridColor)
	if err != nil {
		return err
	}
	g := plotter.NewGrid()
	g.Vertical.Color = col
	g.Horizontal.Color = col
	E.Plot.Add(g)
	return nil
}

//Legend adds the handles to the legend, with the given labels. Without
//labels, the labels of the handles are used.
func (E *EBSPlot) Legend(labels []string) error {
	if !E.Config.Legend {
		return nil
	}
	if len(labels) == 0 {
		for _, h := range E.Handles {
			labels = append(labels, h.Label)
		}
	}
	if len(labels) != len(E.Handles) {
		return procar.NewError(procar.ErrShape, fmt.Sprintf("%d labels for %d legend entries", len(labels), len(E.Handles)), "Legend")
	}
	for i, h := range E.Handles {
		E.Plot.Legend.Add(labels[i], h.Thumb)
	}
	E.Plot.Legend.Top = true
	return nil
}
