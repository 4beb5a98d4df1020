/*
 * plotters.go, part of goProcar.
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
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type segment struct {
	x0, y0, x1, y1 float64
	color          color.Color
	width          vg.Length
}

//segments is a plot.Plotter that draws straight segments, each one with
//its own color and width. It is used for parametric plots.
type segments struct {
	segs []segment
}

func (S *segments) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, s := range S.segs {
		if s.width <= 0 {
			continue
		}
		sty := draw.LineStyle{Color: s.color, Width: s.width}
		line := []vg.Point{{X: trX(s.x0), Y: trY(s.y0)}, {X: trX(s.x1), Y: trY(s.y1)}}
		c.StrokeLines(sty, c.ClipLinesXY(line)...)
	}
}

func (S *segments) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, s := range S.segs {
		xmin = math.Min(xmin, math.Min(s.x0, s.x1))
		xmax = math.Max(xmax, math.Max(s.x0, s.x1))
		ymin = math.Min(ymin, math.Min(s.y0, s.y1))
		ymax = math.Max(ymax, math.Max(s.y0, s.y1))
	}
	if len(S.segs) == 0 {
		return 0, 0, 0, 0
	}
	return
}

//vlines draws vertical lines at the given x values, across the whole y range.
type vlines struct {
	xs    []float64
	style draw.LineStyle
}

func (V *vlines) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	for _, x := range V.xs {
		px := trX(x)
		line := []vg.Point{{X: px, Y: c.Min.Y}, {X: px, Y: c.Max.Y}}
		c.StrokeLines(V.style, c.ClipLinesX(line)...)
	}
}

//lineThumb is a legend entry drawn as a short line.
type lineThumb struct {
	style draw.LineStyle
}

func (T lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(T.style, c.Min.X, y, c.Max.X, y)
}
