/*
 * interp.go, part of goProcar.
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

	procar "github.com/rmera/goprocar"
	"gonum.org/v1/gonum/interp"
)

//kgrid is the set of points along the path where the bands are drawn.
type kgrid struct {
	x []float64
	//src is the original kpoint closest to each point.
	src []int
	//joined[i] is true if points i-1 and i are joined by a line.
	joined []bool
	//pieces of original kpoints along which x strictly increases, and
	//the matching ranges of grid points.
	pieces  [][2]int
	gpieces [][2]int
}

//newKgrid splits each interval between consecutive kpoints in factor
//parts. Intervals of zero length (path breaks) are not subdivided nor joined.
func newKgrid(x []float64, factor int) *kgrid {
	if factor < 1 {
		factor = 1
	}
	G := &kgrid{}
	start := 0
	for i := 1; i <= len(x); i++ {
		if i == len(x) || x[i] <= x[i-1] {
			G.pieces = append(G.pieces, [2]int{start, i})
			start = i
		}
	}
	for _, pc := range G.pieces {
		gstart := len(G.x)
		for i := pc[0]; i < pc[1]; i++ {
			G.x = append(G.x, x[i])
			G.src = append(G.src, i)
			G.joined = append(G.joined, i > pc[0])
			if i == pc[1]-1 {
				break
			}
			for j := 1; j < factor; j++ {
				f := float64(j) / float64(factor)
				G.x = append(G.x, x[i]+f*(x[i+1]-x[i]))
				s := i
				if 2*j >= factor {
					s = i + 1
				}
				G.src = append(G.src, s)
				G.joined = append(G.joined, true)
			}
		}
		G.gpieces = append(G.gpieces, [2]int{gstart, len(G.x)})
	}
	return G
}

func newPredictor(kind string, npoints int) (interp.FittablePredictor, error) {
	if npoints < 4 {
		return &interp.PiecewiseLinear{}, nil
	}
	switch kind {
	case "linear":
		return &interp.PiecewiseLinear{}, nil
	case "cubic", "":
		return &interp.NaturalCubic{}, nil
	case "akima":
		return &interp.AkimaSpline{}, nil
	case "fritschbutland", "pchip":
		return &interp.FritschButland{}, nil
	}
	return nil, procar.NewError(ErrOption, fmt.Sprintf("unknown interpolation type %q", kind), "newPredictor")
}

//validInterpolation returns an error if kind is not a known interpolation type.
func validInterpolation(kind string) error {
	_, err := newPredictor(kind, 4)
	return err
}

//values returns y (one value per original kpoint, with distances x)
//evaluated on the grid points.
func (G *kgrid) values(x, y []float64, kind string) ([]float64, error) {
	if len(G.x) == len(x) {
		ret := make([]float64, len(y))
		copy(ret, y)
		return ret, nil
	}
	ret := make([]float64, 0, len(G.x))
	for p, pc := range G.pieces {
		n := pc[1] - pc[0]
		f, err := newPredictor(kind, n)
		if err != nil {
			return nil, err
		}
		if n == 1 {
			ret = append(ret, y[pc[0]])
			continue
		}
		if err := f.Fit(x[pc[0]:pc[1]], y[pc[0]:pc[1]]); err != nil {
			return nil, procar.NewError(ErrOption, "interpolation failed: "+err.Error(), "kgrid.values")
		}
		for i := G.gpieces[p][0]; i < G.gpieces[p][1]; i++ {
			ret = append(ret, f.Predict(G.x[i]))
		}
	}
	return ret, nil
}
