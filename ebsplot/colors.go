/*
 * colors.go, part of goProcar.
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
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	procar "github.com/rmera/goprocar"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

//ErrOption is the kind of the errors caused by invalid plot options.
var ErrOption = errors.New("invalid plot option")

var namedColors = map[string]color.NRGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {214, 39, 40, 255},
	"blue":    {31, 119, 180, 255},
	"green":   {44, 160, 44, 255},
	"orange":  {255, 127, 14, 255},
	"purple":  {148, 103, 189, 255},
	"brown":   {140, 86, 75, 255},
	"pink":    {227, 119, 194, 255},
	"grey":    {127, 127, 127, 255},
	"gray":    {127, 127, 127, 255},
	"olive":   {188, 189, 34, 255},
	"cyan":    {23, 190, 207, 255},
	"magenta": {255, 0, 255, 255},
	"yellow":  {255, 221, 0, 255},
}

//ParseColor returns the color for a name, or for an "#rrggbb" or "#rrggbbaa" string.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && (len(s) == 7 || len(s) == 9) {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			if len(s) == 7 {
				v = v<<8 | 0xff
			}
			return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
		}
	}
	return nil, procar.NewError(ErrOption, "unknown color "+s, "ParseColor")
}

//withAlpha scales the opacity of c by alpha, which is clamped to [0,1].
func withAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * math.Max(0, math.Min(1, alpha)))
	return n
}

//hsv2rgb takes hue (0-360), s and v (0-1), returns r,g,b (0-255)
func hsv2rgb(h, s, v float64) (uint8, uint8, uint8) {
	if s == 0.0 {
		g := uint8(255 * v)
		return g, g, g
	}
	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(255 * r), uint8(255 * g), uint8(255 * b)
}

//rampColor returns the key-th of steps colors spread along the hue circle,
//skipping the yellows that are hard to see on white.
func rampColor(key, steps int) color.Color {
	if steps < 1 {
		steps = 1
	}
	hp := float64(key)*260.0/float64(steps) + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	r, g, b := hsv2rgb(h, 1, 1)
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

//colorList is a palette.Palette.
type colorList []color.Color

func (c colorList) Colors() []color.Color { return c }

//hueMap is a palette.ColorMap going from blue (min) to red (max) through
//the hue circle, like the "jet" map.
type hueMap struct {
	min, max, alpha float64
}

func (H *hueMap) At(v float64) (color.Color, error) {
	switch {
	case v < H.min:
		return nil, palette.ErrUnderflow
	case v > H.max:
		return nil, palette.ErrOverflow
	}
	f := 0.0
	if H.max > H.min {
		f = (v - H.min) / (H.max - H.min)
	}
	r, g, b := hsv2rgb(240*(1-f), 1, 1)
	return withAlpha(color.NRGBA{R: r, G: g, B: b, A: 255}, H.alpha), nil
}

func (H *hueMap) Max() float64         { return H.max }
func (H *hueMap) Min() float64         { return H.min }
func (H *hueMap) SetMax(v float64)     { H.max = v }
func (H *hueMap) SetMin(v float64)     { H.min = v }
func (H *hueMap) Alpha() float64       { return H.alpha }
func (H *hueMap) SetAlpha(a float64)   { H.alpha = a }
func (H *hueMap) Palette(n int) palette.Palette {
	ret := make(colorList, n)
	for i := range ret {
		v := H.min
		if n > 1 {
			v += (H.max - H.min) * float64(i) / float64(n-1)
		}
		ret[i], _ = H.At(v)
	}
	return ret
}

//ColorMap returns the colormap with the given name. Matplotlib names are
//mapped to the closest map available.
func ColorMap(name string) (palette.ColorMap, error) {
	switch strings.ToLower(name) {
	case "jet", "hsv", "rainbow", "":
		return &hueMap{min: 0, max: 1, alpha: 1}, nil
	case "coolwarm", "bwr", "seismic", "rdbu", "blue_red":
		return moreland.SmoothBlueRed(), nil
	case "hot", "inferno", "afmhot", "blackbody":
		return moreland.BlackBody(), nil
	case "magma", "extended_blackbody":
		return moreland.ExtendedBlackBody(), nil
	case "plasma", "kindlmann":
		return moreland.Kindlmann(), nil
	case "viridis", "extended_kindlmann":
		return moreland.ExtendedKindlmann(), nil
	case "prgn", "green_purple":
		return moreland.SmoothGreenPurple(), nil
	case "puor", "purple_orange":
		return moreland.SmoothPurpleOrange(), nil
	}
	return nil, procar.NewError(ErrOption, fmt.Sprintf("unknown colormap %q", name), "ColorMap")
}

//mapColor returns the color of v in cm, clamping v to the limits of the map.
func mapColor(cm palette.ColorMap, v float64) color.Color {
	v = math.Max(cm.Min(), math.Min(cm.Max(), v))
	c, err := cm.At(v)
	if err != nil {
		return color.Black
	}
	return c
}
