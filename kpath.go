/*
 * kpath.go, part of goProcar.
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

import "strings"

//KSegment is a straight piece of a band structure path.
type KSegment struct {
	Start, End           [3]float64
	StartLabel, EndLabel string
}

//KPath is a line-mode k-path: a set of segments, each sampled
//with NGrids kpoints (both ends included).
type KPath struct {
	Segments []KSegment
	NGrids   int
	//Cartesian is true if the points are in cartesian, not reciprocal, coordinates.
	Cartesian bool
}

//NKpoints returns the number of kpoints the path produces.
func (K *KPath) NKpoints() int {
	return len(K.Segments) * K.NGrids
}

//TickPositions returns the kpoint indexes of the ends of the segments,
//starting with the first point of the path.
func (K *KPath) TickPositions() []int {
	if len(K.Segments) == 0 {
		return nil
	}
	ret := make([]int, 0, len(K.Segments)+1)
	ret = append(ret, 0)
	for i := range K.Segments {
		ret = append(ret, (i+1)*K.NGrids-1)
	}
	return ret
}

//TickNames returns the labels of the ticks given by TickPositions.
//When a segment ends in a different point than the one where the
//next segment starts, both labels are joined as "A|B".
func (K *KPath) TickNames() []string {
	if len(K.Segments) == 0 {
		return nil
	}
	ret := make([]string, 0, len(K.Segments)+1)
	ret = append(ret, K.Segments[0].StartLabel)
	for i, s := range K.Segments {
		name := s.EndLabel
		if i+1 < len(K.Segments) && K.isBreak(i) {
			name = s.EndLabel + "|" + K.Segments[i+1].StartLabel
		}
		ret = append(ret, name)
	}
	return ret
}

//isBreak returns true if the path jumps between the end of segment i
//and the start of segment i+1.
func (K *KPath) isBreak(i int) bool {
	a := K.Segments[i]
	b := K.Segments[i+1]
	if a.End != b.Start {
		return true
	}
	return a.EndLabel != "" && b.StartLabel != "" && a.EndLabel != b.StartLabel
}

//Discontinuities returns the kpoint indexes that start a segment whose
//first point is not the end point of the previous segment.
func (K *KPath) Discontinuities() []int {
	ret := make([]int, 0, 2)
	for i := 0; i+1 < len(K.Segments); i++ {
		if K.isBreak(i) {
			ret = append(ret, (i+1)*K.NGrids)
		}
	}
	return ret
}

//PrettyLabel turns the usual ways of writing k-point labels in
//input files into something suitable for a plot.
func PrettyLabel(label string) string {
	l := strings.TrimSpace(label)
	l = strings.Trim(l, "$")
	switch strings.ToUpper(l) {
	case "G", "GAMMA", `\GAMMA`, "Γ":
		return "Γ"
	}
	for _, r := range [][2]string{{`\Sigma`, "Σ"}, {`\Delta`, "Δ"}, {`\Lambda`, "Λ"}, {"_1", "₁"}, {"_2", "₂"}} {
		l = strings.ReplaceAll(l, r[0], r[1])
	}
	return l
}
