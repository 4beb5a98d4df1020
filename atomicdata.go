/*
 * atomicdata.go, part of goProcar.
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
	"strconv"
	"strings"
)

//OrbitalNames maps orbital families and single orbitals to their
//indexes in the lm-decomposed projections (VASP order).
var OrbitalNames = map[string][]int{
	"s":      {0},
	"p":      {1, 2, 3},
	"d":      {4, 5, 6, 7, 8},
	"f":      {9, 10, 11, 12, 13, 14, 15},
	"py":     {1},
	"pz":     {2},
	"px":     {3},
	"dxy":    {4},
	"dyz":    {5},
	"dz2":    {6},
	"dxz":    {7},
	"x2-y2":  {8},
	"dx2-y2": {8},
	"fy3x2":  {9},
	"fxyz":   {10},
	"fyz2":   {11},
	"fz3":    {12},
	"fxz2":   {13},
	"fzx2":   {14},
	"fx3":    {15},
}

//OrbitalFamilies are the families overlaid by the overlay_orbitals plot mode, in order.
var OrbitalFamilies = []string{"s", "p", "d", "f"}

//Selection is a list of atoms or orbitals, given either by name
//(species or orbital names) or by index. Only the first element
//decides which: if it is an integer, all of them are taken as indexes.
type Selection []string

//Named returns true if the selection is given by names.
func (S Selection) Named() bool {
	if len(S) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(S[0]))
	return err != nil
}

//Indices parses the selection as a list of integers.
func (S Selection) Indices() ([]int, error) {
	ret := make([]int, 0, len(S))
	for _, v := range S {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, NewError(ErrSelection, "mixed names and indexes in selection: "+v, "Selection.Indices")
		}
		ret = append(ret, i)
	}
	return ret, nil
}

//IntSelection builds a Selection from a list of indexes.
func IntSelection(ind ...int) Selection {
	ret := make(Selection, len(ind))
	for i, v := range ind {
		ret[i] = strconv.Itoa(v)
	}
	return ret
}

//ResolveOrbitals returns the orbital indexes for the selection. Named
//orbitals are expanded with OrbitalNames, in the given order. A nil
//selection returns nil, which means all the orbitals.
func ResolveOrbitals(sel Selection) ([]int, error) {
	if sel == nil {
		return nil, nil
	}
	if !sel.Named() {
		return sel.Indices()
	}
	ret := make([]int, 0, len(sel)*3)
	for _, name := range sel {
		ind, ok := OrbitalNames[strings.TrimSpace(name)]
		if !ok {
			return nil, NewError(ErrSelection, "unknown orbital name "+name, "ResolveOrbitals")
		}
		ret = append(ret, ind...)
	}
	return ret, nil
}

//ResolveAtoms returns the atom indexes for the selection. When the
//selection is given by species, the unique species are taken in
//sorted order and, for each, all the atoms of that species are added.
//A nil selection returns nil, which means all the atoms.
func ResolveAtoms(S *Structure, sel Selection) ([]int, error) {
	if sel == nil {
		return nil, nil
	}
	if !sel.Named() {
		return sel.Indices()
	}
	ret := make([]int, 0, S.NAtoms())
	for _, sp := range uniqueSorted(sel) {
		ret = append(ret, S.AtomsOf(strings.TrimSpace(sp))...)
	}
	return ret, nil
}
