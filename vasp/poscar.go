/*
 * poscar.go, part of goProcar.
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
	"math"
	"strconv"
	"strings"

	procar "github.com/rmera/goprocar"
	v3 "github.com/rmera/goprocar/v3"
)

//ReadPoscar reads a structure in the POSCAR/CONTCAR format. Both the
//VASP 4 (species in the comment line) and VASP 5 (species line) flavors
//are supported. A negative scale factor is taken as the cell volume.
func ReadPoscar(name string) (*procar.Structure, error) {
	f, opened, err := procar.OpenFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	L := newLineReader(f, opened)
	const caller = "ReadPoscar"
	comment, err := L.next()
	if err != nil {
		return nil, L.errorf(caller, "empty file")
	}
	line, err := L.next()
	if err != nil {
		return nil, L.errorf(caller, "missing scale factor")
	}
	scales := leadingFloats(strings.Fields(line))
	if len(scales) == 0 {
		return nil, L.errorf(caller, "bad scale factor: "+line)
	}
	lat := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		line, err = L.next()
		if err != nil {
			return nil, L.errorf(caller, "missing lattice vectors")
		}
		v := leadingFloats(strings.Fields(line))
		if len(v) < 3 {
			return nil, L.errorf(caller, "bad lattice vector: "+line)
		}
		lat = append(lat, v[:3]...)
	}
	lattice, _ := v3.NewMatrix(lat)
	//cartesian positions are scaled like the lattice
	cartScale := [3]float64{1, 1, 1}
	switch {
	case scales[0] < 0:
		factor := math.Cbrt(-scales[0] / math.Abs(v3.Det(lattice)))
		lattice.Scale(factor, lattice.Dense)
		cartScale = [3]float64{factor, factor, factor}
	case len(scales) >= 3:
		for i := 0; i < 3; i++ {
			col := lattice.View(0, i, 3, 1)
			col.Scale(scales[i], col.Dense)
		}
		copy(cartScale[:], scales[:3])
	default:
		lattice.Scale(scales[0], lattice.Dense)
		cartScale = [3]float64{scales[0], scales[0], scales[0]}
	}
	line, err = L.next()
	if err != nil {
		return nil, L.errorf(caller, "missing atom counts")
	}
	var species []string
	fields := strings.Fields(line)
	if _, err := strconv.Atoi(fields[0]); err != nil {
		species = fields
		line, err = L.next()
		if err != nil {
			return nil, L.errorf(caller, "missing atom counts")
		}
		fields = strings.Fields(line)
	} else {
		species = strings.Fields(comment)
	}
	counts := make([]int, 0, len(fields))
	for _, v := range fields {
		n, err := strconv.Atoi(v)
		if err != nil {
			break
		}
		counts = append(counts, n)
	}
	if len(species) < len(counts) {
		return nil, L.errorf(caller, "can't find the species of every atom")
	}
	atoms := make([]string, 0, 16)
	for i, n := range counts {
		for j := 0; j < n; j++ {
			atoms = append(atoms, species[i])
		}
	}
	line, err = L.next()
	if err != nil {
		return nil, L.errorf(caller, "missing coordinate mode")
	}
	if m := strings.ToLower(strings.TrimSpace(line)); strings.HasPrefix(m, "s") {
		if line, err = L.next(); err != nil {
			return nil, L.errorf(caller, "missing coordinate mode")
		}
	}
	mode := strings.ToLower(strings.TrimSpace(line))
	cartesian := strings.HasPrefix(mode, "c") || strings.HasPrefix(mode, "k")
	pos := v3.Zeros(len(atoms))
	for i := range atoms {
		line, err = L.next()
		if err != nil {
			return nil, L.errorf(caller, "fewer positions than atoms")
		}
		v := leadingFloats(strings.Fields(line))
		if len(v) < 3 {
			return nil, L.errorf(caller, "bad position: "+line)
		}
		if cartesian {
			v[0], v[1], v[2] = v[0]*cartScale[0], v[1]*cartScale[1], v[2]*cartScale[2]
		}
		pos.SetVec(i, [3]float64{v[0], v[1], v[2]})
	}
	if cartesian {
		frac := v3.Zeros(len(atoms))
		if err := frac.Fractional(pos, lattice); err != nil {
			return nil, procar.NewFileError(procar.ErrBadFormat, opened, err.Error(), caller)
		}
		pos = frac
	}
	S, err := procar.NewStructure(lattice, atoms, pos)
	if err != nil {
		return nil, err
	}
	S.Comment = strings.TrimSpace(comment)
	return S, nil
}
