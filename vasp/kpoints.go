/*
 * kpoints.go, part of goProcar.
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
	"io"
	"strconv"
	"strings"

	procar "github.com/rmera/goprocar"
)

//ReadKpoints reads a line-mode KPOINTS file. It returns nil, and no error,
//if the file is not in line mode. Labels are taken from whatever follows
//the coordinates, with an optional "!".
func ReadKpoints(name string) (*procar.KPath, error) {
	f, opened, err := procar.OpenFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	L := newLineReader(f, opened)
	const caller = "ReadKpoints"
	if _, err := L.next(); err != nil {
		return nil, L.errorf(caller, "empty file")
	}
	line, err := L.next()
	if err != nil {
		return nil, L.errorf(caller, "missing number of points")
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, L.errorf(caller, "missing number of points")
	}
	ngrids, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, L.errorf(caller, "bad number of points: "+line)
	}
	line, err = L.next()
	if err != nil {
		return nil, L.errorf(caller, "missing generation mode")
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "l") {
		return nil, nil
	}
	line, err = L.next()
	if err != nil {
		return nil, L.errorf(caller, "missing coordinate mode")
	}
	m := strings.ToLower(strings.TrimSpace(line))
	K := &procar.KPath{NGrids: ngrids, Cartesian: strings.HasPrefix(m, "c") || strings.HasPrefix(m, "k")}
	var points [][3]float64
	var labels []string
	for {
		line, err := L.nextNonEmpty()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, procar.NewFileError(err, opened, err.Error(), caller)
		}
		fields := strings.Fields(strings.Replace(line, "!", " ", 1))
		v := leadingFloats(fields)
		if len(v) < 3 {
			return nil, L.errorf(caller, "bad kpoint: "+line)
		}
		label := ""
		if len(fields) > len(v) {
			label = procar.PrettyLabel(strings.Join(fields[len(v):], " "))
		}
		points = append(points, [3]float64{v[0], v[1], v[2]})
		labels = append(labels, label)
	}
	if len(points)%2 != 0 {
		return nil, L.errorf(caller, "odd number of path end points")
	}
	for i := 0; i < len(points); i += 2 {
		K.Segments = append(K.Segments, procar.KSegment{Start: points[i], End: points[i+1], StartLabel: labels[i], EndLabel: labels[i+1]})
	}
	return K, nil
}
