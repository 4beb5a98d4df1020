/*
 * table.go, part of goProcar.
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
	"encoding/csv"
	"strconv"
)

var unfoldTableHeader = []string{"kpoint", "kdistance", "kx", "ky", "kz", "band", "spin", "energy", "weight"}

//WriteUnfoldTable writes the unfolded band structure to name as a CSV
//table, one row per kpoint, band and spin. kdist gives the distance along the path
//of each kpoint. The file is compressed if name ends in .gz or .zst.
func (E *EBS) WriteUnfoldTable(name string, kdist []float64) error {
	if E.Weights == nil {
		return NewFileError(ErrShape, name, "the band structure has not been unfolded", "WriteUnfoldTable")
	}
	nk, nb, ns := E.Bands.Dims()
	if len(kdist) != nk {
		return NewFileError(ErrShape, name, "one distance per kpoint is needed", "WriteUnfoldTable")
	}
	f, err := CreateFile(name)
	if err != nil {
		return errDecorate(err, "WriteUnfoldTable")
	}
	w := csv.NewWriter(f)
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 8, 64) }
	w.Write(unfoldTableHeader)
	row := make([]string, len(unfoldTableHeader))
	for k := 0; k < nk; k++ {
		kp := E.Kpoints.Vec(k)
		for b := 0; b < nb; b++ {
			for s := 0; s < ns; s++ {
				row[0] = strconv.Itoa(k)
				row[1] = format(kdist[k])
				row[2] = format(kp[0])
				row[3] = format(kp[1])
				row[4] = format(kp[2])
				row[5] = strconv.Itoa(b)
				row[6] = strconv.Itoa(s)
				row[7] = format(E.Bands.At(k, b, s))
				row[8] = format(E.Weights.At(k, b, s))
				w.Write(row)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Abort()
		return NewFileError(err, name, err.Error(), "WriteUnfoldTable")
	}
	if err := f.Close(); err != nil {
		return NewFileError(err, name, err.Error(), "WriteUnfoldTable")
	}
	return nil
}
