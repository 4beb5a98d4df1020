/*
 * outcar.go, part of goProcar.
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
	"strings"

	procar "github.com/rmera/goprocar"
)

//ReadFermi returns the last Fermi energy printed in an OUTCAR file.
func ReadFermi(name string) (float64, error) {
	f, opened, err := procar.OpenFile(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	L := newLineReader(f, opened)
	var efermi float64
	var found bool
	for {
		line, err := L.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, procar.NewFileError(err, opened, err.Error(), "ReadFermi")
		}
		i := strings.Index(line, "E-fermi")
		if i < 0 {
			continue
		}
		v, err := parseFloats(line[i+len("E-fermi"):])
		if err != nil || len(v) == 0 {
			return 0, L.errorf("ReadFermi", "can't parse the Fermi energy")
		}
		efermi = v[0]
		found = true
	}
	if !found {
		return 0, procar.NewFileError(procar.ErrBadFormat, opened, "no Fermi energy found", "ReadFermi")
	}
	return efermi, nil
}
