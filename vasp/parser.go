/*
 * parser.go, part of goProcar.
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
	"errors"
	"io/fs"
	"path/filepath"

	procar "github.com/rmera/goprocar"
	"github.com/rmera/goprocar/internal/logging"
)

func init() {
	procar.RegisterParser("vasp", Parse)
}

//Parse reads the VASP calculation in dirname. POSCAR and PROCAR are needed,
//OUTCAR (for the Fermi energy) and KPOINTS (for the path) are optional.
func Parse(dirname string) (*procar.Calculation, error) {
	log := logging.WithComponent("vasp")
	S, err := ReadPoscar(filepath.Join(dirname, "POSCAR"))
	if err != nil {
		return nil, err
	}
	rec, err := S.ReciprocalLattice()
	if err != nil {
		return nil, err
	}
	D, err := ReadProcar(filepath.Join(dirname, "PROCAR"))
	if err != nil {
		return nil, err
	}
	log.Debug().Int("kpoints", D.Kpoints.NVecs()).Int("atoms", S.NAtoms()).Bool("phases", D.Phases != nil).Msg("read PROCAR")
	_, _, na, _, _ := D.Projected.Dims()
	if na != S.NAtoms() {
		return nil, procar.NewFileError(procar.ErrShape, dirname, "PROCAR and POSCAR have different numbers of atoms", "vasp.Parse")
	}
	efermi, err := ReadFermi(filepath.Join(dirname, "OUTCAR"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		log.Warn().Str("dir", dirname).Msg("no OUTCAR found, the Fermi energy is set to 0")
	}
	var K *procar.KPath
	K, err = ReadKpoints(filepath.Join(dirname, "KPOINTS"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		log.Warn().Str("dir", dirname).Msg("no KPOINTS found, the path will have no labels")
	}
	E, err := procar.NewEBS(D.Kpoints, D.Bands, D.Projected, D.Phases, efermi, rec)
	if err != nil {
		return nil, err
	}
	return &procar.Calculation{EBS: E, Structure: S, KPath: K}, nil
}
