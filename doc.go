/*
 * doc.go, part of goProcar.
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

/*Package procar is the main package of the goProcar library. It provides the
electronic band structure (EBS) of a periodic calculation together with its
crystal structure and k-path, the projections of each band onto atoms, orbitals
and spins, and the unfolding of supercell bands onto the primitive cell.


	**goProcar Capabilities**


    Reads VASP outputs (PROCAR, POSCAR, OUTCAR, KPOINTS), plain or gzip/zstd
	compressed, through the vasp package. Other codes can be plugged in with
	RegisterParser.

    Sums band projections over any selection of atoms, orbitals and spins
	(EbsSum).

    Unfolds supercell bands onto the primitive Brillouin zone using the
	projection phases and a transformation matrix (Unfold).

    Exports the unfolded weights as a CSV table, optionally compressed.

    Plots band structures (plain, parametric, scatter and overlays) through the
	ebsplot package, which is built on gonum/plot.

Band energies, weights and projection sums are stored in BandValues, a dense
(kpoint, band, spin) array. Projections and phases add the atom and orbital
dimensions. Lattices, positions and kpoints use the Nx3 matrices of the v3
package, one vector per row.*/
package procar
