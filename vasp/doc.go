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

/*
Package vasp reads the VASP files needed to build a procar.Calculation:
POSCAR (structure), PROCAR (bands, projections and phases), OUTCAR (Fermi
energy) and KPOINTS (line-mode path). Any of them can be compressed with
gzip or zstd, see procar.OpenFile.

The package registers itself with procar under the code "vasp", so
importing it for its side effects is enough to use procar.Parse("vasp", dir).
*/
package vasp
