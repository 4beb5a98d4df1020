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
Package ebsplot draws electronic band structures with gonum/plot: plain
bands, parametric plots (bands colored and sized by a set of weights),
scatter plots and overlays of several sets of weights.

The plot options come from a cfg.Config. Figures can be saved in any of
the formats gonum/plot supports, with a colorbar when a colormap is used.
*/
package ebsplot
