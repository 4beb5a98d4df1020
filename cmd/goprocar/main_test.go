/*
 * main_test.go, part of goProcar.
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

package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	procar "github.com/rmera/goprocar"
	"github.com/rmera/goprocar/cfg"
)

func TestUnfoldOptionsFromJob(Te *testing.T) {
	opts, err := unfoldOptions([]string{"-job", "../../cfg/testdata/job.toml", "-mode", "overlay_species", "-elimit", "-2,2", "-show"}, cfg.Settings{Viewer: "feh"})
	if err != nil {
		Te.Fatal(err)
	}
	if opts.Mode != "overlay_species" || opts.UnfoldMode != "thickness" || !opts.Show {
		Te.Errorf("flags did not override the job: %+v", opts)
	}
	if diff := cmp.Diff([]float64{-2, 2}, opts.ELimit); diff != "" {
		Te.Errorf("elimit (-want +got):\n%s", diff)
	}
	if opts.Fermi == nil || *opts.Fermi != -0.5 {
		Te.Errorf("fermi not read from the job: %v", opts.Fermi)
	}
	if opts.SaveTab != "unfold.csv.zst" {
		Te.Errorf("wrong savetab %q", opts.SaveTab)
	}
	if opts.TransformationMatrix.At(0, 0) != 2 || opts.TransformationMatrix.At(1, 1) != 1 {
		Te.Errorf("wrong transformation matrix %v", opts.TransformationMatrix)
	}
	want := []map[string]procar.Selection{{"C": {"s", "p"}}, {"C": {"0", "1"}}}
	if diff := cmp.Diff(want, opts.Items); diff != "" {
		Te.Errorf("items (-want +got):\n%s", diff)
	}
	if opts.PlotOverrides["viewer"] != "feh" || opts.PlotOverrides["linewidth"] != 2.5 {
		Te.Errorf("wrong plot overrides %v", opts.PlotOverrides)
	}
}

func TestUnfoldOptionsFlags(Te *testing.T) {
	opts, err := unfoldOptions([]string{"-matrix", "2,1,1", "-atoms", "Fe, O", "-items", "C:s,p;O:0,1", "-spins", "0", "-fermi", "1.5"}, cfg.Settings{})
	if err != nil {
		Te.Fatal(err)
	}
	if opts.TransformationMatrix.At(0, 0) != 2 || opts.TransformationMatrix.At(2, 2) != 1 || opts.TransformationMatrix.At(0, 1) != 0 {
		Te.Errorf("wrong diagonal matrix %v", opts.TransformationMatrix)
	}
	if diff := cmp.Diff(procar.Selection{"Fe", "O"}, opts.Atoms); diff != "" {
		Te.Errorf("atoms (-want +got):\n%s", diff)
	}
	if len(opts.Items) != 2 || opts.Items[1]["O"].Named() || len(opts.Items[1]["O"]) != 2 {
		Te.Errorf("wrong items %v", opts.Items)
	}
	if opts.Fermi == nil || *opts.Fermi != 1.5 || opts.VMin != nil || opts.PlotOverrides != nil {
		Te.Errorf("wrong optional parameters %+v", opts)
	}
	if opts.SaveTab != "unfold_result.csv" || opts.Show {
		Te.Errorf("defaults lost: %+v", opts)
	}
	for _, args := range [][]string{{"-matrix", "1,2"}, {"-elimit", "1"}, {"-items", "C"}, {"-spins", "a"}} {
		if _, err := unfoldOptions(args, cfg.Settings{}); err == nil {
			Te.Errorf("expected an error for %v", args)
		}
	}
}
