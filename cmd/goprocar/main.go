/*
 * main.go, part of goProcar.
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

//goprocar plots unfolded band structures.
//
//	goprocar unfold [flags]
//	goprocar version
//
//The unfold parameters can be given in a TOML job file (-job), and flags
//given in the command line override the ones in the job file. The plot
//options are read from the file in GOPROCAR_PLOT_CONFIG, the [plot] table
//of the job file and the -plot-config flag, in that order.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	procar "github.com/rmera/goprocar"
	"github.com/rmera/goprocar/cfg"
	"github.com/rmera/goprocar/internal/logging"
	"github.com/rmera/goprocar/scripts"
	v3 "github.com/rmera/goprocar/v3"
)

func main() {
	settings, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Configure(logging.Config{Level: settings.LogLevel, Format: settings.LogFormat})
	log := logging.WithComponent("goprocar")
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "version":
		fmt.Println(procar.Welcome())
	case "unfold":
		opts, err := unfoldOptions(os.Args[2:], settings)
		if err != nil {
			log.Fatal().Err(err).Msg("bad arguments")
		}
		if _, err := scripts.Unfold(opts); err != nil {
			log.Fatal().Err(err).Msg("unfold failed")
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s unfold [flags] | version\nsupported codes: %s\n", os.Args[0], strings.Join(procar.Codes(), ", "))
}

//unfoldOptions builds the parameters of the unfold command from the
//defaults, the job file and the command line, in that order.
func unfoldOptions(args []string, settings cfg.Settings) (scripts.UnfoldOptions, error) {
	opts := scripts.DefaultUnfoldOptions()
	opts.Show = false
	fs := flag.NewFlagSet("unfold", flag.ContinueOnError)
	job := fs.String("job", "", "TOML job file")
	code := fs.String("code", opts.Code, "code of the calculation")
	dir := fs.String("dir", opts.Dirname, "directory of the calculation")
	mode := fs.String("mode", opts.Mode, "plain, parametric, scatter, overlay, overlay_species or overlay_orbitals")
	umode := fs.String("unfold-mode", opts.UnfoldMode, "both, thickness or color")
	matrix := fs.String("matrix", "2,0,0,0,2,0,0,0,2", "transformation matrix, 9 values by rows, or 3 for a diagonal matrix")
	spins := fs.String("spins", "", "comma separated spin channels")
	atoms := fs.String("atoms", "", "comma separated atom indexes or species")
	orbitals := fs.String("orbitals", "", "comma separated orbital indexes or names")
	items := fs.String("items", "", "overlay items, as species:orbitals;species:orbitals")
	fermi := fs.Float64("fermi", 0, "Fermi energy")
	shift := fs.Float64("fermi-shift", 0, "shift applied after subtracting the Fermi energy")
	ifactor := fs.Int("interpolation-factor", opts.InterpolationFactor, "interpolation factor")
	itype := fs.String("interpolation-type", opts.InterpolationType, "linear, cubic, akima or fritschbutland")
	vmin := fs.Float64("vmin", 0, "lower limit of the color scale")
	vmax := fs.Float64("vmax", 0, "upper limit of the color scale")
	pcut := fs.Float64("projection-cutoff", 0, "hide points with a projection sum below this value")
	ucut := fs.Float64("unfold-cutoff", 0, "hide points with an unfolding weight below this value")
	kticks := fs.String("kticks", "", "comma separated kpoints with ticks")
	knames := fs.String("knames", "", "comma separated tick labels")
	elimit := fs.String("elimit", "", "energy range, as min,max")
	savefig := fs.String("savefig", "", "save the figure to this file")
	savetab := fs.String("savetab", opts.SaveTab, "save the unfolding weights to this file, empty to skip")
	show := fs.Bool("show", false, "open the figure in a viewer")
	printOpts := fs.Bool("print-plot-opts", false, "print the plot options")
	plotConfig := fs.String("plot-config", "", "YAML file with plot options")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	overrides := make(map[string]any)
	if settings.Viewer != "" {
		overrides["viewer"] = settings.Viewer
	}
	if settings.PlotConfig != "" {
		if err := mergeOverrideFile(overrides, settings.PlotConfig); err != nil {
			return opts, err
		}
	}
	if *job != "" {
		j, err := cfg.LoadJob(*job)
		if err != nil {
			return opts, err
		}
		if err := applyJob(&opts, &j.Unfold); err != nil {
			return opts, err
		}
		for k, v := range j.Plot {
			overrides[k] = v
		}
	}
	if *plotConfig != "" {
		if err := mergeOverrideFile(overrides, *plotConfig); err != nil {
			return opts, err
		}
	}
	if len(overrides) > 0 {
		opts.PlotOverrides = overrides
	}

	var err error
	for name := range set {
		switch name {
		case "code":
			opts.Code = *code
		case "dir":
			opts.Dirname = *dir
		case "mode":
			opts.Mode = *mode
		case "unfold-mode":
			opts.UnfoldMode = *umode
		case "matrix":
			opts.TransformationMatrix, err = parseMatrix(*matrix)
		case "spins":
			opts.Spins, err = parseInts(*spins)
		case "atoms":
			opts.Atoms = parseSelection(*atoms)
		case "orbitals":
			opts.Orbitals = parseSelection(*orbitals)
		case "items":
			opts.Items, err = parseItems(*items)
		case "fermi":
			opts.Fermi = fermi
		case "fermi-shift":
			opts.FermiShift = *shift
		case "interpolation-factor":
			opts.InterpolationFactor = *ifactor
		case "interpolation-type":
			opts.InterpolationType = *itype
		case "vmin":
			opts.VMin = vmin
		case "vmax":
			opts.VMax = vmax
		case "projection-cutoff":
			opts.ProjectionCutoff = pcut
		case "unfold-cutoff":
			opts.UnfoldCutoff = ucut
		case "kticks":
			opts.KTicks, err = parseInts(*kticks)
		case "knames":
			opts.KNames = splitList(*knames)
		case "elimit":
			opts.ELimit, err = parseFloats(*elimit, 2)
		case "savefig":
			opts.SaveFig = *savefig
		case "savetab":
			opts.SaveTab = *savetab
		case "show":
			opts.Show = *show
		case "print-plot-opts":
			opts.PrintPlotOpts = *printOpts
		}
		if err != nil {
			return opts, fmt.Errorf("flag -%s: %w", name, err)
		}
	}
	return opts, nil
}

func mergeOverrideFile(overrides map[string]any, name string) error {
	o, err := cfg.LoadOverrides(name)
	if err != nil {
		return err
	}
	for k, v := range o {
		overrides[k] = v
	}
	return nil
}

//applyJob copies the parameters set in the job file into opts.
func applyJob(opts *scripts.UnfoldOptions, j *cfg.UnfoldJob) error {
	if j.Code != "" {
		opts.Code = j.Code
	}
	if j.Dirname != "" {
		opts.Dirname = j.Dirname
	}
	if j.Mode != "" {
		opts.Mode = j.Mode
	}
	if j.UnfoldMode != "" {
		opts.UnfoldMode = j.UnfoldMode
	}
	if j.TransformationMatrix != nil {
		data := make([]float64, 0, 9)
		for _, row := range j.TransformationMatrix {
			data = append(data, row...)
		}
		M, err := v3.NewMatrix(data)
		if err != nil {
			return err
		}
		opts.TransformationMatrix = M
	}
	if j.Spins != nil {
		opts.Spins = j.Spins
	}
	if j.Atoms != nil {
		opts.Atoms = procar.Selection(j.Atoms)
	}
	if j.Orbitals != nil {
		opts.Orbitals = procar.Selection(j.Orbitals)
	}
	for _, it := range j.ItemStrings() {
		item := make(map[string]procar.Selection, len(it))
		for sp, orbs := range it {
			item[sp] = procar.Selection(orbs)
		}
		opts.Items = append(opts.Items, item)
	}
	opts.ProjectionCutoff = j.ProjectionCutoff
	opts.UnfoldCutoff = j.UnfoldCutoff
	opts.Fermi = j.Fermi
	opts.FermiShift = j.FermiShift
	if j.InterpolationFactor != 0 {
		opts.InterpolationFactor = j.InterpolationFactor
	}
	if j.InterpolationType != "" {
		opts.InterpolationType = j.InterpolationType
	}
	opts.VMax = j.VMax
	opts.VMin = j.VMin
	opts.KTicks = j.KTicks
	opts.KNames = j.KNames
	opts.ELimit = j.ELimit
	opts.SaveFig = j.SaveFig
	if j.SaveTab != nil {
		opts.SaveTab = *j.SaveTab
	}
	opts.PrintPlotOpts = j.PrintPlotOpts
	return nil
}

func splitList(s string) []string {
	var ret []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			ret = append(ret, f)
		}
	}
	return ret
}

func parseSelection(s string) procar.Selection {
	return procar.Selection(splitList(s))
}

func parseInts(s string) ([]int, error) {
	fields := splitList(s)
	ret := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}

//parseFloats parses a comma separated list of n floats. n <= 0 takes
//any number of them.
func parseFloats(s string, n int) ([]float64, error) {
	fields := splitList(s)
	if n > 0 && len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	ret := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}

func parseMatrix(s string) (*v3.Matrix, error) {
	data, err := parseFloats(s, 0)
	if err != nil {
		return nil, err
	}
	switch len(data) {
	case 3:
		return v3.Diag(data[0], data[1], data[2]), nil
	case 9:
		return v3.NewMatrix(data)
	}
	return nil, fmt.Errorf("a transformation matrix needs 3 or 9 values, got %d", len(data))
}

//parseItems reads overlay items written as "C:s,p;O:0,1". Each
//species:orbitals pair is one item.
func parseItems(s string) ([]map[string]procar.Selection, error) {
	var ret []map[string]procar.Selection
	for _, it := range strings.Split(s, ";") {
		if strings.TrimSpace(it) == "" {
			continue
		}
		sp, orbs, ok := strings.Cut(it, ":")
		if !ok {
			return nil, fmt.Errorf("item %q is not species:orbitals", it)
		}
		ret = append(ret, map[string]procar.Selection{strings.TrimSpace(sp): parseSelection(orbs)})
	}
	return ret, nil
}
