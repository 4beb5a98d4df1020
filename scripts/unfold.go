/*
 * unfold.go, part of goProcar.
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

package scripts

import (
	"fmt"
	"sort"
	"strings"

	procar "github.com/rmera/goprocar"
	"github.com/rmera/goprocar/cfg"
	"github.com/rmera/goprocar/ebsplot"
	"github.com/rmera/goprocar/internal/logging"
	v3 "github.com/rmera/goprocar/v3"
	_ "github.com/rmera/goprocar/vasp"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
)

//UnfoldOptions are the parameters of Unfold. Use DefaultUnfoldOptions to get
//the defaults. Nil selections, masks and pointers mean "not set".
type UnfoldOptions struct {
	Code    string
	Dirname string
	//Calculation, if not nil, is used instead of parsing Dirname. Its bands
	//are shifted in place when Fermi is set.
	Calculation *procar.Calculation
	//Mode is one of the plot modes (see cfg.Config.Modes). An empty Mode skips
	//the unfolding.
	Mode                 string
	UnfoldMode           string
	TransformationMatrix mat.Matrix
	Spins                []int
	Atoms                procar.Selection
	Orbitals             procar.Selection
	//Items are used by the "overlay" mode: each one maps species to orbitals.
	Items          []map[string]procar.Selection
	ProjectionMask *procar.Mask
	UnfoldMask     *procar.Mask
	//When the corresponding mask is nil, the cutoffs build one that keeps
	//the points with a projection sum (or unfolding weight) >= the cutoff.
	ProjectionCutoff    *float64
	UnfoldCutoff        *float64
	Fermi               *float64
	FermiShift          float64
	InterpolationFactor int
	InterpolationType   string
	VMax, VMin          *float64
	KTicks              []int
	KNames              []string
	ELimit              []float64
	//Plot, if not nil, is drawn on instead of a new plot.
	Plot          *plot.Plot
	Show          bool
	SaveFig       string
	SaveTab       string
	PrintPlotOpts bool
	PlotOverrides map[string]any
}

//DefaultUnfoldOptions returns the default parameters for Unfold.
func DefaultUnfoldOptions() UnfoldOptions {
	return UnfoldOptions{
		Code:                 "vasp",
		Dirname:              ".",
		Mode:                 "plain",
		UnfoldMode:           "both",
		TransformationMatrix: v3.Diag(2, 2, 2),
		InterpolationFactor:  1,
		InterpolationType:    "cubic",
		Show:                 true,
		SaveTab:              "unfold_result.csv",
	}
}

//weightSet holds the weights and masks of a parametric or scatter plot.
type weightSet struct {
	colorWeights, widthWeights *procar.BandValues
	colorMask, widthMask       *procar.Mask
}

func (w weightSet) options(spins []int, vmin, vmax *float64) ebsplot.WeightOptions {
	return ebsplot.WeightOptions{
		ColorWeights: w.colorWeights,
		WidthWeights: w.widthWeights,
		ColorMask:    w.colorMask,
		WidthMask:    w.widthMask,
		Spins:        spins,
		VMin:         vmin,
		VMax:         vmax,
	}
}

//unfoldWeights decides how the unfolding weights are shown: as line width,
//as color, or both.
func unfoldWeights(unfoldMode string, weights *procar.BandValues, mask *procar.Mask) (weightSet, error) {
	switch unfoldMode {
	case "both":
		return weightSet{colorWeights: weights, widthWeights: weights, colorMask: mask, widthMask: mask}, nil
	case "thickness":
		return weightSet{widthWeights: weights, widthMask: mask}, nil
	case "color":
		return weightSet{colorWeights: weights, colorMask: mask}, nil
	}
	return weightSet{}, procar.NewError(procar.ErrInvalidUnfoldMode, fmt.Sprintf("invalid unfold_mode was selected: %s please select from the following 'both', 'thickness', 'color'", unfoldMode), "Unfold")
}

//projectionWeights returns the weights of the parametric and scatter modes:
//the projection sums give the colors and/or widths, depending on the
//configuration, but the widths end up being the unfolding weights.
func projectionWeights(sums, unfolded *procar.BandValues, config *cfg.Config, projMask, unfoldMask *procar.Mask) weightSet {
	var w weightSet
	if config.WeightedColor {
		w.colorWeights = sums
	}
	if config.WeightedWidth {
		w.widthWeights = sums
	}
	w.colorMask = projMask
	w.widthMask = unfoldMask
	w.widthWeights = unfolded
	return w
}

//overlaySets returns one set of projection sums, and its label, per layer
//of the overlay modes.
func overlaySets(mode string, C *procar.Calculation, opts UnfoldOptions) ([]*procar.BandValues, []string, error) {
	E, S := C.EBS, C.Structure
	var weights []*procar.BandValues
	var labels []string
	add := func(label string, atoms, orbitals []int) error {
		w, err := E.EbsSum(atoms, orbitals, opts.Spins)
		if err != nil {
			return err
		}
		weights = append(weights, w)
		labels = append(labels, label)
		return nil
	}
	switch mode {
	case "overlay_species":
		orbitals, err := procar.ResolveOrbitals(opts.Orbitals)
		if err != nil {
			return nil, nil, err
		}
		for _, sp := range S.Species() {
			if err := add(sp, S.AtomsOf(sp), orbitals); err != nil {
				return nil, nil, err
			}
		}
	case "overlay_orbitals":
		atoms, err := procar.ResolveAtoms(S, opts.Atoms)
		if err != nil {
			return nil, nil, err
		}
		for _, fam := range procar.OrbitalFamilies {
			if fam == "f" && E.NOrbitals() <= 9 {
				continue
			}
			if err := add(fam, atoms, procar.OrbitalNames[fam]); err != nil {
				return nil, nil, err
			}
		}
	case "overlay":
		for _, item := range opts.Items {
			species := make([]string, 0, len(item))
			for sp := range item {
				species = append(species, sp)
			}
			sort.Strings(species)
			for _, sp := range species {
				sel := item[sp]
				orbitals, err := procar.ResolveOrbitals(sel)
				if err != nil {
					return nil, nil, err
				}
				label := sp + "-" + strings.Join(sel, "_")
				if sel.Named() {
					label = sp + "-" + strings.Join(sel, "")
				}
				if err := add(label, S.AtomsOf(sp), orbitals); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return weights, labels, nil
}

//Unfold reads a supercell calculation, unfolds its bands onto the Brillouin
//zone of the primitive cell given by the transformation matrix, and plots
//them. It returns the plot.
func Unfold(opts UnfoldOptions) (*ebsplot.EBSPlot, error) {
	log := logging.WithComponent("unfold")
	log.Info().Msg(procar.Welcome())
	def, err := cfg.ConfigFactory{}.CreateConfig(cfg.BandStructure)
	if err != nil {
		return nil, err
	}
	config, err := cfg.ConfigManager{}.MergeConfigs(def, opts.PlotOverrides)
	if err != nil {
		return nil, err
	}
	log.Info().Str("modes", strings.Join(config.Modes, " , ")).Msg("there are additional plot options defined in a configuration file. Set them with PlotOverrides, or set PrintPlotOpts to list them")
	if opts.PrintPlotOpts {
		all, err := config.Options()
		if err != nil {
			return nil, err
		}
		for _, k := range config.OptionKeys() {
			log.Info().Interface(k, all[k]).Msg("plot option")
		}
	}

	C := opts.Calculation
	if C == nil {
		if C, err = procar.Parse(opts.Code, opts.Dirname); err != nil {
			return nil, err
		}
	}
	E := C.EBS
	var fermiLevel float64
	var ylabel string
	if opts.Fermi != nil {
		E.ShiftBands(-*opts.Fermi + opts.FermiShift)
		fermiLevel = opts.FermiShift
		ylabel = "E - E_F (eV)"
	} else {
		ylabel = "E (eV)"
		log.Warn().Msg("Fermi is not set! Set Fermi to a value. The plot did not shift the bands by the Fermi energy")
	}

	P, err := ebsplot.New(E, C.KPath, opts.Plot, opts.Spins, config)
	if err != nil {
		return nil, err
	}
	if err := P.SetInterpolation(opts.InterpolationFactor, opts.InterpolationType); err != nil {
		return nil, err
	}

	if opts.Mode != "" {
		if E.ProjectedPhase == nil {
			return nil, procar.NewError(procar.ErrNoPhase, "The provided electronic band structure file does not include phases", "Unfold")
		}
		if err := E.Unfold(opts.TransformationMatrix, C.Structure); err != nil {
			return nil, err
		}
		if opts.UnfoldMask == nil && opts.UnfoldCutoff != nil {
			opts.UnfoldMask = procar.NewThresholdMask(E.Weights, *opts.UnfoldCutoff)
		}
		if opts.SaveTab != "" {
			if err := E.WriteUnfoldTable(opts.SaveTab, P.KDistances()); err != nil {
				return nil, err
			}
			log.Info().Str("file", opts.SaveTab).Msg("unfolding table written")
		}
	}

	ws, err := unfoldWeights(opts.UnfoldMode, E.Weights, opts.UnfoldMask)
	if err != nil {
		return nil, err
	}

	var labels []string
	switch opts.Mode {
	case "plain":
		if err := P.PlotBands(); err != nil {
			return nil, err
		}
		if err := P.PlotParametric(ws.options(opts.Spins, nil, nil)); err != nil {
			return nil, err
		}
		P.Handles = P.Handles[:P.NSpins()]
	case "overlay", "overlay_species", "overlay_orbitals":
		var weights []*procar.BandValues
		weights, labels, err = overlaySets(opts.Mode, C, opts)
		if err != nil {
			return nil, err
		}
		if err := P.PlotParametricOverlay(opts.Spins, opts.VMin, opts.VMax, weights); err != nil {
			return nil, err
		}
	default:
		atoms, err := procar.ResolveAtoms(C.Structure, opts.Atoms)
		if err != nil {
			return nil, err
		}
		orbitals, err := procar.ResolveOrbitals(opts.Orbitals)
		if err != nil {
			return nil, err
		}
		sums, err := E.EbsSum(atoms, orbitals, opts.Spins)
		if err != nil {
			return nil, err
		}
		projMask := opts.ProjectionMask
		if projMask == nil && opts.ProjectionCutoff != nil {
			projMask = procar.NewThresholdMask(sums, *opts.ProjectionCutoff)
		}
		ws = projectionWeights(sums, E.Weights, config, projMask, opts.UnfoldMask)
		switch opts.Mode {
		case "parametric":
			err = P.PlotParametric(ws.options(opts.Spins, opts.VMin, opts.VMax))
		case "scatter":
			err = P.PlotScatter(ws.options(opts.Spins, opts.VMin, opts.VMax))
		default:
			log.Warn().Msgf("Selected mode %s not valid. Please check the spelling", opts.Mode)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := P.SetXTicks(opts.KTicks, opts.KNames); err != nil {
		return nil, err
	}
	P.SetYTicks(opts.ELimit)
	P.SetXLim()
	P.SetYLim(opts.ELimit)
	if opts.Fermi != nil {
		if err := P.DrawFermi(fermiLevel); err != nil {
			return nil, err
		}
	}
	P.SetYLabel(ylabel)
	if err := P.Grid(); err != nil {
		return nil, err
	}
	if err := P.Legend(labels); err != nil {
		return nil, err
	}
	if opts.SaveFig != "" {
		if err := P.Save(opts.SaveFig); err != nil {
			return nil, err
		}
	}
	if opts.Show {
		if err := P.Show(); err != nil {
			return nil, err
		}
	}
	return P, nil
}
