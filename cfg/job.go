/*
 * job.go, part of goProcar.
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

package cfg

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

//UnfoldJob holds the parameters of an unfolding plot, as written in the
//[unfold] table of a job file. Pointer fields are optional.
type UnfoldJob struct {
	Code                 string      `toml:"code"`
	Dirname              string      `toml:"dirname"`
	Mode                 string      `toml:"mode"`
	UnfoldMode           string      `toml:"unfold_mode"`
	TransformationMatrix [][]float64 `toml:"transformation_matrix"`
	Spins                []int       `toml:"spins"`
	Atoms                []string    `toml:"atoms"`
	Orbitals             []string    `toml:"orbitals"`
	//Items are {species = [orbitals]} tables. Orbitals may be given
	//by name or by index.
	Items               []map[string][]interface{} `toml:"items"`
	ProjectionCutoff    *float64                   `toml:"projection_cutoff"`
	UnfoldCutoff        *float64                   `toml:"unfold_cutoff"`
	Fermi               *float64                   `toml:"fermi"`
	FermiShift          float64                    `toml:"fermi_shift"`
	InterpolationFactor int                        `toml:"interpolation_factor"`
	InterpolationType   string                     `toml:"interpolation_type"`
	VMax                *float64                   `toml:"vmax"`
	VMin                *float64                   `toml:"vmin"`
	KTicks              []int                      `toml:"kticks"`
	KNames              []string                   `toml:"knames"`
	ELimit              []float64                  `toml:"elimit"`
	SaveFig             string                     `toml:"savefig"`
	SaveTab             *string                    `toml:"savetab"`
	PrintPlotOpts       bool                       `toml:"print_plot_opts"`
}

//Job is the content of a job file.
type Job struct {
	Unfold UnfoldJob `toml:"unfold"`
	//Plot overrides the plot options.
	Plot map[string]interface{} `toml:"plot"`
}

//LoadJob reads a TOML job file.
func LoadJob(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cfg: open job: %w", err)
	}
	defer f.Close()
	var job Job
	dec := toml.NewDecoder(f)
	if err := dec.Decode(&job); err != nil {
		return nil, fmt.Errorf("cfg: decode job %s: %w", path, err)
	}
	if m := job.Unfold.TransformationMatrix; m != nil {
		if len(m) != 3 {
			return nil, fmt.Errorf("cfg: transformation_matrix needs 3 rows, got %d", len(m))
		}
		for i, row := range m {
			if len(row) != 3 {
				return nil, fmt.Errorf("cfg: row %d of transformation_matrix has %d elements", i, len(row))
			}
		}
	}
	if e := job.Unfold.ELimit; e != nil && len(e) != 2 {
		return nil, fmt.Errorf("cfg: elimit needs 2 values, got %d", len(e))
	}
	return &job, nil
}

//ItemStrings returns the items with every orbital written as a string.
func (u *UnfoldJob) ItemStrings() []map[string][]string {
	if u.Items == nil {
		return nil
	}
	ret := make([]map[string][]string, len(u.Items))
	for i, it := range u.Items {
		ret[i] = make(map[string][]string, len(it))
		for sp, orbs := range it {
			s := make([]string, len(orbs))
			for j, o := range orbs {
				s[j] = fmt.Sprint(o)
			}
			ret[i][sp] = s
		}
	}
	return ret
}
