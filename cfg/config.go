/*
 * config.go, part of goProcar.
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
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed unfold.yml
var unfoldDefaults []byte

//PlotType identifies a family of plots sharing a set of options.
type PlotType string

const BandStructure PlotType = "band_structure"

//Config holds the plot options of band structure plots.
type Config struct {
	Modes      []string `yaml:"modes"`
	Color      string   `yaml:"color"`
	SpinColors []string `yaml:"spin_colors"`
	SpinLabels []string `yaml:"spin_labels"`
	//LineStyles are "solid", "dashed" or "dotted", one per spin.
	LineStyles     []string  `yaml:"linestyle"`
	LineWidth      float64   `yaml:"linewidth"`
	MarkerSize     float64   `yaml:"marker_size"`
	Opacity        float64   `yaml:"opacity"`
	Colorbar       bool      `yaml:"plot_color_bar"`
	Cmap           string    `yaml:"cmap"`
	Clim           []float64 `yaml:"clim"`
	FermiColor     string    `yaml:"fermi_color"`
	FermiLineStyle string    `yaml:"fermi_linestyle"`
	FermiLineWidth float64   `yaml:"fermi_linewidth"`
	Grid           bool      `yaml:"grid"`
	GridColor      string    `yaml:"grid_color"`
	Legend         bool      `yaml:"legend"`
	//FigureSize is width and height, in inches.
	FigureSize     []float64 `yaml:"figure_size"`
	Title          string    `yaml:"title"`
	XLabel         string    `yaml:"x_label"`
	DPI            float64   `yaml:"dpi"`
	WeightedColor  bool      `yaml:"weighted_color"`
	WeightedWidth  bool      `yaml:"weighted_width"`
	OverlayOpacity float64   `yaml:"overlay_opacity"`
	Viewer         string    `yaml:"viewer"`

	PlotType PlotType `yaml:"-"`
}

//Options returns the options in c as a map, with the same keys used for
//overrides.
func (c *Config) Options() (map[string]any, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("cfg: marshal options: %w", err)
	}
	ret := make(map[string]any)
	if err := yaml.Unmarshal(b, &ret); err != nil {
		return nil, fmt.Errorf("cfg: unmarshal options: %w", err)
	}
	return ret, nil
}

//OptionKeys returns the names of the options in c, sorted.
func (c *Config) OptionKeys() []string {
	m, err := c.Options()
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Config) validate() error {
	if len(c.Clim) != 0 && len(c.Clim) != 2 {
		return fmt.Errorf("cfg: clim needs 2 values, got %d", len(c.Clim))
	}
	if len(c.FigureSize) != 2 {
		return fmt.Errorf("cfg: figure_size needs 2 values, got %d", len(c.FigureSize))
	}
	if len(c.SpinColors) == 0 || len(c.LineStyles) == 0 {
		return fmt.Errorf("cfg: spin_colors and linestyle can't be empty")
	}
	return nil
}

//ConfigFactory creates the default configuration for each plot type.
type ConfigFactory struct{}

//CreateConfig returns the default options for the plot type t.
func (ConfigFactory) CreateConfig(t PlotType) (*Config, error) {
	if t != BandStructure {
		return nil, fmt.Errorf("cfg: unknown plot type %q", t)
	}
	c := &Config{PlotType: t}
	if err := decodeStrict(unfoldDefaults, c); err != nil {
		return nil, fmt.Errorf("cfg: embedded defaults: %w", err)
	}
	return c, nil
}

//ConfigManager combines configurations.
type ConfigManager struct{}

//MergeConfigs returns a copy of def with the values in overrides applied.
//Keys not present in the configuration are an error.
func (ConfigManager) MergeConfigs(def *Config, overrides map[string]any) (*Config, error) {
	base, err := def.Options()
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		base[k] = v
	}
	b, err := yaml.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("cfg: marshal overrides: %w", err)
	}
	c := &Config{PlotType: def.PlotType}
	if err := decodeStrict(b, c); err != nil {
		return nil, fmt.Errorf("cfg: apply overrides: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

//LoadOverrides reads a YAML file with plot options.
func LoadOverrides(name string) (map[string]any, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("cfg: read overrides: %w", err)
	}
	ret := make(map[string]any)
	if err := yaml.Unmarshal(b, &ret); err != nil {
		return nil, fmt.Errorf("cfg: parse overrides %s: %w", name, err)
	}
	return ret, nil
}

func decodeStrict(b []byte, dst any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(dst)
}
