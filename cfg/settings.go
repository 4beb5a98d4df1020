/*
 * settings.go, part of goProcar.
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

	"github.com/caarlos0/env/v11"
)

//Settings are read from the environment.
type Settings struct {
	LogLevel   string `env:"GOPROCAR_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"GOPROCAR_LOG_FORMAT" envDefault:"console"`
	Viewer     string `env:"GOPROCAR_VIEWER"`
	PlotConfig string `env:"GOPROCAR_PLOT_CONFIG"`
}

//LoadSettings loads the settings from environment variables.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("cfg: parse env: %w", err)
	}
	return s, nil
}
