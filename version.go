/*
 * version.go, part of goProcar.
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

package procar

import (
	"fmt"
	"strings"
)

const (
	Name        = "goProcar"
	Version     = "0.4.0"
	Description = "A Go library for electronic structure post-processing"
	URL         = "https://github.com/rmera/goprocar"
)

//Welcome returns the banner printed when a script starts.
func Welcome() string {
	line := strings.Repeat("-", 56)
	return fmt.Sprintf("%s\n %s %s\n %s\n %s\n%s", line, Name, Version, Description, URL, line)
}
