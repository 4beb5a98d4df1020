/*
 * parser.go, part of goProcar.
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
	"sort"
	"sync"
)

//ParseFunc reads a calculation from a directory.
type ParseFunc func(dirname string) (*Calculation, error)

var (
	parsersMu sync.RWMutex
	parsers   = map[string]ParseFunc{}
)

//RegisterParser makes a parser available for the given code. It panics
//if a parser for code already exists.
func RegisterParser(code string, f ParseFunc) {
	parsersMu.Lock()
	defer parsersMu.Unlock()
	if _, ok := parsers[code]; ok {
		panic("goProcar: parser registered twice for " + code)
	}
	parsers[code] = f
}

//Codes returns the codes that have a registered parser, sorted.
func Codes() []string {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	ret := make([]string, 0, len(parsers))
	for k := range parsers {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Parse reads the calculation in dirname with the parser for code.
func Parse(code, dirname string) (*Calculation, error) {
	parsersMu.RLock()
	f, ok := parsers[code]
	parsersMu.RUnlock()
	if !ok {
		return nil, NewError(ErrUnknownCode, "no parser for code "+code, "Parse")
	}
	c, err := f(dirname)
	if err != nil {
		return nil, errDecorate(err, "Parse")
	}
	return c, nil
}
