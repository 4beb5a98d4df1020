/*
 * handy.go, part of goProcar.
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
	"strconv"
)

//isInInt returns true if test is in container, false otherwise.
func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//Same as the previous, but with strings.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//rangeOrAll returns sel, or all the indexes from 0 to n-1 if sel is nil.
//Indexes out of range cause an error.
func rangeOrAll(sel []int, n int, what, caller string) ([]int, error) {
	if sel == nil {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	for _, v := range sel {
		if v < 0 || v >= n {
			return nil, NewError(ErrSelection, what+" index "+strconv.Itoa(v)+" out of range [0,"+strconv.Itoa(n)+")", caller)
		}
	}
	return sel, nil
}

//uniqueSorted returns the unique elements of s, sorted.
func uniqueSorted(s []string) []string {
	ret := make([]string, 0, len(s))
	for _, v := range s {
		if !isInString(ret, v) {
			ret = append(ret, v)
		}
	}
	sort.Strings(ret)
	return ret
}
