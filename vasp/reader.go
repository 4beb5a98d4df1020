/*
 * reader.go, part of goProcar.
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

package vasp

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	procar "github.com/rmera/goprocar"
)

//VASP sometimes glues numbers together, as in 0.50000000-0.25000000.
var floatRe = regexp.MustCompile(`[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:[EeDd][-+]?\d+)?`)

//lineReader reads a text file line by line, allowing one line to be pushed back.
type lineReader struct {
	r      *bufio.Reader
	name   string
	lineno int
	back   *string
}

func newLineReader(r io.Reader, name string) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 1<<16), name: name}
}

//next returns the next line, without the line break. It returns io.EOF
//only when there are no lines left.
func (L *lineReader) next() (string, error) {
	if L.back != nil {
		l := *L.back
		L.back = nil
		return l, nil
	}
	line, err := L.r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	L.lineno++
	return strings.TrimRight(line, "\r\n"), nil
}

func (L *lineReader) unread(line string) {
	L.back = &line
}

//nextNonEmpty skips blank lines.
func (L *lineReader) nextNonEmpty() (string, error) {
	for {
		l, err := L.next()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(l) != "" {
			return l, nil
		}
	}
}

func (L *lineReader) errorf(caller, msg string) error {
	return procar.NewFileError(procar.ErrBadFormat, L.name, msg+" (line "+strconv.Itoa(L.lineno)+")", caller)
}

//parseFloats returns all the numbers in s.
func parseFloats(s string) ([]float64, error) {
	found := floatRe.FindAllString(s, -1)
	ret := make([]float64, len(found))
	for i, v := range found {
		f, err := strconv.ParseFloat(strings.NewReplacer("D", "E", "d", "e").Replace(v), 64)
		if err != nil {
			return nil, err
		}
		ret[i] = f
	}
	return ret, nil
}

//leadingFloats parses the fields of s as numbers until the first one that is not.
func leadingFloats(fields []string) []float64 {
	ret := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			break
		}
		ret = append(ret, v)
	}
	return ret
}
