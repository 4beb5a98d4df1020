/*
 * procar.go, part of goProcar.
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
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	procar "github.com/rmera/goprocar"
	v3 "github.com/rmera/goprocar/v3"
)

var procarHeaderRe = regexp.MustCompile(`#\s*of\s+k-points:\s*(\d+)\s*#\s*of\s+bands:\s*(\d+)\s*#\s*of\s+ions:\s*(\d+)`)

//ProcarData is the content of a PROCAR file.
type ProcarData struct {
	//Kpoints in fractional reciprocal coordinates.
	Kpoints   *v3.Matrix
	KWeights  []float64
	Bands     *procar.BandValues
	Projected *procar.Projections
	//Phases is nil if the file was not written with LORBIT=12.
	Phases   *procar.Phases
	Orbitals []string
}

//one spin channel.
type spinBlock struct {
	energies []float64
	proj     []float64
	phases   []complex128
}

type procarParser struct {
	L          *lineReader
	nk, nb, na int
	no         int
	orbitals   []string
	blocks     []*spinBlock
	cur        *spinBlock
	kpts       []float64
	kw         []float64
	k, b       int
}

//ReadProcar reads a collinear PROCAR file, spin polarized or not, with or without phases.
//Noncollinear files cause an error that wraps procar.ErrNonCollinear.
func ReadProcar(name string) (*ProcarData, error) {
	f, opened, err := procar.OpenFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	P := &procarParser{L: newLineReader(f, opened), k: -1, b: -1}
	if err := P.parse(); err != nil {
		return nil, err
	}
	return P.assemble()
}

func (P *procarParser) parse() error {
	const caller = "ReadProcar"
	L := P.L
	for {
		line, err := L.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return procar.NewFileError(err, L.name, err.Error(), caller)
		}
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "PROCAR") {
			continue
		}
		fields := strings.Fields(t)
		switch {
		case strings.HasPrefix(t, "#") && strings.Contains(t, "k-points"):
			if err := P.header(t); err != nil {
				return err
			}
		case fields[0] == "k-point":
			if err := P.kpoint(t, fields); err != nil {
				return err
			}
		case fields[0] == "band":
			if err := P.band(t, fields); err != nil {
				return err
			}
		case fields[0] == "ion":
			if err := P.projections(fields); err != nil {
				return err
			}
			next, err := L.nextNonEmpty()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return procar.NewFileError(err, L.name, err.Error(), caller)
			}
			if f := strings.Fields(next); f[0] != "ion" {
				L.unread(next)
				continue
			}
			if err := P.phases(); err != nil {
				return err
			}
		}
	}
}

//header starts a new spin block.
func (P *procarParser) header(line string) error {
	h := procarHeaderRe.FindStringSubmatch(line)
	if h == nil {
		return P.L.errorf("ReadProcar", "bad header: "+line)
	}
	var n [3]int
	for i := range n {
		n[i], _ = strconv.Atoi(h[i+1])
	}
	if P.blocks == nil {
		P.nk, P.nb, P.na = n[0], n[1], n[2]
		P.kpts = make([]float64, 3*P.nk)
		P.kw = make([]float64, P.nk)
	} else if n[0] != P.nk || n[1] != P.nb || n[2] != P.na {
		return P.L.errorf("ReadProcar", "spin channels with different dimensions")
	}
	P.cur = &spinBlock{energies: make([]float64, P.nk*P.nb)}
	P.blocks = append(P.blocks, P.cur)
	P.k, P.b = -1, -1
	return nil
}

func (P *procarParser) kpoint(line string, fields []string) error {
	const caller = "ReadProcar"
	if P.cur == nil || len(fields) < 2 {
		return P.L.errorf(caller, "kpoint before the header")
	}
	idx, err := strconv.Atoi(strings.TrimSuffix(fields[1], ":"))
	if err != nil || idx < 1 || idx > P.nk {
		return P.L.errorf(caller, "bad kpoint index: "+line)
	}
	rest := line[strings.Index(line, ":")+1:]
	weight := 0.0
	if w := strings.Index(rest, "weight"); w >= 0 {
		if v, err := parseFloats(rest[w:]); err == nil && len(v) > 0 {
			weight = v[0]
		}
		rest = rest[:w]
	}
	v, err := parseFloats(rest)
	if err != nil || len(v) < 3 {
		return P.L.errorf(caller, "bad kpoint coordinates: "+line)
	}
	P.k, P.b = idx-1, -1
	if len(P.blocks) == 1 {
		copy(P.kpts[3*P.k:3*P.k+3], v[:3])
		P.kw[P.k] = weight
	}
	return nil
}

func (P *procarParser) band(line string, fields []string) error {
	const caller = "ReadProcar"
	if P.k < 0 || len(fields) < 2 {
		return P.L.errorf(caller, "band before kpoint")
	}
	idx, err := strconv.Atoi(strings.TrimSuffix(fields[1], "#"))
	if err != nil || idx < 1 || idx > P.nb {
		return P.L.errorf(caller, "bad band index: "+line)
	}
	i := strings.Index(line, "energy")
	if i < 0 {
		return P.L.errorf(caller, "band without energy: "+line)
	}
	v, err := parseFloats(line[i+len("energy"):])
	if err != nil || len(v) == 0 {
		return P.L.errorf(caller, "bad band energy: "+line)
	}
	P.b = idx - 1
	P.cur.energies[P.k*P.nb+P.b] = v[0]
	return nil
}

//projections reads the table of projections of the current band. header
//is the already read "ion s py ... tot" line.
func (P *procarParser) projections(header []string) error {
	const caller = "ReadProcar"
	L := P.L
	if P.k < 0 || P.b < 0 {
		return L.errorf(caller, "projections outside a band")
	}
	if P.orbitals == nil {
		names := header[1:]
		if len(names) > 0 && names[len(names)-1] == "tot" {
			names = names[:len(names)-1]
		}
		P.orbitals = append([]string(nil), names...)
		P.no = len(names)
	}
	if P.cur.proj == nil {
		P.cur.proj = make([]float64, P.nk*P.nb*P.na*P.no)
	}
	base := (P.k*P.nb + P.b) * P.na * P.no
	for a := 0; a < P.na; a++ {
		line, err := L.nextNonEmpty()
		if err != nil {
			return L.errorf(caller, "truncated projections")
		}
		f := strings.Fields(line)
		if idx, err := strconv.Atoi(f[0]); err != nil || idx != a+1 {
			return L.errorf(caller, fmt.Sprintf("expected projections for ion %d: %s", a+1, line))
		}
		v := leadingFloats(f[1:])
		if len(v) < P.no {
			return L.errorf(caller, "too few projections: "+line)
		}
		copy(P.cur.proj[base+a*P.no:base+(a+1)*P.no], v[:P.no])
	}
	line, err := L.nextNonEmpty()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return L.errorf(caller, err.Error())
	}
	if f := strings.Fields(line); f[0] != "tot" {
		L.unread(line)
		return nil
	}
	//the magnetization tables of noncollinear runs come right after the total.
	line, err = L.nextNonEmpty()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return L.errorf(caller, err.Error())
	}
	if _, err := strconv.Atoi(strings.Fields(line)[0]); err == nil {
		return procar.NewFileError(procar.ErrNonCollinear, L.name, "more than one projection table per band", caller)
	}
	L.unread(line)
	return nil
}

//phases reads the block of complex coefficients of the current band. Each ion has
//either one line with real,imaginary pairs or a line of real parts followed
//by a line of imaginary parts.
func (P *procarParser) phases() error {
	const caller = "ReadProcar"
	L := P.L
	if P.cur.phases == nil {
		P.cur.phases = make([]complex128, P.nk*P.nb*P.na*P.no)
	}
	lines := make(map[int][][]float64, P.na)
	for {
		line, err := L.nextNonEmpty()
		if err == io.EOF {
			break
		}
		if err != nil {
			return L.errorf(caller, err.Error())
		}
		f := strings.Fields(line)
		idx, err := strconv.Atoi(f[0])
		if err != nil {
			if f[0] == "charge" || f[0] == "tot" {
				continue
			}
			L.unread(line)
			break
		}
		lines[idx] = append(lines[idx], leadingFloats(f[1:]))
	}
	base := (P.k*P.nb + P.b) * P.na * P.no
	for a := 0; a < P.na; a++ {
		l := lines[a+1]
		dst := P.cur.phases[base+a*P.no : base+(a+1)*P.no]
		switch {
		case len(l) >= 2 && len(l[0]) >= P.no && len(l[1]) >= P.no:
			for o := range dst {
				dst[o] = complex(l[0][o], l[1][o])
			}
		case len(l) == 1 && len(l[0]) >= 2*P.no:
			for o := range dst {
				dst[o] = complex(l[0][2*o], l[0][2*o+1])
			}
		default:
			return L.errorf(caller, fmt.Sprintf("incomplete phases for ion %d, kpoint %d, band %d", a+1, P.k+1, P.b+1))
		}
	}
	return nil
}

func (P *procarParser) assemble() (*ProcarData, error) {
	const caller = "ReadProcar"
	if len(P.blocks) == 0 {
		return nil, procar.NewFileError(procar.ErrBadFormat, P.L.name, "no PROCAR header found", caller)
	}
	if P.orbitals == nil {
		return nil, procar.NewFileError(procar.ErrBadFormat, P.L.name, "no projections found", caller)
	}
	ns := len(P.blocks)
	if ns > 2 {
		return nil, procar.NewFileError(procar.ErrBadFormat, P.L.name, fmt.Sprintf("%d spin blocks", ns), caller)
	}
	kp, _ := v3.NewMatrix(P.kpts)
	D := &ProcarData{
		Kpoints:   kp,
		KWeights:  P.kw,
		Bands:     procar.NewBandValues(P.nk, P.nb, ns, nil),
		Projected: procar.NewProjections(P.nk, P.nb, P.na, P.no, ns),
		Orbitals:  P.orbitals,
	}
	withPhases := true
	for _, blk := range P.blocks {
		if blk.proj == nil {
			return nil, procar.NewFileError(procar.ErrBadFormat, P.L.name, "spin channel without projections", caller)
		}
		withPhases = withPhases && blk.phases != nil
	}
	if withPhases {
		D.Phases = procar.NewPhases(P.nk, P.nb, P.na, P.no, ns)
	}
	for s, blk := range P.blocks {
		for k := 0; k < P.nk; k++ {
			for b := 0; b < P.nb; b++ {
				D.Bands.Set(k, b, s, blk.energies[k*P.nb+b])
				base := (k*P.nb + b) * P.na * P.no
				for a := 0; a < P.na; a++ {
					for o := 0; o < P.no; o++ {
						D.Projected.Set(k, b, a, o, s, blk.proj[base+a*P.no+o])
						if withPhases {
							D.Phases.Set(k, b, a, o, s, blk.phases[base+a*P.no+o])
						}
					}
				}
			}
		}
	}
	return D, nil
}
