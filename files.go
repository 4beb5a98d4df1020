/*
 * files.go, part of goProcar.
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
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/klauspost/compress/zstd"
)

//compressed extensions tried, in order, when a plain file is missing.
var compressedExtensions = []string{".gz", ".zst"}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (M *multiCloser) Close() error {
	var err error
	for i := len(M.closers) - 1; i >= 0; i-- {
		if e := M.closers[i].Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//OpenFile opens name for reading. Files ending in .gz or .zst are
//decompressed on the fly. If name doesn't exist, name.gz and name.zst
//are tried. It returns the reader and the name of the file actually opened.
func OpenFile(name string) (io.ReadCloser, string, error) {
	candidates := []string{name}
	if !hasCompressedExt(name) {
		for _, ext := range compressedExtensions {
			candidates = append(candidates, name+ext)
		}
	}
	var f *os.File
	var err error
	var opened string
	for _, c := range candidates {
		f, err = os.Open(c)
		if err == nil {
			opened = c
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, c, NewFileError(err, c, err.Error(), "OpenFile")
		}
	}
	if f == nil {
		return nil, name, NewFileError(fs.ErrNotExist, name, "file not found", "OpenFile")
	}
	switch {
	case strings.HasSuffix(opened, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, opened, NewFileError(ErrBadFormat, opened, "can't read gzip stream: "+err.Error(), "OpenFile")
		}
		return &multiCloser{gz, []io.Closer{f, gz}}, opened, nil
	case strings.HasSuffix(opened, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, opened, NewFileError(ErrBadFormat, opened, "can't read zstd stream: "+err.Error(), "OpenFile")
		}
		rc := zr.IOReadCloser()
		return &multiCloser{rc, []io.Closer{f, rc}}, opened, nil
	}
	return f, opened, nil
}

func hasCompressedExt(name string) bool {
	for _, ext := range compressedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

//AtomicFile is a file that only replaces its destination when Close is called
//without errors. Files ending in .gz or .zst are compressed.
type AtomicFile struct {
	pending *renameio.PendingFile
	comp    io.WriteCloser
	w       io.Writer
	done    bool
}

//CreateFile creates a new AtomicFile that will replace name when closed.
func CreateFile(name string) (*AtomicFile, error) {
	pending, err := renameio.NewPendingFile(name)
	if err != nil {
		return nil, NewFileError(err, name, err.Error(), "CreateFile")
	}
	A := &AtomicFile{pending: pending, w: pending}
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewWriterLevel(pending, gzip.BestCompression)
		if err != nil {
			pending.Cleanup()
			return nil, NewFileError(err, name, err.Error(), "CreateFile")
		}
		A.comp = gz
	case strings.HasSuffix(name, ".zst"):
		zw, err := zstd.NewWriter(pending, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			pending.Cleanup()
			return nil, NewFileError(err, name, err.Error(), "CreateFile")
		}
		A.comp = zw
	}
	if A.comp != nil {
		A.w = A.comp
	}
	return A, nil
}

func (A *AtomicFile) Write(p []byte) (int, error) {
	return A.w.Write(p)
}

//Close flushes the data and atomically replaces the destination file.
func (A *AtomicFile) Close() error {
	if A.done {
		return nil
	}
	A.done = true
	//no-op once the file was replaced
	defer A.pending.Cleanup()
	if A.comp != nil {
		if err := A.comp.Close(); err != nil {
			return err
		}
	}
	return A.pending.CloseAtomicallyReplace()
}

//Abort discards the data written, leaving the destination untouched.
func (A *AtomicFile) Abort() error {
	if A.done {
		return nil
	}
	A.done = true
	if A.comp != nil {
		A.comp.Close()
	}
	return A.pending.Cleanup()
}
