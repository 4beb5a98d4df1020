/*
 * interfaces.go, part of goProcar.
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
	"errors"
	"fmt"
	"strings"
)

//Errors

//ErrorInt is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing its type or wrapping it around something else.
type ErrorInt interface {
	Error() string
	Decorate(string) []string
	Critical() bool
}

//Kinds of errors. An *Error unwraps to one of these, so they can be
//checked with errors.Is.
var (
	ErrNoPhase           = errors.New("the provided electronic band structure file does not include phases")
	ErrInvalidUnfoldMode = errors.New("invalid unfold mode")
	ErrUnknownCode       = errors.New("unknown code")
	ErrNonCollinear      = errors.New("noncollinear calculations are not supported")
	ErrTransformation    = errors.New("invalid transformation matrix")
	ErrShape             = errors.New("dimension mismatch")
	ErrBadFormat         = errors.New("bad file format")
	ErrSelection         = errors.New("invalid selection")
)

//Error is the error type of goProcar.
type Error struct {
	message  string
	kind     error
	filename string
	deco     []string
	critical bool
}

//NewError returns a critical error of the given kind, with the message msg, raised
//by caller.
func NewError(kind error, msg, caller string) *Error {
	return &Error{message: msg, kind: kind, deco: []string{caller}, critical: true}
}

//NewFileError is like NewError but also records the file being processed.
func NewFileError(kind error, filename, msg, caller string) *Error {
	err := NewError(kind, msg, caller)
	err.filename = filename
	return err
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	msg := err.message
	if err.kind != nil && !strings.Contains(msg, err.kind.Error()) {
		msg = fmt.Sprintf("%s: %s", err.kind.Error(), msg)
	}
	if err.filename != "" {
		msg = fmt.Sprintf("%s (%s)", msg, err.filename)
	}
	return msg
}

//Decorate adds dec to the decoration slice of the error and returns the
//resulting slice. An empty dec just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored.
func (err *Error) Critical() bool { return err.critical }

//FileName returns the name of the file being processed when the error happened, if any.
func (err *Error) FileName() string { return err.filename }

func (err *Error) Unwrap() error { return err.kind }

//errDecorate adds caller to the decoration of err if err is a goProcar error,
//otherwise it wraps err in a new one.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e ErrorInt
	if errors.As(err, &e) {
		e.Decorate(caller)
		return err
	}
	return &Error{message: err.Error(), kind: err, deco: []string{caller}, critical: true}
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrIndexOutOfRange = PanicMsg("goProcar: index out of range")
	ErrDataLength      = PanicMsg("goProcar: data length does not match the dimensions")
)
