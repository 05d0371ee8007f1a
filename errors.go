/*
 * errors.go, part of gmxpipe.
 *
 * Copyright 2024 The gmxpipe Authors
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

package chem

import (
	"errors"
	"fmt"
	"strings"
)

// FormatError is returned when a file doesn't have the expected form: wrong extension,
// a blank path, a required section missing, or references pointing
// outside of the data read.
type FormatError struct {
	File    string //empty if the error doesn't come from a file
	Message string
	deco    []string
}

// NewFormatError returns a FormatError for the file filename, decorated with caller.
func NewFormatError(filename, message, caller string) *FormatError {
	return &FormatError{File: filename, Message: message, deco: []string{caller}}
}

func (E *FormatError) Error() string {
	if E.File == "" {
		return fmt.Sprintf("format error: %s", E.Message)
	}
	return fmt.Sprintf("Gromacs file %s format error: %s", E.File, E.Message)
}

func (E *FormatError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *FormatError) FileName() string { return E.File }

// ParseError is returned when a fixed-column row can't be read.
type ParseError struct {
	File    string
	Row     string //the offending row, without comments
	Message string
	Err     error //the underlying error, if any
	deco    []string
}

// NewParseError returns a ParseError for row in the file filename.
func NewParseError(filename, row, message string, err error, caller string) *ParseError {
	return &ParseError{File: filename, Row: row, Message: message, Err: err, deco: []string{caller}}
}

func (E *ParseError) Error() string {
	s := fmt.Sprintf("Gromacs file %s parse error: %s", E.File, E.Message)
	if E.Row != "" {
		s += fmt.Sprintf(" (row %q)", E.Row)
	}
	if E.Err != nil {
		s += ": " + E.Err.Error()
	}
	return s
}

func (E *ParseError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *ParseError) FileName() string { return E.File }

func (E *ParseError) Unwrap() error { return E.Err }

// ErrDecorate decorates err with caller if err implements Error, and returns it.
// Other errors are returned unchanged.
func ErrDecorate(err error, caller string) error {
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// Trace returns the decorations of err joined by " <- ", or an empty string
// if err doesn't implement Error.
func Trace(err error) string {
	var e Error
	if !errors.As(err, &e) {
		return ""
	}
	return strings.Join(e.Decorate(""), " <- ")
}
