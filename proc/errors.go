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

package proc

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when the executable of a command can't be found.
type NotFoundError struct {
	Command string
	Err     error
	deco    []string
}

func (E *NotFoundError) Error() string {
	return fmt.Sprintf("Gromacs executable '%s' was not found. Check Gromacs installation", E.Command)
}

func (E *NotFoundError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *NotFoundError) Unwrap() error { return E.Err }

// ExecutionError is returned when a command ends with a non-zero return code.
type ExecutionError struct {
	Command    string
	ReturnCode int
	Stderr     string
	deco       []string
}

func (E *ExecutionError) Error() string {
	msg := fmt.Sprintf("Gromacs command '%s' did not run correctly. Error code: %d", E.Command, E.ReturnCode)
	if s := strings.TrimSpace(E.Stderr); s != "" {
		msg += fmt.Sprintf(", '%s'", s)
	}
	return msg
}

func (E *ExecutionError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
