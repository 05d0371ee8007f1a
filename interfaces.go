/*
 * interfaces.go, part of gmxpipe.
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

// Particler is anything with a classical mass and charge: a particle,
// a group of particles or a whole molecule.
type Particler interface {
	//Mass returns the mass in g/mol
	Mass() float64
	//Charge returns the charge in atomic units
	Charge() float64
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call adds the string (if not empty) and returns the current decoration slice. Elements should be in the format "FunctionName" or "FunctionName: Extra info"
}

// FileError is an Error that knows the file that caused it.
type FileError interface {
	Error
	FileName() string
}
