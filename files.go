/*
 * files.go, part of gmxpipe.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt is the suffix of zstd-compressed input files.
const CompressedExt = ".zst"

// CheckFileType returns a *FormatError if filename is blank or doesn't
// end with ".ext". A trailing ".zst" is ignored.
func CheckFileType(filename, ext string) error {
	name := strings.TrimSuffix(filename, CompressedExt)
	if strings.TrimSpace(filename) == "" || !strings.HasSuffix(name, "."+ext) {
		return NewFormatError(filename, fmt.Sprintf("%s not a valid Gromacs file type", filename), "CheckFileType")
	}
	return nil
}

// ReadLines returns the lines, without line endings, of the file filename, which must have the
// extension ext. Files ending in ".zst" are decompressed as they are read.
func ReadLines(filename, ext string) ([]string, error) {
	if err := CheckFileType(filename, ext); err != nil {
		return nil, ErrDecorate(err, "ReadLines")
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(filename, CompressedExt) {
		d, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("can't decompress %s: %w", filename, err)
		}
		defer d.Close()
		r = d
	}
	lines := make([]string, 0, 64)
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		lines = append(lines, strings.TrimRight(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("can't read %s: %w", filename, err)
	}
	return lines, nil
}

// StripComments truncates each line at the first occurrence of marker, trims
// leading and trailing whitespace and drops the lines that end up empty.
// An empty marker only trims and drops blank lines.
func StripComments(lines []string, marker string) []string {
	ret := make([]string, 0, len(lines))
	for _, l := range lines {
		if marker != "" {
			l, _, _ = strings.Cut(l, marker)
		}
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		ret = append(ret, l)
	}
	return ret
}
