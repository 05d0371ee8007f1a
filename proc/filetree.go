/*
 * filetree.go, part of gmxpipe.
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
	"os"
	"path/filepath"
	"strings"
)

// FileTree is a process that creates the directory tree of a simulation:
// Directory and, inside it, each of the Folders.
type FileTree struct {
	Base
	Directory string
	Folders   []string
}

// NewFileTree returns a FileTree process, in dry-run mode.
func NewFileTree(directory string, folders ...string) *FileTree {
	F := &FileTree{Directory: directory, Folders: folders}
	F.SetDryRun(true)
	return F
}

// Directories returns the directories to create, in order.
func (F *FileTree) Directories() []string {
	ret := make([]string, 0, len(F.Folders)+1)
	ret = append(ret, F.Directory)
	for _, f := range F.Folders {
		ret = append(ret, filepath.Join(F.Directory, f))
	}
	return ret
}

func (F *FileTree) BashScript() string {
	d := F.Directories()
	for i, v := range d {
		d[i] = "mkdir " + v
	}
	return strings.Join(d, "\n")
}

// Run creates the directories that don't exist yet, unless in dry-run mode.
func (F *FileTree) Run() (int, error) {
	if !F.DryRun() {
		for _, d := range F.Directories() {
			if _, err := os.Stat(d); err == nil {
				continue
			}
			if err := os.Mkdir(d, 0o755); err != nil {
				F.Record(nil, []byte(err.Error()), 1)
				return 1, fmt.Errorf("can't create directory %s: %w", d, err)
			}
		}
	}
	F.Record(nil, nil, 0)
	return 0, nil
}
