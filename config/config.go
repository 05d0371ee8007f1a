/*
 * config.go, part of gmxpipe.
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

// Package config loads the configuration of a simulation setup and builds
// the corresponding pipeline.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment variables that override the configuration.
const EnvPrefix = "GMXPIPE"

// Option is a command line flag and its value.
type Option struct {
	Flag  string `mapstructure:"flag"`
	Value any    `mapstructure:"value"`
}

// StepConfig declares a step of the pipeline. Command is the name of a
// Gromacs tool, "mkdir" for the file tree or "topology" for the topology writer.
type StepConfig struct {
	Name    string   `mapstructure:"name"`
	Command string   `mapstructure:"command"`
	Options []Option `mapstructure:"options"`
	Input   string   `mapstructure:"input"`
	MPI     bool     `mapstructure:"mpi"`
	NProc   int      `mapstructure:"n_proc"`
}

// MoleculeConfig is the number of copies of a fragment in the simulation.
type MoleculeConfig struct {
	Symbol string `mapstructure:"symbol"`
	Number int    `mapstructure:"number"`
}

// TopologyConfig lists the molecule files and fragments for the topology file.
type TopologyConfig struct {
	Files     []string         `mapstructure:"files"`
	Molecules []MoleculeConfig `mapstructure:"molecules"`
}

type Config struct {
	DryRun      bool                `mapstructure:"dry_run"`
	Executable  string              `mapstructure:"executable"`
	LogLevel    string              `mapstructure:"log_level"`
	StrictFlags bool                `mapstructure:"strict_flags"`
	Verify      bool                `mapstructure:"verify_topology"` //check the topology molecule files when building
	Defines     []string            `mapstructure:"defines"`         //defines for #ifdef blocks in molecule files
	Directory   string              `mapstructure:"directory"`
	Name        string              `mapstructure:"name"`
	Folders     []string            `mapstructure:"folders"`
	Flags       map[string][]string `mapstructure:"flags"`
	Steps       []StepConfig        `mapstructure:"steps"`
	Topology    TopologyConfig      `mapstructure:"topology"`
}

// Load reads the configuration file path. If path is empty, a file called gmxpipe (yaml, toml
// or json) is searched for in workdir and in $HOME/.gmxpipe, and it is not an error not to find one.
// workdir is also the default for the directory key.
func Load(path, workdir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("dry_run", true)
	v.SetDefault("executable", "gmx")
	v.SetDefault("log_level", "info")
	v.SetDefault("strict_flags", false)
	v.SetDefault("verify_topology", false)
	v.SetDefault("directory", workdir)
	v.SetDefault("name", "simulation")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("can't read configuration %s: %w", path, err)
		}
	} else {
		v.SetConfigName("gmxpipe")
		v.AddConfigPath(workdir)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".gmxpipe"))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Directory == "" {
		cfg.Directory = workdir
	}
	return &cfg, nil
}

// Level returns the log level of the configuration, slog.LevelInfo if not valid.
func (C *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(C.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// SimulationDir is the directory where the simulation files are placed.
func (C *Config) SimulationDir() string {
	return filepath.Join(C.Directory, C.Name)
}
