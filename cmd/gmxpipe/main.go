/*
 * main.go, part of gmxpipe.
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

// Gmxpipe builds Gromacs simulation setups from a configuration file, and
// reads Gromacs topology and coordinate files.
//
// Usage:
//
//	gmxpipe [-c config] script
//	gmxpipe [-c config] run [--execute] [--report file]
//	gmxpipe top [-D define,...] file.itp...
//	gmxpipe gro [-n frames] [-s symbol,...] file.gro
//	gmxpipe box [-o plot.png] [-t title] file.gro
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	chem "github.com/rmera/gmxpipe"
	"github.com/rmera/gmxpipe/chemplot"
	"github.com/rmera/gmxpipe/config"
	"github.com/rmera/gmxpipe/top"
	"github.com/rmera/gmxpipe/traj/gro"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer, global *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: gmxpipe [options] <script|run|top|gro|box> [arguments]\n\n")
	global.SetOutput(w)
	global.PrintDefaults()
}

func run(args []string, stdout, stderr io.Writer) int {
	global := pflag.NewFlagSet("gmxpipe", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(stderr)
	cfgFile := global.StringP("config", "c", "", "Configuration file (by default gmxpipe.yaml in the working directory or in ~/.gmxpipe)")
	help := global.BoolP("help", "h", false, "Show this help message")
	if err := global.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if *help || global.NArg() == 0 {
		usage(stderr, global)
		if *help {
			return 0
		}
		return 2
	}
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cfg, err := config.Load(*cfgFile, wd)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	cmdargs := global.Args()[1:]
	switch global.Arg(0) {
	case "script":
		err = script(cfg, logger, stdout)
	case "run":
		err = runPipeline(cfg, logger, cmdargs, stdout)
	case "top":
		err = topology(logger, cmdargs, stdout)
	case "gro":
		err = coordinates(logger, cmdargs, stdout)
	case "box":
		err = box(logger, cmdargs)
	default:
		usage(stderr, global)
		return 2
	}
	if err != nil {
		if t := chem.Trace(err); t != "" {
			logger.Debug("error trace", "trace", t)
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func script(cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	P, err := cfg.Build(logger)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, P.BashScript())
	return err
}

func runPipeline(cfg *config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	execute := fs.BoolP("execute", "x", false, "Run the commands, overriding dry_run")
	report := fs.StringP("report", "r", "", "Write the YAML run report to this file instead of the standard output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	P, err := cfg.Build(logger)
	if err != nil {
		return err
	}
	if *execute {
		P.SetDryRun(false)
	}
	//the report is written even if a step fails, with the steps that ran.
	_, runerr := P.Run()
	b, err := P.Report().YAML()
	if err != nil {
		return errors.Join(runerr, err)
	}
	if *report != "" {
		err = os.WriteFile(*report, b, 0o644)
	} else {
		_, err = out.Write(b)
	}
	return errors.Join(runerr, err)
}

func topology(logger *slog.Logger, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("top", pflag.ContinueOnError)
	defines := fs.StringSliceP("define", "D", nil, "Symbols defined for #ifdef blocks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("top: no molecule files given")
	}
	R := top.NewReader()
	R.Logger = logger
	R.Defines = *defines
	for _, f := range fs.Args() {
		frags, err := R.ReadFragments(f)
		if err != nil {
			return err
		}
		for _, fr := range frags {
			fmt.Fprintf(out, "%s\t%s\tatoms: %d\tbonds: %d\tmass: %.4f\tcharge: %.4f\n", f, fr.Symbol, fr.Len(), len(fr.Bonds()), fr.Mass(), fr.Charge())
		}
	}
	return nil
}

func coordinates(logger *slog.Logger, args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("gro", pflag.ContinueOnError)
	nframes := fs.IntP("frames", "n", 0, "Number of frames to read (0 for all)")
	symbols := fs.StringSliceP("symbols", "s", nil, "Only read these molecule types")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("gro: exactly one coordinate file expected")
	}
	R := gro.NewReader()
	R.Logger = logger
	F, err := R.Read(fs.Arg(0), *nframes, *symbols...)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "frames: %d\tatoms: %d\n", F.Len(), F.Atoms())
	for i := 0; i < F.Len(); i++ {
		fmt.Fprintf(out, "%d\t%.5f\t%.5f\t%.5f\n", i, F.Dims.At(i, 0), F.Dims.At(i, 1), F.Dims.At(i, 2))
	}
	return nil
}

func box(logger *slog.Logger, args []string) error {
	fs := pflag.NewFlagSet("box", pflag.ContinueOnError)
	output := fs.StringP("output", "o", "box.png", "Plot file")
	title := fs.StringP("title", "t", "Box dimensions", "Plot title")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("box: exactly one coordinate file expected")
	}
	R := gro.NewReader()
	R.Logger = logger
	F, err := R.Read(fs.Arg(0), 0)
	if err != nil {
		return err
	}
	return chemplot.BoxPlot(F.Dims, *title, *output)
}
