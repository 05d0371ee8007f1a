/*
 * box.go, part of gmxpipe.
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

// Package chemplot draws plots of simulation data.
package chemplot

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// BoxPlot saves, to plotname, a plot of the x, y and z box lengths of each frame in
// dims, a frames x 3 matrix. The format depends on the extension of plotname
// (png, svg, pdf...). If it has none, png is used.
func BoxPlot(dims *mat.Dense, title, plotname string) error {
	if dims == nil || dims.IsEmpty() {
		return fmt.Errorf("BoxPlot: Given nil data")
	}
	r, c := dims.Dims()
	if c != 3 {
		return fmt.Errorf("BoxPlot: box matrix must have 3 columns, has %d", c)
	}
	p := plot.New()
	p.Title.Padding = vg.Millimeters(3)
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Length (nm)"
	p.Add(plotter.NewGrid())
	lines := make([]any, 0, 6)
	for j, axis := range []string{"x", "y", "z"} {
		pts := make(plotter.XYs, r)
		for i := range pts {
			pts[i].X = float64(i)
			pts[i].Y = dims.At(i, j)
		}
		lines = append(lines, axis, pts)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return fmt.Errorf("BoxPlot: %w", err)
	}
	if filepath.Ext(plotname) == "" {
		plotname += ".png"
	}
	if err := p.Save(5*vg.Inch, 4*vg.Inch, plotname); err != nil {
		return fmt.Errorf("BoxPlot: can't save %s: %w", plotname, err)
	}
	return nil
}
