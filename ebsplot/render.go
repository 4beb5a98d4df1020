/*
 * render.go, part of goProcar.
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

package ebsplot

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	procar "github.com/rmera/goprocar"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

//fraction of the figure width taken by the colorbar.
const colorbarFraction = 0.12

var formats = map[string]bool{"png": true, "svg": true, "pdf": true, "eps": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true}

//formatOf returns the image format for a file name.
func formatOf(name string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !formats[ext] {
		return "", procar.NewFileError(ErrOption, name, "unsupported image format "+ext, "formatOf")
	}
	return ext, nil
}

func (E *EBSPlot) canvas(format string) (vg.CanvasWriterTo, error) {
	size := E.Config.FigureSize
	w, h := vg.Length(size[0])*vg.Inch, vg.Length(size[1])*vg.Inch
	dpi := int(E.Config.DPI)
	if dpi > 0 {
		switch format {
		case "png":
			return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}, nil
		case "jpg", "jpeg":
			return vgimg.JpegCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}, nil
		case "tif", "tiff":
			return vgimg.TiffCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))}, nil
		}
	}
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, procar.NewError(ErrOption, err.Error(), "canvas")
	}
	return c, nil
}

//colorbar returns a plot with the colorbar of the last colormap used, or
//nil if none was used or the configuration disables it.
func (E *EBSPlot) colorbar() *plot.Plot {
	if E.cmap == nil || !E.Config.Colorbar {
		return nil
	}
	cb := plot.New()
	cb.HideX()
	cb.Add(&plotter.ColorBar{ColorMap: E.cmap, Vertical: true, Colors: 128})
	return cb
}

//Render draws the figure in the given format ("png", "svg", "pdf", "eps",
//"jpg" or "tif") and writes it to w.
func (E *EBSPlot) Render(w io.Writer, format string) error {
	cw, err := E.canvas(format)
	if err != nil {
		return err
	}
	dc := draw.New(cw)
	if cb := E.colorbar(); cb != nil {
		width := dc.Max.X - dc.Min.X
		cbw := vg.Length(colorbarFraction) * width
		E.Plot.Draw(draw.Crop(dc, 0, 0, -cbw, 0))
		cb.Draw(draw.Crop(dc, width-cbw, 0, 0, 0))
	} else {
		E.Plot.Draw(dc)
	}
	if _, err := cw.WriteTo(w); err != nil {
		return procar.NewError(ErrOption, "can't write figure: "+err.Error(), "Render")
	}
	return nil
}

//Save writes the figure to name, in the format given by its extension.
//The file is only replaced once the figure is completely written.
func (E *EBSPlot) Save(name string) error {
	format, err := formatOf(name)
	if err != nil {
		return err
	}
	f, err := procar.CreateFile(name)
	if err != nil {
		return err
	}
	if err := E.Render(f, format); err != nil {
		f.Abort()
		return err
	}
	if err := f.Close(); err != nil {
		return procar.NewFileError(err, name, err.Error(), "Save")
	}
	E.log.Info().Str("file", name).Msg("figure saved")
	return nil
}

//Show renders the figure to a temporary PNG file and opens it with the viewer
//in the configuration. It does not wait for the viewer to exit. The file
//belongs to the viewer and is not removed.
func (E *EBSPlot) Show() error {
	if E.Config.Viewer == "" {
		return procar.NewError(ErrOption, "no viewer configured", "Show")
	}
	f, err := os.CreateTemp("", "goprocar-*.png")
	if err != nil {
		return procar.NewError(err, err.Error(), "Show")
	}
	if err := E.Render(f, "png"); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		return procar.NewError(err, err.Error(), "Show")
	}
	args := strings.Fields(E.Config.Viewer)
	command := exec.Command(args[0], append(args[1:], f.Name())...)
	if err := command.Start(); err != nil {
		return procar.NewError(err, "can't run viewer: "+err.Error(), "Show")
	}
	go command.Wait()
	E.log.Debug().Str("viewer", args[0]).Str("file", f.Name()).Msg("figure shown")
	return nil
}
