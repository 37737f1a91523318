package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"badc0de.net/pkg/go-rotmgify/cells"
)

var (
	ungroupedFill = color.NRGBA{0, 0, 0xFF, 0x80}
	cellBorder    = color.NRGBA{0, 0, 0, 0x80}
)

// SelectionOverlay draws the sheet with the selection on top: every cell is
// filled with its group colour, or translucent blue when ungrouped, and
// framed with a translucent black border.
func SelectionOverlay(sheet image.Image, cs []cells.Cell, cellW, cellH int) *image.RGBA {
	b := sheet.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), sheet, b.Min, draw.Src)

	for _, c := range cs {
		r := image.Rect(c.X*cellW, c.Y*cellH, (c.X+c.W)*cellW, (c.Y+c.H)*cellH)
		var fill color.Color = ungroupedFill
		if c.Grouped() {
			fill = c.Color
		}
		draw.Draw(out, r, image.NewUniform(fill), image.Point{}, draw.Over)
		frame(out, r, cellBorder)
	}
	return out
}

// frame draws a one pixel border just inside r.
func frame(dst draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	u := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1),
		image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1),
	}
	for _, e := range edges {
		draw.Draw(dst, e, u, image.Point{}, draw.Over)
	}
}
