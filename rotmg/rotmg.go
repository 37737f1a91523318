// Package rotmg turns small pixel-art sprites into the chunky, outlined
// style used by RotMG sprite assets.
//
// The transform pads the sprite by one transparent pixel on every side,
// scales it up five times with nearest-neighbour sampling, and draws a
// one pixel black outline around everything opaque. Blocks are plain
// *image.NRGBA values so the bytes of each step can be compared exactly.
package rotmg

import (
	"image"

	"github.com/bradfitz/iter"
)

// Scale is the upscale factor applied by RotMGify.
const Scale = 5

var outlineColor = [4]uint8{0, 0, 0, 0xFF}

// OutputSize returns the size of the block RotMGify produces for a w x h
// input.
func OutputSize(w, h int) (int, int) {
	return (w + 2) * Scale, (h + 2) * Scale
}

// RotMGify pads, upscales and outlines src, returning a new block of size
// OutputSize(src.Bounds().Dx(), src.Bounds().Dy()). src is not modified.
func RotMGify(src *image.NRGBA) *image.NRGBA {
	img := Upscale(Pad(src), Scale)
	Outline(img)
	return img
}

// Pad returns a copy of src with a one pixel transparent border.
func Pad(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w+2, h+2))
	for y := 0; y < h; y++ {
		s := src.PixOffset(b.Min.X, b.Min.Y+y)
		d := dst.PixOffset(1, y+1)
		copy(dst.Pix[d:d+w*4], src.Pix[s:s+w*4])
	}
	return dst
}

// Upscale returns src enlarged scale times. Each output pixel (x, y) is a
// verbatim copy of source pixel (x/scale, y/scale).
func Upscale(src *image.NRGBA, scale int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w*scale, h*scale))
	if w == 0 || h == 0 {
		return dst
	}

	row := w * scale * 4
	for y := 0; y < h; y++ {
		first := dst.PixOffset(0, y*scale)
		line := dst.Pix[first : first+row]
		s := src.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			px := src.Pix[s+x*4 : s+x*4+4]
			for i := range iter.N(scale) {
				copy(line[(x*scale+i)*4:], px)
			}
		}
		for i := 1; i < scale; i++ {
			copy(dst.Pix[first+i*dst.Stride:], line)
		}
	}
	return dst
}

// Outline draws a black one pixel outline around every opaque area of img,
// in place.
//
// Pixels are visited once in raster order. Every opaque pixel paints its
// transparent 8-neighbours black. Pixels painted this way are remembered
// and never paint neighbours of their own, so the outline is exactly one
// pixel wide. The result depends on the scan order, which must stay
// row-major and ascending.
func Outline(img *image.NRGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	outlined := make([]bool, w*h)

	alphaAt := func(x, y int) int {
		return img.PixOffset(b.Min.X+x, b.Min.Y+y) + 3
	}
	transparent := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return true
		}
		return img.Pix[alphaAt(x, y)] == 0
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if transparent(x, y) || outlined[y*w+x] {
				continue
			}
			for _, d := range neighbours {
				nx, ny := x+d.X, y+d.Y
				if !transparent(nx, ny) {
					continue
				}
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					// Nothing to paint outside the block.
					continue
				}
				i := alphaAt(nx, ny) - 3
				copy(img.Pix[i:i+4], outlineColor[:])
				outlined[ny*w+nx] = true
			}
		}
	}
}

var neighbours = []image.Point{
	{0, -1},  // top
	{-1, 0},  // left
	{1, 0},   // right
	{0, 1},   // bottom
	{-1, -1}, // top left
	{1, -1},  // top right
	{-1, 1},  // bottom left
	{1, 1},   // bottom right
}
