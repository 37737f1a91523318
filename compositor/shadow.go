package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-rotmgify/layout"
)

// shadowSoftness is how much the silhouette is shrunk before being scaled
// back up; the bilinear round trip is what blurs it.
const shadowSoftness = 3

// Preview renders the packed image the way the editor shows it: every
// sprite drawn over a soft black shadow of itself.
//
// The result is for display only. Shadows bleed over transparent pixels,
// so the bytes differ from packed.
func Preview(packed *image.NRGBA, l *layout.Layout) *image.RGBA {
	out := image.NewRGBA(packed.Bounds())
	for _, p := range l.Placements {
		r := p.Rect().Intersect(packed.Bounds())
		if r.Empty() {
			continue
		}
		sprite := packed.SubImage(r)
		draw.Draw(out, r, softShadow(sprite), image.Point{}, draw.Over)
		draw.Draw(out, r, sprite, r.Min, draw.Over)
	}
	return out
}

// softShadow returns a blurred black silhouette of sprite, with bounds at
// the origin and the same size.
func softShadow(sprite image.Image) image.Image {
	b := sprite.Bounds()
	sil := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := sprite.At(x, y).RGBA(); a > 0 {
				sil.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{A: uint8(a >> 8)})
			}
		}
	}

	w, h := uint(b.Dx()), uint(b.Dy())
	small := resize.Resize(max(1, w/shadowSoftness), max(1, h/shadowSoftness), sil, resize.Bilinear)
	return resize.Resize(w, h, small, resize.Bilinear)
}
