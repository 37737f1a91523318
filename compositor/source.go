package compositor

import (
	"image"
	"image/draw"
)

// Source supplies raw sheet pixels to the compositor.
//
// Crop returns a block of exactly r.Size(), with Min at (0, 0). Parts of r
// that fall outside the sheet are transparent. Composite may call Crop from
// several goroutines at once.
type Source interface {
	Crop(r image.Rectangle) *image.NRGBA
}

// ImageSource is a Source backed by a decoded image.
type ImageSource struct {
	img image.Image
}

// NewImageSource wraps img.
func NewImageSource(img image.Image) *ImageSource {
	return &ImageSource{img: img}
}

// Bounds returns the bounds of the underlying sheet.
func (s *ImageSource) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// Crop implements Source. Coordinates are relative to the sheet's top left
// corner, whatever the underlying image's origin.
func (s *ImageSource) Crop(r image.Rectangle) *image.NRGBA {
	r = r.Canon()
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))

	b := s.img.Bounds()
	want := r.Add(b.Min)
	have := want.Intersect(b)
	if have.Empty() {
		return dst
	}
	at := have.Min.Sub(want.Min)

	if src, ok := s.img.(*image.NRGBA); ok {
		n := have.Dx() * 4
		for y := 0; y < have.Dy(); y++ {
			so := src.PixOffset(have.Min.X, have.Min.Y+y)
			do := dst.PixOffset(at.X, at.Y+y)
			copy(dst.Pix[do:do+n], src.Pix[so:so+n])
		}
		return dst
	}

	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(have.Size())}, s.img, have.Min, draw.Src)
	return dst
}
