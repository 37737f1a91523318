package rotmgify

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
)

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(png.Encode(w, img), "encoding png")
}

// EncodeGIF writes img as a single frame GIF.
//
// The palette is computed by median cut over the opaque pixels and index 0
// is reserved for full transparency, so the transparent padding stays
// transparent.
func EncodeGIF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return errors.New("encoding gif: empty image")
	}

	pal := color.Palette{color.Transparent}
	if opaque := opaquePixels(img); opaque != nil {
		q := quantize.MedianCutQuantizer{}
		pal = append(pal, q.Quantize(make(color.Palette, 0, 255), opaque)...)
	}

	dst := image.NewPaletted(b, pal)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			if _, _, _, a := c.RGBA(); a == 0 {
				dst.SetColorIndex(x, y, 0)
				continue
			}
			// Only opaque entries are candidates.
			dst.SetColorIndex(x, y, uint8(1+pal[1:].Index(c)))
		}
	}
	return errors.Wrap(gif.Encode(w, dst, nil), "encoding gif")
}

// opaquePixels returns the non-transparent pixels of img as a one pixel
// tall strip, or nil if there are none.
func opaquePixels(img image.Image) image.Image {
	b := img.Bounds()
	var px []color.NRGBA
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A != 0 {
				px = append(px, c)
			}
		}
	}
	if len(px) == 0 {
		return nil
	}
	strip := image.NewNRGBA(image.Rect(0, 0, len(px), 1))
	for i, c := range px {
		strip.SetNRGBA(i, 0, c)
	}
	return strip
}

// DataURL returns img as a PNG data URL, suitable for an <img> src or a
// download link.
func DataURL(img image.Image) (string, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return "", errors.Wrap(err, "encoding png")
	}
	b, err := dataurl.New(buf.Bytes(), "image/png").MarshalText()
	if err != nil {
		return "", errors.Wrap(err, "encoding data url")
	}
	return string(b), nil
}
