//go:build go1.13 && !windows
// +build go1.13,!windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

func isTermItermWez() bool {
	return rasterm.IsTermItermWez()
}

// printRasTerm draws an image using the RasTerm library.
//
// This should enable drawing in Kitty terminal. Terminals without image
// support get nothing.
func printRasTerm(w io.Writer, i image.Image) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(w, i)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(w, i)
	default:
		if capable, cerr := rasterm.IsSixelCapable(); !capable || cerr != nil {
			return nil
		}
		// Sixel wants a palette; 64 colours is plenty for pixel art.
		palettedImage := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, i.Bounds(), i, image.Point{})
		err = rasterm.Settings{}.SixelWriteImage(w, palettedImage)
	}
	if err != nil {
		return errors.Wrap(err, "rasterm")
	}
	fmt.Fprintf(w, "\n")
	return nil
}
