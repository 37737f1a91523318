package main

import (
	"flag"
	"image"
	"os"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-rotmgify/imageprint"
)

var (
	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	col      = flag.Bool("col", true, "whether to use color at all")
	iterm    = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm  = flag.Bool("rasterm", false, "whether to print with rasterm (kitty, iterm or sixel) instead of 24 bit")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", true, "whether to shrink the image to fit the terminal")
)

func printImage(img image.Image) error {
	if *downsize {
		termSize, err := GetTermSize()
		if err == nil {
			if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (*rasterm || *iterm) {
				// Prefer printing out in native size if there's a chance we print out an image rather than pixels.
				img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.NearestNeighbor)
			} else {
				// Each pixel takes two columns.
				img = resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.NearestNeighbor)
			}
		}
	}

	p := &imageprint.Printer{W: os.Stdout, Blanks: *blanks, Name: "rotmgify.png"}
	switch {
	case *rasterm:
		p.Mode = imageprint.RasTerm
	case !*col:
		p.Mode = imageprint.NoColor
	case *iterm:
		p.Mode = imageprint.ITerm
	case *col256:
		p.Mode = imageprint.Color256
	default:
		p.Mode = imageprint.TrueColor
	}
	return p.Print(img)
}
