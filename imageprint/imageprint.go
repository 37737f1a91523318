// Package imageprint prints images on terminal. UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

// Mode selects how a Printer draws pixels.
type Mode int

const (
	// TrueColor changes the background with 24bit escape sequences.
	TrueColor Mode = iota
	// Color256 uses the xterm 256 colour palette.
	Color256
	// NoColor prints ascii art only. Only makes sense with Blanks unset.
	NoColor
	// ITerm sends a PNG using iTerm2's inline image escape sequence.
	//
	// https://www.iterm2.com/documentation-images.html
	ITerm
	// RasTerm lets the rasterm library pick kitty, iTerm or sixel output.
	RasTerm
)

// Printer writes images to a terminal.
type Printer struct {
	W    io.Writer
	Mode Mode
	// Blanks prints coloured blanks instead of some bad ascii art.
	Blanks bool
	// Name is reported to iTerm as the file name.
	Name string
}

// Print draws img. Pixel modes print two characters per pixel so that the
// result is roughly square.
func (p *Printer) Print(img image.Image) error {
	switch p.Mode {
	case ITerm:
		if isTermItermWez() {
			return p.printITerm(img)
		}
	case RasTerm:
		return printRasTerm(p.W, img)
	}

	b := img.Bounds()
	var buf bytes.Buffer
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.shade(&buf, img.At(x, y))
		}
		if p.Mode != NoColor {
			buf.WriteString("\x1b[0m")
		}
		buf.WriteString("\n")
	}
	_, err := p.W.Write(buf.Bytes())
	return errors.Wrap(err, "printing image")
}

func (p *Printer) shade(w *bytes.Buffer, col ic.Color) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if p.Mode == NoColor {
			w.WriteString("  ")
		} else {
			w.WriteString("\x1b[0m  ")
		}
		return
	}

	glyph := "  "
	if !p.Blanks {
		switch a := ((cR + cG + cB) / 3) >> 8; {
		case a < 32:
			glyph = ".."
		case a < 64:
			glyph = "--"
		case a < 128:
			glyph = "=="
		default:
			glyph = "##"
		}
	}

	r, g, b := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)
	switch p.Mode {
	case NoColor:
		w.WriteString(glyph)
	case Color256:
		w.WriteString(color.RGB(r, g, b, true).Sprintf("%s", glyph))
	default:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, glyph)
	}
}

func (p *Printer) printITerm(img image.Image) error {
	name := p.Name
	if name == "" {
		name = "image.png"
	}
	b := &bytes.Buffer{}
	enc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(enc, img); err != nil {
		return errors.Wrap(err, "encoding png for iterm")
	}
	enc.Close()
	_, err := fmt.Fprintf(p.W, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n",
		base64.StdEncoding.EncodeToString([]byte(name)), b.Len(), img.Bounds().Dx(), img.Bounds().Dy(), b.String())
	return errors.Wrap(err, "printing image")
}
