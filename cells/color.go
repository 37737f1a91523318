package cells

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle steps hues so that consecutive groups land far apart on the
// colour wheel.
const goldenAngle = 137.508

// GroupColor is a translucent HSL colour used to tell groups apart.
//
// Saturation and Lightness are percentages; Alpha is in [0,1].
type GroupColor struct {
	Hue        float64
	Saturation float64
	Lightness  float64
	Alpha      float64
}

// ColorForGroup returns the colour for group index i.
func ColorForGroup(i int) GroupColor {
	return GroupColor{
		Hue:        math.Mod(float64(i)*goldenAngle, 360),
		Saturation: float64(65 + (i%3)*10),
		Lightness:  float64(50 + (i%2)*15),
		Alpha:      0.6,
	}
}

// IsZero reports whether c is the zero value, which ungrouped cells carry.
func (c GroupColor) IsZero() bool {
	return c == GroupColor{}
}

// String formats the colour as a CSS hsla() value.
func (c GroupColor) String() string {
	return fmt.Sprintf("hsla(%g,%g%%,%g%%,%g)", c.Hue, c.Saturation, c.Lightness, c.Alpha)
}

// NRGBA converts the colour to 8-bit non-premultiplied RGBA.
func (c GroupColor) NRGBA() color.NRGBA {
	r, g, b := colorful.Hsl(c.Hue, c.Saturation/100, c.Lightness/100).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(c.Alpha * 255))}
}

// RGBA implements color.Color.
func (c GroupColor) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}
