// Package ttesting contains assertion helpers shared by the tests in this
// module.
package ttesting

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertEqualPoint(t *testing.T, name string, got, want image.Point) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %v; want %v", got, want)
		}
	})
}

func AssertEqualNRGBA(t *testing.T, name string, got, want color.NRGBA) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %v; want %v", got, want)
		}
	})
}

// AssertSamePixels fails unless both images have the same bounds and the
// same bytes.
func AssertSamePixels(t *testing.T, name string, got, want *image.NRGBA) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got.Bounds() != want.Bounds() {
			t.Fatalf("bounds: got %v; want %v", got.Bounds(), want.Bounds())
		}
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("pixels differ")
		}
	})
}
