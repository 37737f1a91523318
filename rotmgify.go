// Package rotmgify renders a selection over a sprite sheet into a packed
// sheet of RotMG-style sprites.
//
// The selection lives in a cells.Grid. Render merges grouped cells into
// regions, lays the regions out with the layout package, transforms each
// region with rotmg.RotMGify and composites the results into one image.
// Every call starts from scratch, so rendering the same grid and sheet
// twice gives byte-identical results.
package rotmgify

import (
	"context"
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-rotmgify/cells"
	"badc0de.net/pkg/go-rotmgify/compositor"
	"badc0de.net/pkg/go-rotmgify/layout"
)

// ErrTooLarge is returned by Render when the packed image would exceed
// Options.MaxOutputPixels.
var ErrTooLarge = errors.New("rotmgify: output too large")

// Options configure Render.
type Options struct {
	// Parallelism is passed on to compositor.Options.
	Parallelism int
	// MaxOutputPixels caps the packed image area. 0 means no limit.
	MaxOutputPixels int
}

// Result is the output of Render.
type Result struct {
	// Image is the packed sheet. It is 0x0 for an empty selection.
	Image *image.NRGBA
	// Layout says where each region went.
	Layout *layout.Layout
	// Regions are the merged regions, in layout order.
	Regions []cells.Region
}

// Render runs the full pipeline for the selection in g over src.
func Render(ctx context.Context, g *cells.Grid, src compositor.Source, opts Options) (*Result, error) {
	if !g.Initialized() {
		return nil, errors.Wrap(cells.ErrInvalidConfig, "rendering uninitialized grid")
	}
	cellW, cellH := g.CellSize()

	regions := cells.Merge(g.Cells())
	l := layout.Pack(regions, cellW, cellH)
	glog.V(2).Infof("rotmgify: %d cells, %d regions, %dx%d output", g.Len(), len(regions), l.Width, l.Height)
	if opts.MaxOutputPixels > 0 && l.Width*l.Height > opts.MaxOutputPixels {
		return nil, errors.Wrapf(ErrTooLarge, "%dx%d output, limit is %d pixels", l.Width, l.Height, opts.MaxOutputPixels)
	}

	img, err := compositor.Composite(ctx, src, l, cellW, cellH, compositor.Options{Parallelism: opts.Parallelism})
	if err != nil {
		return nil, errors.Wrap(err, "compositing")
	}
	return &Result{Image: img, Layout: l, Regions: regions}, nil
}

// RenderImage is a convenience wrapper: it lays a grid of cellW x cellH
// cells over sheet, applies ops in order and renders the result.
//
// With selectAll the grid starts with every cell selected, as a freshly
// loaded sheet does in the editor; otherwise it starts empty.
func RenderImage(ctx context.Context, sheet image.Image, cellW, cellH int, selectAll bool, ops []cells.Op, opts Options) (*Result, *cells.Grid, error) {
	b := sheet.Bounds()
	g := cells.NewGrid()
	if err := g.Initialize(b.Dx(), b.Dy(), cellW, cellH); err != nil {
		return nil, nil, err
	}
	if !selectAll {
		g.Clear()
	}
	for _, o := range ops {
		o.Apply(g)
	}

	res, err := Render(ctx, g, compositor.NewImageSource(sheet), opts)
	if err != nil {
		return nil, nil, err
	}
	return res, g, nil
}
