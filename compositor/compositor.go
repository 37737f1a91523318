// Package compositor paints transformed sprites into the packed output
// image.
//
// Composite crops every placed region from a Source, runs it through
// rotmg.RotMGify and copies the result to the placement's offset. The
// copy is a plain byte copy: placements never overlap, so there is nothing
// to blend. Preview and SelectionOverlay produce presentation images on
// top of that and are not needed to get the packed bytes.
package compositor

import (
	"context"
	"image"
	"runtime"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-rotmgify/layout"
	"badc0de.net/pkg/go-rotmgify/rotmg"
)

// Options tune Composite.
type Options struct {
	// Parallelism is the number of regions transformed at once. 0 and 1
	// transform sequentially; a negative value uses one worker per CPU.
	Parallelism int
}

func (o Options) workers() int {
	switch {
	case o.Parallelism < 0:
		return runtime.NumCPU()
	case o.Parallelism == 0:
		return 1
	default:
		return o.Parallelism
	}
}

// Composite renders every placement of l into a new transparent image of
// l's size. Regions are cropped from src in cellW x cellH cell units.
//
// The output does not depend on opts.Parallelism.
func Composite(ctx context.Context, src Source, l *layout.Layout, cellW, cellH int, opts Options) (*image.NRGBA, error) {
	out := image.NewNRGBA(l.Bounds())
	blocks := make([]*image.NRGBA, len(l.Placements))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, p := range l.Placements {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			block := rotmg.RotMGify(src.Crop(p.Region.PixelRect(cellW, cellH)))
			if block.Bounds().Size() != p.Size {
				return errors.Errorf("region %+v: transformed to %v, layout expects %v", p.Region, block.Bounds().Size(), p.Size)
			}
			blocks[i] = block
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "transforming regions")
	}

	for i, p := range l.Placements {
		Blit(out, blocks[i], p.Offset)
	}
	glog.V(2).Infof("compositor: %d regions into %dx%d", len(l.Placements), l.Width, l.Height)
	return out, nil
}

// Blit copies src into dst with src's top left corner at at, byte for
// byte. Parts falling outside dst are dropped.
func Blit(dst, src *image.NRGBA, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	from := sb.Min.Add(r.Min.Sub(at))
	n := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		so := src.PixOffset(from.X, from.Y+y)
		do := dst.PixOffset(r.Min.X, r.Min.Y+y)
		copy(dst.Pix[do:do+n], src.Pix[so:so+n])
	}
}
