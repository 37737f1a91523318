package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-rotmgify"
	"badc0de.net/pkg/go-rotmgify/cells"
	"badc0de.net/pkg/go-rotmgify/compositor"
)

var (
	inPath      = flag.String("in", "", "sprite sheet to read (png, gif or jpeg)")
	outPath     = flag.String("out", "", "where to write the packed sheet; .gif writes a gif, anything else a png")
	cellWidth   = flag.Int("cell_width", 8, "cell width in pixels; -1 to infer from the sheet")
	cellHeight  = flag.Int("cell_height", 8, "cell height in pixels; -1 to infer from the sheet")
	noInit      = flag.Bool("no_init", false, "start from an empty selection instead of selecting every cell")
	shadow      = flag.Bool("shadow", false, "write the preview with drop shadows instead of the raw sheet")
	overlayPath = flag.String("overlay", "", "if set, write the sheet with the selection drawn over it here")
	dataURL     = flag.Bool("dataurl", false, "print the packed sheet as a data URL")
	printOut    = flag.Bool("print", false, "print the packed sheet on the terminal")
	parallelism = flag.Int("parallelism", 1, "regions transformed at once; negative for one per CPU")
	banner      = flag.Bool("banner", false, "print a banner first")

	ops opList
)

func init() {
	flag.Var(&ops, "op", "selection operation, repeatable: t:x,y toggles, g:x,y,w,h and u:x,y,w,h select grouped or ungrouped, d:x0,y0,x1,y1[,u] replays a drag")
}

// opList collects repeated -op flags.
type opList []cells.Op

func (l *opList) String() string {
	if l == nil {
		return ""
	}
	s := make([]string, len(*l))
	for i, o := range *l {
		s[i] = o.String()
	}
	return strings.Join(s, " ")
}

func (l *opList) Set(v string) error {
	o, err := cells.ParseOp(v)
	if err != nil {
		return err
	}
	*l = append(*l, o)
	return nil
}

func loadSheet(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sheet")
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "decoding sheet")
	}
	glog.V(2).Infof("loaded %s sheet %v", format, img.Bounds())
	return img, nil
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		err = rotmgify.EncodeGIF(f, img)
	} else {
		err = rotmgify.EncodePNG(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = errors.Wrap(cerr, "closing output")
	}
	return err
}

func run(ctx context.Context) error {
	if *inPath == "" {
		return errors.New("-in is required")
	}
	sheet, err := loadSheet(*inPath)
	if err != nil {
		return err
	}

	cw, ch := *cellWidth, *cellHeight
	if cw == -1 || ch == -1 {
		iw, ih := cells.InferCellSize(sheet.Bounds().Dx(), sheet.Bounds().Dy())
		if cw == -1 {
			cw = iw
		}
		if ch == -1 {
			ch = ih
		}
		glog.Infof("using %dx%d cells", cw, ch)
	}

	res, g, err := rotmgify.RenderImage(ctx, sheet, cw, ch, !*noInit, ops, rotmgify.Options{Parallelism: *parallelism})
	if err != nil {
		return err
	}
	glog.Infof("%d cells, %d regions, %dx%d output", g.Len(), len(res.Regions), res.Layout.Width, res.Layout.Height)

	if *overlayPath != "" {
		if err := writeImage(*overlayPath, compositor.SelectionOverlay(sheet, g.Cells(), cw, ch)); err != nil {
			return errors.Wrap(err, "writing overlay")
		}
	}

	if res.Image.Bounds().Empty() {
		glog.Warning("nothing selected; no output written")
		return nil
	}

	var out image.Image = res.Image
	if *shadow {
		out = compositor.Preview(res.Image, res.Layout)
	}
	if *outPath != "" {
		if err := writeImage(*outPath, out); err != nil {
			return err
		}
	}
	if *dataURL {
		u, err := rotmgify.DataURL(out)
		if err != nil {
			return err
		}
		fmt.Println(u)
	}
	if *printOut {
		return printImage(out)
	}
	return nil
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *banner {
		figure.NewFigure("rotmgify", "", true).Print()
		fmt.Println()
	}

	if err := run(context.Background()); err != nil {
		glog.Errorf("rotmgify: %v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}
