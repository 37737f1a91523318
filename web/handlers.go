// Package web exposes the rotmgify pipeline over HTTP.
package web

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-rotmgify"
	"badc0de.net/pkg/go-rotmgify/cells"
	"badc0de.net/pkg/go-rotmgify/compositor"
)

const (
	// DefaultMaxSheetBytes caps the size of an uploaded sheet.
	DefaultMaxSheetBytes = 8 << 20
	// DefaultMaxSheetPixels caps the decoded area of an uploaded sheet.
	DefaultMaxSheetPixels = 2048 * 2048
	// DefaultMaxOutputPixels caps the area of a packed sheet.
	DefaultMaxOutputPixels = 32 << 20

	// defaultCellSize is used when a request names no cell size.
	defaultCellSize = 8
)

// bump if the way we generate output changes
const generation = 1

var errSheetTooLarge = errors.New("sheet too large")

// Handler serves the rendering endpoints. Each request builds its own grid,
// so a Handler is safe for concurrent use.
type Handler struct {
	opts           rotmgify.Options
	maxSheetBytes  int64
	maxSheetPixels int
}

// NewHandler constructs web handler rendering with opts. If opts sets no
// output limit, DefaultMaxOutputPixels applies.
func NewHandler(opts rotmgify.Options) *Handler {
	if opts.MaxOutputPixels <= 0 {
		opts.MaxOutputPixels = DefaultMaxOutputPixels
	}
	return &Handler{
		opts:           opts,
		maxSheetBytes:  DefaultMaxSheetBytes,
		maxSheetPixels: DefaultMaxSheetPixels,
	}
}

type renderParams struct {
	cellW, cellH int
	ops          []cells.Op
	selectAll    bool
	shadow       bool
	mime         string
}

func parseRenderParams(r *http.Request) (*renderParams, error) {
	q := r.URL.Query()
	p := &renderParams{
		cellW:     defaultCellSize,
		cellH:     defaultCellSize,
		selectAll: q.Get("no_init") != "1",
		shadow:    q.Get("shadow") == "1",
	}

	switch q.Get("format") {
	case "", "png":
		p.mime = "image/png"
	case "gif":
		p.mime = "image/gif"
	default:
		return nil, errors.Errorf("unsupported format %q", q.Get("format"))
	}

	for name, dst := range map[string]*int{"cell_width": &p.cellW, "cell_height": &p.cellH} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		// -1 asks for the cell size to be inferred from the sheet.
		n, err := strconv.Atoi(v)
		if err != nil || n < -1 {
			return nil, errors.Errorf("%s not a number of at least -1", name)
		}
		*dst = n
	}

	ops, err := cells.ParseOps(q["op"])
	if err != nil {
		return nil, err
	}
	p.ops = ops
	return p, nil
}

func (h *Handler) readSheet(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxSheetBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading sheet")
	}
	if int64(len(body)) > h.maxSheetBytes {
		return nil, errSheetTooLarge
	}
	return body, nil
}

func (h *Handler) rotmgifyHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.rotmgify", r.URL.Path)
	defer tr.Finish()

	p, err := parseRenderParams(r)
	if err != nil {
		tr.LazyPrintf("bad params: %v", err)
		tr.SetError()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := h.readSheet(r)
	if err != nil {
		tr.LazyPrintf("%v", err)
		tr.SetError()
		if err == errSheetTooLarge {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		} else {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	// Query() re-encodes with sorted keys, so equivalent requests share a tag.
	etag := fmt.Sprintf(`W/"rotmgify:%d:%08x:%08x:%s"`, generation, crc32.ChecksumIEEE(body), crc32.ChecksumIEEE([]byte(r.URL.Query().Encode())), p.mime)
	if r.Header.Get("If-None-Match") == etag {
		tr.LazyPrintf("not modified")
		w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		tr.LazyPrintf("decoding sheet header: %v", err)
		tr.SetError()
		http.Error(w, "could not decode sheet", http.StatusBadRequest)
		return
	}
	if cfg.Width*cfg.Height > h.maxSheetPixels {
		tr.LazyPrintf("sheet %dx%d over %d pixels", cfg.Width, cfg.Height, h.maxSheetPixels)
		tr.SetError()
		http.Error(w, fmt.Sprintf("sheet %dx%d too large", cfg.Width, cfg.Height), http.StatusRequestEntityTooLarge)
		return
	}

	sheet, format, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		tr.LazyPrintf("decoding sheet: %v", err)
		tr.SetError()
		http.Error(w, "could not decode sheet", http.StatusBadRequest)
		return
	}
	sz := sheet.Bounds().Size()
	if p.cellW == -1 || p.cellH == -1 {
		cw, ch := cells.InferCellSize(sz.X, sz.Y)
		if p.cellW == -1 {
			p.cellW = cw
		}
		if p.cellH == -1 {
			p.cellH = ch
		}
	}
	tr.LazyPrintf("%s sheet %dx%d, cells %dx%d, %d ops", format, sz.X, sz.Y, p.cellW, p.cellH, len(p.ops))

	res, _, err := rotmgify.RenderImage(r.Context(), sheet, p.cellW, p.cellH, p.selectAll, p.ops, h.opts)
	if err != nil {
		tr.LazyPrintf("rendering: %v", err)
		tr.SetError()
		switch errors.Cause(err) {
		case cells.ErrInvalidConfig:
			http.Error(w, err.Error(), http.StatusBadRequest)
		case rotmgify.ErrTooLarge:
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		default:
			glog.Errorf("rendering: %v", err)
			http.Error(w, "rendering failed", http.StatusInternalServerError)
		}
		return
	}
	tr.LazyPrintf("%d regions, %dx%d", len(res.Regions), res.Layout.Width, res.Layout.Height)

	if res.Image.Bounds().Empty() {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var out image.Image = res.Image
	if p.shadow {
		out = compositor.Preview(res.Image, res.Layout)
	}

	buf := &bytes.Buffer{}
	if p.mime == "image/gif" {
		err = rotmgify.EncodeGIF(buf, out)
	} else {
		err = rotmgify.EncodePNG(buf, out)
	}
	if err != nil {
		tr.LazyPrintf("encoding: %v", err)
		tr.SetError()
		glog.Errorf("encoding: %v", err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", p.mime)
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.Header().Set("X-Rotmgify-Regions", strconv.Itoa(len(res.Regions)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) colorHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idx, err := strconv.Atoi(vars["idx"])
	if err != nil {
		http.Error(w, "idx not a number", http.StatusBadRequest)
		return
	}
	if idx < 1 {
		http.Error(w, "group ids start at 1", http.StatusBadRequest)
		return
	}

	etag := fmt.Sprintf(`W/"color:%d:%d"`, generation, idx)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	c := cells.ColorForGroup(idx)
	n := c.NRGBA()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.Header().Set("X-Color-RGBA", fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A))
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, c.String())
}

// RegisterRoutes adds the handler's routes to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/rotmgify", h.rotmgifyHandler).Methods(http.MethodPost)
	r.HandleFunc("/colors/{idx:[0-9]+}", h.colorHandler).Methods(http.MethodGet, http.MethodHead)
}
