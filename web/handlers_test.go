package web

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-rotmgify"
	"badc0de.net/pkg/go-rotmgify/ttesting"
)

func newServer(t *testing.T) *httptest.Server {
	r := mux.NewRouter()
	NewHandler(rotmgify.Options{}).RegisterRoutes(r)
	s := httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func sheetPNG(t *testing.T) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), 0x80, 0xFF})
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func post(t *testing.T, url string, body []byte, etag string) *http.Response {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRotmgify(t *testing.T) {
	s := newServer(t)
	resp := post(t, s.URL+"/rotmgify?cell_width=8&cell_height=8&op=g:0,0,2,1", sheetPNG(t), "")
	ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusOK)
	ttesting.AssertEqualString(t, "content type", resp.Header.Get("Content-Type"), "image/png")
	ttesting.AssertEqualString(t, "regions", resp.Header.Get("X-Rotmgify-Regions"), "3")

	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualPoint(t, "size", img.Bounds().Size(), image.Pt(140, 100))

	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("no etag")
	}
	again := post(t, s.URL+"/rotmgify?cell_width=8&cell_height=8&op=g:0,0,2,1", sheetPNG(t), etag)
	ttesting.AssertEqualInt(t, "cached status", again.StatusCode, http.StatusNotModified)
}

func TestRotmgifyDefaultCellSize(t *testing.T) {
	s := newServer(t)
	resp := post(t, s.URL+"/rotmgify", sheetPNG(t), "")
	ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusOK)
	ttesting.AssertEqualString(t, "regions", resp.Header.Get("X-Rotmgify-Regions"), "4")
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualPoint(t, "size", img.Bounds().Size(), image.Pt(100, 100))
}

func TestRotmgifyInfersCellSize(t *testing.T) {
	s := newServer(t)
	// 16 divides both sides, so the sheet is one 16x16 cell.
	resp := post(t, s.URL+"/rotmgify?cell_width=-1&cell_height=-1", sheetPNG(t), "")
	ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusOK)
	ttesting.AssertEqualString(t, "regions", resp.Header.Get("X-Rotmgify-Regions"), "1")
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualPoint(t, "size", img.Bounds().Size(), image.Pt(90, 90))
}

func TestRotmgifyGIF(t *testing.T) {
	s := newServer(t)
	resp := post(t, s.URL+"/rotmgify?format=gif&shadow=1", sheetPNG(t), "")
	ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusOK)
	ttesting.AssertEqualString(t, "content type", resp.Header.Get("Content-Type"), "image/gif")
}

func TestRotmgifyEmptySelection(t *testing.T) {
	s := newServer(t)
	resp := post(t, s.URL+"/rotmgify?no_init=1", sheetPNG(t), "")
	ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusNoContent)
}

func TestRotmgifyBadRequests(t *testing.T) {
	s := newServer(t)
	for _, tc := range []struct {
		name  string
		query string
		body  []byte
	}{
		{"bad op", "?op=nope", sheetPNG(t)},
		{"bad format", "?format=bmp", sheetPNG(t)},
		{"bad cell width", "?cell_width=x", sheetPNG(t)},
		{"zero cell width", "?cell_width=0", sheetPNG(t)},
		{"negative cell height", "?cell_height=-2", sheetPNG(t)},
		{"not an image", "", []byte("hello")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp := post(t, s.URL+"/rotmgify"+tc.query, tc.body, "")
			ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusBadRequest)
		})
	}
}

func TestRotmgifyTooLarge(t *testing.T) {
	h := NewHandler(rotmgify.Options{})
	h.maxSheetBytes = 10
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rotmgify", bytes.NewReader(sheetPNG(t))))
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusRequestEntityTooLarge)
}

func TestRotmgifySheetTooManyPixels(t *testing.T) {
	// Blank sheets compress to almost nothing, so only the header tells
	// how much decoding them would cost.
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewGray(image.Rect(0, 0, 4096, 4096))); err != nil {
		t.Fatal(err)
	}
	if buf.Len() >= DefaultMaxSheetBytes {
		t.Fatalf("blank sheet is %d bytes; want it under the body limit", buf.Len())
	}

	s := newServer(t)
	resp := post(t, s.URL+"/rotmgify", buf.Bytes(), "")
	ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusRequestEntityTooLarge)
}

func TestRotmgifyOutputTooLarge(t *testing.T) {
	// 2048x2048 passes the sheet limit, but 256x256 cells would pack into
	// 12800x12800.
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, image.NewGray(image.Rect(0, 0, 2048, 2048))); err != nil {
		t.Fatal(err)
	}

	s := newServer(t)
	resp := post(t, s.URL+"/rotmgify", buf.Bytes(), "")
	ttesting.AssertEqualInt(t, "status", resp.StatusCode, http.StatusRequestEntityTooLarge)

	// The same sheet with nothing selected is fine.
	empty := post(t, s.URL+"/rotmgify?no_init=1", buf.Bytes(), "")
	ttesting.AssertEqualInt(t, "empty status", empty.StatusCode, http.StatusNoContent)
}

func TestColor(t *testing.T) {
	r := mux.NewRouter()
	NewHandler(rotmgify.Options{}).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colors/1", nil))
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	ttesting.AssertEqualString(t, "body", rec.Body.String(), "hsla(137.508,75%,65%,0.6)\n")
	if got := rec.Header().Get("X-Color-RGBA"); len(got) != 9 || got[7:] != "99" {
		t.Errorf("X-Color-RGBA = %q", got)
	}

	rec2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/colors/1", nil)
	req.Header.Set("If-None-Match", rec.Header().Get("ETag"))
	r.ServeHTTP(rec2, req)
	ttesting.AssertEqualInt(t, "cached status", rec2.Code, http.StatusNotModified)

	rec3 := httptest.NewRecorder()
	r.ServeHTTP(rec3, httptest.NewRequest(http.MethodGet, "/colors/0", nil))
	ttesting.AssertEqualInt(t, "zero status", rec3.Code, http.StatusBadRequest)
}
