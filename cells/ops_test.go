package cells

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-rotmgify/ttesting"
)

func TestParseOp(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Op
	}{
		{"t:3,4", Op{Kind: OpToggle, X: 3, Y: 4, W: 1, H: 1}},
		{"g:0,0,2,1", Op{Kind: OpSelectGrouped, X: 0, Y: 0, W: 2, H: 1}},
		{" u:1, 2, 3, 4 ", Op{Kind: OpSelectUngrouped, X: 1, Y: 2, W: 3, H: 4}},
		{"d:3,1,1,2", Op{Kind: OpSelectGrouped, X: 1, Y: 1, W: 3, H: 2}},
		{"d:1,1,3,1,u", Op{Kind: OpSelectUngrouped, X: 1, Y: 1, W: 3, H: 1}},
		{"d:2,2,2,2", Op{Kind: OpToggle, X: 2, Y: 2, W: 1, H: 1}},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOp(tc.in)
			if err != nil {
				t.Fatalf("ParseOp(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("got %+v; want %+v", got, tc.want)
			}
		})
	}
}

func TestParseOpErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"3,4",
		"x:1,2",
		"t:1",
		"g:1,2,3",
		"g:0,0,0,1",
		"t:-1,2",
		"t:a,b",
		"d:1,1,2,2,x",
	} {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			if _, err := ParseOp(in); errors.Cause(err) != ErrBadOp {
				t.Errorf("got %v; want ErrBadOp", err)
			}
		})
	}
}

func TestOpStringRoundTrip(t *testing.T) {
	for _, o := range []Op{
		{Kind: OpToggle, X: 1, Y: 2, W: 1, H: 1},
		{Kind: OpSelectGrouped, X: 0, Y: 3, W: 2, H: 2},
		{Kind: OpSelectUngrouped, X: 5, Y: 0, W: 1, H: 4},
	} {
		got, err := ParseOp(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOp(%q) = %+v, %v; want %+v", o.String(), got, err, o)
		}
	}
}

func TestApplyOps(t *testing.T) {
	ops, err := ParseOps([]string{"g:0,0,2,1", "t:1,1", "d:0,1,0,1"})
	if err != nil {
		t.Fatal(err)
	}
	g := newGrid(t, 16, 16, 8, 8)
	for _, o := range ops {
		o.Apply(g)
	}
	ttesting.AssertEqualInt(t, "len", g.Len(), 2)
	ttesting.AssertEqualInt(t, "regions", len(Merge(g.Cells())), 1)
}

func TestParseOpsStopsAtError(t *testing.T) {
	if _, err := ParseOps([]string{"t:1,1", "nope"}); errors.Cause(err) != ErrBadOp {
		t.Errorf("got %v; want ErrBadOp", err)
	}
}

func TestNormalizeDrag(t *testing.T) {
	x, y, w, h := NormalizeDrag(4, 1, 2, 3)
	ttesting.AssertEqualInt(t, "x", x, 2)
	ttesting.AssertEqualInt(t, "y", y, 1)
	ttesting.AssertEqualInt(t, "w", w, 3)
	ttesting.AssertEqualInt(t, "h", h, 3)

	_, _, w, h = NormalizeDrag(5, 5, 5, 5)
	ttesting.AssertEqualInt(t, "single w", w, 1)
	ttesting.AssertEqualInt(t, "single h", h, 1)
}

func TestInferCellSize(t *testing.T) {
	for _, tc := range []struct{ w, h, cw, ch int }{
		{128, 64, 64, 64},
		{96, 48, 32, 16},
		{24, 40, 8, 8},
		{10, 0, 8, 8},
	} {
		cw, ch := InferCellSize(tc.w, tc.h)
		if cw != tc.cw || ch != tc.ch {
			t.Errorf("InferCellSize(%d, %d) = %d, %d; want %d, %d", tc.w, tc.h, cw, ch, tc.cw, tc.ch)
		}
	}
}
