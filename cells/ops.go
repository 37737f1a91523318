package cells

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadOp is returned by ParseOp for malformed operation strings.
var ErrBadOp = errors.New("cells: malformed selection operation")

// OpKind says what an Op does to a Grid.
type OpKind int

const (
	OpToggle OpKind = iota
	OpSelectGrouped
	OpSelectUngrouped
)

func (k OpKind) String() string {
	switch k {
	case OpToggle:
		return "t"
	case OpSelectGrouped:
		return "g"
	case OpSelectUngrouped:
		return "u"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one selection event, as produced by a click or a drag in an editor.
type Op struct {
	Kind       OpKind
	X, Y, W, H int
}

// Apply performs the operation on g.
func (o Op) Apply(g *Grid) {
	switch o.Kind {
	case OpToggle:
		g.Toggle(o.X, o.Y)
	case OpSelectGrouped:
		g.SelectRegion(o.X, o.Y, o.W, o.H, true)
	case OpSelectUngrouped:
		g.SelectRegion(o.X, o.Y, o.W, o.H, false)
	}
}

// String returns the operation in the form accepted by ParseOp.
func (o Op) String() string {
	if o.Kind == OpToggle {
		return fmt.Sprintf("t:%d,%d", o.X, o.Y)
	}
	return fmt.Sprintf("%s:%d,%d,%d,%d", o.Kind, o.X, o.Y, o.W, o.H)
}

// ParseOp parses a selection operation:
//
//	t:x,y              toggle the cell at x,y
//	g:x,y,w,h          select a rectangle as a new group
//	u:x,y,w,h          select a rectangle as ungrouped cells
//	d:x0,y0,x1,y1[,u]  drag from cell x0,y0 to x1,y1; grouped unless ",u"
//
// A drag that starts and ends on the same cell is a toggle, as in the
// editor.
func ParseOp(s string) (Op, error) {
	kind, args, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Op{}, errors.Wrapf(ErrBadOp, "%q: missing kind", s)
	}
	fields := strings.Split(args, ",")

	want := map[string]int{"t": 2, "g": 4, "u": 4, "d": 4}[kind]
	if want == 0 {
		return Op{}, errors.Wrapf(ErrBadOp, "%q: unknown kind %q", s, kind)
	}

	ungroupedDrag := false
	if kind == "d" && len(fields) == 5 {
		if fields[4] != "u" {
			return Op{}, errors.Wrapf(ErrBadOp, "%q: unknown drag suffix %q", s, fields[4])
		}
		fields = fields[:4]
		ungroupedDrag = true
	}
	if len(fields) != want {
		return Op{}, errors.Wrapf(ErrBadOp, "%q: want %d numbers, got %d", s, want, len(fields))
	}

	n := make([]int, want)
	for i := range n {
		v, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil {
			return Op{}, errors.Wrapf(ErrBadOp, "%q: %v", s, err)
		}
		if v < 0 {
			return Op{}, errors.Wrapf(ErrBadOp, "%q: negative coordinate %d", s, v)
		}
		n[i] = v
	}

	switch kind {
	case "t":
		return Op{Kind: OpToggle, X: n[0], Y: n[1], W: 1, H: 1}, nil
	case "g", "u":
		if n[2] < 1 || n[3] < 1 {
			return Op{}, errors.Wrapf(ErrBadOp, "%q: empty rectangle", s)
		}
		k := OpSelectGrouped
		if kind == "u" {
			k = OpSelectUngrouped
		}
		return Op{Kind: k, X: n[0], Y: n[1], W: n[2], H: n[3]}, nil
	}

	// drag
	if n[0] == n[2] && n[1] == n[3] {
		return Op{Kind: OpToggle, X: n[0], Y: n[1], W: 1, H: 1}, nil
	}
	x, y, w, h := NormalizeDrag(n[0], n[1], n[2], n[3])
	k := OpSelectGrouped
	if ungroupedDrag {
		k = OpSelectUngrouped
	}
	return Op{Kind: k, X: x, Y: y, W: w, H: h}, nil
}

// ParseOps parses each of ss with ParseOp, stopping at the first error.
func ParseOps(ss []string) ([]Op, error) {
	ops := make([]Op, 0, len(ss))
	for _, s := range ss {
		o, err := ParseOp(s)
		if err != nil {
			return nil, err
		}
		ops = append(ops, o)
	}
	return ops, nil
}

// NormalizeDrag converts a drag between the pressed cell (x0, y0) and the
// released cell (x1, y1) into a rectangle. Width and height are at least 1.
func NormalizeDrag(x0, y0, x1, y1 int) (x, y, w, h int) {
	x, y = min(x0, x1), min(y0, y1)
	return x, y, max(x0, x1) - x + 1, max(y0, y1) - y + 1
}

// candidateCellSizes are tried largest first by InferCellSize.
var candidateCellSizes = []int{64, 32, 16, 8}

// InferCellSize guesses a cell size for a sheet: per axis, the largest of
// 64, 32, 16 and 8 that divides the dimension, or 8 if none does.
func InferCellSize(imageW, imageH int) (cellW, cellH int) {
	return inferAxis(imageW), inferAxis(imageH)
}

func inferAxis(n int) int {
	if n > 0 {
		for _, s := range candidateCellSizes {
			if n%s == 0 {
				return s
			}
		}
	}
	return 8
}
