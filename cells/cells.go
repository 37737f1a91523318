// Package cells implements the selection model laid over a sprite sheet.
//
// A sheet is divided into equally sized cells. The Grid keeps the set of
// currently selected unit cells; cells selected together can share a group
// id, in which case Merge collapses them into one multi-cell Region.
package cells

import (
	"image"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig is returned when the cell size or the image
	// dimensions are not positive.
	ErrInvalidConfig = errors.New("cells: invalid grid configuration")
)

// Cell is a selected grid square, in cell units.
//
// Cells stored in a Grid are always 1x1; larger extents only appear on
// regions derived by Merge.
type Cell struct {
	X, Y int
	W, H int

	// GroupID is zero for ungrouped cells.
	GroupID int
	Color   GroupColor
}

// Grouped reports whether the cell belongs to a group.
func (c Cell) Grouped() bool {
	return c.GroupID > 0
}

// Rect returns the cell bounds in cell units.
func (c Cell) Rect() image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+c.W, c.Y+c.H)
}

// Grid is the live selection over one sheet. The zero value is an
// uninitialized grid with no cells.
type Grid struct {
	cellW, cellH int
	cols, rows   int

	cells []Cell

	// lastGroup is the most recently issued group id.
	lastGroup int
}

// NewGrid returns an empty, uninitialized grid.
func NewGrid() *Grid {
	return &Grid{}
}

// Initialize sets the cell size and replaces the selection with every
// whole cell that fits into an imageW x imageH sheet, row by row.
//
// On error the grid is left untouched. Group ids keep counting across
// initializations.
func (g *Grid) Initialize(imageW, imageH, cellW, cellH int) error {
	if cellW < 1 || cellH < 1 {
		return errors.Wrapf(ErrInvalidConfig, "cell size %dx%d", cellW, cellH)
	}
	if imageW < 1 || imageH < 1 {
		return errors.Wrapf(ErrInvalidConfig, "image size %dx%d", imageW, imageH)
	}

	g.cellW, g.cellH = cellW, cellH
	g.cols, g.rows = imageW/cellW, imageH/cellH

	g.cells = make([]Cell, 0, g.cols*g.rows)
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			g.cells = append(g.cells, Cell{X: x, Y: y, W: 1, H: 1})
		}
	}
	glog.V(2).Infof("cells: initialized %dx%d grid of %dx%d cells over %dx%d image", g.cols, g.rows, cellW, cellH, imageW, imageH)
	return nil
}

// Clear drops every selected cell. The cell size and the group counter
// are kept.
func (g *Grid) Clear() {
	g.cells = g.cells[:0]
}

// Initialized reports whether Initialize succeeded at least once.
func (g *Grid) Initialized() bool {
	return g.cellW > 0 && g.cellH > 0
}

// CellSize returns the size of one cell in source pixels.
func (g *Grid) CellSize() (w, h int) {
	return g.cellW, g.cellH
}

// Dimensions returns how many whole cells fit across and down the sheet.
func (g *Grid) Dimensions() (cols, rows int) {
	return g.cols, g.rows
}

// Len returns the number of selected cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cells returns a copy of the selection in insertion order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// At returns the cell whose origin is (x, y).
func (g *Grid) At(x, y int) (Cell, bool) {
	if i := g.index(x, y); i >= 0 {
		return g.cells[i], true
	}
	return Cell{}, false
}

func (g *Grid) index(x, y int) int {
	for i, c := range g.cells {
		if c.X == x && c.Y == y {
			return i
		}
	}
	return -1
}

// Toggle removes the cell at (x, y) if there is one, and otherwise adds an
// ungrouped unit cell there.
func (g *Grid) Toggle(x, y int) {
	if i := g.index(x, y); i >= 0 {
		g.cells = append(g.cells[:i], g.cells[i+1:]...)
		return
	}
	g.cells = append(g.cells, Cell{X: x, Y: y, W: 1, H: 1})
}

// SelectRegion replaces every cell whose origin lies inside the w x h
// rectangle at (x0, y0) with fresh unit cells covering the rectangle.
//
// When grouped is set, the new cells share a newly issued group id and its
// colour, and that id is returned. Otherwise the cells are ungrouped and
// the returned id is 0.
func (g *Grid) SelectRegion(x0, y0, w, h int, grouped bool) int {
	if w < 1 || h < 1 {
		return 0
	}
	r := image.Rect(x0, y0, x0+w, y0+h)

	kept := g.cells[:0]
	for _, c := range g.cells {
		if !image.Pt(c.X, c.Y).In(r) {
			kept = append(kept, c)
		}
	}
	g.cells = kept

	var id int
	var col GroupColor
	if grouped {
		g.lastGroup++
		id = g.lastGroup
		col = ColorForGroup(id)
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.cells = append(g.cells, Cell{X: x, Y: y, W: 1, H: 1, GroupID: id, Color: col})
		}
	}
	glog.V(2).Infof("cells: selected %v (group %d), %d cells live", r, id, len(g.cells))
	return id
}
