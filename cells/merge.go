package cells

import (
	"image"
	"sort"
)

// Region is the bounding box of a group of cells, or a single ungrouped
// cell, in cell units.
type Region struct {
	X, Y, W, H int

	// GroupID is the group the region was merged from; 0 for ungrouped.
	GroupID int
}

// Rect returns the region bounds in cell units.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// PixelRect returns the region bounds in source pixels.
func (r Region) PixelRect(cellW, cellH int) image.Rectangle {
	return image.Rect(r.X*cellW, r.Y*cellH, (r.X+r.W)*cellW, (r.Y+r.H)*cellH)
}

// Merge turns cells into regions. Ungrouped cells come first, one region
// each, in their original order. They are followed by one bounding box per
// group, by ascending group id.
func Merge(cs []Cell) []Region {
	var out []Region
	groups := map[int][]Cell{}
	var ids []int

	for _, c := range cs {
		if !c.Grouped() {
			out = append(out, Region{X: c.X, Y: c.Y, W: c.W, H: c.H})
			continue
		}
		if _, ok := groups[c.GroupID]; !ok {
			ids = append(ids, c.GroupID)
		}
		groups[c.GroupID] = append(groups[c.GroupID], c)
	}

	sort.Ints(ids)
	for _, id := range ids {
		out = append(out, bounds(id, groups[id]))
	}
	return out
}

func bounds(id int, cs []Cell) Region {
	r := cs[0].Rect()
	for _, c := range cs[1:] {
		r = r.Union(c.Rect())
	}
	return Region{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy(), GroupID: id}
}
