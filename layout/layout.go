// Package layout decides where each transformed sprite goes in the packed
// output image.
//
// The packing is not a tight bin-pack. Sprites stay in the columns and rows
// of the source sheet, so animation frames and directional variants that
// were next to each other on the sheet remain next to each other. Every
// source column is as wide as the widest transformed sprite that starts in
// it, every row as tall as the tallest; columns and rows where no sprite
// starts take no space.
package layout

import (
	"image"
	"sort"

	"badc0de.net/pkg/go-rotmgify/cells"
	"badc0de.net/pkg/go-rotmgify/rotmg"
)

// Placement is where one region's transformed block goes.
type Placement struct {
	Region cells.Region

	// Offset is the top left corner of the block in the packed image.
	Offset image.Point
	// Size is the size of the transformed block.
	Size image.Point
}

// Rect returns the area the block covers in the packed image.
func (p Placement) Rect() image.Rectangle {
	return image.Rectangle{Min: p.Offset, Max: p.Offset.Add(p.Size)}
}

// Layout is the packed arrangement of a set of regions.
type Layout struct {
	Width, Height int

	// Placements are in the same order as the regions passed to Pack.
	Placements []Placement

	// ColumnWidths and RowHeights map source columns and rows that have a
	// region starting in them to their size in the packed image.
	ColumnWidths map[int]int
	RowHeights   map[int]int
}

// Bounds returns the bounds of the packed image.
func (l *Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// Pack lays out regions whose cells are cellW x cellH source pixels.
func Pack(regions []cells.Region, cellW, cellH int) *Layout {
	l := &Layout{
		Placements:   make([]Placement, len(regions)),
		ColumnWidths: map[int]int{},
		RowHeights:   map[int]int{},
	}

	for i, r := range regions {
		w, h := rotmg.OutputSize(r.W*cellW, r.H*cellH)
		l.Placements[i] = Placement{Region: r, Size: image.Pt(w, h)}
		l.ColumnWidths[r.X] = max(l.ColumnWidths[r.X], w)
		l.RowHeights[r.Y] = max(l.RowHeights[r.Y], h)
	}

	colStart, width := starts(l.ColumnWidths)
	rowStart, height := starts(l.RowHeights)
	l.Width, l.Height = width, height

	for i := range l.Placements {
		r := l.Placements[i].Region
		l.Placements[i].Offset = image.Pt(colStart[r.X], rowStart[r.Y])
	}
	return l
}

// starts returns, for each key of sizes, the sum of the sizes of all
// smaller keys, along with the total.
func starts(sizes map[int]int) (map[int]int, int) {
	keys := make([]int, 0, len(sizes))
	for k := range sizes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make(map[int]int, len(keys))
	total := 0
	for _, k := range keys {
		out[k] = total
		total += sizes[k]
	}
	return out, total
}
