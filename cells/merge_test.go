package cells

import (
	"image"
	"reflect"
	"testing"
)

func TestMergeGroup(t *testing.T) {
	got := Merge([]Cell{
		{X: 0, Y: 0, W: 1, H: 1, GroupID: 1},
		{X: 1, Y: 0, W: 1, H: 1, GroupID: 1},
	})
	want := []Region{{X: 0, Y: 0, W: 2, H: 1, GroupID: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v; want %+v", got, want)
	}
}

func TestMergeOrdering(t *testing.T) {
	got := Merge([]Cell{
		{X: 4, Y: 4, W: 1, H: 1, GroupID: 3},
		{X: 2, Y: 0, W: 1, H: 1},
		{X: 0, Y: 2, W: 1, H: 1, GroupID: 1},
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 5, Y: 6, W: 1, H: 1, GroupID: 3},
		{X: 1, Y: 3, W: 1, H: 1, GroupID: 1},
	})
	want := []Region{
		{X: 2, Y: 0, W: 1, H: 1},
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 0, Y: 2, W: 2, H: 2, GroupID: 1},
		{X: 4, Y: 4, W: 2, H: 3, GroupID: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v; want %+v", got, want)
	}
}

func TestMergeUngroupedStaySeparate(t *testing.T) {
	got := Merge([]Cell{
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 1, Y: 0, W: 1, H: 1},
	})
	if len(got) != 2 {
		t.Errorf("got %d regions; want 2", len(got))
	}
}

func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil); len(got) != 0 {
		t.Errorf("got %+v; want no regions", got)
	}
}

func TestEndToEndSelection(t *testing.T) {
	g := newGrid(t, 16, 16, 8, 8)
	g.SelectRegion(0, 0, 2, 1, true)

	for _, c := range g.Cells() {
		if c.Y == 0 && (c.GroupID != 1 || c.Color != ColorForGroup(1)) {
			t.Errorf("cell %+v: want group 1", c)
		}
	}

	got := Merge(g.Cells())
	want := []Region{
		{X: 0, Y: 1, W: 1, H: 1},
		{X: 1, Y: 1, W: 1, H: 1},
		{X: 0, Y: 0, W: 2, H: 1, GroupID: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v; want %+v", got, want)
	}
	if r := got[2].PixelRect(8, 8); r != image.Rect(0, 0, 16, 8) {
		t.Errorf("pixel rect %v", r)
	}
}
