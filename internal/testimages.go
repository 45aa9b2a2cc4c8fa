// Package internal provides raster fixtures shared by tests.
package internal

import (
	"fmt"
	"iter"

	"github.com/eak1mov/go-tilecatalog/raster"
)

var White = [raster.Channels]uint8{255, 255, 255}

// PatternImage returns an image where every pixel is distinct.
func PatternImage(rows, cols int) *raster.Image {
	img := raster.New(rows, cols)
	for row := range rows {
		for col := range cols {
			img.Set(row, col, [raster.Channels]uint8{uint8(row + 1), uint8(col + 1), uint8(row*cols + col)})
		}
	}
	return img
}

// CheckerImage repeats a 2x2 motif so that many tiles share content.
func CheckerImage(rows, cols int) *raster.Image {
	img := raster.New(rows, cols)
	for row := range rows {
		for col := range cols {
			if (row/2+col/2)%2 == 0 {
				img.Set(row, col, White)
			} else {
				img.Set(row, col, [raster.Channels]uint8{uint8(row % 3), 0, 200})
			}
		}
	}
	return img
}

// TestCase is an image with a tile size to catalog it with.
type TestCase struct {
	Image    *raster.Image
	TileSize int
}

// TestCases yields named combinations of aligned, non-aligned, degenerate
// and oversized tilings over both fixtures.
func TestCases() iter.Seq2[string, TestCase] {
	return func(yield func(string, TestCase) bool) {
		for _, dims := range [][3]int{
			{0, 0, 2},
			{1, 1, 1},
			{4, 4, 2},
			{3, 5, 2},
			{9, 7, 2},
			{12, 16, 4},
			{13, 11, 3},
			{5, 5, 8},
		} {
			rows, cols, size := dims[0], dims[1], dims[2]
			if !yield(fmt.Sprintf("pattern-%dx%d/%d", rows, cols, size), TestCase{PatternImage(rows, cols), size}) {
				return
			}
			if !yield(fmt.Sprintf("checker-%dx%d/%d", rows, cols, size), TestCase{CheckerImage(rows, cols), size}) {
				return
			}
		}
	}
}
