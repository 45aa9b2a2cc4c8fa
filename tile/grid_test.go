package tile_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/eak1mov/go-tilecatalog/internal"
	"github.com/eak1mov/go-tilecatalog/raster"
	"github.com/eak1mov/go-tilecatalog/tile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPartitionShape(t *testing.T) {
	for _, tc := range []struct{ rows, cols, size int }{
		{0, 0, 1},
		{1, 1, 1},
		{4, 4, 2},
		{3, 5, 2},
		{5, 3, 2},
		{7, 9, 3},
		{2, 2, 5},
		{16, 10, 4},
	} {
		t.Run(fmt.Sprintf("%dx%d/%d", tc.rows, tc.cols, tc.size), func(t *testing.T) {
			t.Parallel()

			grid, err := tile.Partition(internal.PatternImage(tc.rows, tc.cols), tc.size)
			if err != nil {
				t.Fatalf("Partition failed: %v", err)
			}

			ceil := func(a, b int) int { return (a + b - 1) / b }
			want := [5]int{ceil(tc.rows, tc.size), ceil(tc.cols, tc.size), tc.size, tc.size, 3}
			if diff := cmp.Diff(want, grid.Shape()); diff != "" {
				t.Errorf("Shape() mismatch (-want+got):\n%v", diff)
			}
			if got, want := len(grid.Pix), want[0]*want[1]*want[2]*want[3]*want[4]; got != want {
				t.Errorf("len(Pix) = %v, want = %v", got, want)
			}
		})
	}
}

func TestPartitionReconstruct(t *testing.T) {
	for name, tc := range internal.TestCases() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			grid, err := tile.Partition(tc.Image, tc.TileSize)
			if err != nil {
				t.Fatalf("Partition failed: %v", err)
			}

			if diff := cmp.Diff(tc.Image.Pad(tc.TileSize), grid.Image()); diff != "" {
				t.Errorf("Image() mismatch (-want+got):\n%v", diff)
			}
		})
	}
}

func TestPartitionAlignedIdentity(t *testing.T) {
	img := internal.PatternImage(6, 4)
	grid, err := tile.Partition(img, 2)
	require.NoError(t, err)
	require.Equal(t, [5]int{3, 2, 2, 2, 3}, grid.Shape())
	require.True(t, grid.Image().Equal(img))
}

func TestPartitionTileContent(t *testing.T) {
	img := internal.PatternImage(3, 5)
	grid, err := tile.Partition(img, 2)
	require.NoError(t, err)
	require.Equal(t, [5]int{2, 3, 2, 2, 3}, grid.Shape())

	for pos, tl := range tile.IterTiles(grid) {
		for y := range 2 {
			for x := range 2 {
				row, col := pos.Row*2+y, pos.Col*2+x
				want := [3]uint8{}
				if row < img.Rows && col < img.Cols {
					want = img.At(row, col)
				}
				if got := tl.At(y, x); got != want {
					t.Errorf("tile %v At(%d, %d) = %v, want = %v", pos, y, x, got, want)
				}
			}
		}
	}

	// Bottom-right tile covers row 2 and column 4 only; the rest is padding.
	corner := grid.Tile(tile.Position{Row: 1, Col: 2})
	require.Equal(t, img.At(2, 4), corner.At(0, 0))
	require.Equal(t, [3]uint8{}, corner.At(0, 1))
	require.Equal(t, [3]uint8{}, corner.At(1, 0))
	require.Equal(t, [3]uint8{}, corner.At(1, 1))
}

func TestPartitionErrors(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := tile.Partition(raster.New(2, 2), size)
		require.Truef(t, errors.Is(err, tile.ErrInvalidTileSize), "%v", err)
	}

	_, err := tile.Partition(nil, 2)
	require.ErrorIs(t, err, raster.ErrInvalidShape)

	_, err = tile.Partition(&raster.Image{Rows: 2, Cols: 2, Pix: make([]uint8, 16)}, 2)
	require.ErrorIs(t, err, raster.ErrInvalidShape)
}

func TestIterTiles(t *testing.T) {
	grid, err := tile.Partition(internal.PatternImage(4, 6), 2)
	require.NoError(t, err)

	var got []tile.Position
	for pos := range tile.IterTiles(grid) {
		got = append(got, pos)
	}
	want := []tile.Position{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("IterTiles order mismatch (-want+got):\n%v", diff)
	}

	count := 0
	for range tile.IterTiles(grid) {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}
