package tile

import (
	"errors"
	"fmt"

	"github.com/eak1mov/go-tilecatalog/raster"
)

var ErrInvalidTileSize = errors.New("tilecatalog: invalid tile size")

// Grid is a 5-axis array (tile-row, tile-col, within-row, within-col, channel)
// stored flat in that axis order.
type Grid struct {
	Rows int
	Cols int
	Size int
	Pix  []uint8
}

func (g *Grid) Shape() [5]int {
	return [5]int{g.Rows, g.Cols, g.Size, g.Size, raster.Channels}
}

func (g *Grid) Len() int {
	return g.Rows * g.Cols
}

func (g *Grid) tileLength() int {
	return g.Size * g.Size * raster.Channels
}

// Tile returns the tile at the given position. The tile shares memory with the grid.
func (g *Grid) Tile(pos Position) Tile {
	n := g.tileLength()
	i := (pos.Row*g.Cols + pos.Col) * n
	return Tile{Size: g.Size, Pix: g.Pix[i : i+n : i+n]}
}

// Partition pads the image with zeros to a multiple of size on the row and
// column axes and splits it into a grid of size x size tiles.
func Partition(img *raster.Image, size int) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTileSize, size)
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}

	padded := img.Pad(size)
	grid := &Grid{
		Rows: padded.Rows / size,
		Cols: padded.Cols / size,
		Size: size,
		Pix:  make([]uint8, len(padded.Pix)),
	}

	// Padded image axes are (tile-row, within-row, tile-col, within-col, channel);
	// the grid swaps the two middle axes.
	rowLength := size * raster.Channels
	offset := 0
	for tileRow := range grid.Rows {
		for tileCol := range grid.Cols {
			for y := range size {
				src := ((tileRow*size+y)*padded.Cols + tileCol*size) * raster.Channels
				offset += copy(grid.Pix[offset:], padded.Pix[src:src+rowLength])
			}
		}
	}
	return grid, nil
}

// Image concatenates the tiles along their spatial axes, reproducing the padded image.
func (g *Grid) Image() *raster.Image {
	img := raster.New(g.Rows*g.Size, g.Cols*g.Size)
	rowLength := g.Size * raster.Channels
	for pos, t := range IterTiles(g) {
		for y := range g.Size {
			dst := ((pos.Row*g.Size+y)*img.Cols + pos.Col*g.Size) * raster.Channels
			copy(img.Pix[dst:dst+rowLength], t.Pix[y*rowLength:(y+1)*rowLength])
		}
	}
	return img
}
