// Package tile provides tile types, the tile partitioner and identifier primitives.
package tile

import (
	"slices"

	"github.com/eak1mov/go-tilecatalog/raster"
)

// Tile is a square block of Size x Size pixels with raster.Channels samples each,
// stored in row-major order.
type Tile struct {
	Size int
	Pix  []uint8
}

func (t Tile) At(row, col int) [raster.Channels]uint8 {
	i := (row*t.Size + col) * raster.Channels
	return [raster.Channels]uint8(t.Pix[i : i+raster.Channels])
}

func (t Tile) Equal(other Tile) bool {
	return t.Size == other.Size && slices.Equal(t.Pix, other.Pix)
}

// Image returns the tile content as a standalone raster image.
func (t Tile) Image() *raster.Image {
	return &raster.Image{Rows: t.Size, Cols: t.Size, Pix: slices.Clone(t.Pix)}
}

// Position addresses a tile inside a grid.
type Position struct {
	Row int
	Col int
}

// Hasher computes a structural identifier of a tile's full pixel content.
// Identical content must yield identical identifiers.
// Hash may be called from several goroutines at once, so implementations
// must be safe for concurrent use and must not retain pix.
type Hasher interface {
	Hash(pix []byte) ID
}

// HasherFunc adapts a plain function to the Hasher interface.
// The function must not share mutable state, such as a hash.Hash, between calls.
type HasherFunc func(pix []byte) ID

func (f HasherFunc) Hash(pix []byte) ID {
	return f(pix)
}
