// Package index provides a flat binary format for identifier grids.
package index

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/eak1mov/go-tilecatalog/catalog"
	"github.com/eak1mov/go-tilecatalog/tile"
)

var ErrInvalidIndex = errors.New("tilecatalog: invalid index")

// Item represents a single record in the index, mapping a grid position (Row, Col)
// to the identifier of the tile stored there. Code is the Hilbert-curve code of the position.
// Records are little-endian and fixed-size, so the format is easily portable.
type Item struct {
	Row  uint32
	Col  uint32
	Code uint64
	ID   tile.ID
}

func (i Item) Position() tile.Position {
	return tile.Position{Row: int(i.Row), Col: int(i.Col)}
}

// FromGrid returns one item per grid position, ordered by Hilbert code.
func FromGrid(grid catalog.IDGrid) []Item {
	items := make([]Item, 0, len(grid.IDs))
	for pos := range tile.IterPositions(grid.Rows, grid.Cols) {
		items = append(items, Item{
			Row:  uint32(pos.Row),
			Col:  uint32(pos.Col),
			Code: tile.EncodePosition(pos, grid.Rows, grid.Cols),
			ID:   grid.At(pos),
		})
	}
	slices.SortFunc(items, func(a, b Item) int {
		return cmp.Compare(a.Code, b.Code)
	})
	return items
}

// ToGrid places items back into a rows x cols grid. Records carry no shape,
// so it is passed explicitly; every position must be covered exactly once.
func ToGrid(rows, cols int, items []Item) (catalog.IDGrid, error) {
	if rows < 0 || cols < 0 {
		return catalog.IDGrid{}, fmt.Errorf("%w: negative grid shape %dx%d", ErrInvalidIndex, rows, cols)
	}
	if len(items) != rows*cols {
		return catalog.IDGrid{}, fmt.Errorf("%w: %d items for %dx%d grid", ErrInvalidIndex, len(items), rows, cols)
	}

	grid := catalog.IDGrid{Rows: rows, Cols: cols, IDs: make([]tile.ID, len(items))}
	filled := make([]bool, len(items))
	for _, item := range items {
		if int(item.Row) >= rows || int(item.Col) >= cols {
			return catalog.IDGrid{}, fmt.Errorf("%w: position %v outside %dx%d grid", ErrInvalidIndex, item.Position(), rows, cols)
		}
		i := int(item.Row)*cols + int(item.Col)
		if filled[i] {
			return catalog.IDGrid{}, fmt.Errorf("%w: duplicate position %v", ErrInvalidIndex, item.Position())
		}
		filled[i] = true
		grid.IDs[i] = item.ID
	}
	return grid, nil
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(indexData []byte) ([]Item, error) {
	if len(indexData)%binary.Size(Item{}) != 0 {
		return nil, fmt.Errorf("%w: truncated record", ErrInvalidIndex)
	}
	count := len(indexData) / binary.Size(Item{})
	items := make([]Item, count)

	err := binary.Read(bytes.NewReader(indexData), binary.LittleEndian, items)
	if err != nil {
		return nil, err
	}

	return items, nil
}
