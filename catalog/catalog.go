// Package catalog builds a content-addressed tile catalog from a raster image.
//
// The image is partitioned into square tiles, every tile is hashed to a
// structural identifier, and the identifiers are arranged into a grid,
// a flat row-major sequence and a frequency table. Tiles with equal content
// share one catalog entry.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/eak1mov/go-tilecatalog/raster"
	"github.com/eak1mov/go-tilecatalog/tile"
	"github.com/eak1mov/go-tilecatalog/tilehash"
)

var ErrHashCollision = errors.New("tilecatalog: hash collision")
var ErrMissingTile = errors.New("tilecatalog: tile missing from catalog")

// IDGrid holds the identifier of every tile at its grid position, row-major.
type IDGrid struct {
	Rows int
	Cols int
	IDs  []tile.ID
}

func (g IDGrid) At(pos tile.Position) tile.ID {
	return g.IDs[pos.Row*g.Cols+pos.Col]
}

func (g IDGrid) Row(row int) []tile.ID {
	return g.IDs[row*g.Cols : (row+1)*g.Cols]
}

// Catalog is the result of cataloging one image with one tile size.
type Catalog struct {
	TileSize int

	// Tiles maps every distinct identifier to its tile content.
	Tiles map[tile.ID]tile.Tile

	// Grid preserves the spatial layout of identifiers.
	Grid IDGrid

	// Sequence is Grid flattened in row-major order.
	Sequence []tile.ID

	// Frequencies lists distinct identifiers with their occurrence counts, sorted by identifier.
	Frequencies []Frequency
}

type config struct {
	Hasher         tile.Hasher
	Logger         *slog.Logger
	Workers        int
	CollisionCheck bool
}

type Option func(*config)

// WithHasher sets the structural hasher. Defaults to tilehash.MD5.
func WithHasher(hasher tile.Hasher) Option {
	return func(c *config) { c.Hasher = hasher }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

// WithWorkers hashes tiles on n goroutines. Values below 2 hash sequentially.
// The result does not depend on n. With n >= 2 the hasher is called concurrently.
func WithWorkers(n int) Option {
	return func(c *config) { c.Workers = n }
}

// WithCollisionCheck compares the content of every tile against the catalog entry
// already stored under its identifier and fails with ErrHashCollision on mismatch.
func WithCollisionCheck(enabled bool) Option {
	return func(c *config) { c.CollisionCheck = enabled }
}

func newConfig(opts []Option) config {
	c := config{
		Hasher:  tilehash.MD5,
		Logger:  slog.New(slog.DiscardHandler),
		Workers: 1,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Build partitions img into size x size tiles and catalogs them.
func Build(img *raster.Image, size int, opts ...Option) (*Catalog, error) {
	grid, err := tile.Partition(img, size)
	if err != nil {
		return nil, err
	}
	return FromGrid(grid, opts...)
}

// FromGrid catalogs an already partitioned tile grid.
func FromGrid(grid *tile.Grid, opts ...Option) (*Catalog, error) {
	c := newConfig(opts)

	c.Logger.Debug("tilecatalog: hash", "rows", grid.Rows, "cols", grid.Cols, "size", grid.Size)
	ids := hashTiles(grid, c.Hasher, c.Workers)

	c.Logger.Debug("tilecatalog: collect")
	tiles := make(map[tile.ID]tile.Tile)
	for i, id := range ids {
		t := grid.Tile(tile.Position{Row: i / grid.Cols, Col: i % grid.Cols})
		stored, exists := tiles[id]
		if !exists {
			tiles[id] = tile.Tile{Size: t.Size, Pix: slices.Clone(t.Pix)}
			continue
		}
		if c.CollisionCheck && !bytes.Equal(stored.Pix, t.Pix) {
			return nil, fmt.Errorf("%w: id %v at tile %d", ErrHashCollision, id, i)
		}
	}

	cat := &Catalog{
		TileSize:    grid.Size,
		Tiles:       tiles,
		Grid:        IDGrid{Rows: grid.Rows, Cols: grid.Cols, IDs: ids},
		Sequence:    slices.Clone(ids),
		Frequencies: countFrequencies(ids),
	}
	c.Logger.Debug("tilecatalog: done!", "tiles", len(ids), "distinct", len(tiles))
	return cat, nil
}

// Assemble rebuilds a catalog from a stored identifier grid and its tiles.
// Every identifier in the grid must be present in tiles.
func Assemble(size int, tiles map[tile.ID]tile.Tile, grid IDGrid) (*Catalog, error) {
	if len(grid.IDs) != grid.Rows*grid.Cols {
		return nil, fmt.Errorf("tilecatalog: grid has %d ids, want %d", len(grid.IDs), grid.Rows*grid.Cols)
	}
	for i, id := range grid.IDs {
		if _, ok := tiles[id]; !ok {
			return nil, fmt.Errorf("%w: id %v at tile %d", ErrMissingTile, id, i)
		}
	}
	return &Catalog{
		TileSize:    size,
		Tiles:       tiles,
		Grid:        grid,
		Sequence:    slices.Clone(grid.IDs),
		Frequencies: countFrequencies(grid.IDs),
	}, nil
}

func hashTiles(grid *tile.Grid, hasher tile.Hasher, workers int) []tile.ID {
	ids := make([]tile.ID, grid.Len())
	hashOne := func(i int) {
		ids[i] = hasher.Hash(grid.Tile(tile.Position{Row: i / grid.Cols, Col: i % grid.Cols}).Pix)
	}

	if workers < 2 || len(ids) < 2 {
		for i := range ids {
			hashOne(i)
		}
		return ids
	}

	jobs := make(chan int, len(ids))
	for i := range ids {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range min(workers, len(ids)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				hashOne(i)
			}
		}()
	}
	wg.Wait()
	return ids
}
