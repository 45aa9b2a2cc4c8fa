// Package store provides API for persisting tile catalogs in SQLite files.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/eak1mov/go-tilecatalog/catalog"
	"github.com/eak1mov/go-tilecatalog/compression"
	"github.com/eak1mov/go-tilecatalog/tile"
)

const (
	metadataTileSize    = "tile_size"
	metadataGridRows    = "grid_rows"
	metadataGridCols    = "grid_cols"
	metadataCompression = "compression"
)

var ErrCatalogWritten = errors.New("tilecatalog: catalog already written")
var ErrInvalidStore = errors.New("tilecatalog: invalid catalog store")

// Reader reads a catalog stored by Writer.
type Reader struct {
	db          *sql.DB
	stmt        *sql.Stmt
	tileSize    int
	compression compression.Compression
}

// NewReader opens the store at filePath read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (r *Reader, err error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	stmt, err := db.Prepare("SELECT tile_data FROM tiles WHERE tile_id = ?")
	if err != nil {
		return nil, err
	}
	r = &Reader{db: db, stmt: stmt}

	metadata, err := r.ReadMetadata()
	if err != nil {
		stmt.Close()
		return nil, err
	}
	if r.tileSize, err = strconv.Atoi(metadata[metadataTileSize]); err != nil {
		stmt.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidStore, err)
	}
	if r.compression, err = compression.Parse(metadata[metadataCompression]); err != nil {
		stmt.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidStore, err)
	}
	return r, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) ReadMetadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

func (r *Reader) TileSize() int {
	return r.tileSize
}

func (r *Reader) decodeTile(tileData []byte) (tile.Tile, error) {
	pix, err := compression.Decompress(tileData, r.compression)
	if err != nil {
		return tile.Tile{}, err
	}
	return tile.Tile{Size: r.tileSize, Pix: pix}, nil
}

// ReadTile reads a single tile from the catalog.
// If the tile does not exist, it returns a zero Tile with no error.
func (r *Reader) ReadTile(id tile.ID) (tile.Tile, error) {
	var tileData []byte
	if err := r.stmt.QueryRow(id.String()).Scan(&tileData); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tile.Tile{}, nil
		}
		return tile.Tile{}, err
	}
	return r.decodeTile(tileData)
}

// VisitTiles calls visitor for every distinct tile, ordered by identifier.
func (r *Reader) VisitTiles(visitor func(tile.ID, tile.Tile) error) error {
	rows, err := r.db.Query("SELECT tile_id, tile_data FROM tiles ORDER BY tile_id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var idText string
		var tileData []byte
		if err := rows.Scan(&idText, &tileData); err != nil {
			return err
		}

		id, err := tile.ParseID(idText)
		if err != nil {
			return err
		}
		t, err := r.decodeTile(tileData)
		if err != nil {
			return err
		}
		if err := visitor(id, t); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (r *Reader) readGrid() (catalog.IDGrid, error) {
	metadata, err := r.ReadMetadata()
	if err != nil {
		return catalog.IDGrid{}, err
	}
	rowsCount, err := strconv.Atoi(metadata[metadataGridRows])
	if err != nil {
		return catalog.IDGrid{}, fmt.Errorf("%w: %w", ErrInvalidStore, err)
	}
	colsCount, err := strconv.Atoi(metadata[metadataGridCols])
	if err != nil {
		return catalog.IDGrid{}, fmt.Errorf("%w: %w", ErrInvalidStore, err)
	}

	grid := catalog.IDGrid{Rows: rowsCount, Cols: colsCount, IDs: make([]tile.ID, rowsCount*colsCount)}
	filled := 0

	rows, err := r.db.Query("SELECT tile_row, tile_col, tile_id FROM grid")
	if err != nil {
		return catalog.IDGrid{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var row, col int
		var idText string
		if err := rows.Scan(&row, &col, &idText); err != nil {
			return catalog.IDGrid{}, err
		}
		if row < 0 || row >= rowsCount || col < 0 || col >= colsCount {
			return catalog.IDGrid{}, fmt.Errorf("%w: position (%d, %d) outside grid", ErrInvalidStore, row, col)
		}
		id, err := tile.ParseID(idText)
		if err != nil {
			return catalog.IDGrid{}, err
		}
		grid.IDs[row*colsCount+col] = id
		filled++
	}
	if err := rows.Err(); err != nil {
		return catalog.IDGrid{}, err
	}

	if filled != len(grid.IDs) {
		return catalog.IDGrid{}, fmt.Errorf("%w: %d grid entries, want %d", ErrInvalidStore, filled, len(grid.IDs))
	}
	return grid, nil
}

// ReadCatalog loads the complete catalog.
func (r *Reader) ReadCatalog() (*catalog.Catalog, error) {
	grid, err := r.readGrid()
	if err != nil {
		return nil, err
	}

	tiles := make(map[tile.ID]tile.Tile)
	err = r.VisitTiles(func(id tile.ID, t tile.Tile) error {
		tiles[id] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return catalog.Assemble(r.tileSize, tiles, grid)
}
