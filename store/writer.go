package store

import (
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/eak1mov/go-tilecatalog/catalog"
	"github.com/eak1mov/go-tilecatalog/compression"
	"github.com/eak1mov/go-tilecatalog/index"
)

// Writer stores a single catalog in a SQLite file.
type Writer struct {
	db          *sql.DB
	logger      *slog.Logger
	compression compression.Compression
	written     bool
}

type writerConfig struct {
	Metadata    map[string]string
	Logger      *slog.Logger
	Compression compression.Compression
}

type WriterOption func(*writerConfig)

// WithMetadata adds user metadata. Keys reserved by the store take precedence.
func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// WithCompression sets the codec for tile data. Defaults to compression.Zstd.
func WithCompression(c compression.Compression) WriterOption {
	return func(wc *writerConfig) { wc.Compression = c }
}

// NewWriter creates a new Writer for the given file path and initializes the schema.
// An existing file at filePath is replaced.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger:      slog.New(slog.DiscardHandler),
		Compression: compression.Zstd,
	}
	for _, opt := range opts {
		opt(&config)
	}

	err := os.Remove(filePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE metadata (name TEXT, value TEXT);
		CREATE TABLE tiles (
			tile_id TEXT,
			tile_count INTEGER,
			tile_data BLOB
		);
		CREATE TABLE grid (
			tile_row INTEGER,
			tile_col INTEGER,
			position_code INTEGER,
			tile_id TEXT
		);
	`)
	if err != nil {
		return nil, err
	}

	for k, v := range config.Metadata {
		_, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	return &Writer{db: db, logger: config.Logger, compression: config.Compression}, nil
}

func (w *Writer) Close() error {
	return w.db.Close()
}

// WriteCatalog stores tiles, grid and shape metadata of cat in a single transaction.
func (w *Writer) WriteCatalog(cat *catalog.Catalog) (err error) {
	if w.written {
		return ErrCatalogWritten
	}

	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	w.logger.Debug("tilecatalog: write metadata")
	for k, v := range map[string]string{
		metadataTileSize:    strconv.Itoa(cat.TileSize),
		metadataGridRows:    strconv.Itoa(cat.Grid.Rows),
		metadataGridCols:    strconv.Itoa(cat.Grid.Cols),
		metadataCompression: w.compression.String(),
	} {
		if _, err = tx.Exec("DELETE FROM metadata WHERE name = ?", k); err != nil {
			return err
		}
		if _, err = tx.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v); err != nil {
			return err
		}
	}

	w.logger.Debug("tilecatalog: write tiles", "count", len(cat.Frequencies))
	tileStmt, err := tx.Prepare("INSERT INTO tiles (tile_id, tile_count, tile_data) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer tileStmt.Close()

	for _, f := range cat.Frequencies {
		var tileData []byte
		tileData, err = compression.Compress(cat.Tiles[f.ID].Pix, w.compression)
		if err != nil {
			return err
		}
		if _, err = tileStmt.Exec(f.ID.String(), f.Count, tileData); err != nil {
			return err
		}
	}

	w.logger.Debug("tilecatalog: write grid", "rows", cat.Grid.Rows, "cols", cat.Grid.Cols)
	gridStmt, err := tx.Prepare("INSERT INTO grid (tile_row, tile_col, position_code, tile_id) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer gridStmt.Close()

	for _, item := range index.FromGrid(cat.Grid) {
		if _, err = gridStmt.Exec(item.Row, item.Col, int64(item.Code), item.ID.String()); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	w.written = true
	return nil
}

func (w *Writer) Finalize() error {
	w.logger.Debug("tilecatalog: creating index")
	_, err := w.db.Exec(`
		CREATE UNIQUE INDEX tile_index ON tiles (tile_id);
		CREATE UNIQUE INDEX grid_index ON grid (tile_row, tile_col);
	`)

	w.logger.Debug("tilecatalog: done!")
	return err
}
