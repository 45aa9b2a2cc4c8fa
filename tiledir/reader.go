package tiledir

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eak1mov/go-tilecatalog/raster"
	"github.com/eak1mov/go-tilecatalog/tile"
)

// Reader reads tiles stored by Writer.
type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// NewReader creates a new Reader for the given file pattern (e.g. "/home/user/tiles/{id}.png").
func NewReader(filePattern string) (*Reader, error) {
	filePattern, err := cleanPattern(filePattern)
	if err != nil {
		return nil, err
	}

	prefix, suffix, _ := strings.Cut(filePattern, placeholder)
	pathRegex, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + "([0-9a-f]{32})" + regexp.QuoteMeta(suffix) + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	rootDir := filepath.Dir(prefix + "x")

	return &Reader{filePattern, rootDir, pathRegex}, nil
}

func readTileFile(filePath string) (tile.Tile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return tile.Tile{}, err
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		return tile.Tile{}, fmt.Errorf("%v: %w", filePath, err)
	}
	img := raster.FromImage(decoded)
	if img.Rows != img.Cols {
		return tile.Tile{}, fmt.Errorf("%v: tile is not square (%dx%d)", filePath, img.Rows, img.Cols)
	}
	return tile.Tile{Size: img.Rows, Pix: img.Pix}, nil
}

// ReadTile reads a single tile. If the tile does not exist, it returns a zero Tile with no error.
func (r *Reader) ReadTile(id tile.ID) (tile.Tile, error) {
	t, err := readTileFile(formatPattern(r.filePattern, id))
	if os.IsNotExist(err) {
		return tile.Tile{}, nil
	}
	return t, err
}

// VisitTiles visits all tile files matching the pattern. Order follows the directory walk.
func (r *Reader) VisitTiles(visitor func(tile.ID, tile.Tile) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		matches := r.pathRegexp.FindStringSubmatch(filePath)
		if matches == nil {
			return nil
		}

		id, err := tile.ParseID(matches[1])
		if err != nil {
			return err
		}

		t, err := readTileFile(filePath)
		if err != nil {
			return err
		}

		return visitor(id, t)
	})
}
