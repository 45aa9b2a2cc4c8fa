package tiledir

import (
	"image/png"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-tilecatalog/tile"
)

// Writer stores tiles as individual PNG files.
type Writer struct {
	filePattern string
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/tiles/{id}.png").
func NewWriter(filePattern string) (*Writer, error) {
	filePattern, err := cleanPattern(filePattern)
	if err != nil {
		return nil, err
	}
	return &Writer{filePattern}, nil
}

func (w *Writer) WriteTile(id tile.ID, t tile.Tile) error {
	filePath := formatPattern(w.filePattern, id)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	if err := png.Encode(file, t.Image().RGBA()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (w *Writer) Finalize() error {
	return nil
}
