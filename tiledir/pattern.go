// Package tiledir provides API for reading and writing catalog tiles as PNG files
// in a directory, where every tile is stored under a path like "/tiles/{id}.png".
package tiledir

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eak1mov/go-tilecatalog/tile"
)

const placeholder = "{id}"

var ErrInvalidPattern = errors.New("tilecatalog: invalid file pattern")

// cleanPattern validates the pattern and returns it in the lexical form
// filepath.WalkDir reports paths in, so "./tiles//{id}.png" becomes "tiles/{id}.png".
func cleanPattern(pattern string) (string, error) {
	if strings.Count(pattern, placeholder) != 1 {
		return "", fmt.Errorf("%w: placeholder %v must appear exactly once", ErrInvalidPattern, placeholder)
	}
	return filepath.Clean(pattern), nil
}

func formatPattern(pattern string, id tile.ID) string {
	return strings.ReplaceAll(pattern, placeholder, id.String())
}
