// Package imageload decodes image files into raster images.
//
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP and QOI.
package imageload

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"slices"

	"github.com/eak1mov/go-tilecatalog/raster"
	"github.com/maruel/natural"
	_ "github.com/xfmoulet/qoi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads an image in any supported format. It returns the format name as well.
func Decode(r io.Reader) (*raster.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return raster.FromImage(img), format, nil
}

func Load(filePath string) (*raster.Image, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filePath, err)
	}
	return img, nil
}

// SortPaths returns the paths in natural order ("frame2.png" before "frame10.png").
func SortPaths(paths []string) []string {
	sorted := slices.Clone(paths)
	slices.SortStableFunc(sorted, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return sorted
}
