package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-tilecatalog/config"
	"github.com/eak1mov/go-tilecatalog/index"
	"github.com/eak1mov/go-tilecatalog/store"
	"github.com/eak1mov/go-tilecatalog/tile"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, filePath string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestBuildOne(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.png")
	outputPath := filepath.Join(dir, "input.sqlite")
	writePNG(t, inputPath)

	cfg := config.Default()
	cfg.Log.Level = "error"
	require.NoError(t, buildOne(cfg, inputPath, outputPath))

	reader, err := store.NewReader(outputPath)
	require.NoError(t, err)
	defer reader.Close()

	metadata, err := reader.ReadMetadata()
	require.NoError(t, err)
	require.Equal(t, "input.png", metadata["source"])
	require.Equal(t, "md5", metadata["hasher"])

	cat, err := reader.ReadCatalog()
	require.NoError(t, err)
	require.Equal(t, 2, cat.Distinct())
	require.Equal(t, 3, cat.Count(cat.Grid.At(tile.Position{Row: 1, Col: 1})))
	require.Equal(t, 1, cat.Count(cat.Grid.At(tile.Position{Row: 0, Col: 0})))
}

func TestOutputFor(t *testing.T) {
	c := &buildCmd{outputPath: "out"}
	require.Equal(t, "out", c.outputFor("images/a.png", false))
	require.Equal(t, filepath.Join("out", "a.sqlite"), c.outputFor("images/a.png", true))
}

func TestExportIndex(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.png")
	storePath := filepath.Join(dir, "input.sqlite")
	writePNG(t, inputPath)

	cfg := config.Default()
	cfg.Log.Level = "error"
	require.NoError(t, buildOne(cfg, inputPath, storePath))
	// Rebuilding into the same path replaces the store.
	require.NoError(t, buildOne(cfg, inputPath, storePath))

	reader, err := store.NewReader(storePath)
	require.NoError(t, err)
	defer reader.Close()

	c := &exportCmd{outputIndexPath: filepath.Join(dir, "grid.index")}
	require.NoError(t, c.exportIndex(reader))

	data, err := os.ReadFile(c.outputIndexPath)
	require.NoError(t, err)
	items, err := index.ReadAll(data)
	require.NoError(t, err)

	cat, err := reader.ReadCatalog()
	require.NoError(t, err)
	grid, err := index.ToGrid(cat.Grid.Rows, cat.Grid.Cols, items)
	require.NoError(t, err)
	require.Equal(t, cat.Grid, grid)
}
