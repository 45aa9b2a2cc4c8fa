package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eak1mov/go-tilecatalog/index"
	"github.com/eak1mov/go-tilecatalog/store"
	"github.com/eak1mov/go-tilecatalog/tile"
	"github.com/eak1mov/go-tilecatalog/tiledir"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type exportCmd struct {
	inputPath       string
	outputPattern   string
	outputIndexPath string
}

func (c *exportCmd) Name() string     { return "export" }
func (c *exportCmd) Synopsis() string { return "export catalog tiles as PNG files and the identifier grid as index" }
func (c *exportCmd) Usage() string {
	return "tilecatalog export -i <path> -o <pattern> [-index <path>]\n"
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input catalog path")
	f.StringVar(&c.outputPattern, "o", "", "Output file pattern (e.g. tiles/{id}.png)")
	f.StringVar(&c.outputIndexPath, "index", "", "Output identifier grid index path")
}

func (c *exportCmd) exportIndex(reader *store.Reader) error {
	cat, err := reader.ReadCatalog()
	if err != nil {
		return err
	}

	file, err := os.Create(c.outputIndexPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := index.WriteAll(index.FromGrid(cat.Grid), file); err != nil {
		return err
	}
	// Index records carry no shape; readers need it for index.ToGrid.
	log.Printf("index %v: %dx%d grid", c.outputIndexPath, cat.Grid.Rows, cat.Grid.Cols)
	return file.Close()
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" || c.outputPattern == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	reader, err := store.NewReader(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	writer, err := tiledir.NewWriter(c.outputPattern)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitTiles(func(id tile.ID, t tile.Tile) error {
		err := writer.WriteTile(id, t)
		bar.Add(1)
		return err
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if c.outputIndexPath != "" {
		if err := c.exportIndex(reader); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
	}

	return subcommands.ExitSuccess
}
