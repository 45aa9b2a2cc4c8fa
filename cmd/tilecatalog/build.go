package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eak1mov/go-tilecatalog/catalog"
	"github.com/eak1mov/go-tilecatalog/config"
	"github.com/eak1mov/go-tilecatalog/imageload"
	"github.com/eak1mov/go-tilecatalog/store"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type buildCmd struct {
	configPath string
	outputPath string
	tileSize   int
	hasher     string
}

func (c *buildCmd) Name() string     { return "build" }
func (c *buildCmd) Synopsis() string { return "build tile catalogs from images" }
func (c *buildCmd) Usage() string {
	return "tilecatalog build -o <path> [-config <path> -t <size> -hash <name>] <image>...\n" +
		"  With several images, -o is a directory receiving one <image>.sqlite per input.\n"
}
func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "tilecatalog.yaml", "Config file path")
	f.StringVar(&c.outputPath, "o", "", "Output catalog path (or directory for several images)")
	f.IntVar(&c.tileSize, "t", 0, "Tile size, overrides config")
	f.StringVar(&c.hasher, "hash", "", "Hasher (md5, sha256, fnv128a), overrides config")
}

func (c *buildCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.tileSize != 0 {
		cfg.Catalog.TileSize = c.tileSize
	}
	if c.hasher != "" {
		cfg.Catalog.Hasher = c.hasher
	}
	return cfg, cfg.Validate()
}

func (c *buildCmd) outputFor(inputPath string, batch bool) string {
	if !batch {
		return c.outputPath
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(c.outputPath, base+".sqlite")
}

func buildOne(cfg *config.Config, inputPath, outputPath string) error {
	logger := newLogger(cfg)

	img, err := imageload.Load(inputPath)
	if err != nil {
		return err
	}

	opts, err := cfg.CatalogOptions(logger)
	if err != nil {
		return err
	}
	cat, err := catalog.Build(img, cfg.Catalog.TileSize, opts...)
	if err != nil {
		return fmt.Errorf("%v: %w", inputPath, err)
	}

	codec, err := cfg.Compression()
	if err != nil {
		return err
	}
	writer, err := store.NewWriter(
		outputPath,
		store.WithCompression(codec),
		store.WithLogger(logger),
		store.WithMetadata(map[string]string{
			"source": filepath.Base(inputPath),
			"hasher": cfg.Catalog.Hasher,
			"width":  strconv.Itoa(img.Cols),
			"height": strconv.Itoa(img.Rows),
		}),
	)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteCatalog(cat); err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	logger.Info("catalog built",
		"input", inputPath,
		"output", outputPath,
		"grid", fmt.Sprintf("%dx%d", cat.Grid.Rows, cat.Grid.Cols),
		"distinct", cat.Distinct(),
	)
	return nil
}

func (c *buildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	inputs := imageload.SortPaths(f.Args())
	if len(inputs) == 0 || c.outputPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	cfg, err := c.loadConfig()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	batch := len(inputs) > 1
	if batch {
		if err := os.MkdirAll(c.outputPath, 0755); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
	}

	bar := progressbar.New(len(inputs))
	for _, inputPath := range inputs {
		if err := buildOne(cfg, inputPath, c.outputFor(inputPath, batch)); err != nil {
			bar.Finish()
			fmt.Println()
			log.Println(err)
			return subcommands.ExitFailure
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Println()

	return subcommands.ExitSuccess
}
