package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/eak1mov/go-tilecatalog/store"
	"github.com/google/subcommands"
)

type inspectCmd struct {
	inputPath string
	top       int
}

func (c *inspectCmd) Name() string     { return "inspect" }
func (c *inspectCmd) Synopsis() string { return "print catalog summary and frequency table" }
func (c *inspectCmd) Usage() string {
	return "tilecatalog inspect -i <path> [-top <n>]\n"
}
func (c *inspectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input catalog path")
	f.IntVar(&c.top, "top", 20, "Number of most frequent tiles to print (0 for all)")
}

func (c *inspectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	reader, err := store.NewReader(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	metadata, err := reader.ReadMetadata()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	cat, err := reader.ReadCatalog()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	for _, name := range slices.Sorted(maps.Keys(metadata)) {
		fmt.Printf("%-12s %v\n", name, metadata[name])
	}
	fmt.Printf("%-12s %dx%d\n", "grid", cat.Grid.Rows, cat.Grid.Cols)
	fmt.Printf("%-12s %d\n", "distinct", cat.Distinct())
	fmt.Printf("%-12s %.4f\n", "entropy", cat.Entropy())
	fmt.Println()

	frequencies := cat.MostFrequent()
	if c.top > 0 && c.top < len(frequencies) {
		frequencies = frequencies[:c.top]
	}
	for _, freq := range frequencies {
		fmt.Printf("%v %8d\n", freq.ID, freq.Count)
	}

	return subcommands.ExitSuccess
}
