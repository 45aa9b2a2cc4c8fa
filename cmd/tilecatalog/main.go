package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/eak1mov/go-tilecatalog/config"
	"github.com/google/subcommands"
	_ "github.com/mattn/go-sqlite3"
)

func newLogger(cfg *config.Config) *slog.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&buildCmd{}, "")
	subcommands.Register(&inspectCmd{}, "")
	subcommands.Register(&exportCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
