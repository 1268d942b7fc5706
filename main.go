package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/pyrelens/cli"
	"github.com/ardnew/pyrelens/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// By the time an error reaches here the TUI has torn down its
		// alt-screen, so the default stderr logger is safe to use.
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
