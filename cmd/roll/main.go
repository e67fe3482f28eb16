// Package main provides a CLI for rolling dice notation expressions.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/dicenotation/internal/platform/config"
	"github.com/louisbranch/dicenotation/internal/tools/roll"
)

func main() {
	cfg, err := roll.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := roll.Run(ctx, cfg, os.Stdout, nil); err != nil {
		config.Exitf("Error: %v", err)
	}
}
