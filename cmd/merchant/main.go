// Package main provides the entry point for the merchant CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/treeforge/merchant/cmd/merchant/app"
	"github.com/treeforge/merchant/cmd/merchant/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	application, err := app.New(version, commit)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cmd.NewRootCommand(application)
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		app.ExitOnError(err)
	}
}
