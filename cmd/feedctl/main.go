// Package main is the entry point for the feedctl CLI.
package main

import (
	"os"

	"github.com/feedworks/feedctl/cmd/feedctl/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
