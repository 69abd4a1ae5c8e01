// Package main is the entry point for peek.
package main

import (
	"github.com/peek-cli/peek/cmd"
	"github.com/peek-cli/peek/config"
	"github.com/peek-cli/peek/internal/cache"
	"github.com/peek-cli/peek/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Expired catalog responses are swept in the background.
	go cache.CollectGarbage()

	cmd.Execute()
}
