package main

import (
	"log"

	"github.com/mimi1vx/osc-plugin-qam/internal/adapters"
	"github.com/mimi1vx/osc-plugin-qam/internal/config"
	"github.com/mimi1vx/osc-plugin-qam/internal/core"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func main() {
	injector := do.New(
		config.Package,
		core.Package,
		adapters.SecondaryPackage,
		adapters.PrimaryPackage,
	)

	cmd, err := do.Invoke[*cobra.Command](injector)
	if err != nil {
		log.Fatalf("failed to create CLI command: %v", err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
