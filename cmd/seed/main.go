package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/capframe/capframe-backend/internal/app"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
)

// Seeds the capability catalog outside the server boot path, for fresh
// environments and for loading an alternate catalog file.
func main() {
	var seedFile string
	var listOnly bool
	flag.StringVar(&seedFile, "file", "", "seed catalog yaml (defaults to the embedded catalog)")
	flag.BoolVar(&listOnly, "list", false, "print current capabilities instead of seeding")
	flag.Parse()

	if seedFile = strings.TrimSpace(seedFile); seedFile != "" {
		os.Setenv("CAPFRAME_SEED_YAML", seedFile)
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()

	if listOnly {
		rows, err := application.Repos.Capability.List(dbctx.Context{Ctx: ctx}, nil)
		if err != nil {
			fmt.Printf("list capabilities: %v\n", err)
			os.Exit(1)
		}
		for _, row := range rows {
			fmt.Printf("%s  %s (%s) %d.%d.%d.%d\n",
				row.ID.String(), row.Name, row.Status,
				row.VersionMajor, row.VersionMinor, row.VersionPatch, row.VersionBuild)
		}
		fmt.Printf("total=%d\n", len(rows))
		return
	}

	created, err := application.Services.Seeder.Seed(ctx)
	if err != nil {
		fmt.Printf("seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("done; created=%d\n", created)
}
