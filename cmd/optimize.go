package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// OptimizeCommand creates the optimize command
func OptimizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "optimize",
		Usage: "Database optimization and maintenance commands",
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Run integrity checks on the catalog and its full-text index",
				Action: func(ctx context.Context, c *cli.Command) error {
					return checkCatalog(ctx, c.String("config"))
				},
			},
			{
				Name:  "fts-rebuild",
				Usage: "Rebuild the full-text index from the catalog table",
				Action: func(ctx context.Context, c *cli.Command) error {
					return rebuildFTS(ctx, c.String("config"))
				},
			},
			{
				Name:  "vacuum",
				Usage: "Run VACUUM to defragment the database",
				Action: func(ctx context.Context, c *cli.Command) error {
					return vacuumCatalog(ctx, c.String("config"))
				},
			},
			{
				Name:  "all",
				Usage: "Merge full-text segments and update planner statistics",
				Action: func(ctx context.Context, c *cli.Command) error {
					return optimizeCatalog(ctx, c.String("config"))
				},
			},
			{
				Name:  "stats",
				Usage: "Show catalog statistics",
				Action: func(ctx context.Context, c *cli.Command) error {
					return showStats(ctx, c.String("config"))
				},
			},
		},
	}
}

func checkCatalog(ctx context.Context, configPath string) error {
	_, store, err := openStore(configPath, false)
	if err != nil {
		return err
	}
	defer closeStore(store)

	problems, err := store.CheckIntegrity(ctx)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		fmt.Println("✓ catalog and full-text index are consistent")
		return nil
	}
	for _, p := range problems {
		fmt.Printf("✗ %s\n", p)
	}
	return fmt.Errorf("%d integrity problems found, try 'parems optimize fts-rebuild'", len(problems))
}

func rebuildFTS(ctx context.Context, configPath string) error {
	_, store, err := openStore(configPath, false)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.RebuildIndex(ctx); err != nil {
		return err
	}
	fmt.Println("Full-text index rebuilt")
	return nil
}

func vacuumCatalog(ctx context.Context, configPath string) error {
	_, store, err := openStore(configPath, false)
	if err != nil {
		return err
	}
	defer closeStore(store)

	before, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	if err := store.Vacuum(ctx); err != nil {
		return err
	}
	after, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Vacuum complete: %s -> %s\n", formatBytes(before.FileSize), formatBytes(after.FileSize))
	return nil
}

func optimizeCatalog(ctx context.Context, configPath string) error {
	_, store, err := openStore(configPath, false)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.Optimize(ctx); err != nil {
		return err
	}
	fmt.Println("Optimization complete")
	return nil
}

func showStats(ctx context.Context, configPath string) error {
	cfg, store, err := openStore(configPath, false)
	if err != nil {
		return err
	}
	defer closeStore(store)

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Catalog: %s (%s)\n", cfg.Database, formatBytes(stats.FileSize))
	fmt.Printf("  Paremiotipus: %d\n", stats.Titles)
	fmt.Printf("  Entries:      %d\n", stats.Entries)
	fmt.Printf("  Fonts:        %d\n", stats.Fonts)
	return nil
}
