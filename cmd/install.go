package cmd

import (
	"context"
	"fmt"

	"github.com/rubiojr/parems/pkg/dataset"
	"github.com/urfave/cli/v3"
)

// InstallCommand creates the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Create the catalog database and import a YAML dataset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Usage:    "Dataset file (YAML)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return install(ctx, c.String("config"), c.String("data"))
		},
	}
}

// install replaces the catalog contents with the dataset at dataPath
func install(ctx context.Context, configPath, dataPath string) error {
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return err
	}

	cfg, store, err := openStore(configPath, true)
	if err != nil {
		return err
	}
	defer closeStore(store)

	stats, err := store.Import(ctx, ds)
	if err != nil {
		return fmt.Errorf("importing dataset: %w", err)
	}
	if err := store.Optimize(ctx); err != nil {
		return err
	}

	fmt.Printf("Installed %d paremiotipus (%d entries, %d fonts) into %s\n",
		stats.Titles, stats.Entries, stats.Fonts, cfg.Database)
	return nil
}
