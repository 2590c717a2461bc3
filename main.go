package main

import (
	"context"
	"os"

	"github.com/rubiojr/parems/cmd"
	"github.com/rubiojr/parems/pkg/config"
	"github.com/rubiojr/parems/pkg/log"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "parems",
		Usage: "Search engine for the catalog of Catalan paremiotipus",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
				Action: func(ctx context.Context, c *cli.Command, debug bool) error {
					log.SetGlobalDebug(debug)
					return nil
				},
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: getDefaultConfigPathOrExit(),
			},
		},
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.InstallCommand(),
			cmd.SearchCommand(),
			cmd.WebCommand(),
			cmd.OptimizeCommand(),
			cmd.MigrateCommand(),
			cmd.VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.ForService("parems").Fatalf("%v", err)
	}
}

func getDefaultConfigPathOrExit() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		log.ForService("parems").Fatalf("Failed to get default config path: %v", err)
	}
	return path
}
