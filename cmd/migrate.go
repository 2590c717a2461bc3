package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/rubiojr/parems/pkg/config"
	"github.com/rubiojr/parems/pkg/db"
	"github.com/urfave/cli/v3"
)

// MigrateCommand creates the migrate command
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Run database migrations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "status",
				Usage: "Show migration status without applying migrations",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return RunMigrations(c.String("config"), c.Bool("status"), os.Stdout)
		},
	}
}

// RunMigrations applies pending migrations or, with statusOnly, reports them
func RunMigrations(configPath string, statusOnly bool, out io.Writer) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(cfg.Database); os.IsNotExist(err) {
		fmt.Fprintf(out, "Database does not exist, will be created by 'parems install': %s\n", cfg.Database)
		return nil
	}

	conn, err := sql.Open("sqlite3", cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	migrationManager := db.NewMigrationManager(conn)
	if statusOnly {
		return showMigrationStatus(migrationManager, out)
	}

	if err := migrationManager.ApplyPendingMigrations(); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	fmt.Fprintln(out, "All migrations completed successfully")
	return nil
}

// showMigrationStatus displays the current migration status
func showMigrationStatus(manager *db.MigrationManager, out io.Writer) error {
	status, err := manager.GetMigrationStatus()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Applied migrations: %d\n", len(status.Applied))
	for _, migration := range status.Applied {
		appliedTime := "unknown"
		if migration.AppliedAt != nil {
			appliedTime = migration.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(out, "  ✓ %03d: %s (applied: %s)\n", migration.Version, migration.Name, appliedTime)
	}

	fmt.Fprintf(out, "Pending migrations: %d\n", len(status.Pending))
	for _, migration := range status.Pending {
		fmt.Fprintf(out, "  • %03d: %s\n", migration.Version, migration.Name)
	}

	if len(status.Pending) == 0 {
		fmt.Fprintln(out, "  (none - database is up to date)")
	}

	return nil
}
