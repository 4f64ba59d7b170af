// Command migrate applies the dashboard's schema migrations. The server
// auto-migrates on boot; this tool covers the remaining cases: rolling back,
// stepping, and checking the current version from the command line.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var migrationsDir string

func main() {
	flag.StringVar(&migrationsDir, "dir", "migrations", "Directory containing migration files")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "❌ DATABASE_URL is not set")
		os.Exit(1)
	}

	m, err := migrate.New("file://"+migrationsDir, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open migrator: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	if err := run(m, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(m *migrate.Migrate, command string, args []string) error {
	switch command {
	case "up":
		return report(m.Up())
	case "down":
		return report(m.Steps(-1))
	case "drop":
		return report(m.Down())
	case "steps":
		if len(args) != 1 {
			return errors.New("steps requires one argument, e.g. steps -2")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return report(m.Steps(n))
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("📦 No migrations applied yet")
			return nil
		}
		if err != nil {
			return err
		}
		state := "clean"
		if dirty {
			state = "dirty"
		}
		fmt.Printf("📦 Schema version %d (%s)\n", version, state)
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func report(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("📦 Already up to date")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("✅ Done")
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate [flags] <command>

Commands:
  up          Apply all pending migrations
  down        Roll back the most recent migration
  steps <n>   Apply n migrations (negative rolls back)
  drop        Roll back everything
  version     Print the current schema version

Flags:
`)
	flag.PrintDefaults()
}
