// migrate applies the solve/challenge schema from embedded SQL; run with go run ./cmd/migrate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Huskehhh/hackthebot/internal/config"
	"github.com/Huskehhh/hackthebot/internal/db/migrate"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	dsn := config.LoadDatabaseURL()
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set; the in-memory store needs no migrations")
		os.Exit(1)
	}

	if err := migrate.Run(dsn, *direction); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			// Already at target version.
			return
		}
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
