package main

import (
	"flag"
	"log"

	"github.com/Houeta/employee-registry/internal/config"
	"github.com/Houeta/employee-registry/internal/repository"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

func main() {
	var migrationsDir string
	var down bool
	flag.StringVar(&migrationsDir, "migrations-path", "migrations", "directory with goose migrations")
	flag.BoolVar(&down, "down", false, "roll back the latest migration instead of applying new ones")
	flag.Parse()

	cfg := config.MustLoad()

	dbpool, dbErr := repository.NewDatabase(
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	dtb := stdlib.OpenDBFromPool(dbpool)
	defer dtb.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal(err) //nolint:gocritic // exitAfterDefer
	}

	if down {
		if err := goose.Down(dtb, migrationsDir); err != nil {
			log.Fatal(err)
		}
		log.Println("Latest migration rolled back")
		return
	}

	if err := goose.Up(dtb, migrationsDir); err != nil {
		log.Fatal(err)
	}

	log.Println("✅ Migrations applied successfully")
}
