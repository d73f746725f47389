package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/icydoge/avaroute/internal/adapters/postgres"
	"github.com/icydoge/avaroute/internal/pkg/config"
)

var upFiles = []string{
	"migrations/001_forecasts.sql",
	"migrations/002_seed_locations.sql",
	"migrations/003_past_avalanches.sql",
}

const downSQL = `
DROP TABLE IF EXISTS past_avalanches;
DROP TABLE IF EXISTS forecasts;
DROP TABLE IF EXISTS locations;
`

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|down|seed forecasts.json|seed-avalanches avalanches.json>")
	}
	_ = godotenv.Load()

	cfg, err := config.Load("avaroute-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	switch os.Args[1] {
	case "up":
		runMigrations(ctx, pool)
	case "down":
		if _, err := pool.Exec(ctx, downSQL); err != nil {
			log.Fatalf("down: %v", err)
		}
		log.Println("forecast and avalanche tables dropped")
	case "seed":
		if len(os.Args) < 3 {
			log.Fatal("usage: migrate seed forecasts.json")
		}
		if err := seed(ctx, postgres.NewForecastRepo(&postgres.DB{Pool: pool}), os.Args[2]); err != nil {
			log.Fatalf("seed: %v", err)
		}
	case "seed-avalanches":
		if len(os.Args) < 3 {
			log.Fatal("usage: migrate seed-avalanches avalanches.json")
		}
		if err := seedAvalanches(ctx, postgres.NewAvalancheRepo(&postgres.DB{Pool: pool}), os.Args[2]); err != nil {
			log.Fatalf("seed-avalanches: %v", err)
		}
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) {
	for _, f := range upFiles {
		data, err := os.ReadFile(f)
		if err != nil {
			log.Fatalf("read %s: %v", f, err)
		}

		_, err = pool.Exec(ctx, string(data))
		if err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}

		fmt.Printf("OK  %s\n", f)
	}

	log.Println("all migrations applied")
}
