package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/product-catalog/internal/config"
)

func main() {
	var (
		dsn  = flag.String("dsn", "", "Database connection string (defaults to config.toml)")
		all  = flag.Bool("all", false, "Run all seeders")
		name = flag.String("seeder", "", "Run a single seeder by name")
		file = flag.String("file", "", "External seed file for -seeder products (overrides embedded)")
		list = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if !*all && *name == "" {
		fmt.Println("usage: seed [-dsn <connection-string>] [-all | -seeder <name> [-file <path>]] [-list]")
		flag.PrintDefaults()
		return
	}

	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("database connection string required: use -dsn or a valid config.toml: %v", err)
		}
		*dsn = cfg.Database.Dsn()
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	selected := listSeeders()
	if !*all {
		s, ok := getSeeder(*name)
		if !ok {
			log.Fatalf("seeder not found: %s", *name)
		}
		if ps, ok := s.(*ProductSeeder); ok && *file != "" {
			ps.SetFile(*file)
		}
		selected = []Seeder{s}
	}

	if err := runSeeders(ctx, db, selected...); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	fmt.Printf("%d seeder(s) completed successfully\n", len(selected))
}
