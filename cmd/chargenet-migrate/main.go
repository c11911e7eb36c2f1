package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"chargenet/internal/db"
)

func main() {
	_ = godotenv.Load()

	dsn := flag.String("db-url", os.Getenv("POSTGRES_DSN"), "Postgres connection string (defaults to POSTGRES_DSN)")
	flag.Parse()

	if *dsn == "" {
		fmt.Println("missing required -db-url param (or POSTGRES_DSN env)")
		flag.Usage()
		os.Exit(1)
	}

	if err := db.MigrateUp(context.Background(), *dsn); err != nil {
		log.Fatalf("failed to run migrations: %s", err)
	}
	log.Println("migrations applied")
}
