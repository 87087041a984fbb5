package main

import (
	"errors"
	"log"
	"os"

	"edulink/internal/config"
	"edulink/internal/repository/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	cli := &commandLine{users: postgres.NewUserRepo(db)}
	if err := cli.run(os.Args); err != nil {
		if errors.Is(err, errHelp) {
			os.Exit(2)
		}
		log.Printf("admin: %v", err)
		os.Exit(1)
	}
}
