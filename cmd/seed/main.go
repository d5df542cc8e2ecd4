package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"archives/internal/config"
	"archives/internal/db"
	"archives/internal/logger"
	"archives/internal/repository"
	"archives/internal/seed"
	"archives/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB, cfg.ResetDB, log); err != nil {
		log.Fatal("database migrate", zap.Error(err))
	}

	userService := service.NewUserService(repository.NewUserRepository(gormDB), log)
	seeder := seed.New(userService, repository.NewFileRepository(gormDB), log)

	res, err := seeder.Run(context.Background())
	if err != nil {
		log.Fatal("seed", zap.Error(err))
	}

	fmt.Printf("Seed completed: %d users, %d files created\n", res.Users, res.Files)
	for _, a := range seed.Accounts {
		fmt.Printf("  %-20s %-10s %s\n", a.Email, a.Password, a.Role)
	}
}
