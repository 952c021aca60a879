// Command seed loads the demo catalog or creates a user account.
//
//	seed                          load products unless the catalog is non-empty
//	seed create-user EMAIL PASS   register an account
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/seed"
	"storefront/internal/service"

	"go.uber.org/zap"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "directory holding goose migrations")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-migrations dir] [create-user EMAIL PASSWORD]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB(), *migrationsDir, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store := repository.NewStore(dbService.DB())

	switch args := flag.Args(); {
	case len(args) == 0:
		inserted, err := seed.Products(ctx, store, seed.DefaultCatalog())
		if err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		if inserted == 0 {
			log.Info("Products already exist, skipping seed")
			return
		}
		log.Info("Seeded catalog", zap.Int("products", inserted))

	case args[0] == "create-user" && len(args) == 3:
		accounts := service.NewAccountService(store, auth.NewCredentials(cfg.JWT.Secret, cfg.JWT.AccessTTL()))
		user, created, err := seed.User(ctx, accounts, args[1], args[2])
		if err != nil {
			log.Fatal("Failed to create user", zap.Error(err))
		}
		if !created {
			log.Info("User already exists", zap.String("email", args[1]))
			return
		}
		log.Info("Created user", zap.Int64("id", user.ID), zap.String("email", user.Email))

	default:
		flag.Usage()
		os.Exit(2)
	}
}
