package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/funds-transfer-engine/internal/adapter/http/controller"
	"github.com/api-sage/funds-transfer-engine/internal/adapter/http/router"
	"github.com/api-sage/funds-transfer-engine/internal/adapter/rateapi"
	"github.com/api-sage/funds-transfer-engine/internal/adapter/repository/memory"
	"github.com/api-sage/funds-transfer-engine/internal/adapter/repository/postgres"
	"github.com/api-sage/funds-transfer-engine/internal/config"
	"github.com/api-sage/funds-transfer-engine/internal/domain"
	"github.com/api-sage/funds-transfer-engine/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var accountRepo domain.AccountRepository
	switch cfg.AccountStore {
	case "memory":
		accountRepo = memory.NewAccountRepository(memory.SeedAccounts()...)
		log.Println("using in-memory account store with seed accounts")
	default:
		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		defer db.Close()

		if err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			log.Fatalf("run migrations: %v", err)
		}
		log.Println("migrations completed successfully")

		accountRepo = postgres.NewAccountRepository(db)
	}

	rateProvider := rateapi.NewClient(cfg.RateAPIURL, cfg.RateAPIKey, nil)
	rateCache := services.NewRateCache(rateProvider, cfg.RateCacheTTL, cfg.RateCacheMaxEntries, nil)

	accountService := services.NewAccountService(accountRepo)
	currencyService := services.NewCurrencyService(rateCache)
	transferService := services.NewTransferService(accountService, currencyService, nil)

	mux := router.New(
		controller.NewTransferController(transferService),
		controller.NewAccountController(accountService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("funds transfer engine listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("http server: %v", err)
	}
}
