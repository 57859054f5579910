// main.go
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"ticket-ledger/cmd"
	"ticket-ledger/internal/data/repository"
	"ticket-ledger/internal/data/store"
	"ticket-ledger/internal/token"
	"ticket-ledger/internal/wire"
	"ticket-ledger/pkg/database"
	"ticket-ledger/pkg/utils"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	// Open the account store
	accountStore, err := openStore(config, logger)
	if err != nil {
		logger.Fatal("Failed to open account store", zap.Error(err))
	}
	defer accountStore.Close()

	logger.Info("Account store ready", zap.String("driver", config.Store.Driver))

	// Initialize repositories and the token ledger
	repos := repository.NewRepository(accountStore, logger)
	ledger := token.NewLedger(repos.TokenAccount, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, ledger, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

func openStore(config *utils.Config, logger *zap.Logger) (store.AccountStore, error) {
	switch config.Store.Driver {
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(context.Background(), db, logger)

	case "memory":
		logger.Warn("Using in-memory account store; state is lost on restart")
		return store.NewMemoryStore(), nil

	default:
		db, err := database.InitBadger(config.Badger)
		if err != nil {
			return nil, err
		}
		return store.NewBadgerStore(db, logger), nil
	}
}
