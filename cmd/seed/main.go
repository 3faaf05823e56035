// Command seed loads the demonstration cinemas and rooms into an empty
// store, or wipes every facility row with -clear.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-maintenance/internal/config"
	"github.com/iliyamo/cinema-maintenance/internal/database"
	"github.com/iliyamo/cinema-maintenance/internal/logger"
	"github.com/iliyamo/cinema-maintenance/internal/repository"
	"github.com/iliyamo/cinema-maintenance/internal/service"
)

func main() {
	wipe := flag.Bool("clear", false, "delete all facility data instead of seeding")
	flag.Parse()

	cfg := config.Load()
	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "cinema-maintenance-seed")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Open(database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		zl.Fatal("database connect", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		zl.Fatal("database migrate", zap.Error(err))
	}

	sample := service.NewSampleData(repository.NewStore(db), zl)
	if *wipe {
		if err := sample.Clear(ctx); err != nil {
			zl.Fatal("clear", zap.Error(err))
		}
		return
	}
	if _, err := sample.Seed(ctx); err != nil {
		zl.Fatal("seed", zap.Error(err))
	}
}
