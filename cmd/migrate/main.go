package main

import (
	"context"
	"flag"
	"log"
	"time"

	"slidequiz/internal/config"
	"slidequiz/internal/database"
	"slidequiz/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "revert the most recent migration instead of applying pending ones")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if !cfg.DB.Enabled() {
		l.Fatal("Database is not configured, set db.host")
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN(), l)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, l)
	if err != nil {
		l.Fatal("Failed to load migrations", zap.Error(err))
	}
	defer migrator.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *down {
		err = migrator.Down(ctx)
	} else {
		err = migrator.Up(ctx)
	}
	if err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}

	version, err := migrator.Version(ctx)
	if err != nil {
		l.Fatal("Failed to read schema version", zap.Error(err))
	}
	l.Info("Schema is up to date", zap.Uint("version", version))
}
