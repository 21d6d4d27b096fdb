package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/skrm-sewa/duty-tracker/backend/internal/config"
	"github.com/skrm-sewa/duty-tracker/backend/internal/repository"
	"github.com/skrm-sewa/duty-tracker/backend/internal/seed"
	"github.com/skrm-sewa/duty-tracker/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "operation (1: insert random sewadars, 2: seed group incharges, 3: import roster CSV)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.StringVar(&file, "file", "./internal/seed/data/roster.csv", "roster CSV path for -op 3")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the database; ping to verify the DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("invalid sewadar count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				sewadar := utils.GenerateRandomSewadar(utils.GenerateRandomGroup())
				if err := repo.CreateSewadar(sewadar); err != nil {
					slog.Error("failed to insert sewadar", slog.String("error", err.Error()))
					continue
				}
				cnt--
			}

			slog.Info("sewadars inserted", slog.Int("count", n-cnt))
		}
	case 2:
		seed.SeedIncharges(repo, cfg.Seed.Incharge.Password)
	case 3:
		seed.ImportRoster(repo, file)
	default:
		slog.Error("unknown operation")
	}
}
