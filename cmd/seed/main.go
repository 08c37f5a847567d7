package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-logmanager/config"
	"github.com/oksasatya/go-logmanager/internal/application"
	"github.com/oksasatya/go-logmanager/internal/container"
	pginfra "github.com/oksasatya/go-logmanager/internal/infrastructure/postgres"
	"github.com/oksasatya/go-logmanager/pkg/helpers"
)

func ptr(f float64) *float64 { return &f }

// The first user creates themself; the rest are created by Petra.
var demoUsers = []application.UserRequest{
	{Actor: "Petra", Name: "Petra", Birthdate: "1999-12-13", Weight: ptr(65.0), Height: ptr(1.6), FavouriteColor: "red"},
	{Actor: "Petra", Name: "Torsten", Birthdate: "1985-12-05", Weight: ptr(61.3), Height: ptr(1.83), FavouriteColor: "blue"},
	{Actor: "Petra", Name: "Hans", Birthdate: "1993-02-03", Weight: ptr(75.7), Height: ptr(1.85), FavouriteColor: "red"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	c := &container.Container{Config: cfg, Logger: logger, Store: pginfra.NewUnitOfWork(pool), PGPool: pool}
	svc := c.BuildServices()

	for _, req := range demoUsers {
		msg, err := svc.Users.AddUser(ctx, req)
		if errors.Is(err, application.ErrUserAlreadyExists) {
			logger.WithField("name", req.Name).Info("user already seeded")
			continue
		}
		if err != nil {
			log.Fatalf("failed to seed %s: %v", req.Name, err)
		}
		logger.WithField("name", req.Name).Info(msg)
	}
}
