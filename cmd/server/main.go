package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"mytunes-api/internal/server"
	"mytunes-api/internal/store"
	"mytunes-api/pkg/env"
	"mytunes-api/pkg/rate_limiter"
	"mytunes-api/pkg/token"
)

var (
	envFilePath        string
	disableRateLimiter bool
)

func init() {
	flag.StringVar(&envFilePath, "env", "", "Enter the env file path you want to load if any")
	flag.BoolVar(&disableRateLimiter, "disableRateLimiter", false, "Disable the rate limiters")
}

func main() {
	slog.Info("MyTunes API")

	flag.Parse()

	if envFilePath != "" {
		slog.Info(fmt.Sprintf("loading env file %s", envFilePath))
		if err := godotenv.Load(envFilePath); err != nil {
			panic(fmt.Errorf("could not be able to load the env file: %v", err))
		}
	}

	if disableRateLimiter {
		slog.Warn("rate limiter is disabled")
	}

	envObj := env.GetEnv()
	slog.Info("env loaded", "version", envObj.Version, "env", envObj.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, closeRepo, err := store.Connect(ctx, envObj.MongoUri, envObj.MongoDatabase)
	cancel()
	if err != nil {
		panic(fmt.Errorf("could not connect to mongo: %v", err))
	}
	defer closeRepo()

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = repo.EnsureIndexes(ctx)
	cancel()
	if err != nil {
		panic(fmt.Errorf("could not ensure indexes: %v", err))
	}

	srv := server.NewServer(server.Dependencies{
		Gate:   rate_limiter.New(),
		Tokens: token.NewService(envObj.JwtSecret, envObj.TokenTtl),
		Repo:   repo,
	}, server.WithDisableRateLimiter(disableRateLimiter))
	srv.Run()
}
