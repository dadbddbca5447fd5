package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"seamless/config"
	"seamless/database"
	"seamless/engine"
	"seamless/jobs"
	"seamless/ledger"
	"seamless/logging"
	"seamless/resolver"
	"seamless/routes"
	"seamless/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment")
	}

	logger := logging.New("seamless")

	database.Connect()
	cfg := config.Load()

	store := ledger.NewGormStore(database.DB)
	players := resolver.New(resolver.NewGormPlayerStore(database.DB), cfg.Providers.Prefixes)
	gateway := wallet.NewHTTPGateway(cfg.Wallet.Timeout, logger)
	e := engine.New(store, gateway, players, cfg.Wallet, logger)

	host := os.Getenv("HOST")
	port := os.Getenv("PORT")
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "3000"
	}

	app := fiber.New()
	routes.Setup(app, e, players, cfg)
	jobs.StartSessionSweeper(logger)

	addr := fmt.Sprintf("%s:%s", host, port)
	logger.Info().Str("addr", addr).Msg("server starting")

	go func() {
		if err := app.Listen(addr); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info().Msg("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Fatal().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server exited cleanly")
}
