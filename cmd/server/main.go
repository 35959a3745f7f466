// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/draftden/draftden/internal/bot"
	"github.com/draftden/draftden/internal/cache"
	"github.com/draftden/draftden/internal/cards"
	"github.com/draftden/draftden/internal/database"
	"github.com/draftden/draftden/internal/handlers"
	"github.com/draftden/draftden/internal/models"
	"github.com/draftden/draftden/internal/rng"
	"github.com/draftden/draftden/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	ctx := context.Background()

	pool, err := database.Connect(ctx)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer pool.Close()
	store := database.NewDraftStore(pool)

	// Redis is optional; the service runs uncached without it.
	snapshots, err := cache.Connect(ctx)
	if err != nil {
		logger.WithError(err).Warn("redis unavailable, running without snapshot cache")
		snapshots = nil
	}

	source := rng.NewFromTime()
	runner := &bot.Runner{RNG: source}
	svc := service.NewDraftService(store, snapshots, runner, logger)

	// Card metadata is loaded once at startup; the engine itself never
	// touches the network.
	resolver := cards.NewStaticResolver(map[string]models.CardReference{})

	srv := handlers.NewApiServer(svc, resolver, source, logger)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
