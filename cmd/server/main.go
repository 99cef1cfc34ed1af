package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/rs/cors"

	"github.com/fincoach/backend/internal/api/handlers"
	"github.com/fincoach/backend/internal/api/middleware"
	"github.com/fincoach/backend/internal/config"
	"github.com/fincoach/backend/internal/logger"
	"github.com/fincoach/backend/internal/service"
	"github.com/fincoach/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)

	ctx := context.Background()

	var storeImpl store.Store
	switch cfg.Store.Backend {
	case "memory":
		log.Info().Msg("using in-memory store for local development")
		storeImpl = store.NewMemoryStore()
	case "firestore":
		firestoreClient, err := firestore.NewClient(ctx, cfg.Store.ProjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Firestore client")
		}
		defer firestoreClient.Close()
		storeImpl = store.NewFirestoreStore(firestoreClient)
	}

	coachService := service.NewCoachService(storeImpl, log)

	mux := http.NewServeMux()
	handlers.NewCoachHandler(coachService, log).Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"User-Agent",
			"X-Request-ID",
			"X-User-ID",
		},
		AllowCredentials: true,
	})

	handler := chain(mux,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recovery(log),
		c.Handler,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: handler,
	}

	log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Backend).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// chain wraps h with the middlewares so the first listed runs outermost.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
