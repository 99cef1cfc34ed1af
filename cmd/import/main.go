// Command import loads a CSV transaction batch straight into the configured
// store, bypassing the HTTP API. Useful for seeding local development data
// and bulk backfills.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"

	"github.com/fincoach/backend/internal/config"
	"github.com/fincoach/backend/internal/ingest"
	"github.com/fincoach/backend/internal/logger"
	"github.com/fincoach/backend/internal/service"
	"github.com/fincoach/backend/internal/store"
)

func main() {
	var (
		path   = flag.String("file", "", "path to the transactions CSV")
		user   = flag.String("user", "", "user ID to import the transactions under")
		dryRun = flag.Bool("dry-run", false, "parse and report without writing")
	)
	flag.Parse()

	if *path == "" || *user == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file transactions.csv -user <user-id> [-dry-run]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)
	ctx := context.Background()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("failed to open CSV")
	}
	defer f.Close()

	txs, err := ingest.ReadTransactionsCSV(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("failed to parse CSV")
	}

	if *dryRun {
		log.Info().Int("count", len(txs)).Msg("dry run: parsed transactions, nothing written")
		return
	}

	var storeImpl store.Store
	switch cfg.Store.Backend {
	case "memory":
		log.Fatal().Msg("the memory store does not persist; set FINCOACH_STORE_BACKEND=firestore")
	case "firestore":
		firestoreClient, err := firestore.NewClient(ctx, cfg.Store.ProjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Firestore client")
		}
		defer firestoreClient.Close()
		storeImpl = store.NewFirestoreStore(firestoreClient)
	}

	svc := service.NewCoachService(storeImpl, log)
	count, err := svc.ImportTransactions(ctx, *user, txs)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().Int("count", count).Str("user_id", *user).Msg("import complete")
}
