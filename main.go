package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"smartpick/api"
	"smartpick/config"
	"smartpick/scraper/flipkart"
	"smartpick/services"
	"smartpick/storage"
	"smartpick/transcript"
	"smartpick/utils"
	"smartpick/youtube"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger.Info("=== SmartPick Recommendation System ===")

	store, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	switch os.Args[1] {
	case "serve":
		runServe(cfg, store, logger)
	case "import":
		if len(os.Args) < 3 {
			logger.Error("Usage: smartpick import <phone_data.csv>")
			os.Exit(1)
		}
		runImport(ctx, cfg, store, logger, os.Args[2])
	case "sync-reviews":
		runSyncReviews(ctx, cfg, store, logger)
	case "update-battery":
		runUpdateBattery(ctx, store, logger)
	case "scrape":
		runScrape(ctx, cfg, store, logger)
	default:
		logger.Error("Unknown command: %s", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: smartpick <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve             start the recommendation API server")
	fmt.Println("  import <csv>      import a phone catalog CSV into PostgreSQL")
	fmt.Println("  sync-reviews      fetch and analyze YouTube reviews for stored phones")
	fmt.Println("  update-battery    recompute battery scores from stored battery specs")
	fmt.Println("  scrape            scrape the phone catalog and store it")
}

func runServe(cfg *config.Config, store *storage.PostgresStore, logger *utils.Logger) {
	recommender := services.NewRecommender(store, store, cfg.ReviewsPerPhone, logger)
	server := api.NewServer(recommender, store, store, logger)

	addr := ":" + cfg.HTTPPort
	logger.Info("API listening on %s", addr)
	logger.Info("Try: curl 'http://localhost:%s/api/recommendations?budget=60000&priorities=camera,battery,performance,privacy,design'", cfg.HTTPPort)

	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}

func runImport(ctx context.Context, cfg *config.Config, store *storage.PostgresStore, logger *utils.Logger, path string) {
	importer := services.NewImporter(store, logger)

	report, err := importer.ImportCSV(ctx, path)
	if err != nil {
		logger.Error("Import failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("  Done. %d imported | %d skipped | %d failed (of %d rows)\n\n",
		report.Imported, report.Skipped, report.Failed, report.Total)
}

func runSyncReviews(ctx context.Context, cfg *config.Config, store *storage.PostgresStore, logger *utils.Logger) {
	if cfg.YouTubeAPIKey == "" {
		logger.Error("YOUTUBE_API_KEY is not set. Get one at https://console.cloud.google.com/apis/credentials")
		os.Exit(1)
	}
	if cfg.TranscriptAPIKey == "" {
		logger.Error("TRANSCRIPT_API_KEY is not set. Get one at https://transcriptapi.com")
		os.Exit(1)
	}

	ytClient, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey, cfg.TrustedChannelIDs(), logger)
	if err != nil {
		logger.Error("YouTube client init failed: %v", err)
		os.Exit(1)
	}

	transcriptClient := transcript.NewClient(cfg.TranscriptAPIURL, cfg.TranscriptAPIKey)

	syncer := services.NewReviewSyncer(services.ReviewSyncerDeps{
		Phones:      store,
		Reviews:     store,
		Search:      ytClient,
		Transcripts: transcriptClient,
		Analyzer:    services.NewAnalyzer(nil),
		Logger:      logger,

		VideoDelay:        time.Duration(cfg.VideoDelayMs) * time.Millisecond,
		PhoneDelay:        time.Duration(cfg.PhoneDelayMs) * time.Millisecond,
		MaxVideosPerPhone: cfg.MaxVideosPerPhone,
		MaxPhonesPerRun:   cfg.MaxPhonesPerSync,
	})

	report, err := syncer.SyncAll(ctx)
	if err != nil {
		logger.Error("Review sync failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("  Done. %d reviews synced | %d failed (across %d phones)\n\n",
		report.Synced, report.Failed, report.Phones)
}

func runUpdateBattery(ctx context.Context, store *storage.PostgresStore, logger *utils.Logger) {
	importer := services.NewImporter(store, logger)

	updated, err := importer.UpdateBatteryScores(ctx)
	if err != nil {
		logger.Error("Battery score update failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("  Done. %d battery scores updated\n\n", updated)
}

func runScrape(ctx context.Context, cfg *config.Config, store *storage.PostgresStore, logger *utils.Logger) {
	logger.Info("Config — pages: %d | listings/page: %d | concurrency: %d | rate: %dms",
		cfg.PagesToScrape, cfg.ListingsPerPage, cfg.MaxConcurrency, cfg.RateLimitMs)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	scraper := flipkart.New(cfg, logger)
	rawPhones, err := scraper.Scrape()
	if err != nil {
		logger.Error("Catalog scrape failed: %v", err)
	}

	if len(rawPhones) == 0 {
		logger.Error("No phones were scraped. Exiting.")
		os.Exit(1)
	}

	logger.Info("Scraped %d raw phones — writing to CSV...", len(rawPhones))

	if err := csvWriter.WriteRaw(rawPhones); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Raw phones saved to %s", cfg.CSVOutputPath)
	}

	importer := services.NewImporter(store, logger)
	report := importer.ImportRaw(ctx, rawPhones)

	fmt.Printf("  Done. Raw CSV → %s | %d phones stored in PostgreSQL\n\n",
		cfg.CSVOutputPath, report.Imported)
}
