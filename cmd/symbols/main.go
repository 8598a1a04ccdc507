package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"time"

	"ChartPulse/internal/di"
	"ChartPulse/internal/domain/models"
	"ChartPulse/internal/services/symbols"
	"ChartPulse/pkg/config"
	xhttp "ChartPulse/pkg/http"

	"github.com/joho/godotenv"
)

// Batch updater for the tradable-symbol reference lists. Downloads the
// exchange symbol directory, writes a CSV snapshot, and replaces the stored
// lists when a ClickHouse backend is configured.
func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	outPath := flag.String("out", "symbols.csv", "CSV output path")
	dirURL := flag.String("url", "", "symbol directory URL override")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fetcher := symbols.NewFetcher(xhttp.NewClient(xhttp.WithTimeout(cfg.Market.Timeout)), *dirURL)
	entries, err := fetcher.Fetch(ctx)
	if err != nil {
		log.Fatalf("fetch symbol directory: %v", err)
	}
	log.Printf("fetched %d symbols", len(entries))

	if err := writeCSV(*outPath, entries); err != nil {
		log.Fatalf("write csv: %v", err)
	}
	log.Printf("wrote %s", *outPath)

	if cfg.ClickHouse.Enabled {
		store, err := di.ProvideSymbolStore(cfg, logger)
		if err != nil {
			log.Fatalf("symbol store init failed: %v", err)
		}
		defer store.Close()

		byMarket := map[string][]models.SymbolEntry{}
		for _, e := range entries {
			byMarket[e.Market] = append(byMarket[e.Market], e)
		}
		for market, list := range byMarket {
			if err := store.Replace(ctx, market, list); err != nil {
				log.Fatalf("replace %s symbols: %v", market, err)
			}
			log.Printf("stored %d %s symbols", len(list), market)
		}
	}
}

func writeCSV(path string, entries []models.SymbolEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Symbol", "Name", "Market"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Symbol, e.Name, e.Market}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
