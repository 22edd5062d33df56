package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/phuslu/log"

	"github.com/stacktracker/intelgen/internal/briefs"
	"github.com/stacktracker/intelgen/internal/config"
	"github.com/stacktracker/intelgen/internal/report"
	"github.com/stacktracker/intelgen/internal/search"
	"github.com/stacktracker/intelgen/internal/store"
	"github.com/stacktracker/intelgen/internal/vault"
)

// maxAPICalls is the per-run budget of grounded search calls.
const maxAPICalls = 30

var (
	envFile  = flag.String("env-file", "", "Path to the .env file (default: ~/.clawdbot/.env)")
	logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()
	start := time.Now()

	log.DefaultLogger = log.Logger{
		Level:      log.ParseLevel(*logLevel),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput:    true,
			EndWithMessage: true,
		},
	}

	fmt.Println("============================================================")
	fmt.Println("  Stack Tracker Gold — Intelligence Generator")
	fmt.Printf("  %s\n", start.Format("2006-01-02 15:04:05 MST"))
	fmt.Println("============================================================")

	envPath := *envFile
	if envPath == "" {
		envPath = config.DefaultEnvPath()
	}

	log.Info().Str("path", envPath).Msg("loading environment")
	cfg, err := config.Load(envPath)
	if err != nil {
		log.Error().Err(err).Msg("invalid environment")
		os.Exit(1)
	}

	ctx := context.Background()

	log.Info().Msg("initializing gemini search client")
	searchClient, err := search.NewClient(ctx, cfg.GeminiAPIKey, "", maxAPICalls)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize search client")
		os.Exit(1)
	}

	log.Info().Msg("initializing supabase client")
	db, err := store.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize supabase client")
		os.Exit(1)
	}

	today := time.Now().Format("2006-01-02")

	briefsInserted, finalBriefs := briefs.NewPipeline(searchClient, db).Run(ctx, today)
	vaultInserted, vaultStatus := vault.NewPipeline(searchClient, db).Run(ctx, today)

	summary := report.Summary{
		Date:           today,
		BriefsInserted: briefsInserted,
		Briefs:         finalBriefs,
		VaultInserted:  vaultInserted,
		VaultStatus:    vaultStatus,
		CallsUsed:      searchClient.Calls(),
		CallBudget:     searchClient.Budget(),
		Elapsed:        time.Since(start),
	}

	report.Print(summary)
	report.Email(summary, cfg.Email)

	if !summary.Success() {
		log.Error().Msg("no data generated at all; check API keys and connectivity")
		os.Exit(1)
	}

	log.Info().Msg("done")
}
