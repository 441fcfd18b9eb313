package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fortunaworks/spinvault/internal/announce"
	"github.com/fortunaworks/spinvault/internal/config"
	"github.com/fortunaworks/spinvault/internal/database"
	"github.com/fortunaworks/spinvault/internal/database/postgres"
	"github.com/fortunaworks/spinvault/internal/domain"
	"github.com/fortunaworks/spinvault/internal/event"
	"github.com/fortunaworks/spinvault/internal/handler"
	"github.com/fortunaworks/spinvault/internal/jackpot"
	"github.com/fortunaworks/spinvault/internal/logger"
	"github.com/fortunaworks/spinvault/internal/metrics"
	"github.com/fortunaworks/spinvault/internal/oracle"
	"github.com/fortunaworks/spinvault/internal/quota"
	"github.com/fortunaworks/spinvault/internal/reward"
	"github.com/fortunaworks/spinvault/internal/server"
	"github.com/fortunaworks/spinvault/internal/spin"
	"github.com/fortunaworks/spinvault/internal/tier"
	"github.com/fortunaworks/spinvault/internal/token"
	"github.com/fortunaworks/spinvault/internal/treasury"
	"github.com/fortunaworks/spinvault/internal/worker"
)

const (
	shutdownTimeout  = 15 * time.Second
	localOracleDelay = 2 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)
	handler.InitValidator()

	ctx := context.Background()

	pool, err := database.NewPool(cfg.GetDBConnString(), 25, 30*time.Minute, time.Hour)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Repositories
	accountRepo := postgres.NewAccountRepository(pool)
	pendingRepo := postgres.NewPendingRepository(pool)
	jackpotRepo := postgres.NewJackpotRepository(pool)

	if err := jackpotRepo.InitJackpot(ctx, &domain.JackpotState{
		Pool:           cfg.JackpotSeedAmount,
		ContributionBP: cfg.JackpotContributionBP,
		SeedAmount:     cfg.JackpotSeedAmount,
		WinningTier:    cfg.JackpotWinningTier,
		UpdatedAt:      time.Now().UTC(),
	}); err != nil {
		log.Fatalf("Failed to initialize jackpot state: %v", err)
	}

	// Event bus and resilient publisher
	bus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(bus,
		event.DefaultResilientConfig(filepath.Join(cfg.LogDir, "dead_letter.log")))

	metricsCollector := metrics.NewEventMetricsCollector()
	metricsCollector.Register(bus)

	// Tier table
	table, err := loadTierTable(cfg.TierTablePath)
	if err != nil {
		log.Fatalf("Failed to load tier table: %v", err)
	}

	// External collaborators
	ledger := token.NewHTTPLedger(cfg.TokenEndpoint)
	vault := treasury.NewHTTPVault(cfg.TreasuryEndpoint)

	var oracleClient oracle.Client
	var localOracle *oracle.LocalOracle
	if cfg.OracleLocalMode {
		localOracle = oracle.NewLocalOracle(localOracleDelay)
		oracleClient = localOracle
		logger.Info("Running with the in-process development oracle")
	} else {
		oracleClient = oracle.NewHTTPClient(cfg.OracleEndpoint, cfg.OracleAPIKey, cfg.OracleCallback)
	}

	// Domain services
	quotaSvc := quota.NewService(accountRepo, quota.Config{
		DayLengthSeconds:      cfg.DayLengthSeconds,
		DailyFreeSpinLimit:    cfg.DailyFreeSpinLimit,
		DailyPremiumSpinLimit: cfg.DailyPremiumSpinLimit,
	})
	jackpotSvc := jackpot.NewService(jackpotRepo, vault, publisher)
	rewardSvc := reward.NewService(vault, publisher)
	spinSvc := spin.NewService(quotaSvc, table, jackpotSvc, rewardSvc, oracleClient, ledger, pendingRepo, publisher, spin.Config{
		PremiumSpinCost: cfg.PremiumSpinCost,
		HouseAccount:    cfg.HouseAccount,
	})

	if localOracle != nil {
		localOracle.SetFulfiller(func(ctx context.Context, requestID string, words []uint64) error {
			_, err := spinSvc.Fulfill(ctx, requestID, words)
			return err
		})
	}

	// Discord announcer is optional
	var announcer *announce.Announcer
	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		announcer, err = announce.New(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			log.Fatalf("Failed to create Discord announcer: %v", err)
		}
		announcer.Register(bus)
		if err := announcer.Start(); err != nil {
			log.Fatalf("Failed to start Discord announcer: %v", err)
		}
	}

	// Background sweep of stuck pending spins
	workerPool := worker.NewPool(2, 16)
	workerPool.Start()
	sweeper := worker.NewStalePendingSweeper(workerPool, pendingRepo, cfg.PendingStaleAfter, cfg.SweepInterval)
	sweeper.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.AdminAPIKey, cfg.TrustedProxies,
		pool, spinSvc, quotaSvc, jackpotSvc, vault)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-stop:
		logger.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}

	sweeper.Stop()
	workerPool.Stop()

	if localOracle != nil {
		localOracle.Wait()
	}
	publisher.Wait()

	if announcer != nil {
		announcer.Stop()
	}

	logger.Info("Shutdown complete")
}

// loadTierTable loads the configured reward table or falls back to the
// built-in default
func loadTierTable(path string) (*tier.Table, error) {
	if path == "" {
		return tier.Default(), nil
	}
	return tier.Load(path)
}
