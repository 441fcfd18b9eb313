package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/fortunaworks/spinvault/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	LogDir      string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey         string // API key for spin/oracle endpoints
	AdminAPIKey    string // separate key for the admin surface
	TrustedProxies []string

	// Spin engine parameters
	DayLengthSeconds      int64
	DailyFreeSpinLimit    int
	DailyPremiumSpinLimit int
	PremiumSpinCost       int64
	HouseAccount          string // ledger account premium charges land on

	// Jackpot seed parameters (applied when the jackpot row is first created)
	JackpotContributionBP int
	JackpotSeedAmount     int64
	JackpotWinningTier    int

	// Tier table config file; empty means the built-in default table
	TierTablePath string

	// External collaborators
	OracleEndpoint   string
	OracleAPIKey     string
	OracleCallback   string // public URL the oracle posts fulfillments to
	OracleLocalMode  bool   // run the in-process development oracle
	TokenEndpoint    string
	TreasuryEndpoint string

	// Discord announcer (optional)
	DiscordToken     string
	DiscordChannelID string

	// Stale pending reporting
	PendingStaleAfter time.Duration
	SweepInterval     time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "spinvault"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "spinvault"),

		APIKey:      getEnv("API_KEY", ""),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),

		HouseAccount:  getEnv("HOUSE_ACCOUNT", "spinvault_house"),
		TierTablePath: getEnv("TIER_TABLE_PATH", ""),

		OracleEndpoint:   getEnv("ORACLE_ENDPOINT", ""),
		OracleAPIKey:     getEnv("ORACLE_API_KEY", ""),
		OracleCallback:   getEnv("ORACLE_CALLBACK_URL", ""),
		TokenEndpoint:    getEnv("TOKEN_LEDGER_ENDPOINT", ""),
		TreasuryEndpoint: getEnv("TREASURY_ENDPOINT", ""),

		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.DayLengthSeconds, err = getEnvInt64("DAY_LENGTH_SECONDS", DefaultDayLengthSeconds); err != nil {
		return nil, err
	}
	if cfg.DailyFreeSpinLimit, err = getEnvInt("DAILY_FREE_SPIN_LIMIT", DefaultDailyFreeSpinLimit); err != nil {
		return nil, err
	}
	if cfg.DailyPremiumSpinLimit, err = getEnvInt("DAILY_PREMIUM_SPIN_LIMIT", DefaultDailyPremiumSpinLimit); err != nil {
		return nil, err
	}
	if cfg.PremiumSpinCost, err = getEnvInt64("PREMIUM_SPIN_COST", DefaultPremiumSpinCost); err != nil {
		return nil, err
	}
	if cfg.JackpotContributionBP, err = getEnvInt("JACKPOT_CONTRIBUTION_BP", DefaultJackpotContributionBP); err != nil {
		return nil, err
	}
	if cfg.JackpotSeedAmount, err = getEnvInt64("JACKPOT_SEED_AMOUNT", DefaultJackpotSeedAmount); err != nil {
		return nil, err
	}
	if cfg.JackpotWinningTier, err = getEnvInt("JACKPOT_WINNING_TIER", DefaultJackpotWinningTier); err != nil {
		return nil, err
	}

	cfg.OracleLocalMode = getEnv("ORACLE_LOCAL_MODE", "false") == "true"

	if raw := getEnv("TRUSTED_PROXIES", ""); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	staleSecs, err := getEnvInt64("PENDING_STALE_AFTER_SECONDS", DefaultPendingStaleAfterSeconds)
	if err != nil {
		return nil, err
	}
	cfg.PendingStaleAfter = time.Duration(staleSecs) * time.Second

	sweepSecs, err := getEnvInt64("SWEEP_INTERVAL_SECONDS", DefaultSweepIntervalSeconds)
	if err != nil {
		return nil, err
	}
	cfg.SweepInterval = time.Duration(sweepSecs) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces parameter bounds before the engine starts.
func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.AdminAPIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY environment variable must be set for security")
	}
	if c.DayLengthSeconds <= 0 {
		return fmt.Errorf("DAY_LENGTH_SECONDS must be positive, got %d", c.DayLengthSeconds)
	}
	if c.DailyFreeSpinLimit <= 0 || c.DailyPremiumSpinLimit <= 0 {
		return fmt.Errorf("daily spin limits must be positive")
	}
	if c.PremiumSpinCost <= 0 {
		return fmt.Errorf("PREMIUM_SPIN_COST must be positive, got %d", c.PremiumSpinCost)
	}
	if c.JackpotContributionBP < 0 || c.JackpotContributionBP > domain.MaxContributionBP {
		return fmt.Errorf("JACKPOT_CONTRIBUTION_BP must be in [0, %d], got %d",
			domain.MaxContributionBP, c.JackpotContributionBP)
	}
	if c.JackpotSeedAmount < 0 {
		return fmt.Errorf("JACKPOT_SEED_AMOUNT must not be negative, got %d", c.JackpotSeedAmount)
	}
	if c.JackpotWinningTier < 0 || c.JackpotWinningTier >= domain.TierCount {
		return fmt.Errorf("JACKPOT_WINNING_TIER must be in [0, %d), got %d",
			domain.TierCount, c.JackpotWinningTier)
	}
	if !c.OracleLocalMode && c.OracleEndpoint == "" {
		return fmt.Errorf("ORACLE_ENDPOINT must be set unless ORACLE_LOCAL_MODE=true")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
