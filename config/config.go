// Package config loads bot settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings for the bot.
type Config struct {
	// --- Discord ---
	DiscordToken  string `envconfig:"DISCORD_TOKEN" required:"true"`
	CommandPrefix string `envconfig:"COMMAND_PREFIX" default:"."`
	// OwnerID is always treated as authorized, bootstrapping the
	// authorization chain.
	OwnerID string `envconfig:"DISCORD_OWNER_ID"`

	// --- Storage ---
	// DataDir holds the JSON record store and per-account ledger files.
	DataDir string `envconfig:"DATA_DIR" default:"data"`
	// DatabaseURL switches the record store to Postgres when set.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// --- Logging ---
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// --- Bank ---
	StartingBalance float64       `envconfig:"BANK_STARTING_BALANCE" default:"1000"`
	RoundDecimals   int           `envconfig:"BANK_ROUND_DECIMALS" default:"1"`
	CurrencySymbol  string        `envconfig:"BANK_CURRENCY_SYMBOL" default:"$"`
	DailyAmount     float64       `envconfig:"BANK_DAILY_AMOUNT" default:"500"`
	DailyCooldown   time.Duration `envconfig:"BANK_DAILY_COOLDOWN" default:"24h"`

	// --- Investments ---
	InvestMinimum float64 `envconfig:"INVEST_MINIMUM" default:"1000"`
	InvestRate    float64 `envconfig:"INVEST_RATE" default:"0.02"`
	// InvestCompounding of 0 selects the continuous interest formula.
	InvestCompounding float64       `envconfig:"INVEST_COMPOUNDING" default:"0"`
	InvestTimeScale   time.Duration `envconfig:"INVEST_TIME_SCALE" default:"24h"`
	InvestMinimumHold time.Duration `envconfig:"INVEST_MINIMUM_HOLD" default:"1h"`
	InvestMaxOpen     int           `envconfig:"INVEST_MAX_OPEN" default:"5"`

	// --- Casino ---
	CasinoMinBet float64 `envconfig:"CASINO_MIN_BET" default:"10"`
	CasinoMaxBet float64 `envconfig:"CASINO_MAX_BET" default:"10000"`

	// --- Browsers ---
	BrowserItemsPerPage int           `envconfig:"BROWSER_ITEMS_PER_PAGE" default:"10"`
	BrowserIdleTimeout  time.Duration `envconfig:"BROWSER_IDLE_TIMEOUT" default:"5m"`

	// --- Pokemon ---
	PokemonCatchCooldown time.Duration `envconfig:"POKEMON_CATCH_COOLDOWN" default:"2h"`

	// --- Reddit ---
	RedditPollInterval time.Duration `envconfig:"REDDIT_POLL_INTERVAL" default:"10m"`
	RedditUserAgent    string        `envconfig:"REDDIT_USER_AGENT" default:"discord:dragon-bot:v2.0 (by /u/dragon)"`
}

// Load reads environment variables into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.RoundDecimals < 0 || c.RoundDecimals > 8 {
		return fmt.Errorf("BANK_ROUND_DECIMALS must be in [0,8]")
	}
	if c.StartingBalance < 0 {
		return fmt.Errorf("BANK_STARTING_BALANCE cannot be negative")
	}
	if c.InvestMinimum <= 0 {
		return fmt.Errorf("INVEST_MINIMUM must be > 0")
	}
	if c.InvestTimeScale <= 0 {
		return fmt.Errorf("INVEST_TIME_SCALE must be > 0")
	}
	if c.InvestMaxOpen <= 0 {
		return fmt.Errorf("INVEST_MAX_OPEN must be > 0")
	}
	if c.BrowserItemsPerPage <= 0 {
		return fmt.Errorf("BROWSER_ITEMS_PER_PAGE must be > 0")
	}
	if c.CasinoMinBet <= 0 || c.CasinoMaxBet < c.CasinoMinBet {
		return fmt.Errorf("invalid CASINO_MIN_BET/CASINO_MAX_BET")
	}
	return nil
}
