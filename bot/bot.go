// Package bot wires the Discord session to the bot's services. The command
// modules receive a *Bot and reach everything through it.
package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/browser"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/config"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/ledger"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/reddit"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/storage"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

// Bot bundles the Discord session with the persistence and feature
// services the command modules use.
type Bot struct {
	Client   *discordgo.Session
	Cfg      *config.Config
	Store    storage.Store
	Bank     *bank.Bank
	Browsers *browser.Manager
	Reddit   *reddit.Client
	Feeds    *reddit.Watcher
	Limiter  *utils.RateLimiter
}

// New opens the Discord session and builds every service from the config.
func New(cfg *config.Config) (*Bot, error) {
	client, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	client.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMessageReactions

	var store storage.Store
	if cfg.DatabaseURL != "" {
		store, err = storage.OpenPGStore(cfg.DatabaseURL)
	} else {
		store, err = storage.OpenFileStore(cfg.DataDir + "/records.json")
	}
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	logs, err := ledger.New(cfg.DataDir + "/ledgers")
	if err != nil {
		return nil, fmt.Errorf("opening ledger dir: %w", err)
	}

	redditClient := reddit.NewClient(cfg.RedditUserAgent)
	return &Bot{
		Client:   client,
		Cfg:      cfg,
		Store:    store,
		Bank:     bank.New(store, logs, bankSettings(cfg)),
		Browsers: browser.NewManager(cfg.BrowserIdleTimeout),
		Reddit:   redditClient,
		Feeds:    reddit.NewWatcher(store, redditClient),
		Limiter:  utils.NewRateLimiter(15, time.Minute),
	}, nil
}

func bankSettings(cfg *config.Config) bank.Settings {
	return bank.Settings{
		StartingBalance:   cfg.StartingBalance,
		RoundDecimals:     cfg.RoundDecimals,
		DailyAmount:       cfg.DailyAmount,
		DailyCooldown:     cfg.DailyCooldown,
		InvestMinimum:     cfg.InvestMinimum,
		InvestRate:        cfg.InvestRate,
		InvestCompounding: cfg.InvestCompounding,
		InvestTimeScale:   cfg.InvestTimeScale,
		InvestMinimumHold: cfg.InvestMinimumHold,
		InvestMaxOpen:     cfg.InvestMaxOpen,
	}
}

// Authorized reports whether the user may run elevated operations. The
// configured owner is always authorized; everyone else needs the flag on
// their bank account.
func (b *Bot) Authorized(userID string) bool {
	if b.Cfg.OwnerID != "" && userID == b.Cfg.OwnerID {
		return true
	}
	acct, err := b.Bank.Account(userID)
	if err != nil {
		return false
	}
	return acct.Authorized
}

// FormatCredits renders an amount with the configured currency symbol.
func (b *Bot) FormatCredits(amount float64) string {
	return utils.FormatCredits(b.Cfg.CurrencySymbol, amount, b.Cfg.RoundDecimals)
}

// Close shuts down the session and the store.
func (b *Bot) Close() {
	b.Client.Close()
	b.Store.Close()
}
