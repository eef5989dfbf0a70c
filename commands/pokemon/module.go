// Package pokemon implements a small catch-and-collect game. Caught
// pokemon are stored per user and can be released back for credits.
package pokemon

import (
	"errors"
	"time"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/storage"
)

const trainersCollection = "pokemon"

var errNoSuchPokemon = errors.New("no pokemon at that position")

func init() {
	commands.RegisterModule(&commands.ModuleInfo{
		Name:        "Pokemon",
		Description: "Catch wild pokemon and trade them back for credits",
		Commands: []commands.CommandInfo{
			{
				Name:        "catch",
				Description: "Try to catch a wild pokemon",
				Usage:       ".catch",
			},
			{
				Name:        "pokedex",
				Aliases:     []string{"pokemon", "pkmn"},
				Description: "Browse your caught pokemon",
				Usage:       ".pokedex [@user]",
			},
			{
				Name:        "release",
				Description: "Release a pokemon for its credit value",
				Usage:       ".release <n>",
			},
		},
	})
}

// caught is one captured pokemon in a trainer's record.
type caught struct {
	ID       string  `json:"id"`
	Species  string  `json:"species"`
	Value    float64 `json:"value"`
	CaughtAt int64   `json:"caughtAt"`
}

// trainer is a user's stored pokemon record.
type trainer struct {
	Caught    []caught `json:"caught"`
	LastCatch int64    `json:"lastCatch"`
}

func loadTrainer(b *bot.Bot, userID string) (*trainer, error) {
	raw, err := b.Store.Get(trainersCollection, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &trainer{}, nil
		}
		return nil, err
	}
	var t trainer
	if list, ok := raw["caught"].([]any); ok {
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			c := caught{}
			c.ID, _ = entry["id"].(string)
			c.Species, _ = entry["species"].(string)
			c.Value, _ = entry["value"].(float64)
			if ms, ok := entry["caughtAt"].(float64); ok {
				c.CaughtAt = int64(ms)
			}
			t.Caught = append(t.Caught, c)
		}
	}
	if ms, ok := raw["lastCatch"].(float64); ok {
		t.LastCatch = int64(ms)
	}
	return &t, nil
}

func saveTrainer(b *bot.Bot, userID string, t *trainer) error {
	list := make([]any, len(t.Caught))
	for i, c := range t.Caught {
		list[i] = map[string]any{
			"id":       c.ID,
			"species":  c.Species,
			"value":    c.Value,
			"caughtAt": float64(c.CaughtAt),
		}
	}
	return b.Store.Put(trainersCollection, userID, storage.Record{
		"caught":    list,
		"lastCatch": float64(t.LastCatch),
	})
}

// catchCooldownLeft returns how long until the trainer may catch again.
func (t *trainer) catchCooldownLeft(cooldown time.Duration, now time.Time) time.Duration {
	if t.LastCatch == 0 {
		return 0
	}
	next := time.UnixMilli(t.LastCatch).Add(cooldown)
	return next.Sub(now)
}
