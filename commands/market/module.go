// Package market implements real-world price lookups: fiat exchange
// rates scraped from Google Finance and crypto prices from CoinGecko.
package market

import (
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterModule(&commands.ModuleInfo{
		Name:        "Market",
		Description: "Live exchange rates and crypto prices",
		Commands: []commands.CommandInfo{
			{
				Name:        "rate",
				Aliases:     []string{"fx"},
				Description: "Show an exchange rate between two currencies",
				Usage:       ".rate <from> <to> [amount]",
			},
			{
				Name:        "btc",
				Aliases:     []string{"bitcoin"},
				Description: "Show the current Bitcoin price in USD",
				Usage:       ".btc",
			},
		},
	})
}
