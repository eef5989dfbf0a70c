package market

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterCommand("btc", BTC, "bitcoin")
}

type btcResponse struct {
	Bitcoin struct {
		USD float64 `json:"usd"`
	} `json:"bitcoin"`
}

// BTC fetches the Bitcoin spot price from CoinGecko.
func BTC(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	resp, err := http.Get("https://api.coingecko.com/api/v3/simple/price?ids=bitcoin&vs_currencies=usd")
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Error fetching BTC price.")
		return
	}
	defer resp.Body.Close()

	var result btcResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.ChannelMessageSend(m.ChannelID, "Error fetching BTC price.")
		return
	}
	s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("BTC Price: $%.2f", result.Bitcoin.USD))
}
