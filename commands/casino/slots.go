package casino

import (
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterCommand("slots", Slots, "slot")
}

// reel is the symbol strip every reel spins over. Rarer symbols appear
// fewer times, which sets their odds.
var reel = []string{
	"🍒", "🍒", "🍒", "🍒", "🍒",
	"🍋", "🍋", "🍋", "🍋",
	"🍇", "🍇", "🍇",
	"🔔", "🔔",
	"💎",
}

// payouts maps a triple to its bet multiplier. Two cherries pay a
// consolation prize handled separately in score.
var payouts = map[string]float64{
	"🍒": 4,
	"🍋": 6,
	"🍇": 10,
	"🔔": 25,
	"💎": 100,
}

// spin draws three symbols using the given source.
func spin(intn func(int) int) [3]string {
	var out [3]string
	for i := range out {
		out[i] = reel[intn(len(reel))]
	}
	return out
}

// score returns the bet multiplier for a spin result.
func score(symbols [3]string) float64 {
	if symbols[0] == symbols[1] && symbols[1] == symbols[2] {
		return payouts[symbols[0]]
	}
	cherries := 0
	for _, sym := range symbols {
		if sym == "🍒" {
			cherries++
		}
	}
	if cherries == 2 {
		return 1.5
	}
	return 0
}

// Slots spins a three-reel slot machine.
func Slots(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"slots <amount>`")
		return
	}
	bet, errMsg := parseBet(b, args[1])
	if errMsg != "" {
		s.ChannelMessageSend(m.ChannelID, errMsg)
		return
	}

	settle(b, s, m, bet, func() (float64, string) {
		symbols := spin(rand.Intn)
		line := "🎰 " + strings.Join(symbols[:], " | ")
		mult := score(symbols)
		if mult == 0 {
			return 0, line + "\nNo luck — you lose " + b.FormatCredits(bet) + "."
		}
		payout := bet * mult
		return payout, line + "\nYou win " + b.FormatCredits(payout) + "!"
	})
}
