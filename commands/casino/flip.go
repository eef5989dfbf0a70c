package casino

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterCommand("flip", Flip, "coinflip")
}

func parseFloat(arg string) (float64, error) {
	return strconv.ParseFloat(arg, 64)
}

// Flip bets on a coin toss. Calling the side is optional; heads is
// assumed when omitted.
func Flip(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"flip <amount> [heads|tails]`")
		return
	}
	bet, errMsg := parseBet(b, args[1])
	if errMsg != "" {
		s.ChannelMessageSend(m.ChannelID, errMsg)
		return
	}

	call := "heads"
	if len(args) >= 3 {
		call = strings.ToLower(args[2])
		if call != "heads" && call != "tails" {
			s.ChannelMessageSend(m.ChannelID, "Call `heads` or `tails`.")
			return
		}
	}

	settle(b, s, m, bet, func() (float64, string) {
		landed := "heads"
		if rand.Intn(2) == 1 {
			landed = "tails"
		}
		if landed == call {
			return bet * 2, "🪙 The coin landed on **" + landed + "** — you win " + b.FormatCredits(bet) + "!"
		}
		return 0, "🪙 The coin landed on **" + landed + "** — you lose " + b.FormatCredits(bet) + "."
	})
}
