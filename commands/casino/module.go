// Package casino implements gambling commands backed by the bank.
package casino

import (
	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterModule(&commands.ModuleInfo{
		Name:        "Casino",
		Description: "Gamble your credits on coin flips and slots",
		Commands: []commands.CommandInfo{
			{
				Name:        "flip",
				Aliases:     []string{"coinflip"},
				Description: "Flip a coin, double or nothing",
				Usage:       ".flip <amount> [heads|tails]",
			},
			{
				Name:        "slots",
				Aliases:     []string{"slot"},
				Description: "Spin the slot machine",
				Usage:       ".slots <amount>",
			},
		},
	})
}

// parseBet validates a bet argument against the configured limits.
func parseBet(b *bot.Bot, arg string) (float64, string) {
	amount, err := parseFloat(arg)
	if err != nil {
		return 0, commands.UserError(bank.ErrInvalidAmount)
	}
	if amount < b.Cfg.CasinoMinBet {
		return 0, "The minimum bet is " + b.FormatCredits(b.Cfg.CasinoMinBet) + "."
	}
	if amount > b.Cfg.CasinoMaxBet {
		return 0, "The maximum bet is " + b.FormatCredits(b.Cfg.CasinoMaxBet) + "."
	}
	return amount, ""
}

// settle runs one bet inside the bank's critical section: the stake is
// withdrawn first, then the payout (if any) is credited. A failed
// withdrawal aborts before any game result is shown.
func settle(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, bet float64,
	play func() (payout float64, result string)) {

	msg, err := b.Bank.Modify(m.Author.ID, func(acct *bank.Account) (string, error) {
		if err := acct.Withdraw(bet); err != nil {
			return "", err
		}
		payout, result := play()
		if payout > 0 {
			if err := acct.Deposit(payout); err != nil {
				return "", err
			}
		}
		return result + "\nBalance: " + b.FormatCredits(acct.Credits), nil
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, msg)
}
