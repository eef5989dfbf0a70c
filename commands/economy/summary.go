package economy

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("bank", Summary, "balance", "bal", "$")
}

// Summary shows an account overview: state, credits, investments and net
// worth. Mentioning another user shows their account instead.
func Summary(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	userID, ok := targetUser(m.Author.ID, args, 1)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, "Invalid mention. Use a proper mention (e.g. @username).")
		return
	}

	acct, err := b.Bank.Account(userID)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}

	user, err := s.User(userID)
	name := userID
	if err == nil {
		name = user.Username
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "State", Value: string(acct.State), Inline: true},
		{Name: "Credits", Value: b.FormatCredits(acct.Credits), Inline: true},
	}

	if len(acct.Investments) > 0 {
		now := time.Now()
		settings := b.Bank.Settings()
		var principal, interest float64
		for _, inv := range acct.Investments {
			principal += inv.Principle
			interest += inv.Interest(now, settings.InvestTimeScale)
		}
		fields = append(fields,
			&discordgo.MessageEmbedField{
				Name:   fmt.Sprintf("Investments (%d)", len(acct.Investments)),
				Value:  b.FormatCredits(principal) + " invested",
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "Accrued Interest",
				Value:  b.FormatCredits(interest),
				Inline: true,
			},
		)
	}

	if worth, err := acct.Balance(); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Net Worth", Value: b.FormatCredits(worth), Inline: true,
		})
	}
	if acct.Authorized {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Authorized", Value: "yes", Inline: true,
		})
	}
	if acct.DailyReceived > 0 {
		next := time.UnixMilli(acct.DailyReceived).Add(b.Cfg.DailyCooldown)
		value := "available now"
		if wait := time.Until(next); wait > 0 {
			value = "in " + utils.FormatDuration(wait)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Next Daily", Value: value, Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:  name + "'s Bank Account",
		Color:  embedColorFor(acct),
		Fields: fields,
	}
	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}

func embedColorFor(acct *bank.Account) int {
	switch acct.State {
	case bank.StateDead:
		return 0x992d22
	case bank.StateClosed:
		return 0x95a5a6
	default:
		return 0x2ecc71
	}
}
