package economy

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/browser"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("history", History, "ledger")
}

// History browses an account's transaction ledger, newest first. Viewing
// someone else's ledger requires authorization.
func History(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	userID, ok := targetUser(m.Author.ID, args, 1)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, "Invalid mention. Use a proper mention (e.g. @username).")
		return
	}
	if userID != m.Author.ID && !b.Authorized(m.Author.ID) {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(bank.ErrNotAuthorized))
		return
	}

	entries, err := b.Bank.History(userID)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	if len(entries) == 0 {
		s.ChannelMessageSend(m.ChannelID, "No transactions on record.")
		return
	}

	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = e
	}

	list := browser.NewList(m.Author.ID, "Transaction History", items,
		b.Cfg.BrowserItemsPerPage, func(item any) string {
			return formatHistoryEntry(b, item.(bank.HistoryEntry))
		})
	if err := b.Browsers.Spawn(s, m.ChannelID, list); err != nil {
		log.WithError(err).Error("spawning history browser")
	}
}

func formatHistoryEntry(b *bot.Bot, e bank.HistoryEntry) string {
	when := utils.FormatTimestampMs(e.Record.T)
	action, _ := e.Record.Data["action"].(string)
	prev, _ := e.Record.Data["prev"].(float64)
	transfer, _ := e.Record.Data["transfer"].(float64)
	next, _ := e.Record.Data["next"].(float64)

	sign := "+"
	if transfer < 0 {
		sign = "-"
		transfer = -transfer
	}
	return fmt.Sprintf("`%s` **%s** %s%s (%s → %s)",
		when, action, sign, b.FormatCredits(transfer),
		b.FormatCredits(prev), b.FormatCredits(next))
}
