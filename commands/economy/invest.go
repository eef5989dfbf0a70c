package economy

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/browser"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("invest", Invest)
}

// Invest routes the invest subcommands: a bare amount opens an
// investment, "stop <n>" closes one, "list" browses the open ones.
func Invest(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"invest <amount> | stop <n> | list`")
		return
	}

	switch strings.ToLower(args[1]) {
	case "list":
		investList(b, s, m)
	case "stop":
		investStop(b, s, m, args)
	default:
		investStart(b, s, m, args)
	}
}

func investStart(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	amount, ok := parseAmount(args[1])
	if !ok {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(bank.ErrInvalidAmount))
		return
	}
	msg, err := b.Bank.Modify(m.Author.ID, func(acct *bank.Account) (string, error) {
		if err := acct.StartInvestment(amount); err != nil {
			return "", err
		}
		return fmt.Sprintf("Invested %s at %.2f%% per %s. Remaining balance: %s",
			b.FormatCredits(amount),
			b.Cfg.InvestRate*100,
			utils.FormatDuration(b.Cfg.InvestTimeScale),
			b.FormatCredits(acct.Credits)), nil
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, msg)
}

func investStop(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 3 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"invest stop <n>` (see `invest list`)")
		return
	}
	n, err := strconv.Atoi(args[2])
	if err != nil || n < 1 {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(bank.ErrNoSuchInvestment))
		return
	}
	msg, err := b.Bank.Modify(m.Author.ID, func(acct *bank.Account) (string, error) {
		payout, err := acct.StopInvestment(n - 1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Investment closed. %s paid out; balance is now %s.",
			b.FormatCredits(payout), b.FormatCredits(acct.Credits)), nil
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, msg)
}

func investList(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) {
	acct, err := b.Bank.Account(m.Author.ID)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	if len(acct.Investments) == 0 {
		s.ChannelMessageSend(m.ChannelID, "You have no open investments.")
		return
	}

	now := time.Now()
	settings := b.Bank.Settings()
	rows := make([]browser.Row, len(acct.Investments))
	for i, inv := range acct.Investments {
		rows[i] = browser.Row{
			strconv.Itoa(i + 1),
			b.FormatCredits(inv.Principle),
			b.FormatCredits(inv.Interest(now, settings.InvestTimeScale)),
			utils.FormatDuration(inv.Elapsed(now)),
		}
	}

	table := browser.NewTable(m.Author.ID, m.Author.Username+"'s Investments",
		[]string{"#", "Principal", "Interest", "Age"}, rows, b.Cfg.BrowserItemsPerPage, 0, 1)
	if err := b.Browsers.Spawn(s, m.ChannelID, table); err != nil {
		log.WithError(err).Error("spawning investment browser")
	}
}
