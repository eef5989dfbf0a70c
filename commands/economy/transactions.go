package economy

import (
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("deposit", Deposit)
	commands.RegisterCommand("withdraw", Withdraw)
	commands.RegisterCommand("transfer", Transfer, "pay", "give")
	commands.RegisterCommand("daily", Daily)
}

func parseAmount(arg string) (float64, bool) {
	amount, err := strconv.ParseFloat(arg, 64)
	return amount, err == nil
}

// Deposit mints credits into an account. Authorized users only.
func Deposit(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	adjustCredits(b, s, m, args, "deposit")
}

// Withdraw burns credits from an account. Authorized users only.
func Withdraw(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	adjustCredits(b, s, m, args, "withdraw")
}

func adjustCredits(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string, action string) {
	if !b.Authorized(m.Author.ID) {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(bank.ErrNotAuthorized))
		return
	}
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+action+" <amount> [@user]`")
		return
	}
	amount, ok := parseAmount(args[1])
	if !ok {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(bank.ErrInvalidAmount))
		return
	}
	userID, ok := targetUser(m.Author.ID, args, 2)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, "Invalid mention. Use a proper mention (e.g. @username).")
		return
	}

	msg, err := b.Bank.Modify(userID, func(acct *bank.Account) (string, error) {
		var err error
		if action == "deposit" {
			err = acct.Deposit(amount)
		} else {
			err = acct.Withdraw(amount)
		}
		if err != nil {
			return "", err
		}
		return "Done. <@" + userID + ">'s balance is now " + b.FormatCredits(acct.Credits) + ".", nil
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, msg)
}

// Transfer moves credits from the author to a mentioned user.
func Transfer(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 3 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"transfer @user <amount>`")
		return
	}
	toID, ok := targetUser("", args, 1)
	if !ok || toID == "" {
		s.ChannelMessageSend(m.ChannelID, "Invalid mention. Use a proper mention (e.g. @username).")
		return
	}
	amount, ok := parseAmount(args[2])
	if !ok {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(bank.ErrInvalidAmount))
		return
	}

	// A mistyped-but-valid snowflake would mint a ghost account, so the
	// recipient has to resolve to a real user before any funds move.
	if exists, err := utils.UserExists(s, toID); err != nil || !exists {
		s.ChannelMessageSend(m.ChannelID, "That user does not exist.")
		return
	}

	if err := b.Bank.Transfer(m.Author.ID, toID, amount); err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, "Transferred "+b.FormatCredits(amount)+" to <@"+toID+">.")
}

// Daily claims the daily reward, subject to the configured cooldown.
func Daily(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	msg, err := b.Bank.Modify(m.Author.ID, func(acct *bank.Account) (string, error) {
		if err := acct.Daily(); err != nil {
			return "", err
		}
		return "You claimed " + b.FormatCredits(b.Cfg.DailyAmount) +
			". New balance: " + b.FormatCredits(acct.Credits), nil
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, msg)
}
