package economy

import (
	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterCommand("open", Open)
	commands.RegisterCommand("close", Close)
	commands.RegisterCommand("reopen", Reopen)
	commands.RegisterCommand("shutdown", Shutdown)
	commands.RegisterCommand("deleteaccount", DeleteAccount)
	commands.RegisterCommand("authorize", Authorize)
	commands.RegisterCommand("unauthorize", Unauthorize)
}

// Open persists the author's account, seeding it with the starting
// balance if it never existed.
func Open(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	msg, err := b.Bank.Modify(m.Author.ID, func(acct *bank.Account) (string, error) {
		switch acct.State {
		case bank.StateDead:
			return "", bank.ErrAccountDead
		case bank.StateClosed:
			return "", bank.ErrAccountClosed
		}
		return "Your account is open. Balance: " + b.FormatCredits(acct.Credits), nil
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, msg)
}

func Close(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	_, err := b.Bank.Modify(m.Author.ID, func(acct *bank.Account) (string, error) {
		return "", acct.Close()
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, "Your account is now closed. Use `"+b.Cfg.CommandPrefix+"reopen` to reopen it.")
}

func Reopen(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	msg, err := b.Bank.Modify(m.Author.ID, func(acct *bank.Account) (string, error) {
		if err := acct.Reopen(); err != nil {
			return "", err
		}
		return "Welcome back! Balance: " + b.FormatCredits(acct.Credits), nil
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, msg)
}

// Shutdown permanently kills an account. Shutting down someone else's
// account requires authorization; your own only needs confirmation that
// you typed the command.
func Shutdown(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	userID, ok := targetUser(m.Author.ID, args, 1)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, "Invalid mention. Use a proper mention (e.g. @username).")
		return
	}
	if userID != m.Author.ID && !b.Authorized(m.Author.ID) {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(bank.ErrNotAuthorized))
		return
	}
	_, err := b.Bank.Modify(userID, func(acct *bank.Account) (string, error) {
		return "", acct.Shutdown()
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, "The account has been shut down permanently.")
}

// DeleteAccount erases the stored record and ledger file. Authorized only.
func DeleteAccount(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.Authorized(m.Author.ID) {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(bank.ErrNotAuthorized))
		return
	}
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"deleteaccount @user`")
		return
	}
	userID, ok := targetUser("", args, 1)
	if !ok || userID == "" {
		s.ChannelMessageSend(m.ChannelID, "Invalid mention. Use a proper mention (e.g. @username).")
		return
	}
	if err := b.Bank.Delete(userID); err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	s.ChannelMessageSend(m.ChannelID, "Account record and ledger erased.")
}

func Authorize(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	setAuthorized(b, s, m, args, true)
}

func Unauthorize(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	setAuthorized(b, s, m, args, false)
}

func setAuthorized(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string, grant bool) {
	if !b.Authorized(m.Author.ID) {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(bank.ErrNotAuthorized))
		return
	}
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Mention the user to change.")
		return
	}
	userID, ok := targetUser("", args, 1)
	if !ok || userID == "" {
		s.ChannelMessageSend(m.ChannelID, "Invalid mention. Use a proper mention (e.g. @username).")
		return
	}
	_, err := b.Bank.Modify(userID, func(acct *bank.Account) (string, error) {
		if grant {
			return "", acct.Authorize()
		}
		return "", acct.Unauthorize()
	})
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	if grant {
		s.ChannelMessageSend(m.ChannelID, "<@"+userID+"> is now authorized for elevated bank operations.")
	} else {
		s.ChannelMessageSend(m.ChannelID, "<@"+userID+"> is no longer authorized.")
	}
}
