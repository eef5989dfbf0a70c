package moderation

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("ban", Ban)
	commands.RegisterCommand("unban", Unban)
}

func canBan(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) bool {
	allowed, err := utils.CheckBanMembersPermission(s, m.GuildID, m.Author.ID)
	return (err == nil && allowed) || b.Authorized(m.Author.ID)
}

func Ban(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		return
	}
	if !canBan(b, s, m) {
		s.ChannelMessageSend(m.ChannelID, "You do not have permission to ban members.")
		return
	}

	userID, reason, ok := target(args)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"ban @user [reason]`")
		return
	}

	if err := s.GuildBanCreateWithReason(m.GuildID, userID, reason, 0); err != nil {
		log.WithError(err).Error("banning member")
		s.ChannelMessageSend(m.ChannelID, "An error occurred while banning the user.")
		return
	}
	confirmation(s, m.ChannelID, "User Banned", userID, reason)
}

// Unban takes a raw user ID since banned users cannot be mentioned.
func Unban(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		return
	}
	if !canBan(b, s, m) {
		s.ChannelMessageSend(m.ChannelID, "You do not have permission to ban members.")
		return
	}
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"unban <user id>`")
		return
	}

	if err := s.GuildBanDelete(m.GuildID, args[1]); err != nil {
		log.WithError(err).Error("unbanning member")
		s.ChannelMessageSend(m.ChannelID, "An error occurred while unbanning the user.")
		return
	}
	s.ChannelMessageSend(m.ChannelID, "Unbanned <@"+args[1]+">.")
}
