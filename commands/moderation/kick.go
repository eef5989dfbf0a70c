package moderation

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("kick", Kick)
}

func Kick(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		return
	}
	allowed, err := utils.CheckKickMembersPermission(s, m.GuildID, m.Author.ID)
	if err != nil || (!allowed && !b.Authorized(m.Author.ID)) {
		s.ChannelMessageSend(m.ChannelID, "You do not have permission to kick members.")
		return
	}

	userID, reason, ok := target(args)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"kick @user [reason]`")
		return
	}

	if err := s.GuildMemberDeleteWithReason(m.GuildID, userID, reason); err != nil {
		log.WithError(err).Error("kicking member")
		s.ChannelMessageSend(m.ChannelID, "An error occurred while kicking the user.")
		return
	}
	confirmation(s, m.ChannelID, "User Kicked", userID, reason)
}
