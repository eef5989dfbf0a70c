package moderation

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("mute", Mute, "m")
	commands.RegisterCommand("unmute", Unmute, "um")
}

func canMute(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) bool {
	allowed, err := utils.CheckMuteMembersPermission(s, m.GuildID, m.Author.ID)
	return (err == nil && allowed) || b.Authorized(m.Author.ID)
}

// Mute assigns the managed muted role, creating it on first use.
func Mute(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		return
	}
	if !canMute(b, s, m) {
		s.ChannelMessageSend(m.ChannelID, "You do not have permission to mute members.")
		return
	}

	userID, reason, ok := target(args)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"mute @user [reason]`")
		return
	}

	mutedRole, err := utils.GetMutedRole(s, m.GuildID)
	if err != nil {
		log.WithError(err).Error("getting muted role")
		s.ChannelMessageSend(m.ChannelID, "An error occurred while getting the muted role.")
		return
	}
	if err := s.GuildMemberRoleAdd(m.GuildID, userID, mutedRole.ID); err != nil {
		log.WithError(err).Error("muting member")
		s.ChannelMessageSend(m.ChannelID, "An error occurred while muting the user.")
		return
	}
	confirmation(s, m.ChannelID, "User Muted", userID, reason)
}

func Unmute(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		return
	}
	if !canMute(b, s, m) {
		s.ChannelMessageSend(m.ChannelID, "You do not have permission to mute members.")
		return
	}

	userID, _, ok := target(args)
	if !ok {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"unmute @user`")
		return
	}

	mutedRole, err := utils.GetMutedRole(s, m.GuildID)
	if err != nil {
		log.WithError(err).Error("getting muted role")
		s.ChannelMessageSend(m.ChannelID, "An error occurred while getting the muted role.")
		return
	}
	if err := s.GuildMemberRoleRemove(m.GuildID, userID, mutedRole.ID); err != nil {
		log.WithError(err).Error("unmuting member")
		s.ChannelMessageSend(m.ChannelID, "An error occurred while unmuting the user.")
		return
	}
	s.ChannelMessageSend(m.ChannelID, "Unmuted <@"+userID+">.")
}
