// Package moderation implements kick, ban and mute commands gated on
// Discord permissions.
package moderation

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterModule(&commands.ModuleInfo{
		Name:        "Moderation",
		Description: "Server moderation tools",
		Commands: []commands.CommandInfo{
			{
				Name:        "kick",
				Description: "Kick a user from the server",
				Usage:       ".kick @user [reason]",
			},
			{
				Name:        "ban",
				Description: "Ban a user from the server",
				Usage:       ".ban @user [reason]",
			},
			{
				Name:        "unban",
				Description: "Lift a user's ban",
				Usage:       ".unban <user id>",
			},
			{
				Name:        "mute",
				Aliases:     []string{"m"},
				Description: "Give a user the muted role",
				Usage:       ".mute @user [reason]",
			},
			{
				Name:        "unmute",
				Aliases:     []string{"um"},
				Description: "Remove the muted role from a user",
				Usage:       ".unmute @user",
			},
		},
	})
}

// target parses the mention and optional trailing reason of a moderation
// command.
func target(args []string) (userID, reason string, ok bool) {
	if len(args) < 2 {
		return "", "", false
	}
	userID, err := utils.ExtractUserID(args[1])
	if err != nil {
		return "", "", false
	}
	reason = "No reason provided"
	if len(args) >= 3 {
		reason = strings.Join(args[2:], " ")
	}
	return userID, reason, true
}

// confirmation is the shared embed all moderation actions reply with.
func confirmation(s *discordgo.Session, channelID, title, userID, reason string) {
	s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       title,
		Description: "<@" + userID + ">",
		Color:       0xff0000,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reason", Value: reason},
		},
	})
}
