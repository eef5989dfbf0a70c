// Package help renders the command listing through the tree browser.
package help

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/browser"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterModule(&commands.ModuleInfo{
		Name:        "Help",
		Description: "Command listing and usage",
		Commands: []commands.CommandInfo{
			{
				Name:        "help",
				Aliases:     []string{"h", "commands"},
				Description: "Browse the bot's modules and commands",
				Usage:       ".help [command]",
			},
		},
	})
	commands.RegisterCommand("help", Help, "h", "commands")
}

// Help with no argument opens a browsable module tree; with a command
// name it shows that command's usage.
func Help(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) >= 2 {
		helpCommand(b, s, m, strings.ToLower(args[1]))
		return
	}

	mods := commands.Modules()
	roots := make([]*browser.Node, 0, len(mods))
	for _, mod := range mods {
		node := &browser.Node{
			Label: mod.Name,
			Value: mod.Description,
		}
		for _, cmd := range mod.Commands {
			value := cmd.Description
			if cmd.Usage != "" {
				value += "\nUsage: `" + cmd.Usage + "`"
			}
			node.Children = append(node.Children, &browser.Node{
				Label: cmd.Name,
				Value: value,
			})
		}
		roots = append(roots, node)
	}

	tree := browser.NewTree(m.Author.ID, "Help", roots, b.Cfg.BrowserItemsPerPage)
	if err := b.Browsers.Spawn(s, m.ChannelID, tree); err != nil {
		log.WithError(err).Error("spawning help browser")
	}
}

func helpCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, name string) {
	info, ok := commands.Details(strings.TrimPrefix(name, b.Cfg.CommandPrefix))
	if !ok {
		s.ChannelMessageSend(m.ChannelID, "No such command.")
		return
	}

	fields := []*discordgo.MessageEmbedField{}
	if info.Usage != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Usage", Value: "`" + info.Usage + "`"})
	}
	if len(info.Aliases) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Aliases", Value: strings.Join(info.Aliases, ", ")})
	}
	s.ChannelMessageSendEmbed(m.ChannelID, &discordgo.MessageEmbed{
		Title:       b.Cfg.CommandPrefix + info.Name,
		Description: info.Description,
		Color:       0x3498db,
		Fields:      fields,
	})
}
