// Package commands is the command registry and dispatcher. Feature modules
// register themselves from init() and the bot routes prefixed messages
// through Dispatch.
package commands

import (
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

// CommandFunc is the signature every command handler implements.
type CommandFunc func(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// CommandInfo describes a command for the help browser.
type CommandInfo struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
}

// ModuleInfo groups a feature's commands under one name.
type ModuleInfo struct {
	Name        string
	Description string
	Commands    []CommandInfo
}

var (
	modules    = make(map[string]*ModuleInfo)
	commandMap = make(map[string]CommandFunc)
	aliasMap   = make(map[string]string)
	detailMap  = make(map[string]CommandInfo)
)

// RegisterModule records a module's metadata for help listings.
func RegisterModule(m *ModuleInfo) {
	modules[m.Name] = m
	for _, cmd := range m.Commands {
		detailMap[cmd.Name] = cmd
	}
}

// RegisterCommand binds a handler to a command name and its aliases.
func RegisterCommand(name string, handler CommandFunc, aliases ...string) {
	commandMap[name] = handler
	for _, alias := range aliases {
		aliasMap[alias] = name
	}
}

// Lookup resolves a command or alias to its handler.
func Lookup(name string) (CommandFunc, bool) {
	if canonical, ok := aliasMap[name]; ok {
		name = canonical
	}
	fn, ok := commandMap[name]
	return fn, ok
}

// Details returns a command's help metadata.
func Details(name string) (CommandInfo, bool) {
	if canonical, ok := aliasMap[name]; ok {
		name = canonical
	}
	info, ok := detailMap[name]
	return info, ok
}

// Modules lists registered modules sorted by name.
func Modules() []*ModuleInfo {
	out := make([]*ModuleInfo, 0, len(modules))
	for _, m := range modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch routes one incoming message to its command handler. Messages
// from the bot itself or without the command prefix are ignored.
func Dispatch(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}
	prefix := b.Cfg.CommandPrefix
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}

	args := strings.Fields(m.Content)
	if len(args) == 0 || len(args[0]) <= len(prefix) {
		return
	}
	name := strings.ToLower(strings.TrimPrefix(args[0], prefix))

	fn, ok := Lookup(name)
	if !ok {
		return
	}

	if !b.Limiter.Allow(m.Author.ID, name) {
		wait := b.Limiter.RetryAfter(m.Author.ID, name)
		s.ChannelMessageSend(m.ChannelID, "You're doing that too often. Try again in "+utils.FormatDuration(wait)+".")
		return
	}

	log.WithFields(log.Fields{
		"command": name,
		"user":    m.Author.ID,
		"guild":   m.GuildID,
	}).Debug("dispatching command")

	fn(b, s, m, args)
}
