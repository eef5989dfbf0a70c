package feeds

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("subscribe", Subscribe, "sub")
	commands.RegisterCommand("unsubscribe", Unsubscribe, "unsub")
	commands.RegisterCommand("subscriptions", Subscriptions, "subs")
}

// canManageFeeds gates feed changes to channel managers and authorized
// bank users.
func canManageFeeds(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if b.Authorized(m.Author.ID) {
		return true
	}
	if m.GuildID == "" {
		return false
	}
	ok, err := utils.CheckPermission(s, m.GuildID, m.Author.ID, discordgo.PermissionManageChannels)
	return err == nil && ok
}

// Subscribe starts posting a subreddit's new submissions to this channel.
func Subscribe(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !canManageFeeds(b, s, m) {
		s.ChannelMessageSend(m.ChannelID, "You need the Manage Channels permission to change feeds.")
		return
	}
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"subscribe <subreddit>`")
		return
	}
	subreddit := cleanSubreddit(args[1])

	// Validate the subreddit before storing the feed.
	if _, err := b.Reddit.Hot(subreddit, 1); err != nil {
		s.ChannelMessageSend(m.ChannelID, "Could not subscribe: "+err.Error())
		return
	}
	if err := b.Feeds.Subscribe(m.ChannelID, subreddit); err != nil {
		s.ChannelMessageSend(m.ChannelID, "Could not save the subscription.")
		return
	}
	s.ChannelMessageSend(m.ChannelID, "This channel now follows r/"+subreddit+".")
}

// Unsubscribe removes a subreddit feed from this channel.
func Unsubscribe(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !canManageFeeds(b, s, m) {
		s.ChannelMessageSend(m.ChannelID, "You need the Manage Channels permission to change feeds.")
		return
	}
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"unsubscribe <subreddit>`")
		return
	}
	subreddit := cleanSubreddit(args[1])
	if err := b.Feeds.Unsubscribe(m.ChannelID, subreddit); err != nil {
		s.ChannelMessageSend(m.ChannelID, "Could not remove the subscription.")
		return
	}
	s.ChannelMessageSend(m.ChannelID, "This channel no longer follows r/"+subreddit+".")
}

// Subscriptions lists the channel's subreddit feeds.
func Subscriptions(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	subs, err := b.Feeds.Subscriptions(m.ChannelID)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Could not read the subscriptions.")
		return
	}
	if len(subs) == 0 {
		s.ChannelMessageSend(m.ChannelID, "This channel follows no subreddits.")
		return
	}
	for i, sub := range subs {
		subs[i] = "r/" + sub
	}
	s.ChannelMessageSend(m.ChannelID, "This channel follows: "+strings.Join(subs, ", "))
}
