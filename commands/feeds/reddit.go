package feeds

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/browser"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterCommand("reddit", Reddit, "r")
}

func cleanSubreddit(arg string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(arg, "/r/"), "r/"))
}

// Reddit browses a subreddit's hot posts, one post per page.
func Reddit(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"reddit <subreddit>`")
		return
	}
	subreddit := cleanSubreddit(args[1])

	posts, err := b.Reddit.Hot(subreddit, 25)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Could not fetch r/"+subreddit+": "+err.Error())
		return
	}
	if len(posts) == 0 {
		s.ChannelMessageSend(m.ChannelID, "r/"+subreddit+" has no posts right now.")
		return
	}

	chunks := make([]string, len(posts))
	for i, p := range posts {
		chunks[i] = fmt.Sprintf("**%s**\nby u/%s · ⬆ %d · 💬 %d\n%s",
			p.Title, p.Author, p.Score, p.Comments, p.Link())
	}

	content := browser.NewContent(m.Author.ID, "r/"+subreddit+" — hot", chunks)
	if err := b.Browsers.Spawn(s, m.ChannelID, content); err != nil {
		log.WithError(err).Error("spawning reddit browser")
	}
}
