// Package feeds implements reddit browsing and per-channel feed
// subscriptions.
package feeds

import (
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterModule(&commands.ModuleInfo{
		Name:        "Feeds",
		Description: "Browse reddit and subscribe channels to subreddit feeds",
		Commands: []commands.CommandInfo{
			{
				Name:        "reddit",
				Aliases:     []string{"r"},
				Description: "Browse the hot posts of a subreddit",
				Usage:       ".reddit <subreddit>",
			},
			{
				Name:        "subscribe",
				Aliases:     []string{"sub"},
				Description: "Post new submissions from a subreddit to this channel",
				Usage:       ".subscribe <subreddit>",
			},
			{
				Name:        "unsubscribe",
				Aliases:     []string{"unsub"},
				Description: "Stop posting a subreddit's submissions here",
				Usage:       ".unsubscribe <subreddit>",
			},
			{
				Name:        "subscriptions",
				Aliases:     []string{"subs"},
				Description: "List this channel's subreddit feeds",
				Usage:       ".subscriptions",
			},
		},
	})
}
