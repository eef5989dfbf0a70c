package reddit

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/storage"
)

const feedsCollection = "feeds"

// Watcher polls subscribed subreddits and posts new submissions to their
// channels. Subscriptions live in the record store so they survive
// restarts.
type Watcher struct {
	store  storage.Store
	client *Client
}

// NewWatcher builds a watcher over the shared store and client.
func NewWatcher(store storage.Store, client *Client) *Watcher {
	return &Watcher{store: store, client: client}
}

func feedKey(channelID, subreddit string) string {
	return channelID + "/" + strings.ToLower(subreddit)
}

// Subscribe adds a channel feed. Re-subscribing an existing feed resets
// its cursor.
func (w *Watcher) Subscribe(channelID, subreddit string) error {
	return w.store.Put(feedsCollection, feedKey(channelID, subreddit), storage.Record{
		"channel":   channelID,
		"subreddit": strings.ToLower(subreddit),
		"last":      float64(0),
	})
}

// Unsubscribe removes a channel feed.
func (w *Watcher) Unsubscribe(channelID, subreddit string) error {
	return w.store.Delete(feedsCollection, feedKey(channelID, subreddit))
}

// Subscriptions lists the subreddits a channel follows.
func (w *Watcher) Subscriptions(channelID string) ([]string, error) {
	recs, err := w.store.Filter(feedsCollection, func(_ string, rec storage.Record) bool {
		ch, _ := rec["channel"].(string)
		return ch == channelID
	})
	if err != nil {
		return nil, err
	}
	var subs []string
	for _, rec := range recs {
		if sub, ok := rec["subreddit"].(string); ok {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

// Check fetches every subscribed feed once and announces submissions newer
// than the stored cursor. Called from the cron scheduler.
func (w *Watcher) Check(s *discordgo.Session) {
	err := w.store.ForEach(feedsCollection, func(key string, rec storage.Record) error {
		channelID, _ := rec["channel"].(string)
		subreddit, _ := rec["subreddit"].(string)
		last, _ := rec["last"].(float64)
		if channelID == "" || subreddit == "" {
			return nil
		}

		posts, err := w.client.Hot(subreddit, 10)
		if err != nil {
			log.WithField("subreddit", subreddit).WithError(err).Warn("feed poll failed")
			return nil
		}

		newest := last
		for _, post := range posts {
			created := float64(post.Created.Unix())
			if created <= last {
				continue
			}
			if created > newest {
				newest = created
			}
			// First poll only primes the cursor, no announcement spam.
			if last > 0 {
				w.announce(s, channelID, subreddit, post)
			}
		}
		if newest != last {
			rec["last"] = newest
			return w.store.Put(feedsCollection, key, rec)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("feed sweep failed")
	}
}

func (w *Watcher) announce(s *discordgo.Session, channelID, subreddit string, post Post) {
	embed := &discordgo.MessageEmbed{
		Title:       post.Title,
		URL:         post.Link(),
		Description: fmt.Sprintf("New post on r/%s by u/%s", subreddit, post.Author),
		Color:       0xff4500,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("⬆ %d | 💬 %d", post.Score, post.Comments),
		},
		Timestamp: post.Created.Format(time.RFC3339),
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.WithField("channel", channelID).WithError(err).Warn("announcing feed post")
	}
}
