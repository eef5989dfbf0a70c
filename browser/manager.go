package browser

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Manager tracks live browsers by message ID, routes reaction events to
// them and tears down the ones that were closed or went idle.
type Manager struct {
	mu       sync.Mutex
	browsers map[string]*Browser
	idle     time.Duration
}

// NewManager creates a manager that considers browsers expired after the
// given idle window.
func NewManager(idle time.Duration) *Manager {
	return &Manager{
		browsers: make(map[string]*Browser),
		idle:     idle,
	}
}

// Spawn sends the browser's first render to the channel, seeds its control
// reactions and starts tracking it.
func (m *Manager) Spawn(s *discordgo.Session, channelID string, b *Browser) error {
	msg, err := s.ChannelMessageSendEmbed(channelID, b.Render())
	if err != nil {
		return err
	}
	b.ChannelID = channelID
	b.MessageID = msg.ID

	for _, emoji := range b.Reactions() {
		if err := s.MessageReactionAdd(channelID, msg.ID, emoji); err != nil {
			log.WithError(err).Warn("seeding browser reaction")
			break
		}
	}

	m.mu.Lock()
	m.browsers[msg.ID] = b
	m.mu.Unlock()
	return nil
}

// Count returns the number of live browsers.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.browsers)
}

// HandleReactionAdd routes a reaction-add gateway event. The triggering
// reaction is stripped first so the owner can re-trigger it.
func (m *Manager) HandleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}
	m.mu.Lock()
	b, ok := m.browsers[r.MessageID]
	m.mu.Unlock()
	if !ok {
		return
	}

	if err := s.MessageReactionRemove(r.ChannelID, r.MessageID, r.Emoji.APIName(), r.UserID); err != nil {
		log.WithError(err).Debug("stripping browser reaction")
	}

	changed := b.React(Event{Emoji: r.Emoji.Name, UserID: r.UserID})
	if !changed {
		return
	}
	if b.Closed() {
		m.mu.Lock()
		delete(m.browsers, r.MessageID)
		m.mu.Unlock()
		if err := s.ChannelMessageDelete(r.ChannelID, r.MessageID); err != nil {
			log.WithError(err).Debug("deleting closed browser message")
		}
		return
	}
	if _, err := s.ChannelMessageEditEmbed(r.ChannelID, r.MessageID, b.Render()); err != nil {
		log.WithError(err).Warn("re-rendering browser")
	}
}

// HandleReactionRemove routes a reaction-remove gateway event, which only
// interface toggles care about.
func (m *Manager) HandleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.UserID == s.State.User.ID {
		return
	}
	m.mu.Lock()
	b, ok := m.browsers[r.MessageID]
	m.mu.Unlock()
	if !ok {
		return
	}
	if b.React(Event{Emoji: r.Emoji.Name, UserID: r.UserID, Removed: true}) {
		if _, err := s.ChannelMessageEditEmbed(r.ChannelID, r.MessageID, b.Render()); err != nil {
			log.WithError(err).Warn("re-rendering browser")
		}
	}
}

// Sweep drops browsers idle past the configured window, clearing their
// control reactions when a session is available.
func (m *Manager) Sweep(s *discordgo.Session) int {
	m.mu.Lock()
	expired := make(map[string]*Browser)
	for id, b := range m.browsers {
		if b.Idle(m.idle) {
			expired[id] = b
			delete(m.browsers, id)
		}
	}
	m.mu.Unlock()

	for id, b := range expired {
		if s != nil {
			if err := s.MessageReactionsRemoveAll(b.ChannelID, id); err != nil {
				log.WithError(err).Debug("clearing expired browser reactions")
			}
		}
	}
	return len(expired)
}
