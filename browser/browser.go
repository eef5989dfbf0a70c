// Package browser renders collections as paged Discord embeds driven by
// emoji reactions. One engine handles paging, sorting and arbitrary
// interface reactions; the presets in this package configure it for lists,
// tables, text buffers, selections and trees.
package browser

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Navigation and control emojis understood by every browser.
const (
	EmojiFirst     = "⏮️"
	EmojiPrev      = "◀️"
	EmojiNext      = "▶️"
	EmojiLast      = "⏭️"
	EmojiSortKey   = "🔠"
	EmojiSortValue = "🔢"
	EmojiClose     = "❌"
)

// Event is one reaction delivered to a browser.
type Event struct {
	Emoji   string
	UserID  string
	Removed bool
}

// Options configure a browser instance.
type Options struct {
	Title        string
	Description  string
	Color        int
	ItemsPerPage int
	CanSort      bool
	// Interface lists extra reactions dispatched to the OnAction hook.
	Interface []string
}

// Hooks are the capability set a preset plugs into the engine.
type Hooks struct {
	// Filter narrows the visible items; nil shows everything.
	Filter func(items []any) []any
	// MapItem renders one item as an embed field. Used by the default
	// renderer; ignored when Render is set.
	MapItem func(index int, item any) (name, value string)
	// SortKey and SortValue reorder the data in place. Required when
	// Options.CanSort is set.
	SortKey   func(items []any)
	SortValue func(items []any)
	// OnAction handles Interface reactions and reports whether the state
	// changed (triggering a re-render).
	OnAction func(b *Browser, emoji string, removed bool) bool
	// Render overrides the whole embed construction.
	Render func(b *Browser, visible []any, page, pages int) *discordgo.MessageEmbed
}

// Browser owns its data for its whole lifetime and tracks the current page.
type Browser struct {
	OwnerID   string
	ChannelID string
	MessageID string

	opts  Options
	hooks Hooks
	items []any
	page  int

	lastUsed time.Time
	closed   bool
}

// New builds a browser at page 1.
func New(ownerID string, items []any, opts Options, hooks Hooks) *Browser {
	if opts.ItemsPerPage <= 0 {
		opts.ItemsPerPage = 10
	}
	return &Browser{
		OwnerID:  ownerID,
		opts:     opts,
		hooks:    hooks,
		items:    items,
		page:     1,
		lastUsed: time.Now(),
	}
}

// Items returns the underlying data after filtering.
func (b *Browser) Items() []any {
	if b.hooks.Filter != nil {
		return b.hooks.Filter(b.items)
	}
	return b.items
}

// SetItems replaces the underlying data and re-clamps the page. Used by
// tree navigation and filter toggles.
func (b *Browser) SetItems(items []any) {
	b.items = items
	b.page = clamp(b.page, 1, b.Pages())
}

// Page is the 1-indexed current page.
func (b *Browser) Page() int { return b.page }

// Pages is ceil(len/itemsPerPage), never less than 1.
func (b *Browser) Pages() int {
	n := len(b.Items())
	pages := (n + b.opts.ItemsPerPage - 1) / b.opts.ItemsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// SetPage clamps the target to the valid range and reports whether the page
// actually changed.
func (b *Browser) SetPage(n int) bool {
	n = clamp(n, 1, b.Pages())
	if n == b.page {
		return false
	}
	b.page = n
	return true
}

// Closed reports whether the owner dismissed the browser.
func (b *Browser) Closed() bool { return b.closed }

// Idle reports whether the browser has gone unused longer than d.
func (b *Browser) Idle(d time.Duration) bool {
	return time.Since(b.lastUsed) > d
}

// visible returns the filtered items on the current page.
func (b *Browser) visible() []any {
	items := b.Items()
	start := (b.page - 1) * b.opts.ItemsPerPage
	if start >= len(items) {
		return nil
	}
	end := start + b.opts.ItemsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Reactions lists the emojis to seed onto the browser's message.
func (b *Browser) Reactions() []string {
	var out []string
	if b.Pages() > 1 {
		out = append(out, EmojiFirst, EmojiPrev, EmojiNext, EmojiLast)
	}
	if b.opts.CanSort {
		out = append(out, EmojiSortKey, EmojiSortValue)
	}
	out = append(out, b.opts.Interface...)
	out = append(out, EmojiClose)
	return out
}

// React is the state reducer: it consumes one reaction event and reports
// whether a re-render is needed. Only the owning user's reactions act;
// reaction removals are ignored except as the undo signal for interface
// toggles.
func (b *Browser) React(ev Event) bool {
	if ev.UserID != b.OwnerID || b.closed {
		return false
	}
	b.lastUsed = time.Now()

	if ev.Removed {
		if b.isInterface(ev.Emoji) && b.hooks.OnAction != nil {
			return b.hooks.OnAction(b, ev.Emoji, true)
		}
		return false
	}

	switch ev.Emoji {
	case EmojiFirst:
		return b.SetPage(1)
	case EmojiPrev:
		return b.SetPage(b.page - 1)
	case EmojiNext:
		return b.SetPage(b.page + 1)
	case EmojiLast:
		return b.SetPage(b.Pages())
	case EmojiSortKey:
		return b.sort(b.hooks.SortKey, "key")
	case EmojiSortValue:
		return b.sort(b.hooks.SortValue, "value")
	case EmojiClose:
		b.closed = true
		return true
	default:
		if b.isInterface(ev.Emoji) && b.hooks.OnAction != nil {
			return b.hooks.OnAction(b, ev.Emoji, false)
		}
		return false
	}
}

func (b *Browser) sort(fn func([]any), which string) bool {
	if !b.opts.CanSort {
		return false
	}
	if fn == nil {
		log.WithField("title", b.opts.Title).Warnf("sortable browser has no %s sort hook", which)
		return false
	}
	fn(b.items)
	return true
}

func (b *Browser) isInterface(emoji string) bool {
	for _, e := range b.opts.Interface {
		if e == emoji {
			return true
		}
	}
	return false
}

// Render recomputes the embed from current state. It is pure with respect
// to the browser state: rendering twice without an intervening state change
// yields the same embed.
func (b *Browser) Render() *discordgo.MessageEmbed {
	visible := b.visible()
	if b.hooks.Render != nil {
		return b.hooks.Render(b, visible, b.page, b.Pages())
	}

	embed := &discordgo.MessageEmbed{
		Title:       b.opts.Title,
		Description: b.opts.Description,
		Color:       b.opts.Color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d (%d items)", b.page, b.Pages(), len(b.Items())),
		},
	}
	offset := (b.page - 1) * b.opts.ItemsPerPage
	for i, item := range visible {
		name, value := fmt.Sprintf("%d.", offset+i+1), fmt.Sprint(item)
		if b.hooks.MapItem != nil {
			name, value = b.hooks.MapItem(offset+i, item)
		}
		if value == "" {
			value = "​"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: value,
		})
	}
	return embed
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
