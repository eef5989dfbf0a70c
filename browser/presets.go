package browser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Digit emojis used by selection browsers, in slot order.
var digitEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// EmojiBack steps a tree browser up one level.
const EmojiBack = "🔙"

// NewList pages through items rendered one embed field each.
func NewList(ownerID, title string, items []any, perPage int, toString func(item any) string) *Browser {
	if toString == nil {
		toString = func(item any) string { return fmt.Sprint(item) }
	}
	return New(ownerID, items, Options{
		Title:        title,
		Color:        0x00ff00,
		ItemsPerPage: perPage,
	}, Hooks{
		MapItem: func(i int, item any) (string, string) {
			return fmt.Sprintf("%d.", i+1), toString(item)
		},
	})
}

// Row is one table row.
type Row []string

// NewTable pages rows as an aligned monospace table. keyCol and valueCol
// name the sortable columns: the key column sorts ascending (numerically
// when it holds plain numbers), the value column sorts descending by
// magnitude. Cells that travel with their row, like a rank column, keep
// their original numbers after a sort.
func NewTable(ownerID, title string, columns []string, rows []Row, perPage, keyCol, valueCol int) *Browser {
	items := make([]any, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	return New(ownerID, items, Options{
		Title:        title,
		Color:        0x00aaff,
		ItemsPerPage: perPage,
		CanSort:      true,
	}, Hooks{
		SortKey: func(items []any) {
			sort.SliceStable(items, func(i, j int) bool {
				return keyLess(cell(items[i], keyCol), cell(items[j], keyCol))
			})
		},
		SortValue: func(items []any) {
			sort.SliceStable(items, func(i, j int) bool {
				return numericLess(cell(items[j], valueCol), cell(items[i], valueCol))
			})
		},
		Render: func(b *Browser, visible []any, page, pages int) *discordgo.MessageEmbed {
			widths := make([]int, len(columns))
			for i, c := range columns {
				widths[i] = len(c)
			}
			for _, it := range visible {
				row, _ := it.(Row)
				for i := range columns {
					if i < len(row) && len(row[i]) > widths[i] {
						widths[i] = len(row[i])
					}
				}
			}
			var sb strings.Builder
			sb.WriteString("```\n")
			writeRow(&sb, Row(columns), widths)
			for _, it := range visible {
				row, _ := it.(Row)
				writeRow(&sb, row, widths)
			}
			sb.WriteString("```")
			return &discordgo.MessageEmbed{
				Title:       title,
				Description: sb.String(),
				Color:       0x00aaff,
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("Page %d of %d (%d rows)", page, pages, len(b.Items())),
				},
			}
		},
	})
}

func cell(item any, i int) string {
	row, _ := item.(Row)
	if i < len(row) {
		return row[i]
	}
	return ""
}

// keyLess orders key cells: columns of plain numbers compare numerically,
// everything else lexicographically, so a rank column never yields 1, 10, 2.
func keyLess(a, b string) bool {
	if isDigits(a) && isDigits(b) {
		return numericLess(a, b)
	}
	return a < b
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// numericLess compares decimal strings without parsing: shorter strings are
// smaller, equal lengths fall back to lexicographic order. Holds for any
// column formatted with a fixed symbol and decimal count.
func numericLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func writeRow(sb *strings.Builder, row Row, widths []int) {
	for i, w := range widths {
		c := ""
		if i < len(row) {
			c = row[i]
		}
		sb.WriteString(c)
		sb.WriteString(strings.Repeat(" ", w-len(c)+2))
	}
	sb.WriteString("\n")
}

// contentPageLimit is Discord's embed description cap.
const contentPageLimit = 2048

// SplitContent breaks text into chunks of at most limit bytes, cutting at
// the last newline before the limit when there is one. Callers with one
// long buffer can hand the result straight to NewContent.
func SplitContent(text string, limit int) []string {
	if limit <= 0 {
		limit = contentPageLimit
	}
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// NewContent pages through text chunks, one per page, rendered as the
// embed description. Chunks over the embed limit are split further.
func NewContent(ownerID, title string, chunks []string) *Browser {
	var pages []string
	for _, c := range chunks {
		pages = append(pages, SplitContent(c, contentPageLimit)...)
	}
	items := make([]any, len(pages))
	for i, c := range pages {
		items[i] = c
	}
	return New(ownerID, items, Options{
		Title:        title,
		Color:        0xaaaaaa,
		ItemsPerPage: 1,
	}, Hooks{
		Render: func(b *Browser, visible []any, page, pages int) *discordgo.MessageEmbed {
			desc := ""
			if len(visible) > 0 {
				desc, _ = visible[0].(string)
			}
			return &discordgo.MessageEmbed{
				Title:       title,
				Description: desc,
				Color:       0xaaaaaa,
				Footer: &discordgo.MessageEmbedFooter{
					Text: fmt.Sprintf("Page %d of %d", page, pages),
				},
			}
		},
	})
}

// NewSelection is a list browser whose digit reactions pick an item on the
// current page. onSelect receives the absolute index and reports whether
// the browser state changed.
func NewSelection(ownerID, title string, items []any, perPage int,
	toString func(item any) string, onSelect func(b *Browser, index int) bool) *Browser {

	if perPage <= 0 || perPage > len(digitEmojis) {
		perPage = len(digitEmojis)
	}
	if toString == nil {
		toString = func(item any) string { return fmt.Sprint(item) }
	}
	return New(ownerID, items, Options{
		Title:        title,
		Color:        0xffaa00,
		ItemsPerPage: perPage,
		Interface:    digitEmojis[:perPage],
	}, Hooks{
		MapItem: func(i int, item any) (string, string) {
			return fmt.Sprintf("%s %d.", digitEmojis[i%perPage], i+1), toString(item)
		},
		OnAction: func(b *Browser, emoji string, removed bool) bool {
			if removed {
				return false
			}
			slot := -1
			for i, e := range digitEmojis[:perPage] {
				if e == emoji {
					slot = i
					break
				}
			}
			if slot < 0 {
				return false
			}
			index := (b.Page()-1)*perPage + slot
			if index >= len(b.Items()) {
				return false
			}
			return onSelect(b, index)
		},
	})
}

// Node is one entry of a tree browser. Leaves have no children.
type Node struct {
	Label    string
	Value    string
	Children []*Node
}

// NewTree browses a node hierarchy: digit reactions descend into a child
// with children, EmojiBack pops up one level.
func NewTree(ownerID, title string, roots []*Node, perPage int) *Browser {
	if perPage <= 0 || perPage > len(digitEmojis) {
		perPage = len(digitEmojis)
	}
	var stack [][]*Node
	current := roots

	toItems := func(nodes []*Node) []any {
		items := make([]any, len(nodes))
		for i, n := range nodes {
			items[i] = n
		}
		return items
	}

	iface := append([]string{}, digitEmojis[:perPage]...)
	iface = append(iface, EmojiBack)

	return New(ownerID, toItems(current), Options{
		Title:        title,
		Color:        0xaa00ff,
		ItemsPerPage: perPage,
		Interface:    iface,
	}, Hooks{
		MapItem: func(i int, item any) (string, string) {
			n, _ := item.(*Node)
			label := n.Label
			if len(n.Children) > 0 {
				label = "📁 " + label
			}
			value := n.Value
			if value == "" {
				value = fmt.Sprintf("%d entries", len(n.Children))
			}
			return fmt.Sprintf("%s %s", digitEmojis[i%perPage], label), value
		},
		OnAction: func(b *Browser, emoji string, removed bool) bool {
			if removed {
				return false
			}
			if emoji == EmojiBack {
				if len(stack) == 0 {
					return false
				}
				current = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				b.SetItems(toItems(current))
				b.SetPage(1)
				return true
			}
			slot := -1
			for i, e := range digitEmojis[:perPage] {
				if e == emoji {
					slot = i
					break
				}
			}
			if slot < 0 {
				return false
			}
			index := (b.Page()-1)*perPage + slot
			if index >= len(current) {
				return false
			}
			node := current[index]
			if len(node.Children) == 0 {
				return false
			}
			stack = append(stack, current)
			current = node.Children
			b.SetItems(toItems(current))
			b.SetPage(1)
			return true
		},
	})
}
