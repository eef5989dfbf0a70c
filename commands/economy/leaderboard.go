package economy

import (
	"sort"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/browser"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterCommand("leaderboard", Leaderboard, "lb", "top")
}

// Leaderboard browses the server's accounts as a sortable table ranked
// by net worth.
func Leaderboard(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if m.GuildID == "" {
		s.ChannelMessageSend(m.ChannelID, "This command only works in a server.")
		return
	}

	members, err := s.GuildMembers(m.GuildID, "", 1000)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Could not list server members.")
		return
	}

	ids := make([]string, 0, len(members))
	names := make(map[string]string, len(members))
	for _, member := range members {
		if member.User == nil || member.User.Bot {
			continue
		}
		ids = append(ids, member.User.ID)
		names[member.User.ID] = member.User.Username
	}

	accounts, err := b.Bank.ServerAccounts(ids)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		return
	}
	if len(accounts) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Nobody on this server has a bank account yet.")
		return
	}

	type entry struct {
		name  string
		worth float64
	}
	entries := make([]entry, 0, len(accounts))
	for id, acct := range accounts {
		worth, err := acct.Balance()
		if err != nil {
			continue // dead accounts stay off the board
		}
		entries = append(entries, entry{name: names[id], worth: worth})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].worth > entries[j].worth })

	rows := make([]browser.Row, len(entries))
	for i, e := range entries {
		rows[i] = browser.Row{strconv.Itoa(i + 1), e.name, b.FormatCredits(e.worth)}
	}

	table := browser.NewTable(m.Author.ID, "Wealth Leaderboard",
		[]string{"#", "User", "Net Worth"}, rows, b.Cfg.BrowserItemsPerPage, 1, 2)
	if err := b.Browsers.Spawn(s, m.ChannelID, table); err != nil {
		log.WithError(err).Error("spawning leaderboard browser")
	}
}
