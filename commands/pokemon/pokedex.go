package pokemon

import (
	"errors"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/browser"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("pokedex", Pokedex, "pokemon", "pkmn")
	commands.RegisterCommand("release", Release)
}

// Pokedex browses a trainer's caught pokemon.
func Pokedex(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	userID := m.Author.ID
	if len(args) >= 2 {
		id, err := utils.ExtractUserID(args[1])
		if err != nil {
			s.ChannelMessageSend(m.ChannelID, "Invalid mention. Use a proper mention (e.g. @username).")
			return
		}
		userID = id
	}

	t, err := loadTrainer(b, userID)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Something went wrong. Try again later.")
		return
	}
	if len(t.Caught) == 0 {
		s.ChannelMessageSend(m.ChannelID, "No pokemon caught yet. Try `"+b.Cfg.CommandPrefix+"catch`.")
		return
	}

	rows := make([]browser.Row, len(t.Caught))
	for i, c := range t.Caught {
		rows[i] = browser.Row{
			strconv.Itoa(i + 1),
			c.Species,
			b.FormatCredits(c.Value),
			utils.FormatTimestampMs(c.CaughtAt),
		}
	}

	table := browser.NewTable(m.Author.ID, "Pokedex",
		[]string{"#", "Species", "Value", "Caught"}, rows, b.Cfg.BrowserItemsPerPage, 1, 2)
	if err := b.Browsers.Spawn(s, m.ChannelID, table); err != nil {
		log.WithError(err).Error("spawning pokedex browser")
	}
}

// Release sells the pokemon at position n, crediting its value through
// the bank so the payout lands in the ledger.
func Release(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"release <n>` (see `pokedex`)")
		return
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 {
		s.ChannelMessageSend(m.ChannelID, "That's not a pokedex position.")
		return
	}

	c, err := release(b, m.Author.ID, n-1)
	if err != nil {
		if errors.Is(err, errNoSuchPokemon) {
			s.ChannelMessageSend(m.ChannelID, "That's not a pokedex position.")
		} else {
			s.ChannelMessageSend(m.ChannelID, commands.UserError(err))
		}
		return
	}
	s.ChannelMessageSend(m.ChannelID,
		"You released **"+c.Species+"** and received "+b.FormatCredits(c.Value)+".")
}

// release removes the pokemon at index from the trainer record, then
// credits its value. The record is saved before the payout so a failed
// save never leaves the user with both; a failed payout puts the pokemon
// back.
func release(b *bot.Bot, userID string, index int) (caught, error) {
	t, err := loadTrainer(b, userID)
	if err != nil {
		return caught{}, err
	}
	if index < 0 || index >= len(t.Caught) {
		return caught{}, errNoSuchPokemon
	}
	c := t.Caught[index]

	rest := make([]caught, 0, len(t.Caught)-1)
	rest = append(rest, t.Caught[:index]...)
	rest = append(rest, t.Caught[index+1:]...)
	t.Caught = rest
	if err := saveTrainer(b, userID, t); err != nil {
		return caught{}, err
	}

	_, err = b.Bank.Modify(userID, func(acct *bank.Account) (string, error) {
		return "", acct.Deposit(c.Value)
	})
	if err != nil {
		t.Caught = append(t.Caught, c)
		if serr := saveTrainer(b, userID, t); serr != nil {
			log.WithField("user", userID).WithError(serr).Error("restoring pokemon after failed payout")
		}
		return caught{}, err
	}
	return c, nil
}
