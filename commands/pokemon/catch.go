package pokemon

import (
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/utils"
)

func init() {
	commands.RegisterCommand("catch", Catch)
}

// species is a catchable pokemon. Weight sets how often it appears;
// value is what releasing it pays.
type species struct {
	Name   string
	Emoji  string
	Weight int
	Value  float64
}

var wildSpecies = []species{
	{"Pidgey", "🐦", 30, 20},
	{"Rattata", "🐀", 30, 20},
	{"Caterpie", "🐛", 25, 25},
	{"Psyduck", "🦆", 20, 40},
	{"Growlithe", "🐕", 15, 60},
	{"Ponyta", "🐎", 15, 60},
	{"Magikarp", "🐟", 12, 5},
	{"Eevee", "🦊", 10, 100},
	{"Pikachu", "⚡", 8, 150},
	{"Snorlax", "😴", 5, 250},
	{"Lapras", "🌊", 4, 300},
	{"Dratini", "🐉", 3, 400},
	{"Mewtwo", "🔮", 1, 2000},
}

// pickSpecies draws a weighted random species using the given source.
func pickSpecies(intn func(int) int) species {
	total := 0
	for _, sp := range wildSpecies {
		total += sp.Weight
	}
	roll := intn(total)
	for _, sp := range wildSpecies {
		roll -= sp.Weight
		if roll < 0 {
			return sp
		}
	}
	return wildSpecies[len(wildSpecies)-1]
}

// Catch attempts to catch a wild pokemon, subject to the catch cooldown.
func Catch(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	t, err := loadTrainer(b, m.Author.ID)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Something went wrong. Try again later.")
		return
	}

	now := time.Now()
	if left := t.catchCooldownLeft(b.Cfg.PokemonCatchCooldown, now); left > 0 {
		s.ChannelMessageSend(m.ChannelID, "The tall grass is empty. Come back in "+utils.FormatDuration(left)+".")
		return
	}

	sp := pickSpecies(rand.Intn)
	t.Caught = append(t.Caught, caught{
		ID:       uuid.NewString(),
		Species:  sp.Name,
		Value:    sp.Value,
		CaughtAt: now.UnixMilli(),
	})
	t.LastCatch = now.UnixMilli()

	if err := saveTrainer(b, m.Author.ID, t); err != nil {
		s.ChannelMessageSend(m.ChannelID, "Something went wrong. Try again later.")
		return
	}
	s.ChannelMessageSend(m.ChannelID,
		sp.Emoji+" Gotcha! You caught a **"+sp.Name+"** (worth "+b.FormatCredits(sp.Value)+").")
}
