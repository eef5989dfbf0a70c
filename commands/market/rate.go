package market

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bwmarrin/discordgo"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/commands"
)

func init() {
	commands.RegisterCommand("rate", Rate, "fx")
}

var currencyCode = regexp.MustCompile(`^[A-Za-z]{3}$`)

// Rate shows the exchange rate between two currencies, optionally scaled
// by an amount.
func Rate(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 3 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+b.Cfg.CommandPrefix+"rate <from> <to> [amount]` e.g. `rate USD EUR 50`")
		return
	}
	from := strings.ToUpper(args[1])
	to := strings.ToUpper(args[2])
	if !currencyCode.MatchString(from) || !currencyCode.MatchString(to) {
		s.ChannelMessageSend(m.ChannelID, "Currencies are three-letter codes, e.g. USD, EUR, JPY.")
		return
	}

	amount := 1.0
	if len(args) > 3 {
		var err error
		amount, err = strconv.ParseFloat(args[3], 64)
		if err != nil || amount <= 0 {
			s.ChannelMessageSend(m.ChannelID, "Invalid amount.")
			return
		}
	}

	rate, err := fetchRate(from, to)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Could not fetch the exchange rate.")
		return
	}

	if amount == 1 {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("1 %s = %.2f %s", from, rate, to))
	} else {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("%.2f %s = %.2f %s", amount, from, amount*rate, to))
	}
}

// fetchRate scrapes the quote from Google Finance.
func fetchRate(from, to string) (float64, error) {
	url := "https://www.google.com/finance/quote/" + from + "-" + to
	resp, err := http.Get(url)
	if err != nil {
		return 0, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("parsing quote page: %w", err)
	}

	text := strings.TrimSpace(doc.Find(".YMlKec.fxKbKc").First().Text())
	if text == "" {
		return 0, fmt.Errorf("no quote element on page")
	}
	text = strings.ReplaceAll(text, ",", "")
	rate, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing quote %q: %w", text, err)
	}
	return rate, nil
}
