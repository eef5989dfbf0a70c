package pokemon

import (
	"errors"
	"testing"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/bank"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/bot"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/ledger"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/storage"
)

func testBot(t *testing.T) *bot.Bot {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.OpenFileStore(dir + "/records.json")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	logs, err := ledger.New(dir + "/ledgers")
	if err != nil {
		t.Fatalf("opening ledger: %v", err)
	}
	settings := bank.Settings{
		StartingBalance: 1000,
		RoundDecimals:   1,
	}
	return &bot.Bot{Store: store, Bank: bank.New(store, logs, settings)}
}

func TestReleaseCreditsAndRemoves(t *testing.T) {
	b := testBot(t)
	tr := &trainer{Caught: []caught{
		{ID: "p1", Species: "Pidgey", Value: 20},
		{ID: "p2", Species: "Eevee", Value: 100},
	}}
	if err := saveTrainer(b, "ash", tr); err != nil {
		t.Fatalf("seeding trainer: %v", err)
	}

	c, err := release(b, "ash", 1)
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if c.Species != "Eevee" {
		t.Errorf("released %q, want Eevee", c.Species)
	}

	acct, err := b.Bank.Account("ash")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if acct.Credits != 1100 {
		t.Errorf("credits = %v, want 1100 (starting 1000 + 100)", acct.Credits)
	}
	got, err := loadTrainer(b, "ash")
	if err != nil {
		t.Fatalf("loading trainer: %v", err)
	}
	if len(got.Caught) != 1 || got.Caught[0].ID != "p1" {
		t.Errorf("remaining pokemon = %v, want just p1", got.Caught)
	}
}

func TestReleaseKeepsPokemonWhenPayoutFails(t *testing.T) {
	b := testBot(t)
	// Dead accounts reject deposits, so the payout leg fails.
	if _, err := b.Bank.Modify("ash", func(acct *bank.Account) (string, error) {
		return "", acct.Shutdown()
	}); err != nil {
		t.Fatalf("shutting account: %v", err)
	}
	tr := &trainer{Caught: []caught{{ID: "p1", Species: "Pidgey", Value: 20}}}
	if err := saveTrainer(b, "ash", tr); err != nil {
		t.Fatalf("seeding trainer: %v", err)
	}

	if _, err := release(b, "ash", 0); err == nil {
		t.Fatal("release succeeded against a dead account")
	}

	got, err := loadTrainer(b, "ash")
	if err != nil {
		t.Fatalf("loading trainer: %v", err)
	}
	if len(got.Caught) != 1 || got.Caught[0].ID != "p1" {
		t.Errorf("pokemon lost after failed payout: %v", got.Caught)
	}
}

func TestReleaseOutOfRange(t *testing.T) {
	b := testBot(t)
	if _, err := release(b, "ash", 0); !errors.Is(err, errNoSuchPokemon) {
		t.Errorf("err = %v, want errNoSuchPokemon", err)
	}
}
