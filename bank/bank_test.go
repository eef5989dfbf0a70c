package bank

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/ledger"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/storage"
)

func testBank(t *testing.T) *Bank {
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
	return New(store, logs, testSettings())
}

func TestModifyPersistsAndLogs(t *testing.T) {
	b := testBank(t)

	msg, err := b.Modify("alice", func(acct *Account) (string, error) {
		if err := acct.Deposit(100); err != nil {
			return "", err
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if msg != "ok" {
		t.Errorf("msg = %q, want ok", msg)
	}

	acct, err := b.Account("alice")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if acct.Credits != 1100 {
		t.Errorf("credits = %v, want 1100 (starting 1000 + 100)", acct.Credits)
	}

	entries, err := b.History("alice")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(entries))
	}
	data := entries[0].Record.Data
	if data["action"] != "deposit" {
		t.Errorf("action = %v, want deposit", data["action"])
	}
	if data["prev"].(float64) != 1000 || data["next"].(float64) != 1100 {
		t.Errorf("prev/next = %v/%v, want 1000/1100", data["prev"], data["next"])
	}
}

func TestModifyFailureWritesNothing(t *testing.T) {
	b := testBank(t)

	boom := errors.New("boom")
	_, err := b.Modify("alice", func(acct *Account) (string, error) {
		// Mutate first so a buggy save-on-error would be visible.
		if err := acct.Deposit(100); err != nil {
			return "", err
		}
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	acct, err := b.Account("alice")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if acct.Credits != 1000 {
		t.Errorf("credits = %v, want untouched 1000", acct.Credits)
	}
	entries, err := b.History("alice")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("history entries = %d, want 0", len(entries))
	}
}

func TestTransferBetweenUsers(t *testing.T) {
	b := testBank(t)

	if err := b.Transfer("alice", "bob", 250); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	alice, _ := b.Account("alice")
	bob, _ := b.Account("bob")
	if alice.Credits != 750 {
		t.Errorf("alice = %v, want 750", alice.Credits)
	}
	if bob.Credits != 1250 {
		t.Errorf("bob = %v, want 1250", bob.Credits)
	}

	if err := b.Transfer("alice", "alice", 10); !errors.Is(err, ErrSelfTransfer) {
		t.Errorf("self transfer err = %v, want ErrSelfTransfer", err)
	}
	if err := b.Transfer("alice", "bob", 10000); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("overdraw err = %v, want ErrInsufficientFunds", err)
	}
}

// failingStore wraps a Store and fails Put for one key.
type failingStore struct {
	storage.Store
	failKey string
}

func (f *failingStore) Put(collection, key string, rec storage.Record) error {
	if key == f.failKey {
		return fmt.Errorf("disk full")
	}
	return f.Store.Put(collection, key, rec)
}

func TestTransferRestoresSenderWhenRecipientSaveFails(t *testing.T) {
	dir := t.TempDir()
	inner, err := storage.OpenFileStore(dir + "/records.json")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	logs, err := ledger.New(dir + "/ledgers")
	if err != nil {
		t.Fatalf("opening ledger: %v", err)
	}

	// Seed alice through a working bank first.
	working := New(inner, logs, testSettings())
	if _, err := working.Modify("alice", func(acct *Account) (string, error) {
		return "", acct.Deposit(500)
	}); err != nil {
		t.Fatalf("seeding alice: %v", err)
	}

	broken := New(&failingStore{Store: inner, failKey: "bob"}, logs, testSettings())
	if err := broken.Transfer("alice", "bob", 100); err == nil {
		t.Fatal("transfer succeeded despite failing recipient save")
	}

	alice, err := working.Account("alice")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if alice.Credits != 1500 {
		t.Errorf("alice = %v, want 1500 restored", alice.Credits)
	}
}

// flakyGetStore wraps a Store and fails Get for one key after the first
// successful read.
type flakyGetStore struct {
	storage.Store
	failKey string
	reads   int
}

func (f *flakyGetStore) Get(collection, key string) (storage.Record, error) {
	if key == f.failKey {
		f.reads++
		if f.reads > 1 {
			return nil, fmt.Errorf("connection reset")
		}
	}
	return f.Store.Get(collection, key)
}

func TestTransferAbortsWhenSenderSnapshotFails(t *testing.T) {
	dir := t.TempDir()
	inner, err := storage.OpenFileStore(dir + "/records.json")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	logs, err := ledger.New(dir + "/ledgers")
	if err != nil {
		t.Fatalf("opening ledger: %v", err)
	}

	working := New(inner, logs, testSettings())
	if _, err := working.Modify("alice", func(acct *Account) (string, error) {
		return "", acct.Deposit(500)
	}); err != nil {
		t.Fatalf("seeding alice: %v", err)
	}

	// The first Get (loading alice) succeeds; the rollback-snapshot Get
	// fails. The transfer must abort rather than treat the failed read as
	// a missing record, which would let the rollback delete alice.
	broken := New(&flakyGetStore{Store: inner, failKey: "alice"}, logs, testSettings())
	if err := broken.Transfer("alice", "bob", 100); err == nil {
		t.Fatal("transfer succeeded despite snapshot read failure")
	}

	if _, err := inner.Get(accountsCollection, "alice"); err != nil {
		t.Errorf("sender record gone after aborted transfer: %v", err)
	}
	alice, err := working.Account("alice")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if alice.Credits != 1500 {
		t.Errorf("alice = %v, want 1500 untouched", alice.Credits)
	}
	if _, err := inner.Get(accountsCollection, "bob"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("bob was persisted by an aborted transfer: %v", err)
	}
}

func TestConcurrentModifiesSerialize(t *testing.T) {
	b := testBank(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := b.Modify("alice", func(acct *Account) (string, error) {
				return "", acct.Deposit(1)
			})
			if err != nil {
				t.Errorf("modify: %v", err)
			}
		}()
	}
	wg.Wait()

	acct, err := b.Account("alice")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if acct.Credits != 1000+n {
		t.Errorf("credits = %v, want %d", acct.Credits, 1000+n)
	}
	entries, err := b.History("alice")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != n {
		t.Errorf("history entries = %d, want %d", len(entries), n)
	}
}

func TestHydrateLegacyBusyState(t *testing.T) {
	b := testBank(t)

	// Records written by the old bot store "busy" instead of deriving it.
	err := b.store.Put(accountsCollection, "legacy", storage.Record{
		"credits": float64(42),
		"state":   "busy",
	})
	if err != nil {
		t.Fatalf("seeding record: %v", err)
	}

	acct, err := b.Account("legacy")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if acct.Credits != 42 {
		t.Errorf("credits = %v, want 42", acct.Credits)
	}
	if acct.State != StateBusy {
		t.Errorf("state = %v, want busy preserved", acct.State)
	}
	if acct.Investing() {
		t.Error("Investing() = true with no investments")
	}
}

func TestDeleteRemovesRecordAndLedger(t *testing.T) {
	b := testBank(t)

	if _, err := b.Modify("alice", func(acct *Account) (string, error) {
		return "", acct.Deposit(5)
	}); err != nil {
		t.Fatalf("modify: %v", err)
	}
	if err := b.Delete("alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := b.store.Get(accountsCollection, "alice"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("record err = %v, want ErrNotFound", err)
	}
	entries, err := b.History("alice")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("history entries after delete = %d, want 0", len(entries))
	}
}
