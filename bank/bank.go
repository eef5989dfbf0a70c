// Package bank implements the virtual currency system: per-user accounts
// with an append-only ledger, time-gated daily payroll, and interest-bearing
// investments. The Bank facade mediates between the record store and
// Account entities, serializing mutations per user so concurrent commands
// never interleave a read-modify-write.
package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/DragonOfMath/discord-dragon-bot-sub002/ledger"
	"github.com/DragonOfMath/discord-dragon-bot-sub002/storage"
)

const accountsCollection = "accounts"

// Bank orchestrates account lookups and mutations against the record store.
type Bank struct {
	store    storage.Store
	logs     *ledger.Logger
	settings Settings

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New builds a Bank over the given store and ledger.
func New(store storage.Store, logs *ledger.Logger, settings Settings) *Bank {
	return &Bank{
		store:    store,
		logs:     logs,
		settings: settings,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Settings exposes the bank tunables to the command layer for display.
func (b *Bank) Settings() Settings { return b.settings }

// lock returns the per-user mutex, creating it on first use.
func (b *Bank) lock(userID string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	lk, ok := b.locks[userID]
	if !ok {
		lk = &sync.Mutex{}
		b.locks[userID] = lk
	}
	return lk
}

// template fills the defaults of a brand-new account: open, starting
// balance, no investments, daily never claimed.
func (b *Bank) template() Template {
	return Template{
		"credits":       {Default: b.settings.StartingBalance},
		"state":         {Default: string(StateOpen)},
		"authorized":    {Default: false},
		"investments":   {Default: []any{}},
		"dailyReceived": {Default: float64(0)},
	}
}

// hydrate turns a raw stored record (possibly empty) into an Account.
func (b *Bank) hydrate(userID string, raw storage.Record) (*Account, error) {
	merged := Hydrate(b.template(), raw)
	buf, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("hydrating account %s: %w", userID, err)
	}
	var acct Account
	if err := json.Unmarshal(buf, &acct); err != nil {
		return nil, fmt.Errorf("hydrating account %s: %w", userID, err)
	}
	acct.ID = userID
	acct.settings = b.settings
	return &acct, nil
}

func (b *Bank) load(userID string) (*Account, error) {
	raw, err := b.store.Get(accountsCollection, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		raw = storage.Record{}
	}
	return b.hydrate(userID, raw)
}

func (b *Bank) save(acct *Account) error {
	buf, err := json.Marshal(acct)
	if err != nil {
		return err
	}
	var rec storage.Record
	if err := json.Unmarshal(buf, &rec); err != nil {
		return err
	}
	return b.store.Put(accountsCollection, acct.ID, rec)
}

// flush appends the account's queued ledger entries. The balance has
// already been persisted at this point, so a failed append is logged
// rather than surfaced.
func (b *Bank) flush(acct *Account) {
	for _, entry := range acct.takePending() {
		if err := b.logs.Append(acct.ID, entry); err != nil {
			log.WithField("account", acct.ID).WithError(err).Error("ledger append failed")
		}
	}
}

// Modify runs fn against the user's account inside the per-user critical
// section. The mutated account is persisted only if fn succeeds; on error
// nothing is written and the stored state is untouched. fn may return a
// user-facing message which Modify propagates.
func (b *Bank) Modify(userID string, fn func(acct *Account) (string, error)) (string, error) {
	lk := b.lock(userID)
	lk.Lock()
	defer lk.Unlock()

	acct, err := b.load(userID)
	if err != nil {
		return "", err
	}
	msg, err := fn(acct)
	if err != nil {
		return "", err
	}
	if err := b.save(acct); err != nil {
		return "", fmt.Errorf("saving account %s: %w", userID, err)
	}
	b.flush(acct)
	return msg, nil
}

// Account returns a point-in-time snapshot of the user's account,
// hydrating defaults if it has never been stored.
func (b *Bank) Account(userID string) (*Account, error) {
	lk := b.lock(userID)
	lk.Lock()
	defer lk.Unlock()
	return b.load(userID)
}

// Transfer moves amount between two users, all-or-nothing. Both per-user
// locks are taken in sorted order so concurrent transfers cannot deadlock.
// If persisting the destination fails after the source was written, the
// source record is restored to its pre-transfer state.
func (b *Bank) Transfer(fromID, toID string, amount float64) error {
	if fromID == toID {
		return ErrSelfTransfer
	}
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	lk1, lk2 := b.lock(first), b.lock(second)
	lk1.Lock()
	defer lk1.Unlock()
	lk2.Lock()
	defer lk2.Unlock()

	from, err := b.load(fromID)
	if err != nil {
		return err
	}
	to, err := b.load(toID)
	if err != nil {
		return err
	}

	// Snapshot the sender's stored record for the rollback path. A read
	// failure here must abort the transfer: mistaking it for "no record"
	// would make a later rollback delete the sender's live record.
	prevFrom, err := b.store.Get(accountsCollection, fromID)
	hadFrom := true
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("reading sender record: %w", err)
		}
		hadFrom = false
	}

	if err := from.Transfer(to, amount); err != nil {
		return err
	}
	if err := b.save(from); err != nil {
		return fmt.Errorf("saving sender: %w", err)
	}
	if err := b.save(to); err != nil {
		// Roll the debit back so no funds are lost.
		var restoreErr error
		if hadFrom {
			restoreErr = b.store.Put(accountsCollection, fromID, prevFrom)
		} else {
			restoreErr = b.store.Delete(accountsCollection, fromID)
		}
		if restoreErr != nil {
			log.WithField("account", fromID).WithError(restoreErr).Error("transfer rollback failed")
		}
		return fmt.Errorf("saving recipient: %w", err)
	}
	b.flush(from)
	b.flush(to)
	return nil
}

// ServerAccounts bulk-loads the accounts of the given member IDs, skipping
// members who never opened one. Used for ledger and leaderboard views.
func (b *Bank) ServerAccounts(memberIDs []string) (map[string]*Account, error) {
	out := make(map[string]*Account, len(memberIDs))
	for _, id := range memberIDs {
		raw, err := b.store.Get(accountsCollection, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		acct, err := b.hydrate(id, raw)
		if err != nil {
			return nil, err
		}
		out[id] = acct
	}
	return out, nil
}

// HistoryEntry is one merged ledger record tagged with its account.
type HistoryEntry struct {
	UserID string
	Record ledger.Record
}

// History merges the given accounts' ledgers, newest first. Accounts with
// no ledger file contribute nothing.
func (b *Bank) History(userIDs ...string) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	for _, id := range userIDs {
		records, err := b.logs.ReadAll(id)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			entries = append(entries, HistoryEntry{UserID: id, Record: rec})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Record.T > entries[j].Record.T
	})
	return entries, nil
}

// Delete removes the stored account record and clears its ledger file.
func (b *Bank) Delete(userID string) error {
	lk := b.lock(userID)
	lk.Lock()
	defer lk.Unlock()

	if err := b.store.Delete(accountsCollection, userID); err != nil {
		return err
	}
	return b.logs.Delete(userID)
}
