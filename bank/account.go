package bank

import (
	"math"
	"time"
)

// State is an account's lifecycle state. Dead is terminal.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
	StateDead   State = "dead"
	// StateBusy only appears when hydrating records written by old bot
	// versions; it is never stored by this code. "Investing" is derived
	// from the investments list instead.
	StateBusy State = "busy"
)

// Settings are the bank tunables an account needs to validate mutations.
type Settings struct {
	StartingBalance   float64
	RoundDecimals     int
	DailyAmount       float64
	DailyCooldown     time.Duration
	InvestMinimum     float64
	InvestRate        float64
	InvestCompounding float64
	InvestTimeScale   time.Duration
	InvestMinimumHold time.Duration
	InvestMaxOpen     int
}

// Account is the per-user ledger entity. All mutations round the balance to
// the configured decimals and reject any result that is NaN, infinite or
// negative, leaving the prior balance intact.
type Account struct {
	ID          string        `json:"-"`
	Credits     float64       `json:"credits"`
	State       State         `json:"state"`
	Authorized  bool          `json:"authorized"`
	Investments []*Investment `json:"investments"`
	// DailyReceived is the epoch-ms timestamp of the last daily claim.
	DailyReceived int64 `json:"dailyReceived"`

	settings Settings
	pending  []map[string]any
}

// Investing reports whether any investments are active, which blocks
// transfers and daily claims.
func (a *Account) Investing() bool { return len(a.Investments) > 0 }

// usable rejects operations on dead or closed accounts.
func (a *Account) usable() error {
	switch a.State {
	case StateDead:
		return ErrAccountDead
	case StateClosed:
		return ErrAccountClosed
	}
	return nil
}

func (a *Account) round(x float64) float64 {
	p := math.Pow(10, float64(a.settings.RoundDecimals))
	return math.Round(x*p) / p
}

func validAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// applyCredits is the single balance mutation path. It rounds the result,
// enforces the finite/non-negative invariant and queues a ledger entry.
func (a *Account) applyCredits(action string, delta float64) error {
	prev := a.Credits
	next := a.round(prev + delta)
	if math.IsNaN(next) || math.IsInf(next, 0) {
		return ErrBalanceInvariant
	}
	if next < 0 {
		return ErrInsufficientFunds
	}
	a.Credits = next
	a.pending = append(a.pending, map[string]any{
		"action":   action,
		"prev":     prev,
		"transfer": delta,
		"next":     next,
	})
	return nil
}

// takePending drains the queued ledger entries. The facade flushes them to
// the ledger only after the account has been persisted.
func (a *Account) takePending() []map[string]any {
	p := a.pending
	a.pending = nil
	return p
}

// Deposit credits the balance by amount.
func (a *Account) Deposit(amount float64) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if err := a.usable(); err != nil {
		return err
	}
	return a.applyCredits("deposit", amount)
}

// Withdraw debits the balance by amount, failing if it would go negative.
func (a *Account) Withdraw(amount float64) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if err := a.usable(); err != nil {
		return err
	}
	return a.applyCredits("withdraw", -amount)
}

// Transfer moves amount from this account to another as one logical
// operation: if the credit leg fails the debit is rolled back.
func (a *Account) Transfer(to *Account, amount float64) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if err := a.usable(); err != nil {
		return err
	}
	if err := to.usable(); err != nil {
		return err
	}
	if a.Investing() {
		return ErrAccountInvesting
	}

	prev := a.Credits
	mark := len(a.pending)
	if err := a.applyCredits("transfer", -amount); err != nil {
		return err
	}
	if err := to.applyCredits("transfer", amount); err != nil {
		a.Credits = prev
		a.pending = a.pending[:mark]
		return err
	}
	return nil
}

// Daily claims the payroll amount once per cooldown window.
func (a *Account) Daily() error {
	if err := a.usable(); err != nil {
		return err
	}
	if a.Investing() {
		return ErrAccountInvesting
	}
	now := time.Now()
	if a.DailyReceived > 0 {
		elapsed := now.Sub(time.UnixMilli(a.DailyReceived))
		if elapsed < a.settings.DailyCooldown {
			return &CooldownError{Op: "daily", Remaining: a.settings.DailyCooldown - elapsed}
		}
	}
	if err := a.applyCredits("daily", a.settings.DailyAmount); err != nil {
		return err
	}
	a.DailyReceived = now.UnixMilli()
	return nil
}

// StartInvestment deducts the principal and opens a new investment with the
// configured rate and compounding.
func (a *Account) StartInvestment(amount float64) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if err := a.usable(); err != nil {
		return err
	}
	if amount < a.settings.InvestMinimum {
		return ErrInvestmentMinimum
	}
	if len(a.Investments) >= a.settings.InvestMaxOpen {
		return ErrTooManyInvestments
	}
	if err := a.applyCredits("invest", -amount); err != nil {
		return err
	}
	a.Investments = append(a.Investments,
		NewInvestment(amount, a.settings.InvestRate, a.settings.InvestCompounding))
	return nil
}

// StopInvestment closes the investment at index, crediting the principal
// plus the interest earned over the elapsed time. The minimum hold period
// must have passed.
func (a *Account) StopInvestment(index int) (float64, error) {
	if err := a.usable(); err != nil {
		return 0, err
	}
	if index < 0 || index >= len(a.Investments) {
		return 0, ErrNoSuchInvestment
	}
	inv := a.Investments[index]

	now := time.Now()
	held := inv.Elapsed(now)
	if held < a.settings.InvestMinimumHold {
		return 0, &CooldownError{Op: "stopping this investment", Remaining: a.settings.InvestMinimumHold - held}
	}

	interest := inv.Interest(now, a.settings.InvestTimeScale)
	payout := inv.Principle + interest
	if err := a.applyCredits("invest payout", payout); err != nil {
		return 0, err
	}
	a.Investments = append(a.Investments[:index], a.Investments[index+1:]...)
	return payout, nil
}

// Authorize grants the elevated-operations flag.
func (a *Account) Authorize() error {
	if a.State == StateDead {
		return ErrAccountDead
	}
	a.Authorized = true
	return nil
}

// Unauthorize revokes the elevated-operations flag.
func (a *Account) Unauthorize() error {
	if a.State == StateDead {
		return ErrAccountDead
	}
	a.Authorized = false
	return nil
}

// Balance is the total net worth view: credits plus the principal of every
// active investment.
func (a *Account) Balance() (float64, error) {
	if a.State == StateDead {
		return 0, ErrAccountDead
	}
	total := a.Credits
	for _, inv := range a.Investments {
		total += inv.Principle
	}
	return a.round(total), nil
}

// Close suspends the account.
func (a *Account) Close() error {
	switch a.State {
	case StateDead:
		return ErrAccountDead
	case StateClosed:
		return ErrAccountAlreadyClosed
	}
	a.State = StateClosed
	return nil
}

// Reopen restores a closed account. Dead accounts stay dead.
func (a *Account) Reopen() error {
	switch a.State {
	case StateDead:
		return ErrAccountDead
	case StateOpen:
		return ErrAccountAlreadyOpen
	}
	a.State = StateOpen
	return nil
}

// Shutdown kills the account permanently.
func (a *Account) Shutdown() error {
	if a.State == StateDead {
		return ErrAccountDead
	}
	a.State = StateDead
	return nil
}
