package bank

import (
	"errors"
	"math"
	"testing"
	"time"
)

func testSettings() Settings {
	return Settings{
		StartingBalance:   1000,
		RoundDecimals:     1,
		DailyAmount:       500,
		DailyCooldown:     24 * time.Hour,
		InvestMinimum:     100,
		InvestRate:        0.05,
		InvestCompounding: 0,
		InvestTimeScale:   24 * time.Hour,
		InvestMinimumHold: time.Hour,
		InvestMaxOpen:     3,
	}
}

func testAccount(credits float64) *Account {
	return &Account{
		ID:       "user",
		Credits:  credits,
		State:    StateOpen,
		settings: testSettings(),
	}
}

func TestDepositWithdraw(t *testing.T) {
	a := testAccount(1000)

	if err := a.Deposit(250.26); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if a.Credits != 1250.3 {
		t.Errorf("credits after deposit = %v, want 1250.3", a.Credits)
	}
	if err := a.Withdraw(250.3); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if a.Credits != 1000 {
		t.Errorf("credits after withdraw = %v, want 1000", a.Credits)
	}
	if len(a.pending) != 2 {
		t.Errorf("pending ledger entries = %d, want 2", len(a.pending))
	}
}

func TestWithdrawInsufficientLeavesAccountUnchanged(t *testing.T) {
	a := testAccount(100)

	err := a.Withdraw(100.1)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if a.Credits != 100 {
		t.Errorf("credits = %v, want 100 (unchanged)", a.Credits)
	}
	if len(a.pending) != 0 {
		t.Errorf("pending entries after failed withdraw = %d, want 0", len(a.pending))
	}
}

func TestInvalidAmounts(t *testing.T) {
	a := testAccount(1000)
	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := a.Deposit(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%v) err = %v, want ErrInvalidAmount", amount, err)
		}
		if err := a.Withdraw(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Withdraw(%v) err = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if a.Credits != 1000 {
		t.Errorf("credits = %v, want 1000", a.Credits)
	}
}

func TestBalanceInvariantOverflow(t *testing.T) {
	a := testAccount(math.MaxFloat64)
	err := a.Deposit(math.MaxFloat64 / 2)
	if !errors.Is(err, ErrBalanceInvariant) {
		t.Fatalf("err = %v, want ErrBalanceInvariant", err)
	}
	if a.Credits != math.MaxFloat64 {
		t.Errorf("credits changed after rejected deposit")
	}
}

func TestClosedAndDeadAccounts(t *testing.T) {
	a := testAccount(1000)
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := a.Deposit(10); !errors.Is(err, ErrAccountClosed) {
		t.Errorf("deposit on closed err = %v, want ErrAccountClosed", err)
	}
	if err := a.Close(); !errors.Is(err, ErrAccountAlreadyClosed) {
		t.Errorf("double close err = %v, want ErrAccountAlreadyClosed", err)
	}
	if err := a.Reopen(); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := a.Reopen(); !errors.Is(err, ErrAccountAlreadyOpen) {
		t.Errorf("reopen open err = %v, want ErrAccountAlreadyOpen", err)
	}

	if err := a.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := a.Reopen(); !errors.Is(err, ErrAccountDead) {
		t.Errorf("reopen dead err = %v, want ErrAccountDead", err)
	}
	if err := a.Shutdown(); !errors.Is(err, ErrAccountDead) {
		t.Errorf("double shutdown err = %v, want ErrAccountDead", err)
	}
	if err := a.Withdraw(10); !errors.Is(err, ErrAccountDead) {
		t.Errorf("withdraw on dead err = %v, want ErrAccountDead", err)
	}
}

func TestEntityTransferRollback(t *testing.T) {
	from := testAccount(1e308)
	to := testAccount(math.MaxFloat64)

	// The credit leg overflows, so the debit must roll back.
	err := from.Transfer(to, 1e308)
	if !errors.Is(err, ErrBalanceInvariant) {
		t.Fatalf("err = %v, want ErrBalanceInvariant", err)
	}
	if from.Credits != 1e308 {
		t.Errorf("sender credits = %v, want 1e308 restored", from.Credits)
	}
	if len(from.pending) != 0 || len(to.pending) != 0 {
		t.Errorf("pending entries after failed transfer: from=%d to=%d",
			len(from.pending), len(to.pending))
	}
}

func TestTransferBlockedWhileInvesting(t *testing.T) {
	from := testAccount(1000)
	to := testAccount(0)
	if err := from.StartInvestment(200); err != nil {
		t.Fatalf("start investment: %v", err)
	}
	if err := from.Transfer(to, 50); !errors.Is(err, ErrAccountInvesting) {
		t.Errorf("transfer err = %v, want ErrAccountInvesting", err)
	}
	if err := from.Daily(); !errors.Is(err, ErrAccountInvesting) {
		t.Errorf("daily err = %v, want ErrAccountInvesting", err)
	}
}

func TestDailyCooldown(t *testing.T) {
	a := testAccount(0)
	if err := a.Daily(); err != nil {
		t.Fatalf("first daily: %v", err)
	}
	if a.Credits != 500 {
		t.Errorf("credits = %v, want 500", a.Credits)
	}

	var cd *CooldownError
	if err := a.Daily(); !errors.As(err, &cd) {
		t.Fatalf("second daily err = %v, want CooldownError", err)
	} else if cd.Remaining <= 0 || cd.Remaining > 24*time.Hour {
		t.Errorf("remaining = %v, want within (0, 24h]", cd.Remaining)
	}

	// Age the claim past the cooldown window.
	a.DailyReceived = time.Now().Add(-25 * time.Hour).UnixMilli()
	if err := a.Daily(); err != nil {
		t.Fatalf("daily after cooldown: %v", err)
	}
	if a.Credits != 1000 {
		t.Errorf("credits = %v, want 1000", a.Credits)
	}
}

func TestInvestmentLifecycle(t *testing.T) {
	a := testAccount(1000)

	if err := a.StartInvestment(50); !errors.Is(err, ErrInvestmentMinimum) {
		t.Errorf("below minimum err = %v, want ErrInvestmentMinimum", err)
	}
	if err := a.StartInvestment(2000); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("over balance err = %v, want ErrInsufficientFunds", err)
	}

	if err := a.StartInvestment(400); err != nil {
		t.Fatalf("start: %v", err)
	}
	if a.Credits != 600 {
		t.Errorf("credits = %v, want 600", a.Credits)
	}
	if !a.Investing() {
		t.Error("Investing() = false, want true")
	}

	// Too early to stop.
	var cd *CooldownError
	if _, err := a.StopInvestment(0); !errors.As(err, &cd) {
		t.Fatalf("early stop err = %v, want CooldownError", err)
	}

	if _, err := a.StopInvestment(5); !errors.Is(err, ErrNoSuchInvestment) {
		t.Errorf("bad index err = %v, want ErrNoSuchInvestment", err)
	}

	// Age the investment one full time-scale period.
	a.Investments[0].Started = time.Now().Add(-24 * time.Hour).UnixMilli()
	payout, err := a.StopInvestment(0)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	// Continuous interest over one period: 400*(e^0.05 - 1) ≈ 20.5.
	if payout < 420 || payout > 421 {
		t.Errorf("payout = %v, want principal plus ~20.5 interest", payout)
	}
	if a.Investing() {
		t.Error("Investing() = true after stopping the only investment")
	}
	if a.Credits != a.round(600+payout) {
		t.Errorf("credits = %v, want %v", a.Credits, a.round(600+payout))
	}
}

func TestInvestmentOpenLimit(t *testing.T) {
	a := testAccount(10000)
	for i := 0; i < 3; i++ {
		if err := a.StartInvestment(100); err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
	}
	if err := a.StartInvestment(100); !errors.Is(err, ErrTooManyInvestments) {
		t.Errorf("err = %v, want ErrTooManyInvestments", err)
	}
}

func TestBalanceIncludesPrincipal(t *testing.T) {
	a := testAccount(1000)
	if err := a.StartInvestment(300); err != nil {
		t.Fatalf("start: %v", err)
	}
	worth, err := a.Balance()
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if worth != 1000 {
		t.Errorf("net worth = %v, want 1000", worth)
	}
}
