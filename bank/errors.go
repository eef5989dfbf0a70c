package bank

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors surfaced to the command layer as user-facing messages.
// They are raised by the lowest-level entity method and propagate
// unmodified through the facade.
var (
	// ErrInvalidAmount covers non-numeric, non-positive and non-finite amounts.
	ErrInvalidAmount = errors.New("amount must be a positive finite number")
	// ErrInsufficientFunds means the mutation would drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBalanceInvariant means the mutation would produce a NaN or infinite
	// balance. The account is left unchanged.
	ErrBalanceInvariant = errors.New("operation would corrupt the balance")

	ErrAccountDead          = errors.New("this account has been shut down")
	ErrAccountClosed        = errors.New("this account is closed")
	ErrAccountAlreadyOpen   = errors.New("this account is already open")
	ErrAccountAlreadyClosed = errors.New("this account is already closed")
	ErrAccountInvesting     = errors.New("this operation is blocked while investments are active")

	ErrSelfTransfer       = errors.New("cannot transfer credits to yourself")
	ErrInvestmentMinimum  = errors.New("investment amount is below the minimum")
	ErrTooManyInvestments = errors.New("too many open investments")
	ErrNoSuchInvestment   = errors.New("no investment at that position")
	ErrNotAuthorized      = errors.New("you are not authorized to do that")
)

// CooldownError is returned when a time-gated operation is retried before
// its window elapses. Remaining is exposed for display.
type CooldownError struct {
	Op        string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s is on cooldown for another %s", e.Op, e.Remaining.Round(time.Second))
}
