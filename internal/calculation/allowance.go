package calculation

import (
	moneypkg "github.com/vrechner/vorsorge-calculator/pkg/decimal"
)

// AllowanceLedger tracks consumption of the Sparer-Pauschbetrag across the
// sequential tax events of one scenario run. The allowance is a shared,
// depletable resource: annual Vorabpauschale events consume it before the
// final sale does, so callers must keep the chronological order. A ledger is
// created fresh per scenario evaluation and discarded afterwards; it must
// never be cached or shared across runs.
type AllowanceLedger struct {
	total    moneypkg.Money
	consumed moneypkg.Money
}

// NewAllowanceLedger creates a ledger with the given total allowance
func NewAllowanceLedger(total moneypkg.Money) *AllowanceLedger {
	if total.IsNegative() {
		total = moneypkg.Zero()
	}
	return &AllowanceLedger{total: total, consumed: moneypkg.Zero()}
}

// AllowanceConsumption reports the outcome of one Consume call
type AllowanceConsumption struct {
	TaxableAfterAllowance moneypkg.Money
	AllowanceUsed         moneypkg.Money
}

// Consume shields up to the remaining allowance from the given taxable
// amount. The amount used never exceeds either the request or the remaining
// allowance; consumed advances monotonically and is clamped at the total.
func (al *AllowanceLedger) Consume(amount moneypkg.Money) AllowanceConsumption {
	if !amount.IsPositive() {
		return AllowanceConsumption{TaxableAfterAllowance: moneypkg.Zero(), AllowanceUsed: moneypkg.Zero()}
	}

	used := moneypkg.Min(amount, al.Remaining())
	al.consumed = moneypkg.Min(al.consumed.Add(used), al.total)

	return AllowanceConsumption{
		TaxableAfterAllowance: amount.Sub(used),
		AllowanceUsed:         used,
	}
}

// Remaining returns the allowance not yet consumed
func (al *AllowanceLedger) Remaining() moneypkg.Money {
	return moneypkg.Max(al.total.Sub(al.consumed), moneypkg.Zero())
}

// Consumed returns the allowance consumed so far
func (al *AllowanceLedger) Consumed() moneypkg.Money {
	return al.consumed
}

// Total returns the ledger's full allowance
func (al *AllowanceLedger) Total() moneypkg.Money {
	return al.total
}
