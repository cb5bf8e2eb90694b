package model

import (
	"fmt"
	"strings"

	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/money"
)

// Kind says whether a transaction adds to or draws from the monthly total.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Kinds lists every valid kind.
var Kinds = []Kind{KindIncome, KindExpense}

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown kind %q (want income or expense)", errs.ErrInvalid, s)
	}
	return k, nil
}

// Valid reports whether k is one of Kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is a recurring income or expense. Name is its key in a ledger.
type Transaction struct {
	Kind      Kind        `json:"kind"`
	Frequency Frequency   `json:"frequency"`
	Name      string      `json:"name"`
	Amount    money.Money `json:"amount"` // minor units, never negative
	Category  string      `json:"category,omitempty"`
	Account   string      `json:"account,omitempty"`
}

// Monthly returns the amount extrapolated to one month, unsigned.
func (t Transaction) Monthly() money.Money {
	return t.Amount.Scale(t.Frequency.Multiplier())
}

// Signed returns the monthly amount, negated for expenses.
func (t Transaction) Signed() money.Money {
	m := t.Monthly()
	if t.Kind == KindExpense {
		return m.Neg()
	}
	return m
}
