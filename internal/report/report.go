// Package report extrapolates a ledger to monthly terms and aggregates the
// result into a signed total, a per-category breakdown of expenses and a
// per-account coverage of expenses.
package report

import (
	"github.com/KyussCaesar/pfr/internal/ledger"
	"github.com/KyussCaesar/pfr/internal/model"
	"github.com/KyussCaesar/pfr/internal/money"
)

const (
	// OtherLabel collects expenses without a category.
	OtherLabel = "(other)"
	// UnallocatedLabel collects expenses without an account.
	UnallocatedLabel = "(unallocated)"
)

// Row is one transaction in monthly terms.
type Row struct {
	Frequency model.Frequency
	Kind      model.Kind
	Name      string
	Category  string
	Account   string
	Monthly   money.Money // negative for expenses
}

// Line is a labelled amount in the breakdown or coverage view.
type Line struct {
	Label  string
	Amount money.Money
}

// Report is the monthly view of a ledger.
type Report struct {
	Rows        []Row
	Total       money.Money
	Breakdown   *Totals
	Other       money.Money
	Coverage    *Totals
	Unallocated money.Money
}

// Generate builds a report from l. Rows are ordered by transaction name.
func Generate(l *ledger.Ledger) *Report {
	r := &Report{
		Rows:      make([]Row, 0, l.Len()),
		Breakdown: NewTotals(),
		Coverage:  NewTotals(),
	}

	for _, tx := range l.Sorted() {
		monthly := tx.Monthly()

		switch tx.Kind {
		case model.KindIncome:
			r.Total = r.Total.Add(monthly)
		case model.KindExpense:
			r.Total = r.Total.Sub(monthly)

			if tx.Category != "" {
				r.Breakdown.Add(tx.Category, monthly)
			} else {
				r.Other = r.Other.Add(monthly)
			}

			if tx.Account != "" {
				r.Coverage.Add(tx.Account, monthly)
			} else {
				r.Unallocated = r.Unallocated.Add(monthly)
			}
		}

		r.Rows = append(r.Rows, Row{
			Frequency: tx.Frequency,
			Kind:      tx.Kind,
			Name:      tx.Name,
			Category:  tx.Category,
			Account:   tx.Account,
			Monthly:   tx.Signed(),
		})
	}

	return r
}

// BreakdownLines returns expense totals per category followed by the
// "(other)" line.
func (r *Report) BreakdownLines() []Line {
	return lines(r.Breakdown, OtherLabel, r.Other)
}

// CoverageLines returns expense totals per account followed by the
// "(unallocated)" line.
func (r *Report) CoverageLines() []Line {
	return lines(r.Coverage, UnallocatedLabel, r.Unallocated)
}

func lines(t *Totals, restLabel string, rest money.Money) []Line {
	out := make([]Line, 0, t.Len()+1)
	for _, k := range t.Keys() {
		out = append(out, Line{Label: k, Amount: t.Get(k)})
	}
	return append(out, Line{Label: restLabel, Amount: rest})
}

// Display renders an amount the way the report shows it: negatives as the
// absolute value in parentheses, everything else plain.
func Display(m money.Money) string {
	if m.IsNegative() {
		return "(" + m.Abs().String() + ")"
	}
	return m.String()
}

// displayRow parenthesizes every expense, including zero ones.
func displayRow(row Row) string {
	if row.Kind == model.KindExpense {
		return "(" + row.Monthly.Abs().String() + ")"
	}
	return Display(row.Monthly)
}
