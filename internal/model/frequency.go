package model

import (
	"fmt"
	"strings"

	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/money"
)

// Frequency is how often a transaction recurs.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWorkdays  Frequency = "workdays" // business days only
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Frequencies lists every valid frequency, shortest period first.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWorkdays,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyYearly,
}

// Multipliers to a 30-day month. These are approximations users see in
// their reports, so they must not be changed.
var monthlyMultipliers = map[Frequency]money.Multiplier{
	FrequencyDaily:     money.Times(30),
	FrequencyWorkdays:  money.Ratio(214, 10),
	FrequencyWeekly:    money.Ratio(428, 100),
	FrequencyMonthly:   money.Times(1),
	FrequencyQuarterly: money.Ratio(1, 3),
	FrequencyYearly:    money.Ratio(1, 12),
}

var frequencyAliases = map[string]Frequency{
	"wkly":  FrequencyWeekly,
	"mthly": FrequencyMonthly,
	"qtrly": FrequencyQuarterly,
	"yrly":  FrequencyYearly,
}

// ParseFrequency accepts a frequency name in any case, plus the short
// spellings wkly, mthly, qtrly and yrly.
func ParseFrequency(s string) (Frequency, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if f, ok := frequencyAliases[norm]; ok {
		return f, nil
	}
	f := Frequency(norm)
	if !f.Valid() {
		return "", fmt.Errorf("%w: unknown frequency %q", errs.ErrInvalid, s)
	}
	return f, nil
}

// Valid reports whether f is one of Frequencies.
func (f Frequency) Valid() bool {
	_, ok := monthlyMultipliers[f]
	return ok
}

// Multiplier converts an amount at this frequency to monthly terms.
// Unknown frequencies scale to zero.
func (f Frequency) Multiplier() money.Multiplier {
	if m, ok := monthlyMultipliers[f]; ok {
		return m
	}
	return money.Times(0)
}
