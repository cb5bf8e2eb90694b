package ledger

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/model"
	"github.com/KyussCaesar/pfr/internal/money"
)

// Ledger maps transaction names to transactions. Iteration through All
// follows no particular order; use Sorted or Entries for output that must
// be stable.
type Ledger struct {
	byName map[string]model.Transaction
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{byName: make(map[string]model.Transaction)}
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.byName)
}

// Get looks up a transaction by name.
func (l *Ledger) Get(name string) (model.Transaction, bool) {
	tx, ok := l.byName[name]
	return tx, ok
}

// Has reports whether a transaction called name exists.
func (l *Ledger) Has(name string) bool {
	_, ok := l.byName[name]
	return ok
}

// Add inserts tx. If the name is taken the ledger is left as it was and
// ErrDuplicateName is returned.
func (l *Ledger) Add(tx model.Transaction) error {
	if l.Has(tx.Name) {
		return fmt.Errorf("a transaction called %q is already present in the ledger: %w", tx.Name, errs.ErrDuplicateName)
	}
	l.byName[tx.Name] = tx
	return nil
}

// Remove deletes the named transaction and reports whether it was present.
func (l *Ledger) Remove(name string) bool {
	if !l.Has(name) {
		return false
	}
	delete(l.byName, name)
	return true
}

// All yields every transaction in unspecified order.
func (l *Ledger) All() iter.Seq[model.Transaction] {
	return func(yield func(model.Transaction) bool) {
		for _, tx := range l.byName {
			if !yield(tx) {
				return
			}
		}
	}
}

// Names returns the transaction names in ascending order.
func (l *Ledger) Names() []string {
	return slices.Sorted(maps.Keys(l.byName))
}

// Sorted returns the transactions ordered by name.
func (l *Ledger) Sorted() []model.Transaction {
	out := make([]model.Transaction, 0, len(l.byName))
	for _, name := range l.Names() {
		out = append(out, l.byName[name])
	}
	return out
}

// Entry is one line of a ledger listing.
type Entry struct {
	Frequency model.Frequency
	Kind      model.Kind
	Name      string
	Amount    money.Money
}

// Entries yields a listing line per transaction, ordered by name.
func (l *Ledger) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, tx := range l.Sorted() {
			e := Entry{Frequency: tx.Frequency, Kind: tx.Kind, Name: tx.Name, Amount: tx.Amount}
			if !yield(e) {
				return
			}
		}
	}
}

// Equal reports whether both ledgers hold the same transactions.
func (l *Ledger) Equal(other *Ledger) bool {
	return maps.Equal(l.byName, other.byName)
}

// Clone returns an independent copy of l.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{byName: maps.Clone(l.byName)}
}

// MarshalJSON encodes the ledger as an object keyed by transaction name.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.byName)
}

// UnmarshalJSON decodes an object keyed by transaction name. Each record
// must be valid and its name must match its key; a missing name is taken
// from the key.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw map[string]model.Transaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	byName := make(map[string]model.Transaction, len(raw))
	for key, tx := range raw {
		if tx.Name == "" {
			tx.Name = key
		}
		if tx.Name != key {
			return fmt.Errorf("record %q is stored under key %q", tx.Name, key)
		}
		if err := Validate(tx); err != nil {
			return err
		}
		byName[key] = tx
	}
	l.byName = byName
	return nil
}
