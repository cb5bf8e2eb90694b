package ledger

import (
	"errors"
	"fmt"

	"github.com/KyussCaesar/pfr/internal/model"
)

// CurrentStore loads and saves the active ledger.
type CurrentStore interface {
	LoadCurrent() (*Ledger, error)
	SaveCurrent(l *Ledger) error
}

// Service applies mutations to the current ledger. Every call reads the
// whole ledger and, when it changes anything, writes the whole ledger back.
type Service struct {
	store CurrentStore
}

// NewService creates a ledger Service.
func NewService(store CurrentStore) *Service {
	return &Service{store: store}
}

// Add validates tx and inserts it. A duplicate name returns
// errs.ErrDuplicateName without writing anything.
func (s *Service) Add(tx model.Transaction) error {
	if err := Validate(tx); err != nil {
		return err
	}

	l, err := s.store.LoadCurrent()
	if err != nil {
		return err
	}
	if err := l.Add(tx); err != nil {
		return err
	}
	return s.store.SaveCurrent(l)
}

// Remove deletes the named transaction. A missing name is not an error and
// the ledger is saved either way. The result reports whether an entry went.
func (s *Service) Remove(name string) (bool, error) {
	l, err := s.store.LoadCurrent()
	if err != nil {
		return false, err
	}
	removed := l.Remove(name)
	if err := s.store.SaveCurrent(l); err != nil {
		return false, err
	}
	return removed, nil
}

// List returns a listing of the current ledger, ordered by name.
func (s *Service) List() ([]Entry, error) {
	l, err := s.store.LoadCurrent()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, l.Len())
	for e := range l.Entries() {
		entries = append(entries, e)
	}
	return entries, nil
}

// Import adds every transaction in txs. All records are checked before the
// ledger is written, so a single bad or duplicate record leaves it untouched.
func (s *Service) Import(txs []model.Transaction) (int, error) {
	var problems []error
	for _, tx := range txs {
		if err := Validate(tx); err != nil {
			problems = append(problems, err)
		}
	}
	if len(problems) > 0 {
		return 0, fmt.Errorf("import rejected: %w", errors.Join(problems...))
	}

	l, err := s.store.LoadCurrent()
	if err != nil {
		return 0, err
	}
	staged := l.Clone()
	for _, tx := range txs {
		if err := staged.Add(tx); err != nil {
			return 0, fmt.Errorf("import rejected: %w", err)
		}
	}
	if len(txs) == 0 {
		return 0, nil
	}
	if err := s.store.SaveCurrent(staged); err != nil {
		return 0, err
	}
	return len(txs), nil
}
