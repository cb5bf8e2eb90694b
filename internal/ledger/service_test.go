package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/model"
)

// memStore keeps the current ledger in memory and counts saves.
type memStore struct {
	current *Ledger
	saves   int
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{current: New()}
}

func (m *memStore) LoadCurrent() (*Ledger, error) {
	return m.current.Clone(), nil
}

func (m *memStore) SaveCurrent(l *Ledger) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.current = l.Clone()
	return nil
}

func TestServiceAdd(t *testing.T) {
	st := newMemStore()
	svc := NewService(st)

	require.NoError(t, svc.Add(tx(model.KindIncome, model.FrequencyMonthly, "salary", 100000)))
	assert.Equal(t, 1, st.saves)
	assert.True(t, st.current.Has("salary"))
}

func TestServiceAdd_DuplicateDoesNotSave(t *testing.T) {
	st := newMemStore()
	svc := NewService(st)
	require.NoError(t, svc.Add(tx(model.KindIncome, model.FrequencyMonthly, "salary", 100000)))
	before := st.current.Clone()

	err := svc.Add(tx(model.KindExpense, model.FrequencyDaily, "salary", 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDuplicateName)
	assert.Equal(t, 1, st.saves, "a rejected add must not write")
	assert.True(t, before.Equal(st.current))
}

func TestServiceAdd_Invalid(t *testing.T) {
	st := newMemStore()
	svc := NewService(st)

	err := svc.Add(model.Transaction{Kind: model.KindExpense, Frequency: model.FrequencyMonthly})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalid)
	assert.Zero(t, st.saves)
}

func TestServiceRemove_AlwaysSaves(t *testing.T) {
	st := newMemStore()
	svc := NewService(st)
	require.NoError(t, svc.Add(tx(model.KindExpense, model.FrequencyMonthly, "rent", 150000)))

	removed, err := svc.Remove("rent")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, st.current.Len())

	removed, err = svc.Remove("rent")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 3, st.saves, "no-op removal still saves")
}

func TestServiceRemove_SaveFailure(t *testing.T) {
	st := newMemStore()
	st.saveErr = errors.New("disk full")
	svc := NewService(st)

	_, err := svc.Remove("anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestServiceList(t *testing.T) {
	st := newMemStore()
	svc := NewService(st)
	require.NoError(t, svc.Add(tx(model.KindExpense, model.FrequencyWeekly, "groceries", 10000)))
	require.NoError(t, svc.Add(tx(model.KindIncome, model.FrequencyMonthly, "salary", 100000)))

	entries, err := svc.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "groceries", entries[0].Name)
	assert.Equal(t, model.FrequencyWeekly, entries[0].Frequency)
	assert.Equal(t, "salary", entries[1].Name)
}

func TestServiceImport(t *testing.T) {
	st := newMemStore()
	svc := NewService(st)
	require.NoError(t, svc.Add(tx(model.KindIncome, model.FrequencyMonthly, "salary", 100000)))

	n, err := svc.Import([]model.Transaction{
		tx(model.KindExpense, model.FrequencyMonthly, "rent", 150000),
		tx(model.KindExpense, model.FrequencyWeekly, "groceries", 10000),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, st.current.Len())
}

func TestServiceImport_AllOrNothing(t *testing.T) {
	st := newMemStore()
	svc := NewService(st)
	require.NoError(t, svc.Add(tx(model.KindIncome, model.FrequencyMonthly, "salary", 100000)))

	_, err := svc.Import([]model.Transaction{
		tx(model.KindExpense, model.FrequencyMonthly, "rent", 150000),
		tx(model.KindIncome, model.FrequencyMonthly, "salary", 1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDuplicateName)
	assert.Equal(t, 1, st.current.Len())

	_, err = svc.Import([]model.Transaction{
		tx(model.KindExpense, model.FrequencyMonthly, "a", 1),
		tx(model.KindExpense, model.FrequencyMonthly, "a", 2),
	})
	assert.ErrorIs(t, err, errs.ErrDuplicateName, "duplicates within the batch are rejected")

	_, err = svc.Import([]model.Transaction{{Name: "bad"}})
	assert.ErrorIs(t, err, errs.ErrInvalid)
	assert.Equal(t, 1, st.saves)
}
