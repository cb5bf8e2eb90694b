package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/KyussCaesar/pfr/internal/model"
	"github.com/KyussCaesar/pfr/internal/money"
)

// Header is the CSV header used by export and import.
const Header = "name,kind,frequency,amount,category,account"

const (
	numFields   = 6
	colName     = 0
	colKind     = 1
	colFreq     = 2
	colAmount   = 3
	colCategory = 4
	colAccount  = 5
)

// ReadTransactions reads an exported CSV, header first.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if strings.Join(records[0], ",") != Header {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(records[0], ","))
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes txs with a header row.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colName] = tx.Name
	row[colKind] = string(tx.Kind)
	row[colFreq] = string(tx.Frequency)
	row[colAmount] = tx.Amount.String()
	row[colCategory] = tx.Category
	row[colAccount] = tx.Account
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	kind, err := model.ParseKind(record[colKind])
	if err != nil {
		return model.Transaction{}, err
	}

	freq, err := model.ParseFrequency(record[colFreq])
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := money.Parse(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		Kind:      kind,
		Frequency: freq,
		Name:      record[colName],
		Amount:    amount,
		Category:  record[colCategory],
		Account:   record[colAccount],
	}, nil
}
