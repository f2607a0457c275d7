package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
)

// Document is the persisted form of a ledger.
type Document struct {
	Transactions []Record `json:"transactions"`
}

// Record is the persisted form of a single transaction.
type Record struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
}

// MarshalJSON keeps the documented key order: amount, description,
// category, date.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Date        string  `json:"date"`
	}{r.Amount, r.Description, r.Category, r.Date})
}

// Serialize converts a ledger to its document, preserving order.
func Serialize(l *ledger.Ledger) Document {
	all := l.All()
	doc := Document{Transactions: make([]Record, 0, len(all))}
	for _, t := range all {
		doc.Transactions = append(doc.Transactions, recordOf(t))
	}
	return doc
}

// Marshal serializes a ledger to indented JSON.
func Marshal(l *ledger.Ledger) ([]byte, error) {
	data, err := json.MarshalIndent(Serialize(l), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return append(data, '\n'), nil
}

// Deserialize parses a JSON document into a fresh ledger. Either every
// transaction parses or a *ParseError is returned with no ledger. The
// options are applied once loading is complete, so an observer does not
// see the individual loads.
func Deserialize(data []byte, opts ...ledger.Option) (*ledger.Ledger, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, documentError("invalid JSON document", err)
	}

	raw, ok := top["transactions"]
	if !ok {
		return nil, documentError(`missing "transactions" key`, nil)
	}
	if isNull(raw) {
		return nil, documentError(`"transactions" is null`, nil)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, documentError(`"transactions" is not an array`, err)
	}

	l := ledger.New()
	for i, elem := range elements {
		t, err := parseRecord(i, elem)
		if err != nil {
			return nil, err
		}
		l.Add(t)
	}

	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func recordOf(t model.Transaction) Record {
	return Record{
		Amount:      t.Amount(),
		Description: t.Description(),
		Category:    t.Category(),
		Date:        t.Date().Format(model.DateLayout),
	}
}

func parseRecord(index int, raw json.RawMessage) (model.Transaction, error) {
	if isNull(raw) {
		return model.Transaction{}, recordError(index, "transaction is null", nil)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Transaction{}, recordError(index, "transaction is not an object", err)
	}

	var rec Record
	if err := requireField(fields, "amount", &rec.Amount); err != nil {
		return model.Transaction{}, recordError(index, err.Error(), nil)
	}
	if err := requireField(fields, "description", &rec.Description); err != nil {
		return model.Transaction{}, recordError(index, err.Error(), nil)
	}
	if err := requireField(fields, "category", &rec.Category); err != nil {
		return model.Transaction{}, recordError(index, err.Error(), nil)
	}
	if err := requireField(fields, "date", &rec.Date); err != nil {
		return model.Transaction{}, recordError(index, err.Error(), nil)
	}

	date, err := model.ParseDate(rec.Date)
	if err != nil {
		return model.Transaction{}, recordError(index, "bad date", err)
	}

	return model.NewTransaction(rec.Amount, rec.Description, rec.Category, date), nil
}

// requireField decodes fields[key] into dst, rejecting absent and null
// values as well as type mismatches.
func requireField(fields map[string]json.RawMessage, key string, dst any) error {
	raw, ok := fields[key]
	if !ok {
		return fmt.Errorf("missing %q", key)
	}
	if isNull(raw) {
		return fmt.Errorf("%q is null", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%q has the wrong type: %v", key, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
