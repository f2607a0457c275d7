package persistence

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ledgerOf(txns ...model.Transaction) *ledger.Ledger {
	l := ledger.New()
	for _, t := range txns {
		l.Add(t)
	}
	return l
}

func assertSameLedger(t *testing.T, want, got *ledger.Ledger) {
	t.Helper()

	wantAll := want.All()
	gotAll := got.All()
	require.Len(t, gotAll, len(wantAll))
	for i := range wantAll {
		assert.InDelta(t, wantAll[i].Amount(), gotAll[i].Amount(), 1e-9, "amount at %d", i)
		assert.Equal(t, wantAll[i].Description(), gotAll[i].Description(), "description at %d", i)
		assert.Equal(t, wantAll[i].Category(), gotAll[i].Category(), "category at %d", i)
		assert.Equal(t, wantAll[i].Date(), gotAll[i].Date(), "date at %d", i)
	}
}

func TestSerialize(t *testing.T) {
	l := ledgerOf(
		model.NewTransaction(1000.0, "Salary", "Income", day(2025, 1, 15)),
		model.NewTransaction(-50.0, "Groceries", "Food", day(2025, 1, 16)),
	)

	doc := Serialize(l)

	assert.Equal(t, []Record{
		{Amount: 1000.0, Description: "Salary", Category: "Income", Date: "2025-01-15"},
		{Amount: -50.0, Description: "Groceries", Category: "Food", Date: "2025-01-16"},
	}, doc.Transactions)
}

func TestMarshal_DocumentShape(t *testing.T) {
	l := ledgerOf(model.NewTransaction(-50.0, "Groceries", "Food", day(2025, 1, 16)))

	data, err := Marshal(l)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &top))
	assert.Len(t, top, 1)
	require.Contains(t, top, "transactions")

	var elems []map[string]any
	require.NoError(t, json.Unmarshal(top["transactions"], &elems))
	require.Len(t, elems, 1)
	assert.Equal(t, map[string]any{
		"amount":      -50.0,
		"description": "Groceries",
		"category":    "Food",
		"date":        "2025-01-16",
	}, elems[0])

	text := string(data)
	assert.Less(t, strings.Index(text, `"amount"`), strings.Index(text, `"description"`))
	assert.Less(t, strings.Index(text, `"description"`), strings.Index(text, `"category"`))
	assert.Less(t, strings.Index(text, `"category"`), strings.Index(text, `"date"`))
}

func TestMarshal_EmptyLedger(t *testing.T) {
	data, err := Marshal(ledger.New())
	require.NoError(t, err)
	assert.JSONEq(t, `{"transactions": []}`, string(data))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		ledger *ledger.Ledger
	}{
		{name: "empty ledger", ledger: ledger.New()},
		{
			name:   "single transaction",
			ledger: ledgerOf(model.NewTransaction(2500.0, "Freelance work", "Income", day(2025, 7, 18))),
		},
		{
			name: "general ledger",
			ledger: ledgerOf(
				model.NewTransaction(1000.0, "Salary", "Income", day(2025, 1, 15)),
				model.NewTransaction(-50.0, "Groceries", "Food", day(2025, 1, 16)),
				model.NewTransaction(0, "Refund offset", "Other", day(2024, 2, 29)),
				model.NewTransaction(-50.0, "Groceries", "Food", day(2025, 1, 16)),
			),
		},
		{
			name: "non-ASCII and punctuation",
			ledger: ledgerOf(
				model.NewTransaction(-12.34, "Café crème & croissant, \"petit\" déj.", "Nourriture/Boulangerie", day(2025, 3, 1)),
				model.NewTransaction(88.8, "日本語の説明 — ok?", "収入 💰", day(2025, 3, 2)),
				model.NewTransaction(-0.01, "tab\tnew\nline \\ slash", "", day(2025, 3, 3)),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.ledger)
			require.NoError(t, err)

			got, err := Deserialize(data)
			require.NoError(t, err)
			assertSameLedger(t, tt.ledger, got)
		})
	}
}

func TestDeserialize_Example(t *testing.T) {
	doc := `{
  "transactions": [
    { "amount": 1000.0, "description": "Salary", "category": "Income", "date": "2025-01-15" },
    { "amount": -50.0,  "description": "Groceries", "category": "Food", "date": "2025-01-16" }
  ]
}`

	l, err := Deserialize([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 2, l.Count())
	assert.InDelta(t, 1000.0, l.TotalIncome(), 1e-9)
	food := l.ByCategory("Food")
	require.Len(t, food, 1)
	assert.Equal(t, "Groceries", food[0].Description())
}

func TestDeserialize_IgnoresUnknownKeys(t *testing.T) {
	doc := `{"version": 3, "transactions": [{"amount": 1, "description": "a", "category": "b", "date": "2025-01-01", "note": "x"}]}`

	l, err := Deserialize([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Count())
}

func TestDeserialize_ParseErrors(t *testing.T) {
	valid := `{"amount": 1, "description": "a", "category": "b", "date": "2025-01-01"}`

	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{name: "not JSON", doc: `{"transactions": [`, wantMsg: "invalid JSON"},
		{name: "empty input", doc: ``, wantMsg: "invalid JSON"},
		{name: "top level array", doc: `[]`, wantMsg: "invalid JSON"},
		{name: "missing transactions key", doc: `{}`, wantMsg: `missing "transactions"`},
		{name: "null document", doc: `null`, wantMsg: `missing "transactions"`},
		{name: "transactions null", doc: `{"transactions": null}`, wantMsg: "null"},
		{name: "transactions object", doc: `{"transactions": {}}`, wantMsg: "not an array"},
		{name: "transactions string", doc: `{"transactions": "x"}`, wantMsg: "not an array"},
		{name: "element not object", doc: `{"transactions": [1]}`, wantMsg: "not an object"},
		{name: "element null", doc: `{"transactions": [null]}`, wantMsg: "transaction is null"},
		{name: "missing amount", doc: `{"transactions": [{"description": "a", "category": "b", "date": "2025-01-01"}]}`, wantMsg: `missing "amount"`},
		{name: "missing description", doc: `{"transactions": [{"amount": 1, "category": "b", "date": "2025-01-01"}]}`, wantMsg: `missing "description"`},
		{name: "missing category", doc: `{"transactions": [{"amount": 1, "description": "a", "date": "2025-01-01"}]}`, wantMsg: `missing "category"`},
		{name: "missing date", doc: `{"transactions": [{"amount": 1, "description": "a", "category": "b"}]}`, wantMsg: `missing "date"`},
		{name: "amount as string", doc: `{"transactions": [{"amount": "1", "description": "a", "category": "b", "date": "2025-01-01"}]}`, wantMsg: `"amount" has the wrong type`},
		{name: "amount null", doc: `{"transactions": [{"amount": null, "description": "a", "category": "b", "date": "2025-01-01"}]}`, wantMsg: `"amount" is null`},
		{name: "description number", doc: `{"transactions": [{"amount": 1, "description": 5, "category": "b", "date": "2025-01-01"}]}`, wantMsg: `"description" has the wrong type`},
		{name: "category bool", doc: `{"transactions": [{"amount": 1, "description": "a", "category": true, "date": "2025-01-01"}]}`, wantMsg: `"category" has the wrong type`},
		{name: "date number", doc: `{"transactions": [{"amount": 1, "description": "a", "category": "b", "date": 20250101}]}`, wantMsg: `"date" has the wrong type`},
		{name: "malformed date", doc: `{"transactions": [{"amount": 1, "description": "a", "category": "b", "date": "2025-13-40"}]}`, wantMsg: "bad date"},
		{name: "date with time", doc: `{"transactions": [{"amount": 1, "description": "a", "category": "b", "date": "2025-01-01T10:00:00Z"}]}`, wantMsg: "bad date"},
		{name: "bad element after good ones", doc: `{"transactions": [` + valid + `,` + valid + `, {"amount": 1}]}`, wantMsg: "index 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Deserialize([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, l)
			assert.True(t, errors.Is(err, ErrParse))
			assert.False(t, errors.Is(err, ErrNotFound))

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDeserialize_OptionsAppliedAfterLoad(t *testing.T) {
	var messages []string
	obs := ledger.ObserverFunc(func(m string) { messages = append(messages, m) })

	doc := `{"transactions": [{"amount": 1, "description": "a", "category": "b", "date": "2025-01-01"}]}`
	l, err := Deserialize([]byte(doc), ledger.WithObserver(obs))
	require.NoError(t, err)
	assert.Empty(t, messages)

	l.Clear()
	assert.Equal(t, []string{"Cleared all transactions"}, messages)
}
