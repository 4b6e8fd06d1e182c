package core

import (
	"encoding/json"
	"errors"
	"math"
	"time"
)

// DateLayout is the ISO 8601 calendar date form used for storage and comparison.
const DateLayout = "2006-01-02"

type (
	// Expense is one logged transaction. Date is kept as the user typed it so
	// that unparseable values survive a round trip through storage.
	Expense struct {
		ID     int64
		Date   string
		Item   string
		Amount float64
	}

	// expenseJSON is the persisted shape. A nil amount stands for a
	// non-finite value, which JSON cannot carry.
	expenseJSON struct {
		ID     int64    `json:"id"`
		Date   string   `json:"date"`
		Item   string   `json:"item"`
		Amount *float64 `json:"amount"`
	}
)

var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses an ISO calendar date. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate returns the calendar date of t in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParsedDate returns the record date and whether it parsed.
func (e Expense) ParsedDate() (time.Time, bool) {
	t, err := ParseDate(e.Date)
	return t, err == nil
}

func (e Expense) MarshalJSON() ([]byte, error) {
	out := expenseJSON{ID: e.ID, Date: e.Date, Item: e.Item}
	if !math.IsNaN(e.Amount) && !math.IsInf(e.Amount, 0) {
		amount := e.Amount
		out.Amount = &amount
	}
	return json.Marshal(out)
}

func (e *Expense) UnmarshalJSON(data []byte) error {
	var in expenseJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	e.ID = in.ID
	e.Date = in.Date
	e.Item = in.Item
	if in.Amount == nil {
		e.Amount = math.NaN()
	} else {
		e.Amount = *in.Amount
	}
	return nil
}

// DecodeExpenses parses a serialized collection.
func DecodeExpenses(data string) ([]Expense, error) {
	var out []Expense
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeExpenses serializes the full collection. A nil slice encodes as [].
func EncodeExpenses(items []Expense) (string, error) {
	if items == nil {
		items = []Expense{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
