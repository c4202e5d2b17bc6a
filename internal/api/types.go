// Package api holds the JSON wire shapes shared by the HTTP handlers, the
// live event feed and the Go client.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates
const DateLayout = time.DateOnly

// Money is a decimal amount written as a fixed two-decimal string.
// It reads both JSON numbers and numeric strings.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyPtr returns a pointer to a Money holding d
func MoneyPtr(d decimal.Decimal) *Money {
	m := NewMoney(d)
	return &m
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := m.Decimal.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount %s", data)
	}
	return nil
}

func (m Money) String() string {
	return m.StringFixed(2)
}

// Date is a calendar date written as YYYY-MM-DD
type Date struct {
	time.Time
}

// NewDate wraps t
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// DatePtr converts an optional time to an optional Date
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// ParseDate parses a YYYY-MM-DD string as a UTC date
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON accepts YYYY-MM-DD and full RFC 3339 timestamps, keeping only the date part
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date %s", data)
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	*d = Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
	return nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}
