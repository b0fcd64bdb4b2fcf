package domain

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Money is an arbitrary-precision USD amount persisted as a postgres numeric
type Money struct {
	value apd.Decimal
}

var moneyContext = apd.BaseContext.WithPrecision(34)

// Zero returns a zero amount
func Zero() Money {
	return Money{}
}

// NewMoney parses a decimal string such as "0.049"
func NewMoney(s string) (Money, error) {
	var d apd.Decimal
	if _, _, err := d.SetString(s); err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// MustMoney is NewMoney for constants and tests
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromInt64 returns a whole amount
func NewMoneyFromInt64(i int64) Money {
	var d apd.Decimal
	d.SetInt64(i)
	return Money{value: d}
}

func (m Money) String() string {
	return m.value.Text('f')
}

func (m Money) IsZero() bool {
	return m.value.IsZero()
}

func (m Money) IsNegative() bool {
	return m.value.Negative && !m.value.IsZero()
}

func (m Money) Cmp(other Money) int {
	return m.value.Cmp(&other.value)
}

func (m Money) Add(other Money) Money {
	var result apd.Decimal
	_, _ = moneyContext.Add(&result, &m.value, &other.value)
	return Money{value: result}
}

func (m Money) Sub(other Money) Money {
	var result apd.Decimal
	_, _ = moneyContext.Sub(&result, &m.value, &other.value)
	return Money{value: result}
}

// MulInt returns m multiplied by n
func (m Money) MulInt(n int64) Money {
	var result apd.Decimal
	factor := apd.New(n, 0)
	_, _ = moneyContext.Mul(&result, &m.value, factor)
	return Money{value: result}
}

// Float64 returns an approximate float, for metrics only
func (m Money) Float64() float64 {
	f, err := m.value.Float64()
	if err != nil {
		return 0
	}
	return f
}

// Value implements driver.Valuer
func (m Money) Value() (driver.Value, error) {
	return m.value.String(), nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		m.value = apd.Decimal{}
		return nil
	case string:
		return m.setString(v)
	case []byte:
		return m.setString(string(v))
	case float64:
		return m.setString(strconv.FormatFloat(v, 'f', -1, 64))
	case int64:
		m.value.SetInt64(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
}

func (m *Money) setString(s string) error {
	if _, _, err := m.value.SetString(s); err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return nil
}

// MarshalJSON encodes the amount as a JSON string to keep precision
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts both "1.23" and 1.23
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		m.value = apd.Decimal{}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return m.setString(s)
}
