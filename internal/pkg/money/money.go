// Package money holds the currency aware arithmetic every budget and
// transaction amount goes through. Amounts are shopspring decimals rounded
// half-even to the minor unit of their ISO 4217 currency.
package money

import (
	"errors"
	"fmt"
	"strings"

	gmoney "github.com/govalues/money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency scales budgets no transaction of a known currency touched
const DefaultCurrency = "USD"

// ErrInvalidCurrency is returned for codes that are not ISO 4217 currencies
var ErrInvalidCurrency = errors.New("invalid currency")

func init() {
	// Amounts travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Calculator performs arithmetic in one currency
type Calculator struct {
	currency string
	scale    int32
}

// For returns the calculator of currency code, e.g. "USD" (scale 2) or "JPY" (scale 0)
func For(code string) (Calculator, error) {
	curr, err := gmoney.ParseCurr(strings.TrimSpace(code))
	if err != nil {
		return Calculator{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return Calculator{currency: curr.Code(), scale: int32(curr.Scale())}, nil
}

// MustFor is For for currencies known to be valid, such as constants in tests
func MustFor(code string) Calculator {
	c, err := For(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Currency returns the ISO code
func (c Calculator) Currency() string {
	return c.currency
}

// Scale returns the number of minor unit digits
func (c Calculator) Scale() int32 {
	return c.scale
}

// Round rounds half-even to the currency minor unit
func (c Calculator) Round(a decimal.Decimal) decimal.Decimal {
	return a.RoundBank(c.scale)
}

// Add returns a + b
func (c Calculator) Add(a, b decimal.Decimal) decimal.Decimal {
	return c.Round(a.Add(b))
}

// Subtract returns a - b
func (c Calculator) Subtract(a, b decimal.Decimal) decimal.Decimal {
	return c.Round(a.Sub(b))
}

// SubtractFloorZero returns max(0, a - b)
func (c Calculator) SubtractFloorZero(a, b decimal.Decimal) decimal.Decimal {
	return FloorZero(c.Subtract(a, b))
}

// Multiply returns a * b, used for percentage caps
func (c Calculator) Multiply(a, b decimal.Decimal) decimal.Decimal {
	return c.Round(a.Mul(b))
}

// Percent returns a * pct / 100
func (c Calculator) Percent(a, pct decimal.Decimal) decimal.Decimal {
	return c.Round(a.Mul(pct).Div(hundred))
}

var hundred = decimal.NewFromInt(100)

// Add is the package level form of Calculator.Add
func Add(a, b decimal.Decimal, currency string) (decimal.Decimal, error) {
	c, err := For(currency)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Add(a, b), nil
}

// Subtract is the package level form of Calculator.Subtract
func Subtract(a, b decimal.Decimal, currency string) (decimal.Decimal, error) {
	c, err := For(currency)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Subtract(a, b), nil
}

// SubtractFloorZero is the package level form of Calculator.SubtractFloorZero
func SubtractFloorZero(a, b decimal.Decimal, currency string) (decimal.Decimal, error) {
	c, err := For(currency)
	if err != nil {
		return decimal.Zero, err
	}
	return c.SubtractFloorZero(a, b), nil
}

// FloorZero returns max(0, a)
func FloorZero(a decimal.Decimal) decimal.Decimal {
	if a.IsNegative() {
		return decimal.Zero
	}
	return a
}

// Max returns the larger of a and b
func Max(a, b decimal.Decimal) decimal.Decimal {
	return decimal.Max(a, b)
}

// Min returns the smaller of a and b
func Min(a, b decimal.Decimal) decimal.Decimal {
	return decimal.Min(a, b)
}
