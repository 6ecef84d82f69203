package valueobject

import (
	"fmt"

	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Money - денежная сумма с фиксированной точностью.
type Money struct {
	decimal.Decimal
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// ParseMoney разбирает строковое представление суммы ("250", "99.90").
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, apperror.Validation(fmt.Sprintf("некорректная сумма %q", s))
	}
	return NewMoney(d), nil
}

func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MaxAmount - верхняя граница суммы, колонки хранят NUMERIC(12, 2).
var MaxAmount = decimal.RequireFromString("9999999999.99")

// PositiveMoney округляет сумму до копеек и проверяет, что результат в (0, MaxAmount].
func PositiveMoney(amount decimal.Decimal, field string) (Money, error) {
	m := NewMoney(amount)
	if !m.IsPositive() {
		return Money{}, apperror.Validation(field + " должно быть больше нуля")
	}
	if m.GreaterThan(MaxAmount) {
		return Money{}, apperror.Validation(field + " не должно превышать " + MaxAmount.StringFixed(2))
	}
	return m, nil
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

type Budget struct {
	Min Money
	Max Money
}

func NewBudget(min, max decimal.Decimal) (Budget, error) {
	lo, err := PositiveMoney(min, "budget_min")
	if err != nil {
		return Budget{}, err
	}
	hi, err := PositiveMoney(max, "budget_max")
	if err != nil {
		return Budget{}, err
	}
	if lo.GreaterThan(hi.Decimal) {
		return Budget{}, apperror.Validation("budget_min не должно превышать budget_max")
	}
	return Budget{Min: lo, Max: hi}, nil
}

func (b Budget) Contains(amount Money) bool {
	return amount.GreaterThanOrEqual(b.Min.Decimal) && amount.LessThanOrEqual(b.Max.Decimal)
}

func (b Budget) String() string {
	return fmt.Sprintf("%s - %s", b.Min, b.Max)
}
