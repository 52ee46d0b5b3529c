// Package money переводит десятичные цены планов в минимальные единицы валюты.
package money

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPrice возвращается для отрицательных и нечисловых цен.
var ErrInvalidPrice = errors.New("invalid price")

// ToMinorUnits умножает цену на 100 и округляет половину от нуля (19.995 -> 2000).
// Цена в float64 может быть непредставима точно, поэтому перед округлением
// значение приводится к ближайшему числу с 6 знаками после запятой.
func ToMinorUnits(price float64) (int64, error) {
	const op = "money.ToMinorUnits"
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, fmt.Errorf("%s: %v: %w", op, price, ErrInvalidPrice)
	}
	cents := price * 100
	cents = math.Round(cents*1e6) / 1e6
	rounded := math.Round(cents)
	if rounded > math.MaxInt64 {
		return 0, fmt.Errorf("%s: %v: %w", op, price, ErrInvalidPrice)
	}
	return int64(rounded), nil
}
