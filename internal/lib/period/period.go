// Package period вычисляет дату окончания подписки по строке периода плана
// вида "1 month", "7 days", "2 Weeks".
//
// Сложение календарное (time.Time.AddDate): месяцы и годы прибавляются
// по календарю, а переполнение дней переносится в следующий месяц,
// например 2024-01-31 + "1 month" = 2024-03-02.
package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat возвращается для строк, не подходящих под "<число> <единица>".
var ErrInvalidFormat = errors.New("invalid period format")

// MaxAmount верхняя граница числа единиц в периоде.
const MaxAmount = 10000

// Unit единица измерения периода.
type Unit string

const (
	Day   Unit = "day"
	Week  Unit = "week"
	Month Unit = "month"
	Year  Unit = "year"
)

// Period разобранная строка периода.
type Period struct {
	Amount int
	Unit   Unit
}

// Parse разбирает строку периода. Регистр и окружающие пробелы не важны,
// единица может быть в единственном или множественном числе.
func Parse(s string) (Period, error) {
	const op = "period.Parse"

	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return Period{}, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidFormat)
	}

	amount, err := strconv.Atoi(fields[0])
	if err != nil || amount <= 0 || amount > MaxAmount {
		return Period{}, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidFormat)
	}

	unit := Unit(strings.TrimSuffix(fields[1], "s"))
	switch unit {
	case Day, Week, Month, Year:
	default:
		return Period{}, fmt.Errorf("%s: unknown unit %q: %w", op, fields[1], ErrInvalidFormat)
	}

	return Period{Amount: amount, Unit: unit}, nil
}

// AddTo прибавляет период к from.
func (p Period) AddTo(from time.Time) time.Time {
	switch p.Unit {
	case Day:
		return from.AddDate(0, 0, p.Amount)
	case Week:
		return from.AddDate(0, 0, 7*p.Amount)
	case Month:
		return from.AddDate(0, p.Amount, 0)
	case Year:
		return from.AddDate(p.Amount, 0, 0)
	}
	return from
}

func (p Period) String() string {
	if p.Amount == 1 {
		return fmt.Sprintf("%d %s", p.Amount, p.Unit)
	}
	return fmt.Sprintf("%d %ss", p.Amount, p.Unit)
}

// ExpireAt возвращает момент окончания подписки, начавшейся в now.
func ExpireAt(now time.Time, s string) (time.Time, error) {
	p, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	expire := p.AddTo(now)
	if !expire.After(now) {
		return time.Time{}, fmt.Errorf("period.ExpireAt: %q: %w", s, ErrInvalidFormat)
	}
	return expire, nil
}
