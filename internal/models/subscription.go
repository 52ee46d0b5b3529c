// Package models содержит доменные структуры, описывающие подписку,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// NotApplicable значение-заглушка для полей бесплатной подписки.
	NotApplicable = "N/A"
	// StatusActive единственный статус подписки.
	StatusActive = "active"
)

// Amount сумма оплаты в минимальных единицах валюты.
// Для бесплатных подписок сумма не задана и сериализуется как "N/A".
type Amount struct {
	Minor int64
	Valid bool
}

// MinorAmount возвращает заданную сумму.
func MinorAmount(v int64) Amount {
	return Amount{Minor: v, Valid: true}
}

// MarshalJSON пишет число или "N/A".
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return json.Marshal(NotApplicable)
	}
	return json.Marshal(a.Minor)
}

// UnmarshalJSON принимает число или "N/A".
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != NotApplicable {
			return fmt.Errorf("models.Amount: unexpected string %q", s)
		}
		*a = Amount{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("models.Amount: %w", err)
	}
	*a = MinorAmount(v)
	return nil
}

func (a Amount) String() string {
	if !a.Valid {
		return NotApplicable
	}
	return fmt.Sprintf("%d", a.Minor)
}

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище. Записи создаются один раз и не изменяются.
type Subscription struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	PlanID        string    `json:"planId"`
	Period        string    `json:"period"`
	Amount        Amount    `json:"amount"`
	Email         string    `json:"email"`
	BuyingDate    time.Time `json:"buyingDate"`
	ExpireDate    time.Time `json:"expireDate"`
	CreatedAt     time.Time `json:"createdAt"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionID"` // ID платежа или "N/A" для бесплатных
}

// IsFree сообщает, что подписка оформлена без оплаты.
func (s *Subscription) IsFree() bool {
	return s.TransactionID == NotApplicable
}
