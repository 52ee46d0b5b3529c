// Package models содержит доменную модель пользователя системы.
// Структура используется в бизнес‑логике, в хранилище и в JSON-ответах.
package models

import "time"

// DefaultRole роль пользователя, если она не передана при регистрации.
const DefaultRole = "user"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UserID       string    `json:"userId" bson:"userId"`             // Внешний идентификатор пользователя (уникальный)
	Name         string    `json:"name" bson:"name"`                 // Имя
	Email        string    `json:"email" bson:"email"`               // Электронная почта
	Role         string    `json:"role" bson:"role"`                 // Роль пользователя, admin или user
	IsSubscribed bool      `json:"isSubscribed" bson:"isSubscribed"` // Есть ли у пользователя подписка
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
