// Package storage содержит общие для всех хранилищ ошибки.
// Реализации находятся в подпакетах postgresql и mongodb.
package storage

import "errors"

var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("record already exists")
)
