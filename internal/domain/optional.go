package domain

import (
	"bytes"
	"encoding/json"
)

// Optional описывает поле частичного обновления в трех состояниях:
// поле отсутствует в запросе, поле явно очищено (null) или поле задано значением.
type Optional[T any] struct {
	Set   bool // Поле присутствовало в запросе
	Null  bool // Поле передано как null
	Value T
}

// Some создает Optional с заданным значением
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}

// Null создает явно очищенный Optional
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Present возвращает true если поле задано конкретным значением
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Cleared возвращает true если поле явно передано как null
func (o Optional[T]) Cleared() bool {
	return o.Set && o.Null
}

// UnmarshalJSON вызывается только для полей, присутствующих в JSON
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON сериализует отсутствующее и очищенное поле как null
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
