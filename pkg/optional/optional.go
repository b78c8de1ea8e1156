// Package optional modela campos que pueden venir ausentes en una petición (Unset | Set(v)).
// Permite distinguir "campo omitido" de "campo enviado con su valor actual" sin introspección.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value contiene un valor de tipo T o nada. El valor cero es Unset.
type Value[T any] struct {
	value T
	set   bool
}

// Of construye un Value presente.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// Unset construye un Value ausente.
func Unset[T any]() Value[T] {
	return Value[T]{}
}

// IsSet indica si el campo vino en la petición.
func (v Value[T]) IsSet() bool { return v.set }

// Get devuelve el valor y si está presente.
func (v Value[T]) Get() (T, bool) { return v.value, v.set }

// OrElse devuelve el valor si está presente; si no, def.
func (v Value[T]) OrElse(def T) T {
	if v.set {
		return v.value
	}
	return def
}

// UnmarshalJSON solo se invoca cuando la clave existe en el JSON; null se trata como ausente.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value[T]{}
		return nil
	}
	var t T
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*v = Of(t)
	return nil
}

// MarshalJSON serializa null cuando el valor está ausente.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
