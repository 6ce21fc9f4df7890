// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer holds generic helpers for optional values.

Optional fields such as an actor's birth date travel as pointers: nil means
absent. Stores copy them with [Clone] so that no two records share storage.
*/
package pointer

// To returns a pointer to a copy of value.
func To[T any](value T) *T {
	return &value
}

// Deref returns *p, or fallback when p is nil.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Clone returns a pointer to a copy of *p, or nil when p is nil.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return To(*p)
}

// NonEmpty returns nil for the empty string and a pointer to a copy otherwise.
func NonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
