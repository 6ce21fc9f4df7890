// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the keys of request-scoped values. Each key is a
// distinct pointer, so no other package can produce an equal key.
package ctxkey

// Key identifies one request-scoped value.
type Key struct {
	name string
}

func (key *Key) String() string {
	return "kmdb." + key.name
}

var (
	// RequestID carries the X-Request-ID correlation value.
	RequestID = &Key{name: "request_id"}

	// Claims carries the verified bearer claims of an editor token.
	Claims = &Key{name: "claims"}

	// Logger carries the per-request logger.
	Logger = &Key{name: "logger"}
)
