// Package idgen provides pluggable ID generation for lectio stores.
//
// Constructors accept a Generator so the ID strategy stays a startup-time
// decision; sessions and command records use prefixed UUIDv7 by default.
package idgen

import (
	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// UUIDv7 returns a Generator that produces RFC 9562 UUID v7 strings,
// time-sortable and globally unique.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Prefixed wraps a Generator and prepends a fixed prefix to every ID.
// Used for type-scoped identifiers ("sess_", "cmd_", "doc_").
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Session generates session IDs ("sess_<uuidv7>").
func Session() Generator { return Prefixed("sess_", UUIDv7()) }

// Command generates command audit IDs ("cmd_<uuidv7>").
func Command() Generator { return Prefixed("cmd_", UUIDv7()) }

// Document generates document IDs ("doc_<uuidv7>").
func Document() Generator { return Prefixed("doc_", UUIDv7()) }
