// Package store provides the persistence adapter for the task registry.
//
// A Store moves keyed record collections across the process boundary: each
// entity kind is loaded exactly once at startup and saved exactly once at
// shutdown. Records are opaque JSON documents keyed by decimal entity ID;
// the repositories own their encoding.
//
// Two implementations exist:
//
//   - FileStore: one JSON file per kind under a data directory (default)
//   - SurrealStore: one SurrealDB table per kind
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//
//   - ErrNotFound: the requested record or collection does not exist
//   - ErrDuplicate: a record key is already present
//   - ErrConnection: the backing store is unreachable
//   - ErrCorrupt: persisted data could not be decoded
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, store.ErrConnection) {
//	    // storage unreachable, in-memory state is untouched
//	}
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Kind names one persisted entity collection.
type Kind string

const (
	KindUsers Kind = "users"
	KindTags  Kind = "tags"
	KindTeams Kind = "teams"
	KindTasks Kind = "tasks"
)

// Kinds lists every persisted collection in load/save order.
var Kinds = []Kind{KindUsers, KindTags, KindTeams, KindTasks}

// Standard errors for store operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a record key is already present.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to reach the backing store.
	ErrConnection = errors.New("store connection error")

	// ErrCorrupt indicates persisted data could not be decoded.
	ErrCorrupt = errors.New("corrupt store data")
)

// Records is a keyed collection of opaque JSON documents. Keys are decimal
// entity IDs.
type Records map[string]json.RawMessage

// Store defines the persistence adapter consumed by the repositories.
// Load and Save are invoked only at the initialize/finalize boundaries.
type Store interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Load reads one kind's full collection. A kind that was never saved
	// yields an empty collection, not an error.
	Load(ctx context.Context, kind Kind) (Records, error)

	// Save replaces one kind's full collection.
	Save(ctx context.Context, kind Kind, records Records) error
}
