// Package service implements the orchestration layer of the task registry.
//
// The Registry composes the four entity repositories and owns every
// cross-entity invariant: a task may only reference an already-registered
// owner, team, and tags; a team may only list registered users as members.
// Repositories never check each other's state, so the Registry is the sole
// place referential integrity is enforced.
//
// # Lifecycle
//
// Persistence follows a load-once/operate-in-memory/save-once discipline:
//
//	reg := service.NewRegistry(st)
//	if err := reg.Initialize(ctx); err != nil { ... }
//	defer reg.Finalize(ctx)
//
// Between Initialize and Finalize every operation is a fast in-memory
// mutation or read. Finalize persists all four collections, clears memory,
// and is safe to call twice (the second call is a logged no-op).
//
// # Concurrency
//
// One coarse mutex on the Registry serializes all operations, reads
// included. The repositories carry no locking of their own. Entities cross
// the Registry boundary as copies in both directions, so results stay safe
// to read and encode after the lock is released.
//
// # Errors
//
// Cross-entity failures surface as the sentinel errors in errors.go;
// field validation failures pass through as *model.ProblemDetails.
package service
