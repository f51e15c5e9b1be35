// Package repository implements the in-memory data layer of the task registry.
//
// Each repository owns one entity kind: its validation, ID assignment,
// keyed storage, and persistence encoding. Repositories never reference
// each other; tasks and teams carry foreign IDs, and the service layer is
// the only place that checks those IDs against the owning repository.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a store.Store
//   - Create validates a request and builds an entity without inserting it
//   - Register inserts an already-built entity, rejecting duplicate IDs
//   - Destroy removes by ID (a logged no-op when absent)
//   - Field setters validate, mutate, and bump ModifiedAt
//   - ListAll returns a fresh insertion-order slice; its elements are the
//     live entities, which the service layer copies at its own boundary
//   - Load/Save move the whole collection across the process boundary
//
// # Error Handling
//
// Failed lookups wrap store.ErrNotFound and duplicate inserts wrap
// store.ErrDuplicate, so callers use errors.Is. Validation failures return
// *model.ProblemDetails carrying the per-field errors.
//
// # Concurrency
//
// Repositories have no internal locking. The owning service.Registry
// serializes all access behind one coarse mutex.
package repository
