// Package model defines domain entities and data structures for the task registry.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: A person who can own tasks
//   - Tag: A colored label attachable to tasks
//   - Team: A named group of user IDs
//   - Task: A unit of work with owner, deadline, status, and tags
//
// # Typed Identifiers
//
// Every entity kind has its own 64-bit identifier type (UserID, TagID,
// TeamID, TaskID). Entities reference each other by ID only, never by
// pointer, which keeps the object graph acyclic:
//
//	type Task struct {
//	    OwnerID UserID  `json:"owner_id"`
//	    TagIDs  []TagID `json:"tag_ids"`
//	}
//
// # Validation
//
// Request types implement Validate() []FieldError. Entities are only
// constructed from requests that validated cleanly, so an entity held by a
// repository always satisfies its field constraints.
//
// # Persistence Records
//
// Each entity has a flat Record form with fixed-format timestamp strings,
// used by the store at the load/save process boundaries.
package model
