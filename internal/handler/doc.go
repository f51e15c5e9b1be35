// Package handler implements the HTTP adapters for the task registry.
//
// Handlers are thin: they parse path and body input, call one Registry
// operation, and translate the result. No entity rule lives here; a rule
// that is reachable over HTTP must hold for direct Registry callers too,
// so enforcement stays in the service and repository layers.
//
// Errors are rendered as RFC 9457 Problem Details. Service sentinel errors
// are mapped centrally by MapServiceError; validation failures arrive from
// the lower layers already shaped as *model.ProblemDetails and pass
// through untouched.
package handler
