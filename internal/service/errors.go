package service

import "errors"

// Centralized service layer errors.
// All errors returned by Registry methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Lifecycle Errors =====
var (
	ErrNotInitialized = errors.New("registry not initialized")
	ErrNilEntity      = errors.New("nil entity")
)

// ===== Not Found Errors =====
var (
	ErrUserNotFound = errors.New("user not found")
	ErrTagNotFound  = errors.New("tag not found")
	ErrTeamNotFound = errors.New("team not found")
	ErrTaskNotFound = errors.New("task not found")
)

// ===== Reference Errors =====
var (
	ErrOwnerNotRegistered = errors.New("owner is not a registered user")
	ErrTeamNotRegistered  = errors.New("team is not registered")
)

// ===== Conflict Errors =====
var (
	ErrDuplicateID        = errors.New("an entity with this ID is already registered")
	ErrMemberExists       = errors.New("user is already a team member")
	ErrMemberNotFound     = errors.New("user is not a team member")
	ErrTagAlreadyAttached = errors.New("tag is already attached to this task")
	ErrTagNotAttached     = errors.New("tag is not attached to this task")
)
