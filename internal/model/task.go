package model

import (
	"strings"
	"time"
)

// TaskStatus represents the tracked state of a task
type TaskStatus string

const (
	StatusOpen       TaskStatus = "OPEN"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
	StatusCancelled  TaskStatus = "CANCELLED"
)

// IsValid returns true if the status is one of the four tracked states.
// Transitions between states are deliberately unconstrained: the system
// tracks status, it does not enforce workflow ordering.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

// Task represents a unit of work. Owner, team, and tags are referenced by
// ID only; the registry guarantees they were registered at creation time.
type Task struct {
	ID          TaskID     `json:"id"`
	TeamID      TeamID     `json:"team_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	OwnerID     UserID     `json:"owner_id"`
	Deadline    time.Time  `json:"deadline"`
	Status      TaskStatus `json:"status"`
	TagIDs      []TagID    `json:"tag_ids"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  time.Time  `json:"modified_at"`
}

// Business constraints
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Touch bumps ModifiedAt. The timestamp never moves backwards.
func (t *Task) Touch() {
	if now := time.Now(); now.After(t.ModifiedAt) {
		t.ModifiedAt = now
	}
}

// HasTag reports whether the tag ID is in the tag set.
func (t *Task) HasTag(id TagID) bool {
	for _, g := range t.TagIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the task, tag set included.
func (t *Task) Clone() *Task {
	c := *t
	c.TagIDs = make([]TagID, len(t.TagIDs))
	copy(c.TagIDs, t.TagIDs)
	return &c
}

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	TeamID      int64   `json:"team_id"`
	OwnerID     int64   `json:"owner_id"`
	TagIDs      []int64 `json:"tag_ids,omitempty"`
	Deadline    string  `json:"deadline"`
}

// Validate checks field constraints and returns any violations
func (r *CreateTaskRequest) Validate() []FieldError {
	var errs []FieldError

	title := strings.TrimSpace(r.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > MaxTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: "title exceeds maximum length"})
	}

	if len(strings.TrimSpace(r.Description)) > MaxDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: "description exceeds maximum length"})
	}

	if r.TeamID == 0 {
		errs = append(errs, FieldError{Field: "team_id", Message: "team_id is required"})
	}

	if r.OwnerID == 0 {
		errs = append(errs, FieldError{Field: "owner_id", Message: "owner_id is required"})
	}

	if strings.TrimSpace(r.Deadline) == "" {
		errs = append(errs, FieldError{Field: "deadline", Message: "deadline is required"})
	} else if _, err := ParseTime(strings.TrimSpace(r.Deadline)); err != nil {
		errs = append(errs, FieldError{Field: "deadline", Message: "deadline has invalid format"})
	}

	return errs
}

// NewTask builds a Task from a validated request. Status starts OPEN and the
// tag set starts empty; tags are attached afterwards, best-effort.
func (r *CreateTaskRequest) NewTask(teamID TeamID) *Task {
	deadline, _ := ParseTime(strings.TrimSpace(r.Deadline))
	now := time.Now()
	return &Task{
		ID:          NewTaskID(),
		TeamID:      teamID,
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		OwnerID:     UserID(r.OwnerID),
		Deadline:    deadline,
		Status:      StatusOpen,
		TagIDs:      []TagID{},
		CreatedAt:   now,
		ModifiedAt:  now,
	}
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

// Validate checks every provided field and returns any violations
func (r *UpdateTaskRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			errs = append(errs, FieldError{Field: "title", Message: "title is required"})
		} else if len(title) > MaxTitleLength {
			errs = append(errs, FieldError{Field: "title", Message: "title exceeds maximum length"})
		}
	}

	if r.Description != nil && len(strings.TrimSpace(*r.Description)) > MaxDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: "description exceeds maximum length"})
	}

	if r.Deadline != nil {
		deadline := strings.TrimSpace(*r.Deadline)
		if deadline == "" {
			errs = append(errs, FieldError{Field: "deadline", Message: "deadline is required"})
		} else if d, err := ParseTime(deadline); err != nil || d.IsZero() {
			errs = append(errs, FieldError{Field: "deadline", Message: "deadline has invalid format"})
		}
	}

	return errs
}

// SetStatusRequest represents a status change
type SetStatusRequest struct {
	Status string `json:"status"`
}

// AttachTagRequest represents a request to attach a tag to a task
type AttachTagRequest struct {
	TagID int64 `json:"tag_id"`
}

// TaskRecord is the flat persistence form of a Task
type TaskRecord struct {
	ID          int64   `json:"id"`
	TeamID      int64   `json:"team_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	OwnerID     int64   `json:"owner_id"`
	Deadline    string  `json:"deadline"`
	Status      string  `json:"status"`
	TagIDs      []int64 `json:"tag_ids"`
	CreatedAt   string  `json:"created_at"`
	ModifiedAt  string  `json:"modified_at"`
}

// Record converts the task to its persistence form
func (t *Task) Record() TaskRecord {
	tags := make([]int64, len(t.TagIDs))
	for i, g := range t.TagIDs {
		tags[i] = int64(g)
	}
	return TaskRecord{
		ID:          int64(t.ID),
		TeamID:      int64(t.TeamID),
		Title:       t.Title,
		Description: t.Description,
		OwnerID:     int64(t.OwnerID),
		Deadline:    FormatTime(t.Deadline),
		Status:      string(t.Status),
		TagIDs:      tags,
		CreatedAt:   FormatTime(t.CreatedAt),
		ModifiedAt:  FormatTime(t.ModifiedAt),
	}
}

// TaskFromRecord rebuilds a task from its persistence form
func TaskFromRecord(rec TaskRecord) (*Task, error) {
	deadline, err := ParseTime(rec.Deadline)
	if err != nil {
		return nil, err
	}
	created, err := ParseTime(rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	modified, err := ParseTime(rec.ModifiedAt)
	if err != nil {
		return nil, err
	}
	status := TaskStatus(rec.Status)
	if !status.IsValid() {
		status = StatusOpen
	}
	tags := make([]TagID, len(rec.TagIDs))
	for i, g := range rec.TagIDs {
		tags[i] = TagID(g)
	}
	return &Task{
		ID:          TaskID(rec.ID),
		TeamID:      TeamID(rec.TeamID),
		Title:       rec.Title,
		Description: rec.Description,
		OwnerID:     UserID(rec.OwnerID),
		Deadline:    deadline,
		Status:      status,
		TagIDs:      tags,
		CreatedAt:   created,
		ModifiedAt:  modified,
	}, nil
}
