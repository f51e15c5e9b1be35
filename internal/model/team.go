package model

import (
	"strings"
	"time"
)

// Team represents a named group of users. Members are stored as user IDs,
// never as User values, so Team and User cannot form a reference cycle.
type Team struct {
	ID         TeamID    `json:"id"`
	Name       string    `json:"name"`
	Members    []UserID  `json:"members"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Touch bumps ModifiedAt. The timestamp never moves backwards.
func (t *Team) Touch() {
	if now := time.Now(); now.After(t.ModifiedAt) {
		t.ModifiedAt = now
	}
}

// HasMember reports whether the user ID is in the member set.
func (t *Team) HasMember(id UserID) bool {
	for _, m := range t.Members {
		if m == id {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the team, member set included.
func (t *Team) Clone() *Team {
	c := *t
	c.Members = make([]UserID, len(t.Members))
	copy(c.Members, t.Members)
	return &c
}

// CreateTeamRequest represents a request to create a team
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// Validate checks field constraints and returns any violations
func (r *CreateTeamRequest) Validate() []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > MaxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
	}

	return errs
}

// NewTeam builds a Team from a validated request with an empty member set.
func (r *CreateTeamRequest) NewTeam() *Team {
	now := time.Now()
	return &Team{
		ID:         NewTeamID(),
		Name:       strings.TrimSpace(r.Name),
		Members:    []UserID{},
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// UpdateTeamRequest represents a partial team update
type UpdateTeamRequest struct {
	Name *string `json:"name,omitempty"`
}

// Validate checks every provided field and returns any violations
func (r *UpdateTeamRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			errs = append(errs, FieldError{Field: "name", Message: "name is required"})
		} else if len(name) > MaxNameLength {
			errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
		}
	}

	return errs
}

// AddMemberRequest represents a request to add a user to a team
type AddMemberRequest struct {
	UserID int64 `json:"user_id"`
}

// TeamRecord is the flat persistence form of a Team
type TeamRecord struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Members    []int64 `json:"members"`
	CreatedAt  string  `json:"created_at"`
	ModifiedAt string  `json:"modified_at"`
}

// Record converts the team to its persistence form
func (t *Team) Record() TeamRecord {
	members := make([]int64, len(t.Members))
	for i, m := range t.Members {
		members[i] = int64(m)
	}
	return TeamRecord{
		ID:         int64(t.ID),
		Name:       t.Name,
		Members:    members,
		CreatedAt:  FormatTime(t.CreatedAt),
		ModifiedAt: FormatTime(t.ModifiedAt),
	}
}

// TeamFromRecord rebuilds a team from its persistence form
func TeamFromRecord(rec TeamRecord) (*Team, error) {
	created, err := ParseTime(rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	modified, err := ParseTime(rec.ModifiedAt)
	if err != nil {
		return nil, err
	}
	members := make([]UserID, len(rec.Members))
	for i, m := range rec.Members {
		members[i] = UserID(m)
	}
	return &Team{
		ID:         TeamID(rec.ID),
		Name:       rec.Name,
		Members:    members,
		CreatedAt:  created,
		ModifiedAt: modified,
	}, nil
}
