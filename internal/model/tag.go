package model

import (
	"strings"
	"time"
)

// Tag represents a colored label attachable to tasks
type Tag struct {
	ID         TagID     `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ColorLength is the exact length of a tag color: "#" plus six hex digits.
const ColorLength = 7

// NormalizeColor validates a hex color of the form #RRGGBB and returns its
// uppercase form. The second result is false if the value is malformed.
func NormalizeColor(color string) (string, bool) {
	color = strings.TrimSpace(color)
	if len(color) != ColorLength || color[0] != '#' {
		return "", false
	}
	for _, c := range color[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return "", false
		}
	}
	return strings.ToUpper(color), true
}

// Touch bumps ModifiedAt. The timestamp never moves backwards.
func (t *Tag) Touch() {
	if now := time.Now(); now.After(t.ModifiedAt) {
		t.ModifiedAt = now
	}
}

// Clone returns an independent copy of the tag.
func (t *Tag) Clone() *Tag {
	c := *t
	return &c
}

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Validate checks field constraints and returns any violations
func (r *CreateTagRequest) Validate() []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > MaxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
	}

	if _, ok := NormalizeColor(r.Color); !ok {
		errs = append(errs, FieldError{Field: "color", Message: "color must be '#' followed by six hex digits"})
	}

	return errs
}

// NewTag builds a Tag from a validated request. Name is trimmed and color is
// uppercased.
func (r *CreateTagRequest) NewTag() *Tag {
	color, _ := NormalizeColor(r.Color)
	now := time.Now()
	return &Tag{
		ID:         NewTagID(),
		Name:       strings.TrimSpace(r.Name),
		Color:      color,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// UpdateTagRequest represents a partial tag update
type UpdateTagRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Validate checks every provided field and returns any violations
func (r *UpdateTagRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			errs = append(errs, FieldError{Field: "name", Message: "name is required"})
		} else if len(name) > MaxNameLength {
			errs = append(errs, FieldError{Field: "name", Message: "name exceeds maximum length"})
		}
	}

	if r.Color != nil {
		if _, ok := NormalizeColor(*r.Color); !ok {
			errs = append(errs, FieldError{Field: "color", Message: "color must be '#' followed by six hex digits"})
		}
	}

	return errs
}

// TagRecord is the flat persistence form of a Tag
type TagRecord struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
}

// Record converts the tag to its persistence form
func (t *Tag) Record() TagRecord {
	return TagRecord{
		ID:         int64(t.ID),
		Name:       t.Name,
		Color:      t.Color,
		CreatedAt:  FormatTime(t.CreatedAt),
		ModifiedAt: FormatTime(t.ModifiedAt),
	}
}

// TagFromRecord rebuilds a tag from its persistence form
func TagFromRecord(rec TagRecord) (*Tag, error) {
	created, err := ParseTime(rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	modified, err := ParseTime(rec.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &Tag{
		ID:         TagID(rec.ID),
		Name:       rec.Name,
		Color:      rec.Color,
		CreatedAt:  created,
		ModifiedAt: modified,
	}, nil
}
