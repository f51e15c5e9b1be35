package model

import (
	"strings"
	"testing"
	"time"
)

// ============================================================================
// CreateUserRequest Tests
// ============================================================================

func TestCreateUserRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateUserRequest{
		Name:  "Ana Souza",
		Email: "ana@example.com",
	}

	errors := req.Validate()
	if len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestCreateUserRequest_Validate_MissingName(t *testing.T) {
	t.Parallel()

	req := &CreateUserRequest{
		Name:  "   ",
		Email: "ana@example.com",
	}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "name" {
		t.Errorf("expected name error, got %v", errors)
	}
}

func TestCreateUserRequest_Validate_NameTooLong(t *testing.T) {
	t.Parallel()

	req := &CreateUserRequest{
		Name:  strings.Repeat("a", MaxNameLength+1),
		Email: "ana@example.com",
	}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "name" {
		t.Errorf("expected name error, got %v", errors)
	}
}

func TestCreateUserRequest_Validate_NameAtLimit(t *testing.T) {
	t.Parallel()

	req := &CreateUserRequest{
		Name:  strings.Repeat("a", MaxNameLength),
		Email: "ana@example.com",
	}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected name at limit to pass, got %v", errors)
	}
}

func TestCreateUserRequest_Validate_InvalidEmail(t *testing.T) {
	t.Parallel()

	for _, email := range []string{"", "no-at-sign.com", "no-dot@com", strings.Repeat("a", MaxEmailLength) + "@x.io"} {
		req := &CreateUserRequest{Name: "Ana", Email: email}
		errors := req.Validate()
		hasError := false
		for _, e := range errors {
			if e.Field == "email" {
				hasError = true
			}
		}
		if !hasError {
			t.Errorf("expected email error for %q, got %v", email, errors)
		}
	}
}

func TestCreateUserRequest_NewUser_Normalizes(t *testing.T) {
	t.Parallel()

	req := &CreateUserRequest{
		Name:  "  Ana Souza  ",
		Email: "  Ana@Example.COM ",
	}

	user := req.NewUser()
	if user.Name != "Ana Souza" {
		t.Errorf("expected trimmed name, got %q", user.Name)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.ID == 0 {
		t.Error("expected a non-zero ID")
	}
	if !user.CreatedAt.Equal(user.ModifiedAt) {
		t.Error("expected CreatedAt and ModifiedAt to match on creation")
	}
}

// ============================================================================
// CreateTagRequest Tests
// ============================================================================

func TestNormalizeColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#ff00aa", "#FF00AA", true},
		{"#FF00AA", "#FF00AA", true},
		{"  #00ff00  ", "#00FF00", true},
		{"ff00aa", "", false},
		{"#ff00a", "", false},
		{"#ff00aaa", "", false},
		{"#gg0000", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeColor(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCreateTagRequest_Validate_InvalidColor(t *testing.T) {
	t.Parallel()

	req := &CreateTagRequest{Name: "urgent", Color: "red"}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "color" {
		t.Errorf("expected color error, got %v", errors)
	}
}

func TestCreateTagRequest_NewTag_UppercasesColor(t *testing.T) {
	t.Parallel()

	req := &CreateTagRequest{Name: " urgent ", Color: "#ab12cd"}

	tag := req.NewTag()
	if tag.Name != "urgent" {
		t.Errorf("expected trimmed name, got %q", tag.Name)
	}
	if tag.Color != "#AB12CD" {
		t.Errorf("expected uppercase color, got %q", tag.Color)
	}
}

// ============================================================================
// CreateTeamRequest Tests
// ============================================================================

func TestCreateTeamRequest_Validate(t *testing.T) {
	t.Parallel()

	if errors := (&CreateTeamRequest{Name: "Backend"}).Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
	if errors := (&CreateTeamRequest{Name: ""}).Validate(); len(errors) != 1 || errors[0].Field != "name" {
		t.Errorf("expected name error, got %v", errors)
	}
}

func TestCreateTeamRequest_NewTeam_EmptyMembers(t *testing.T) {
	t.Parallel()

	team := (&CreateTeamRequest{Name: "Backend"}).NewTeam()
	if team.Members == nil || len(team.Members) != 0 {
		t.Errorf("expected empty member set, got %v", team.Members)
	}
}

// ============================================================================
// CreateTaskRequest Tests
// ============================================================================

func TestCreateTaskRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateTaskRequest{
		Title:    "Fix login bug",
		TeamID:   1,
		OwnerID:  2,
		Deadline: "2026-12-31 17:00:00",
	}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestCreateTaskRequest_Validate_DateOnlyDeadline(t *testing.T) {
	t.Parallel()

	req := &CreateTaskRequest{
		Title:    "Fix login bug",
		TeamID:   1,
		OwnerID:  2,
		Deadline: "2026-12-31",
	}

	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected date-only deadline to pass, got %v", errors)
	}
}

func TestCreateTaskRequest_Validate_MissingFields(t *testing.T) {
	t.Parallel()

	req := &CreateTaskRequest{}

	errors := req.Validate()
	fields := map[string]bool{}
	for _, e := range errors {
		fields[e.Field] = true
	}
	for _, want := range []string{"title", "team_id", "owner_id", "deadline"} {
		if !fields[want] {
			t.Errorf("expected %s error, got %v", want, errors)
		}
	}
}

func TestCreateTaskRequest_Validate_BadDeadline(t *testing.T) {
	t.Parallel()

	req := &CreateTaskRequest{
		Title:    "Fix login bug",
		TeamID:   1,
		OwnerID:  2,
		Deadline: "next tuesday",
	}

	errors := req.Validate()
	hasError := false
	for _, e := range errors {
		if e.Field == "deadline" {
			hasError = true
		}
	}
	if !hasError {
		t.Errorf("expected deadline error, got %v", errors)
	}
}

func TestCreateTaskRequest_Validate_DescriptionTooLong(t *testing.T) {
	t.Parallel()

	req := &CreateTaskRequest{
		Title:       "Fix login bug",
		Description: strings.Repeat("d", MaxDescriptionLength+1),
		TeamID:      1,
		OwnerID:     2,
		Deadline:    "2026-12-31 17:00:00",
	}

	errors := req.Validate()
	hasError := false
	for _, e := range errors {
		if e.Field == "description" {
			hasError = true
		}
	}
	if !hasError {
		t.Errorf("expected description error, got %v", errors)
	}
}

func TestCreateTaskRequest_NewTask_Defaults(t *testing.T) {
	t.Parallel()

	req := &CreateTaskRequest{
		Title:    "  Fix login bug  ",
		TeamID:   1,
		OwnerID:  2,
		Deadline: "2026-12-31 17:00:00",
	}

	task := req.NewTask(TeamID(1))
	if task.Title != "Fix login bug" {
		t.Errorf("expected trimmed title, got %q", task.Title)
	}
	if task.Status != StatusOpen {
		t.Errorf("expected OPEN status, got %q", task.Status)
	}
	if task.TagIDs == nil || len(task.TagIDs) != 0 {
		t.Errorf("expected empty tag set, got %v", task.TagIDs)
	}
	if task.TeamID != TeamID(1) || task.OwnerID != UserID(2) {
		t.Errorf("unexpected references: team=%v owner=%v", task.TeamID, task.OwnerID)
	}
}

// ============================================================================
// TaskStatus Tests
// ============================================================================

func TestTaskStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []TaskStatus{StatusOpen, StatusInProgress, StatusDone, StatusCancelled} {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []TaskStatus{"", "open", "ARCHIVED"} {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

// ============================================================================
// Timestamp Tests
// ============================================================================

func TestParseTime_Layouts(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"2026-09-01 10:30:00", "2026-09-01T10:30:00Z", "2026-09-01"} {
		if _, err := ParseTime(s); err != nil {
			t.Errorf("ParseTime(%q) returned error: %v", s, err)
		}
	}
	if _, err := ParseTime("not a date"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestFormatTime_RoundTrip(t *testing.T) {
	t.Parallel()

	orig := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	parsed, err := ParseTime(FormatTime(orig))
	if err != nil {
		t.Fatalf("round-trip parse failed: %v", err)
	}
	if !parsed.Equal(orig) {
		t.Errorf("round-trip changed value: %v != %v", parsed, orig)
	}
}

// ============================================================================
// ID Tests
// ============================================================================

func TestNextID_StrictlyIncreasing(t *testing.T) {
	t.Parallel()

	prev := NextID()
	for i := 0; i < 1000; i++ {
		id := NextID()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestTouch_NeverMovesBackwards(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(time.Hour)
	user := &User{ModifiedAt: future}
	user.Touch()
	if !user.ModifiedAt.Equal(future) {
		t.Errorf("Touch moved ModifiedAt backwards: %v", user.ModifiedAt)
	}

	past := time.Now().Add(-time.Hour)
	task := &Task{ModifiedAt: past}
	task.Touch()
	if !task.ModifiedAt.After(past) {
		t.Error("Touch did not advance a stale ModifiedAt")
	}
}

// ============================================================================
// Record Round-Trip Tests
// ============================================================================

func TestTaskFromRecord_InvalidStatusDefaultsToOpen(t *testing.T) {
	t.Parallel()

	rec := TaskRecord{
		ID:         1,
		TeamID:     2,
		Title:      "Fix login bug",
		OwnerID:    3,
		Deadline:   "2026-12-31 17:00:00",
		Status:     "ARCHIVED",
		CreatedAt:  "2026-09-01 10:00:00",
		ModifiedAt: "2026-09-01 10:00:00",
	}

	task, err := TaskFromRecord(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != StatusOpen {
		t.Errorf("expected unknown status to default to OPEN, got %q", task.Status)
	}
}

func TestTaskFromRecord_BadTimestamp(t *testing.T) {
	t.Parallel()

	rec := TaskRecord{
		ID:         1,
		TeamID:     2,
		Title:      "Fix login bug",
		OwnerID:    3,
		Deadline:   "garbage",
		Status:     "OPEN",
		CreatedAt:  "2026-09-01 10:00:00",
		ModifiedAt: "2026-09-01 10:00:00",
	}

	if _, err := TaskFromRecord(rec); err == nil {
		t.Error("expected error for malformed deadline")
	}
}
