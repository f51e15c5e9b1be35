package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/taskreg/api/internal/model"
	"github.com/taskreg/api/internal/store"
)

func registerTask(t *testing.T, repo *TaskRepository, teamID model.TeamID, title string) *model.Task {
	t.Helper()
	task, err := repo.Create(teamID, model.CreateTaskRequest{
		Title:    title,
		TeamID:   int64(teamID),
		OwnerID:  model.NextID(),
		Deadline: "2026-12-31 17:00:00",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := repo.Register(task); err != nil {
		t.Fatalf("register task: %v", err)
	}
	return task
}

func TestTaskRepository_ListByTeam(t *testing.T) {
	t.Parallel()

	repo := NewTaskRepository(newTestStore(t))
	teamA := model.TeamID(model.NextID())
	teamB := model.TeamID(model.NextID())

	a1 := registerTask(t, repo, teamA, "task a1")
	registerTask(t, repo, teamB, "task b1")
	a2 := registerTask(t, repo, teamA, "task a2")

	got := repo.ListByTeam(teamA)
	if len(got) != 2 || got[0].ID != a1.ID || got[1].ID != a2.ID {
		t.Errorf("unexpected team task list: %v", got)
	}
	if len(repo.ListByTeam(model.TeamID(999))) != 0 {
		t.Error("expected no tasks for unknown team")
	}
}

func TestTaskRepository_AddTag(t *testing.T) {
	t.Parallel()

	repo := NewTaskRepository(newTestStore(t))
	task := registerTask(t, repo, model.TeamID(1), "task")
	tagID := model.TagID(model.NextID())

	if err := repo.AddTag(task.ID, tagID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.HasTag(tagID) {
		t.Error("tag not recorded")
	}

	err := repo.AddTag(task.ID, tagID)
	if !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if len(task.TagIDs) != 1 {
		t.Errorf("duplicate attach must not grow tag set, got %d", len(task.TagIDs))
	}
}

func TestTaskRepository_RemoveTag(t *testing.T) {
	t.Parallel()

	repo := NewTaskRepository(newTestStore(t))
	task := registerTask(t, repo, model.TeamID(1), "task")
	tagID := model.TagID(model.NextID())
	_ = repo.AddTag(task.ID, tagID)

	if err := repo.RemoveTag(task.ID, tagID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := repo.RemoveTag(task.ID, tagID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for detached tag, got %v", err)
	}
}

func TestTaskRepository_ListTagIDs_Limit(t *testing.T) {
	t.Parallel()

	repo := NewTaskRepository(newTestStore(t))
	task := registerTask(t, repo, model.TeamID(1), "task")
	var tags []model.TagID
	for i := 0; i < 5; i++ {
		id := model.TagID(model.NextID())
		tags = append(tags, id)
		_ = repo.AddTag(task.ID, id)
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, 0},
		{3, 3},
		{5, 5},
		{10, 5},
		{-1, 0},
	}
	for _, tt := range tests {
		got, n, err := repo.ListTagIDs(task.ID, tt.limit)
		if err != nil {
			t.Fatalf("limit %d: unexpected error: %v", tt.limit, err)
		}
		if n != tt.want || len(got) != tt.want {
			t.Errorf("limit %d: expected %d tags, got %d (len %d)", tt.limit, tt.want, n, len(got))
		}
		for i := range got {
			if got[i] != tags[i] {
				t.Errorf("limit %d: position %d expected %v, got %v", tt.limit, i, tags[i], got[i])
			}
		}
	}
}

func TestTaskRepository_SetStatus(t *testing.T) {
	t.Parallel()

	repo := NewTaskRepository(newTestStore(t))
	task := registerTask(t, repo, model.TeamID(1), "task")

	if err := repo.SetStatus(task.ID, model.StatusDone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != model.StatusDone {
		t.Errorf("expected DONE, got %q", task.Status)
	}

	if err := repo.SetStatus(task.ID, model.TaskStatus("ARCHIVED")); err == nil {
		t.Error("expected validation error for unknown status")
	}
	if task.Status != model.StatusDone {
		t.Errorf("failed set must not change status, got %q", task.Status)
	}
}

func TestTaskRepository_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	repo := NewTaskRepository(st)
	teamID := model.TeamID(model.NextID())
	task := registerTask(t, repo, teamID, "task")
	tagID := model.TagID(model.NextID())
	_ = repo.AddTag(task.ID, tagID)
	_ = repo.SetStatus(task.ID, model.StatusInProgress)
	if err := repo.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded := NewTaskRepository(st)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	got := reloaded.Get(task.ID)
	if got == nil {
		t.Fatal("task missing after reload")
	}
	if got.TeamID != teamID || !got.HasTag(tagID) || got.Status != model.StatusInProgress {
		t.Errorf("round trip lost state: %+v", got)
	}
}
