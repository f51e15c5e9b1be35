package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/taskreg/api/internal/model"
	"github.com/taskreg/api/internal/store"
)

// TaskRepository holds every registered task in memory. Tasks reference
// their owner, team, and tags by ID only; cross-repository checks belong to
// the service layer.
type TaskRepository struct {
	store store.Store
	tasks map[model.TaskID]*model.Task
	order []model.TaskID
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(st store.Store) *TaskRepository {
	return &TaskRepository{
		store: st,
		tasks: make(map[model.TaskID]*model.Task),
	}
}

// Create validates the request and builds a task with a fresh ID, OPEN
// status, and an empty tag set. The task is not visible to other operations
// until Register is called.
func (r *TaskRepository) Create(teamID model.TeamID, req model.CreateTaskRequest) (*model.Task, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	return req.NewTask(teamID), nil
}

// Register inserts an already-built task, rejecting duplicate IDs.
func (r *TaskRepository) Register(task *model.Task) error {
	if task == nil || task.ID == 0 {
		return ErrInvalidEntity
	}
	if _, ok := r.tasks[task.ID]; ok {
		return fmt.Errorf("%w: task %s", store.ErrDuplicate, task.ID)
	}
	if task.TagIDs == nil {
		task.TagIDs = []model.TagID{}
	}
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	return nil
}

// Get retrieves a task by ID, or nil if absent.
func (r *TaskRepository) Get(id model.TaskID) *model.Task {
	return r.tasks[id]
}

// Destroy removes a task by ID. Removing an absent ID is a logged no-op.
func (r *TaskRepository) Destroy(id model.TaskID) {
	if _, ok := r.tasks[id]; !ok {
		slog.Warn("destroy of unregistered task", slog.String("task_id", id.String()))
		return
	}
	delete(r.tasks, id)
	r.order = removeID(r.order, id)
}

// ListAll returns an insertion-order snapshot of all tasks.
func (r *TaskRepository) ListAll() []*model.Task {
	out := make([]*model.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out
}

// ListByTeam returns an insertion-order snapshot of the team's tasks.
func (r *TaskRepository) ListByTeam(teamID model.TeamID) []*model.Task {
	var out []*model.Task
	for _, id := range r.order {
		if task := r.tasks[id]; task.TeamID == teamID {
			out = append(out, task)
		}
	}
	return out
}

// Count returns the number of registered tasks.
func (r *TaskRepository) Count() int { return len(r.tasks) }

// SetTitle changes a task's title after validation.
func (r *TaskRepository) SetTitle(id model.TaskID, title string) error {
	task, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %s", store.ErrNotFound, id)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: "title is required"}})
	}
	if len(title) > model.MaxTitleLength {
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: "title exceeds maximum length"}})
	}
	task.Title = title
	task.Touch()
	return nil
}

// SetDescription changes a task's description after validation.
func (r *TaskRepository) SetDescription(id model.TaskID, description string) error {
	task, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %s", store.ErrNotFound, id)
	}
	description = strings.TrimSpace(description)
	if len(description) > model.MaxDescriptionLength {
		return model.NewValidationError([]model.FieldError{{Field: "description", Message: "description exceeds maximum length"}})
	}
	task.Description = description
	task.Touch()
	return nil
}

// SetDeadline changes a task's deadline.
func (r *TaskRepository) SetDeadline(id model.TaskID, deadline time.Time) error {
	task, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %s", store.ErrNotFound, id)
	}
	if deadline.IsZero() {
		return model.NewValidationError([]model.FieldError{{Field: "deadline", Message: "deadline is required"}})
	}
	task.Deadline = deadline
	task.Touch()
	return nil
}

// SetStatus changes a task's status. Any valid status may follow any other;
// only membership in the enum is checked.
func (r *TaskRepository) SetStatus(id model.TaskID, status model.TaskStatus) error {
	task, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %s", store.ErrNotFound, id)
	}
	if !status.IsValid() {
		return model.NewValidationError([]model.FieldError{{Field: "status", Message: "status must be one of OPEN, IN_PROGRESS, DONE, CANCELLED"}})
	}
	task.Status = status
	task.Touch()
	return nil
}

// AddTag appends a tag ID to the task's tag set. Duplicates are rejected;
// the set keeps insertion order.
func (r *TaskRepository) AddTag(id model.TaskID, tagID model.TagID) error {
	task, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %s", store.ErrNotFound, id)
	}
	if task.HasTag(tagID) {
		return fmt.Errorf("%w: tag %s", store.ErrDuplicate, tagID)
	}
	task.TagIDs = append(task.TagIDs, tagID)
	task.Touch()
	return nil
}

// RemoveTag deletes a tag ID from the task's tag set.
func (r *TaskRepository) RemoveTag(id model.TaskID, tagID model.TagID) error {
	task, ok := r.tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %s", store.ErrNotFound, id)
	}
	if !task.HasTag(tagID) {
		return fmt.Errorf("%w: tag %s", store.ErrNotFound, tagID)
	}
	task.TagIDs = removeID(task.TagIDs, tagID)
	task.Touch()
	return nil
}

// ListTagIDs returns at most limit tag IDs plus the count actually
// returned. Callers must compare the count against the task's full tag set
// if they need to detect truncation.
func (r *TaskRepository) ListTagIDs(id model.TaskID, limit int) ([]model.TagID, int, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, 0, fmt.Errorf("%w: task %s", store.ErrNotFound, id)
	}
	if limit < 0 {
		limit = 0
	}
	n := len(task.TagIDs)
	if n > limit {
		n = limit
	}
	out := make([]model.TagID, n)
	copy(out, task.TagIDs[:n])
	return out, n, nil
}

// Load replaces in-memory state with the store's collection.
func (r *TaskRepository) Load(ctx context.Context) error {
	records, err := r.store.Load(ctx, store.KindTasks)
	if err != nil {
		return err
	}

	r.Clear()
	for key, raw := range records {
		var rec model.TaskRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			slog.Warn("skipping undecodable task record", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		task, err := model.TaskFromRecord(rec)
		if err != nil {
			slog.Warn("skipping invalid task record", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		r.tasks[task.ID] = task
		r.order = append(r.order, task.ID)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return nil
}

// Save writes the full collection to the store.
func (r *TaskRepository) Save(ctx context.Context) error {
	records := store.Records{}
	for id, task := range r.tasks {
		data, err := json.Marshal(task.Record())
		if err != nil {
			return fmt.Errorf("encode task %s: %w", id, err)
		}
		records[id.String()] = data
	}
	return r.store.Save(ctx, store.KindTasks, records)
}

// Clear drops all in-memory state.
func (r *TaskRepository) Clear() {
	r.tasks = make(map[model.TaskID]*model.Task)
	r.order = nil
}
