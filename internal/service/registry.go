package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/taskreg/api/internal/model"
	"github.com/taskreg/api/internal/repository"
	"github.com/taskreg/api/internal/store"
)

// Registry composes the four entity repositories and enforces every
// cross-entity invariant. It holds no entity state of its own.
//
// Every entity crossing the Registry boundary is a copy: accessors return
// clones and Register* inserts clones, so no caller ever aliases state that
// a later operation mutates under the lock.
type Registry struct {
	mu    sync.Mutex
	store store.Store

	users *repository.UserRepository
	tags  *repository.TagRepository
	teams *repository.TeamRepository
	tasks *repository.TaskRepository

	initialized bool
}

// NewRegistry creates a registry backed by the given store. Call Initialize
// before any other operation.
func NewRegistry(st store.Store) *Registry {
	return &Registry{
		store: st,
		users: repository.NewUserRepository(st),
		tags:  repository.NewTagRepository(st),
		teams: repository.NewTeamRepository(st),
		tasks: repository.NewTaskRepository(st),
	}
}

// Initialize loads all four repositories from the store exactly once.
// It fails only if the store itself is unreachable; kinds that were never
// saved load as empty collections.
func (g *Registry) Initialize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.initialized {
		slog.Warn("registry already initialized")
		return nil
	}

	if err := g.users.Load(ctx); err != nil {
		return err
	}
	if err := g.tags.Load(ctx); err != nil {
		return err
	}
	if err := g.teams.Load(ctx); err != nil {
		return err
	}
	if err := g.tasks.Load(ctx); err != nil {
		return err
	}

	g.initialized = true
	slog.Info("registry initialized",
		slog.Int("users", g.users.Count()),
		slog.Int("tags", g.tags.Count()),
		slog.Int("teams", g.teams.Count()),
		slog.Int("tasks", g.tasks.Count()),
	)
	return nil
}

// Finalize persists all four repositories exactly once and clears in-memory
// state. On a save failure memory is left intact so the caller can retry.
// Finalizing an already-finalized registry is a logged no-op.
func (g *Registry) Finalize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		slog.Warn("finalize on an uninitialized registry")
		return nil
	}

	if err := g.users.Save(ctx); err != nil {
		return err
	}
	if err := g.tags.Save(ctx); err != nil {
		return err
	}
	if err := g.teams.Save(ctx); err != nil {
		return err
	}
	if err := g.tasks.Save(ctx); err != nil {
		return err
	}

	g.users.Clear()
	g.tags.Clear()
	g.teams.Clear()
	g.tasks.Clear()
	g.initialized = false

	slog.Info("registry finalized")
	return nil
}

// ============================================================================
// Users
// ============================================================================

// RegisterUser inserts an already-built user into the registry.
func (g *Registry) RegisterUser(user *model.User) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}
	if user == nil {
		return ErrNilEntity
	}
	if err := translateRegister(g.users.Register(user.Clone())); err != nil {
		return err
	}
	slog.Info("user registered", slog.String("user_id", user.ID.String()))
	return nil
}

// CreateUser validates, builds, and registers a user in one step.
func (g *Registry) CreateUser(req model.CreateUserRequest) (*model.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	user, err := g.users.Create(req)
	if err != nil {
		return nil, err
	}
	if err := translateRegister(g.users.Register(user)); err != nil {
		return nil, err
	}
	slog.Info("user created", slog.String("user_id", user.ID.String()), slog.String("name", user.Name))
	return user.Clone(), nil
}

// GetUser retrieves a user by ID.
func (g *Registry) GetUser(id model.UserID) (*model.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	user := g.users.Get(id)
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Clone(), nil
}

// ListUsers returns all users in registration order.
func (g *Registry) ListUsers() ([]*model.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	users := g.users.ListAll()
	out := make([]*model.User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out, nil
}

// UpdateUser applies a partial update to a user. Every provided field is
// validated before any is applied, so a rejected request changes nothing.
func (g *Registry) UpdateUser(id model.UserID, req model.UpdateUserRequest) (*model.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if g.users.Get(id) == nil {
		return nil, ErrUserNotFound
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	if req.Name != nil {
		if err := g.users.SetName(id, *req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := g.users.SetEmail(id, *req.Email); err != nil {
			return nil, err
		}
	}
	return g.users.Get(id).Clone(), nil
}

// RemoveUser deletes a user from the registry.
func (g *Registry) RemoveUser(id model.UserID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}
	if g.users.Get(id) == nil {
		return ErrUserNotFound
	}
	g.users.Destroy(id)
	slog.Info("user removed", slog.String("user_id", id.String()))
	return nil
}

// ============================================================================
// Tags
// ============================================================================

// RegisterTag inserts an already-built tag into the registry.
func (g *Registry) RegisterTag(tag *model.Tag) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}
	if tag == nil {
		return ErrNilEntity
	}
	if err := translateRegister(g.tags.Register(tag.Clone())); err != nil {
		return err
	}
	slog.Info("tag registered", slog.String("tag_id", tag.ID.String()))
	return nil
}

// CreateTag validates, builds, and registers a tag in one step.
func (g *Registry) CreateTag(req model.CreateTagRequest) (*model.Tag, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	tag, err := g.tags.Create(req)
	if err != nil {
		return nil, err
	}
	if err := translateRegister(g.tags.Register(tag)); err != nil {
		return nil, err
	}
	slog.Info("tag created", slog.String("tag_id", tag.ID.String()), slog.String("name", tag.Name))
	return tag.Clone(), nil
}

// GetTag retrieves a tag by ID.
func (g *Registry) GetTag(id model.TagID) (*model.Tag, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	tag := g.tags.Get(id)
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag.Clone(), nil
}

// ListTags returns all tags in registration order.
func (g *Registry) ListTags() ([]*model.Tag, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	tags := g.tags.ListAll()
	out := make([]*model.Tag, len(tags))
	for i, tg := range tags {
		out[i] = tg.Clone()
	}
	return out, nil
}

// UpdateTag applies a partial update to a tag. Every provided field is
// validated before any is applied, so a rejected request changes nothing.
func (g *Registry) UpdateTag(id model.TagID, req model.UpdateTagRequest) (*model.Tag, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if g.tags.Get(id) == nil {
		return nil, ErrTagNotFound
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	if req.Name != nil {
		if err := g.tags.SetName(id, *req.Name); err != nil {
			return nil, err
		}
	}
	if req.Color != nil {
		if err := g.tags.SetColor(id, *req.Color); err != nil {
			return nil, err
		}
	}
	return g.tags.Get(id).Clone(), nil
}

// RemoveTag deletes a tag from the registry. Tasks that referenced the tag
// keep the stale ID; references are validated at attach time only.
func (g *Registry) RemoveTag(id model.TagID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}
	if g.tags.Get(id) == nil {
		return ErrTagNotFound
	}
	g.tags.Destroy(id)
	slog.Info("tag removed", slog.String("tag_id", id.String()))
	return nil
}

// ============================================================================
// Teams
// ============================================================================

// RegisterTeam inserts an already-built team into the registry.
func (g *Registry) RegisterTeam(team *model.Team) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}
	if team == nil {
		return ErrNilEntity
	}
	if err := translateRegister(g.teams.Register(team.Clone())); err != nil {
		return err
	}
	slog.Info("team registered", slog.String("team_id", team.ID.String()))
	return nil
}

// CreateTeam validates, builds, and registers a team in one step.
func (g *Registry) CreateTeam(req model.CreateTeamRequest) (*model.Team, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	team, err := g.teams.Create(req)
	if err != nil {
		return nil, err
	}
	if err := translateRegister(g.teams.Register(team)); err != nil {
		return nil, err
	}
	slog.Info("team created", slog.String("team_id", team.ID.String()), slog.String("name", team.Name))
	return team.Clone(), nil
}

// GetTeam retrieves a team by ID.
func (g *Registry) GetTeam(id model.TeamID) (*model.Team, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	team := g.teams.Get(id)
	if team == nil {
		return nil, ErrTeamNotFound
	}
	return team.Clone(), nil
}

// ListTeams returns all teams in registration order.
func (g *Registry) ListTeams() ([]*model.Team, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	teams := g.teams.ListAll()
	out := make([]*model.Team, len(teams))
	for i, tm := range teams {
		out[i] = tm.Clone()
	}
	return out, nil
}

// UpdateTeam applies a partial update to a team. Every provided field is
// validated before any is applied, so a rejected request changes nothing.
func (g *Registry) UpdateTeam(id model.TeamID, req model.UpdateTeamRequest) (*model.Team, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if g.teams.Get(id) == nil {
		return nil, ErrTeamNotFound
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	if req.Name != nil {
		if err := g.teams.SetName(id, *req.Name); err != nil {
			return nil, err
		}
	}
	return g.teams.Get(id).Clone(), nil
}

// RemoveTeam deletes a team from the registry.
func (g *Registry) RemoveTeam(id model.TeamID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}
	if g.teams.Get(id) == nil {
		return ErrTeamNotFound
	}
	g.teams.Destroy(id)
	slog.Info("team removed", slog.String("team_id", id.String()))
	return nil
}

// AddTeamMember adds a registered user to a team's member set and returns
// the updated team.
func (g *Registry) AddTeamMember(teamID model.TeamID, userID model.UserID) (*model.Team, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if g.teams.Get(teamID) == nil {
		return nil, ErrTeamNotFound
	}
	if g.users.Get(userID) == nil {
		return nil, ErrUserNotFound
	}
	if err := g.teams.AddMember(teamID, userID); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrMemberExists
		}
		return nil, err
	}
	return g.teams.Get(teamID).Clone(), nil
}

// RemoveTeamMember removes a user from a team's member set.
func (g *Registry) RemoveTeamMember(teamID model.TeamID, userID model.UserID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}
	if g.teams.Get(teamID) == nil {
		return ErrTeamNotFound
	}
	if err := g.teams.RemoveMember(teamID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

// ============================================================================
// Tasks
// ============================================================================

// CreateTask is the one multi-entity operation. The team and owner must be
// registered before any state changes; tag attachment is best-effort, so a
// tag that is unregistered or already attached is skipped with a warning
// instead of failing the creation.
func (g *Registry) CreateTask(req model.CreateTaskRequest) (*model.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	teamID := model.TeamID(req.TeamID)
	if g.teams.Get(teamID) == nil {
		return nil, ErrTeamNotRegistered
	}
	if g.users.Get(model.UserID(req.OwnerID)) == nil {
		return nil, ErrOwnerNotRegistered
	}

	task, err := g.tasks.Create(teamID, req)
	if err != nil {
		return nil, err
	}
	if err := translateRegister(g.tasks.Register(task)); err != nil {
		return nil, err
	}

	for _, raw := range req.TagIDs {
		tagID := model.TagID(raw)
		if g.tags.Get(tagID) == nil {
			slog.Warn("skipping unregistered tag",
				slog.String("task_id", task.ID.String()),
				slog.String("tag_id", tagID.String()),
			)
			continue
		}
		if err := g.tasks.AddTag(task.ID, tagID); err != nil {
			slog.Warn("skipping tag attachment",
				slog.String("task_id", task.ID.String()),
				slog.String("tag_id", tagID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("team_id", teamID.String()),
		slog.String("title", task.Title),
	)
	return task.Clone(), nil
}

// GetTask retrieves a task by ID.
func (g *Registry) GetTask(id model.TaskID) (*model.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	task := g.tasks.Get(id)
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task.Clone(), nil
}

// ListTasks returns all tasks in registration order.
func (g *Registry) ListTasks() ([]*model.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	return cloneTasks(g.tasks.ListAll()), nil
}

// ListTasksForTeam returns the registered team's tasks in creation order.
func (g *Registry) ListTasksForTeam(teamID model.TeamID) ([]*model.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if g.teams.Get(teamID) == nil {
		return nil, ErrTeamNotFound
	}
	return cloneTasks(g.tasks.ListByTeam(teamID)), nil
}

// UpdateTask applies a partial update to a task. Every provided field is
// validated before any is applied, so a rejected request changes nothing.
func (g *Registry) UpdateTask(id model.TaskID, req model.UpdateTaskRequest) (*model.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if g.tasks.Get(id) == nil {
		return nil, ErrTaskNotFound
	}
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	if req.Title != nil {
		if err := g.tasks.SetTitle(id, *req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if err := g.tasks.SetDescription(id, *req.Description); err != nil {
			return nil, err
		}
	}
	if req.Deadline != nil {
		deadline, _ := model.ParseTime(strings.TrimSpace(*req.Deadline))
		if err := g.tasks.SetDeadline(id, deadline); err != nil {
			return nil, err
		}
	}
	return g.tasks.Get(id).Clone(), nil
}

// SetTaskStatus changes a task's status.
func (g *Registry) SetTaskStatus(id model.TaskID, status model.TaskStatus) (*model.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if g.tasks.Get(id) == nil {
		return nil, ErrTaskNotFound
	}
	if err := g.tasks.SetStatus(id, status); err != nil {
		return nil, err
	}
	return g.tasks.Get(id).Clone(), nil
}

// RemoveTask deletes a task from the registry.
func (g *Registry) RemoveTask(id model.TaskID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}
	if g.tasks.Get(id) == nil {
		return ErrTaskNotFound
	}
	g.tasks.Destroy(id)
	slog.Info("task removed", slog.String("task_id", id.String()))
	return nil
}

// AddTaskTag attaches a registered tag to a task and returns the updated
// task.
func (g *Registry) AddTaskTag(taskID model.TaskID, tagID model.TagID) (*model.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if g.tasks.Get(taskID) == nil {
		return nil, ErrTaskNotFound
	}
	if g.tags.Get(tagID) == nil {
		return nil, ErrTagNotFound
	}
	if err := g.tasks.AddTag(taskID, tagID); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrTagAlreadyAttached
		}
		return nil, err
	}
	return g.tasks.Get(taskID).Clone(), nil
}

// RemoveTaskTag detaches a tag from a task.
func (g *Registry) RemoveTaskTag(taskID model.TaskID, tagID model.TagID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return ErrNotInitialized
	}
	if g.tasks.Get(taskID) == nil {
		return ErrTaskNotFound
	}
	if err := g.tasks.RemoveTag(taskID, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTagNotAttached
		}
		return err
	}
	return nil
}

// TaskTagIDs returns at most limit of the task's tag IDs plus the count
// actually returned.
func (g *Registry) TaskTagIDs(taskID model.TaskID, limit int) ([]model.TagID, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, 0, ErrNotInitialized
	}
	ids, n, err := g.tasks.ListTagIDs(taskID, limit)
	if err != nil {
		return nil, 0, ErrTaskNotFound
	}
	return ids, n, nil
}

func cloneTasks(tasks []*model.Task) []*model.Task {
	out := make([]*model.Task, len(tasks))
	for i, tk := range tasks {
		out[i] = tk.Clone()
	}
	return out
}

// translateRegister maps repository registration failures onto service
// sentinels.
func translateRegister(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrInvalidEntity):
		return ErrNilEntity
	case errors.Is(err, store.ErrDuplicate):
		return ErrDuplicateID
	default:
		return err
	}
}
