package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/taskreg/api/internal/model"
	"github.com/taskreg/api/internal/store"
)

// UserRepository holds every registered user in memory
type UserRepository struct {
	store store.Store
	users map[model.UserID]*model.User
	order []model.UserID
}

// NewUserRepository creates a new user repository
func NewUserRepository(st store.Store) *UserRepository {
	return &UserRepository{
		store: st,
		users: make(map[model.UserID]*model.User),
	}
}

// Create validates the request and builds a user with a fresh ID. The user
// is not visible to other operations until Register is called.
func (r *UserRepository) Create(req model.CreateUserRequest) (*model.User, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	return req.NewUser(), nil
}

// Register inserts an already-built user, rejecting duplicate IDs.
func (r *UserRepository) Register(user *model.User) error {
	if user == nil || user.ID == 0 {
		return ErrInvalidEntity
	}
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("%w: user %s", store.ErrDuplicate, user.ID)
	}
	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
	return nil
}

// Get retrieves a user by ID, or nil if absent.
func (r *UserRepository) Get(id model.UserID) *model.User {
	return r.users[id]
}

// Destroy removes a user by ID. Removing an absent ID is a logged no-op.
func (r *UserRepository) Destroy(id model.UserID) {
	if _, ok := r.users[id]; !ok {
		slog.Warn("destroy of unregistered user", slog.String("user_id", id.String()))
		return
	}
	delete(r.users, id)
	r.order = removeID(r.order, id)
}

// ListAll returns an insertion-order snapshot of all users.
func (r *UserRepository) ListAll() []*model.User {
	out := make([]*model.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out
}

// Count returns the number of registered users.
func (r *UserRepository) Count() int { return len(r.users) }

// SetName changes a user's name after validation.
func (r *UserRepository) SetName(id model.UserID, name string) error {
	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("%w: user %s", store.ErrNotFound, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: "name is required"}})
	}
	if len(name) > model.MaxNameLength {
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: "name exceeds maximum length"}})
	}
	user.Name = name
	user.Touch()
	return nil
}

// SetEmail changes a user's email after validation. The stored value is
// trimmed and lowercased.
func (r *UserRepository) SetEmail(id model.UserID, email string) error {
	user, ok := r.users[id]
	if !ok {
		return fmt.Errorf("%w: user %s", store.ErrNotFound, id)
	}
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: "email is required"}})
	case len(email) > model.MaxEmailLength:
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: "email exceeds maximum length"}})
	case !model.ValidEmail(email):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: "email must contain '@' and '.'"}})
	}
	user.Email = strings.ToLower(email)
	user.Touch()
	return nil
}

// Load replaces in-memory state with the store's collection. Records that
// fail to decode are skipped with a warning rather than aborting the load.
func (r *UserRepository) Load(ctx context.Context) error {
	records, err := r.store.Load(ctx, store.KindUsers)
	if err != nil {
		return err
	}

	r.Clear()
	for key, raw := range records {
		var rec model.UserRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			slog.Warn("skipping undecodable user record", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		user, err := model.UserFromRecord(rec)
		if err != nil {
			slog.Warn("skipping invalid user record", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		r.users[user.ID] = user
		r.order = append(r.order, user.ID)
	}
	// IDs are clock-derived, so ID order is creation order.
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return nil
}

// Save writes the full collection to the store.
func (r *UserRepository) Save(ctx context.Context) error {
	records := store.Records{}
	for id, user := range r.users {
		data, err := json.Marshal(user.Record())
		if err != nil {
			return fmt.Errorf("encode user %s: %w", id, err)
		}
		records[id.String()] = data
	}
	return r.store.Save(ctx, store.KindUsers, records)
}

// Clear drops all in-memory state.
func (r *UserRepository) Clear() {
	r.users = make(map[model.UserID]*model.User)
	r.order = nil
}
