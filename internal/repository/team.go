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

// TeamRepository holds every registered team in memory
type TeamRepository struct {
	store store.Store
	teams map[model.TeamID]*model.Team
	order []model.TeamID
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(st store.Store) *TeamRepository {
	return &TeamRepository{
		store: st,
		teams: make(map[model.TeamID]*model.Team),
	}
}

// Create validates the request and builds a team with a fresh ID. The team
// is not visible to other operations until Register is called.
func (r *TeamRepository) Create(req model.CreateTeamRequest) (*model.Team, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	return req.NewTeam(), nil
}

// Register inserts an already-built team, rejecting duplicate IDs.
func (r *TeamRepository) Register(team *model.Team) error {
	if team == nil || team.ID == 0 {
		return ErrInvalidEntity
	}
	if _, ok := r.teams[team.ID]; ok {
		return fmt.Errorf("%w: team %s", store.ErrDuplicate, team.ID)
	}
	if team.Members == nil {
		team.Members = []model.UserID{}
	}
	r.teams[team.ID] = team
	r.order = append(r.order, team.ID)
	return nil
}

// Get retrieves a team by ID, or nil if absent.
func (r *TeamRepository) Get(id model.TeamID) *model.Team {
	return r.teams[id]
}

// Destroy removes a team by ID. Removing an absent ID is a logged no-op.
func (r *TeamRepository) Destroy(id model.TeamID) {
	if _, ok := r.teams[id]; !ok {
		slog.Warn("destroy of unregistered team", slog.String("team_id", id.String()))
		return
	}
	delete(r.teams, id)
	r.order = removeID(r.order, id)
}

// ListAll returns an insertion-order snapshot of all teams.
func (r *TeamRepository) ListAll() []*model.Team {
	out := make([]*model.Team, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.teams[id])
	}
	return out
}

// Count returns the number of registered teams.
func (r *TeamRepository) Count() int { return len(r.teams) }

// SetName changes a team's name after validation.
func (r *TeamRepository) SetName(id model.TeamID, name string) error {
	team, ok := r.teams[id]
	if !ok {
		return fmt.Errorf("%w: team %s", store.ErrNotFound, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: "name is required"}})
	}
	if len(name) > model.MaxNameLength {
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: "name exceeds maximum length"}})
	}
	team.Name = name
	team.Touch()
	return nil
}

// AddMember appends a user ID to the team's member set. Duplicates are
// rejected; the set keeps insertion order.
func (r *TeamRepository) AddMember(id model.TeamID, userID model.UserID) error {
	team, ok := r.teams[id]
	if !ok {
		return fmt.Errorf("%w: team %s", store.ErrNotFound, id)
	}
	if team.HasMember(userID) {
		return fmt.Errorf("%w: member %s", store.ErrDuplicate, userID)
	}
	team.Members = append(team.Members, userID)
	team.Touch()
	return nil
}

// RemoveMember deletes a user ID from the team's member set.
func (r *TeamRepository) RemoveMember(id model.TeamID, userID model.UserID) error {
	team, ok := r.teams[id]
	if !ok {
		return fmt.Errorf("%w: team %s", store.ErrNotFound, id)
	}
	if !team.HasMember(userID) {
		return fmt.Errorf("%w: member %s", store.ErrNotFound, userID)
	}
	team.Members = removeID(team.Members, userID)
	team.Touch()
	return nil
}

// MemberCount returns the number of members, or 0 for an absent team.
func (r *TeamRepository) MemberCount(id model.TeamID) int {
	team, ok := r.teams[id]
	if !ok {
		return 0
	}
	return len(team.Members)
}

// Load replaces in-memory state with the store's collection.
func (r *TeamRepository) Load(ctx context.Context) error {
	records, err := r.store.Load(ctx, store.KindTeams)
	if err != nil {
		return err
	}

	r.Clear()
	for key, raw := range records {
		var rec model.TeamRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			slog.Warn("skipping undecodable team record", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		team, err := model.TeamFromRecord(rec)
		if err != nil {
			slog.Warn("skipping invalid team record", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		r.teams[team.ID] = team
		r.order = append(r.order, team.ID)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return nil
}

// Save writes the full collection to the store.
func (r *TeamRepository) Save(ctx context.Context) error {
	records := store.Records{}
	for id, team := range r.teams {
		data, err := json.Marshal(team.Record())
		if err != nil {
			return fmt.Errorf("encode team %s: %w", id, err)
		}
		records[id.String()] = data
	}
	return r.store.Save(ctx, store.KindTeams, records)
}

// Clear drops all in-memory state.
func (r *TeamRepository) Clear() {
	r.teams = make(map[model.TeamID]*model.Team)
	r.order = nil
}
