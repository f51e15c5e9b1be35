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

// TagRepository holds every registered tag in memory
type TagRepository struct {
	store store.Store
	tags  map[model.TagID]*model.Tag
	order []model.TagID
}

// NewTagRepository creates a new tag repository
func NewTagRepository(st store.Store) *TagRepository {
	return &TagRepository{
		store: st,
		tags:  make(map[model.TagID]*model.Tag),
	}
}

// Create validates the request and builds a tag with a fresh ID. The tag is
// not visible to other operations until Register is called.
func (r *TagRepository) Create(req model.CreateTagRequest) (*model.Tag, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}
	return req.NewTag(), nil
}

// Register inserts an already-built tag, rejecting duplicate IDs.
func (r *TagRepository) Register(tag *model.Tag) error {
	if tag == nil || tag.ID == 0 {
		return ErrInvalidEntity
	}
	if _, ok := r.tags[tag.ID]; ok {
		return fmt.Errorf("%w: tag %s", store.ErrDuplicate, tag.ID)
	}
	r.tags[tag.ID] = tag
	r.order = append(r.order, tag.ID)
	return nil
}

// Get retrieves a tag by ID, or nil if absent.
func (r *TagRepository) Get(id model.TagID) *model.Tag {
	return r.tags[id]
}

// Destroy removes a tag by ID. Removing an absent ID is a logged no-op.
func (r *TagRepository) Destroy(id model.TagID) {
	if _, ok := r.tags[id]; !ok {
		slog.Warn("destroy of unregistered tag", slog.String("tag_id", id.String()))
		return
	}
	delete(r.tags, id)
	r.order = removeID(r.order, id)
}

// ListAll returns an insertion-order snapshot of all tags.
func (r *TagRepository) ListAll() []*model.Tag {
	out := make([]*model.Tag, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tags[id])
	}
	return out
}

// Count returns the number of registered tags.
func (r *TagRepository) Count() int { return len(r.tags) }

// SetName changes a tag's name after validation.
func (r *TagRepository) SetName(id model.TagID, name string) error {
	tag, ok := r.tags[id]
	if !ok {
		return fmt.Errorf("%w: tag %s", store.ErrNotFound, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: "name is required"}})
	}
	if len(name) > model.MaxNameLength {
		return model.NewValidationError([]model.FieldError{{Field: "name", Message: "name exceeds maximum length"}})
	}
	tag.Name = name
	tag.Touch()
	return nil
}

// SetColor changes a tag's color. The stored value is uppercased.
func (r *TagRepository) SetColor(id model.TagID, color string) error {
	tag, ok := r.tags[id]
	if !ok {
		return fmt.Errorf("%w: tag %s", store.ErrNotFound, id)
	}
	normalized, ok := model.NormalizeColor(color)
	if !ok {
		return model.NewValidationError([]model.FieldError{{Field: "color", Message: "color must be '#' followed by six hex digits"}})
	}
	tag.Color = normalized
	tag.Touch()
	return nil
}

// Load replaces in-memory state with the store's collection.
func (r *TagRepository) Load(ctx context.Context) error {
	records, err := r.store.Load(ctx, store.KindTags)
	if err != nil {
		return err
	}

	r.Clear()
	for key, raw := range records {
		var rec model.TagRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			slog.Warn("skipping undecodable tag record", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		tag, err := model.TagFromRecord(rec)
		if err != nil {
			slog.Warn("skipping invalid tag record", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		r.tags[tag.ID] = tag
		r.order = append(r.order, tag.ID)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return nil
}

// Save writes the full collection to the store.
func (r *TagRepository) Save(ctx context.Context) error {
	records := store.Records{}
	for id, tag := range r.tags {
		data, err := json.Marshal(tag.Record())
		if err != nil {
			return fmt.Errorf("encode tag %s: %w", id, err)
		}
		records[id.String()] = data
	}
	return r.store.Save(ctx, store.KindTags, records)
}

// Clear drops all in-memory state.
func (r *TagRepository) Clear() {
	r.tags = make(map[model.TagID]*model.Tag)
	r.order = nil
}
