package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealConfig holds SurrealDB connection settings
type SurrealConfig struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

// SurrealStore implements Store on top of SurrealDB. Each kind maps to a
// table of {key, record} rows; the record field carries the JSON document
// verbatim so the repositories keep full ownership of the encoding.
type SurrealStore struct {
	db     *surrealdb.DB
	config SurrealConfig
}

// NewSurrealStore creates a new SurrealDB-backed store
func NewSurrealStore(cfg SurrealConfig) *SurrealStore {
	return &SurrealStore{config: cfg}
}

// Connect establishes a connection to SurrealDB
func (s *SurrealStore) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	_, err = db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	})
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SurrealStore) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ping checks the database connection
func (s *SurrealStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// surrealRow is one persisted record row
type surrealRow struct {
	Key    string `json:"key"`
	Record string `json:"record"`
}

// Load reads every row of the kind's table. An empty or absent table is an
// empty collection.
func (s *SurrealStore) Load(ctx context.Context, kind Kind) (Records, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	query := `SELECT key, record FROM type::table($tb)`
	vars := map[string]interface{}{"tb": string(kind)}

	results, err := surrealdb.Query[[]surrealRow](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", ErrConnection, kind, err)
	}

	records := Records{}
	if results == nil {
		return records, nil
	}
	for _, r := range *results {
		if r.Status != "OK" {
			return nil, fmt.Errorf("%w: load %s: query status %s", ErrConnection, kind, r.Status)
		}
		for _, row := range r.Result {
			if !json.Valid([]byte(row.Record)) {
				return nil, fmt.Errorf("%w: %s key %s", ErrCorrupt, kind, row.Key)
			}
			records[row.Key] = json.RawMessage(row.Record)
		}
	}
	return records, nil
}

// Save replaces the kind's table with the given collection.
func (s *SurrealStore) Save(ctx context.Context, kind Kind, records Records) error {
	if s.db == nil {
		return ErrConnection
	}

	query := `DELETE type::table($tb)`
	vars := map[string]interface{}{"tb": string(kind)}
	if _, err := surrealdb.Query[interface{}](ctx, s.db, query, vars); err != nil {
		return fmt.Errorf("%w: clear %s: %v", ErrConnection, kind, err)
	}

	create := `CREATE type::table($tb) CONTENT { key: $key, record: $record }`
	for key, record := range records {
		vars := map[string]interface{}{
			"tb":     string(kind),
			"key":    key,
			"record": string(record),
		}
		if _, err := surrealdb.Query[interface{}](ctx, s.db, create, vars); err != nil {
			return fmt.Errorf("%w: save %s key %s: %v", ErrConnection, kind, key, err)
		}
	}
	return nil
}
