package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileStore implements Store on top of one JSON file per kind.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Connect ensures the data directory exists.
func (s *FileStore) Connect(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }

// Ping checks the data directory is reachable.
func (s *FileStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrConnection, s.dir)
	}
	return nil
}

func (s *FileStore) path(kind Kind) string {
	return filepath.Join(s.dir, string(kind)+".json")
}

// Load reads one kind's collection. A missing file is an empty collection.
func (s *FileStore) Load(ctx context.Context, kind Kind) (Records, error) {
	data, err := os.ReadFile(s.path(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return Records{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if len(data) == 0 {
		return Records{}, nil
	}

	var records Records
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, kind, err)
	}
	if records == nil {
		records = Records{}
	}
	return records, nil
}

// Save replaces one kind's collection. The write goes through a temp file
// and rename so a crash mid-save cannot truncate existing data.
func (s *FileStore) Save(ctx context.Context, kind Kind, records Records) error {
	if records == nil {
		records = Records{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, kind, err)
	}

	tmp, err := os.CreateTemp(s.dir, string(kind)+"-*.json.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := os.Rename(tmpName, s.path(kind)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Backup copies every kind's data file into backupDir. Missing files are
// skipped. Backup is an out-of-band tooling concern and never touches
// in-memory state.
func (s *FileStore) Backup(backupDir string) error {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	for _, kind := range Kinds {
		src := s.path(kind)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		dst := filepath.Join(backupDir, string(kind)+".json")
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("%w: backup %s: %v", ErrConnection, kind, err)
		}
	}
	return nil
}

// Restore copies data files back from backupDir, overwriting current files.
func (s *FileStore) Restore(backupDir string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	for _, kind := range Kinds {
		src := filepath.Join(backupDir, string(kind)+".json")
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyFile(src, s.path(kind)); err != nil {
			return fmt.Errorf("%w: restore %s: %v", ErrConnection, kind, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
