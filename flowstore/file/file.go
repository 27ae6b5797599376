// Package file implements flowstore.Store as one JSON file per record
// in a directory, grounded on the teacher's store/file checkpoint
// backend (directory-of-files layout, create-if-missing constructor).
package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flowcore/flow"
	"flowcore/flowstore"
)

// Store persists each FlowRecord as "<id>.json" inside Dir.
type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating dir (and any missing
// parents) if it doesn't already exist.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

var _ flowstore.Store = (*Store)(nil)

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *Store) Save(ctx context.Context, id string, rec *flow.FlowRecord) error {
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(id), raw, 0o644)
}

func (s *Store) Load(ctx context.Context, id string) (*flow.FlowRecord, error) {
	raw, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, flowstore.ErrNotFound
		}
		return nil, err
	}
	var rec flow.FlowRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
