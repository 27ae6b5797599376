// Package flowstore persists and restores the FlowRecord snapshots
// flow.Flow.Data()/Load() produce and consume. It repurposes the
// teacher's checkpoint-store family (store.CheckpointStore and its
// memory/file/sqlite/postgres/redis backends) for a different payload:
// a whole project file instead of one node's execution checkpoint.
package flowstore

import (
	"context"
	"errors"

	"flowcore/flow"
)

// ErrNotFound is returned by Load when id names no saved record.
var ErrNotFound = errors.New("flowstore: record not found")

// Store persists flow.FlowRecord snapshots under a caller-chosen id.
// Every backend in this package satisfies it.
type Store interface {
	Save(ctx context.Context, id string, rec *flow.FlowRecord) error
	Load(ctx context.Context, id string) (*flow.FlowRecord, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}
