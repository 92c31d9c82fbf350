// Package store provides persistence for knowledge graph snapshots.
//
// This package defines an interface for snapshot storage with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// # Architecture
//
// Snapshots are stored as named records with creation timestamps. The
// Store interface supports:
//   - Put/Get/Delete by ID
//   - Listing record metadata without loading snapshot bodies
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Server
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "atlas",
//	})
//
// Manage snapshots:
//
//	rec, err := store.NewRecord("brain-dump", snap)
//	if err != nil {
//	    return err
//	}
//	st.Put(ctx, rec)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/conceptatlas/atlas/pkg/kgraph"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a snapshot record does not exist.
	ErrNotFound = errors.New("not found")
)

// Record is a stored snapshot with identifying metadata.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name" bson:"name"`
	NodeCount int              `json:"node_count" bson:"node_count"`
	EdgeCount int              `json:"edge_count" bson:"edge_count"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	Snapshot  *kgraph.Snapshot `json:"snapshot" bson:"snapshot"`
}

// Info is record metadata without the snapshot body, for listings.
type Info struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	NodeCount int       `json:"node_count" bson:"node_count"`
	EdgeCount int       `json:"edge_count" bson:"edge_count"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put stores a snapshot record, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a snapshot record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a snapshot record. Deleting a missing record is not
	// an error.
	Delete(ctx context.Context, id string) error

	// List returns metadata for all stored snapshots, newest first.
	List(ctx context.Context) ([]Info, error)

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}

// NewRecord builds a record for a snapshot with a fresh ID.
func NewRecord(name string, snap *kgraph.Snapshot) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		NodeCount: len(snap.Nodes),
		EdgeCount: len(snap.Edges),
		CreatedAt: time.Now().UTC(),
		Snapshot:  snap,
	}
}

// info extracts listing metadata from a record.
func (r *Record) info() Info {
	return Info{
		ID:        r.ID,
		Name:      r.Name,
		NodeCount: r.NodeCount,
		EdgeCount: r.EdgeCount,
		CreatedAt: r.CreatedAt,
	}
}
