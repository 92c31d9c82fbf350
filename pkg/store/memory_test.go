package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/conceptatlas/atlas/pkg/kgraph"
)

func testSnap() *kgraph.Snapshot {
	return &kgraph.Snapshot{
		Nodes: []kgraph.Node{{ID: "a"}, {ID: "b"}},
		Edges: []kgraph.Edge{{ID: "e1", Source: "a", Target: "b"}},
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := NewRecord("demo", testSnap())
	if rec.ID == "" {
		t.Fatal("NewRecord produced an empty ID")
	}
	if rec.NodeCount != 2 || rec.EdgeCount != 1 {
		t.Errorf("record counts = %d nodes, %d edges", rec.NodeCount, rec.EdgeCount)
	}

	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "demo" || got.Snapshot == nil {
		t.Errorf("Get = %+v", got)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := NewRecord("demo", testSnap())
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Error("deleted record still retrievable")
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Errorf("deleting a missing record should be a no-op, got %v", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, age := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		rec := NewRecord("snap", testSnap())
		rec.ID = string(rune('a' + i))
		rec.CreatedAt = base.Add(-age)
		if err := s.Put(ctx, rec); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("List returned %d records, want 3", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i].CreatedAt.After(infos[i-1].CreatedAt) {
			t.Errorf("listing not newest-first: %v before %v", infos[i-1].CreatedAt, infos[i].CreatedAt)
		}
	}
	if infos[0].ID != "b" || infos[1].ID != "c" || infos[2].ID != "a" {
		t.Errorf("listing order = %v %v %v", infos[0].ID, infos[1].ID, infos[2].ID)
	}
}

func TestMemoryStoreListOmitsBodies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Put(ctx, NewRecord("demo", testSnap())); err != nil {
		t.Fatalf("Put: %v", err)
	}

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if infos[0].NodeCount != 2 || infos[0].EdgeCount != 1 {
		t.Errorf("listing counts = %+v", infos[0])
	}
}
