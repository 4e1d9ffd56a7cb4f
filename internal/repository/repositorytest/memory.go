// Package repositorytest provides an in-memory stand-in for the scripts
// table, for service and handler tests that do not need SQL.
package repositorytest

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/spf13/cast"

	"github.com/deppfellow/scripts/internal/model"
	"github.com/deppfellow/scripts/internal/repository"
)

// MemoryStore mimics ScriptRepository over a map. Ids are assigned from 1.
//
// Err, when set, is returned by every call. InsertID, when set, replaces the
// generated id returned by InsertGetID without storing anything.
// UpdateAffected, when set, replaces the affected row count of UpdateWhereID
// without applying the update.
type MemoryStore struct {
	mu     sync.Mutex
	rows   map[int64]model.Script
	nextID int64

	Err            error
	InsertID       *int64
	UpdateAffected *int64
	DeleteNoop     bool
}

// NewMemoryStore returns a MemoryStore holding seed.
func NewMemoryStore(seed ...model.Script) *MemoryStore {
	m := &MemoryStore{rows: make(map[int64]model.Script)}
	for _, s := range seed {
		m.rows[s.ID] = s
		m.nextID = max(m.nextID, s.ID)
	}
	return m
}

func (m *MemoryStore) Find(_ context.Context, id int64) (*model.Script, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) All(context.Context) ([]model.Script, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	scripts := []model.Script{}
	for _, id := range slices.Sorted(maps.Keys(m.rows)) {
		scripts = append(scripts, m.rows[id])
	}
	return scripts, nil
}

func (m *MemoryStore) InsertGetID(_ context.Context, fields map[string]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	if m.InsertID != nil {
		return *m.InsertID, nil
	}

	m.nextID++
	s := model.Script{ID: m.nextID}
	apply(&s, fields)
	m.rows[s.ID] = s
	return s.ID, nil
}

func (m *MemoryStore) UpdateWhereID(_ context.Context, id int64, fields map[string]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	if m.UpdateAffected != nil {
		return *m.UpdateAffected, nil
	}

	s, ok := m.rows[id]
	if !ok {
		return 0, nil
	}
	apply(&s, fields)
	m.rows[id] = s
	return 1, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return false, m.Err
	}
	if m.DeleteNoop {
		return false, nil
	}
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

// Len reports the number of stored rows.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func apply(s *model.Script, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "title":
			s.Title = cast.ToString(v)
		case "position":
			s.Position = cast.ToString(v)
		case "status":
			s.Status = cast.ToString(v)
		}
	}
}
