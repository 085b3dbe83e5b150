package db

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tool-directory/pkg/models"
)

// MemoryStore keeps tools in process memory. It mirrors the PostgreSQL
// store's semantics and is used for local runs without a database and in
// tests.
type MemoryStore struct {
	mu    sync.RWMutex
	tools []models.Tool
	names map[string]struct{}
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		names: make(map[string]struct{}),
		now:   time.Now,
	}
}

// CreateTool stores a tool, rejecting case-insensitive name duplicates.
func (m *MemoryStore) CreateTool(_ context.Context, tool models.ToolCreate) (*models.Tool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(tool.Name)
	if _, dup := m.names[key]; dup {
		return nil, ErrDuplicate
	}

	created := models.Tool{
		ID:          uuid.New(),
		Name:        tool.Name,
		URL:         tool.URL,
		Description: tool.Description,
		Tags:        append([]string(nil), tool.Tags...),
		Date:        tool.Date,
		CreatedAt:   m.now(),
	}
	m.names[key] = struct{}{}
	m.tools = append(m.tools, created)
	return &created, nil
}

// ListTools returns every tool, newest first.
func (m *MemoryStore) ListTools(context.Context) ([]models.Tool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Tool, 0, len(m.tools))
	for i := len(m.tools) - 1; i >= 0; i-- {
		out = append(out, m.tools[i])
	}
	return out, nil
}
