package store

import (
	"context"
	"sort"
	"sync"

	"github.com/carbondesk/carbondesk/internal/ghg"
)

// Memory is an in-process Store for local CLI runs and tests.
type Memory struct {
	mu     sync.RWMutex
	calcs  map[string]ghg.EmissionCalculation
	trails map[string][]ghg.AuditEntry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		calcs:  make(map[string]ghg.EmissionCalculation),
		trails: make(map[string][]ghg.AuditEntry),
	}
}

// Save records calc and its trail, replacing any previous entry with the
// same ID.
func (m *Memory) Save(_ context.Context, calc ghg.EmissionCalculation, trail []ghg.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calcs[calc.ID] = calc
	m.trails[calc.ID] = append([]ghg.AuditEntry(nil), trail...)
	return nil
}

// List returns matching calculations, newest first.
func (m *Memory) List(_ context.Context, filters Filters) ([]ghg.EmissionCalculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []ghg.EmissionCalculation
	for _, calc := range m.calcs {
		if filters.CompanyID != "" && calc.CompanyID != filters.CompanyID {
			continue
		}
		if filters.Scope != "" && calc.Scope != filters.Scope {
			continue
		}
		if filters.ReportingYear != 0 && calc.ReportingYear != filters.ReportingYear {
			continue
		}
		if filters.Status != "" && calc.Status != filters.Status {
			continue
		}
		out = append(out, calc)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns one calculation by ID.
func (m *Memory) Get(_ context.Context, id string) (ghg.EmissionCalculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calc, ok := m.calcs[id]
	if !ok {
		return ghg.EmissionCalculation{}, ErrNotFound
	}
	return calc, nil
}

// SetStatus updates a calculation's lifecycle status.
func (m *Memory) SetStatus(_ context.Context, id string, status ghg.CalculationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	calc, ok := m.calcs[id]
	if !ok {
		return ErrNotFound
	}
	calc.Status = status
	m.calcs[id] = calc
	return nil
}

// AuditTrail returns the ordered audit entries for a calculation.
func (m *Memory) AuditTrail(_ context.Context, id string) ([]ghg.AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trail, ok := m.trails[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]ghg.AuditEntry(nil), trail...), nil
}
