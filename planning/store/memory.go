// Package store provides FactStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	facts map[planning.CellKey]float64
}

func NewMemory() *Memory {
	return &Memory{facts: make(map[planning.CellKey]float64)}
}

// Upsert inserts or replaces the fact for its key. Last write wins.
// Non-finite unit counts are rejected with ErrInvalidUnits.
func (m *Memory) Upsert(_ context.Context, fact planning.SalesFact) error {
	if err := fact.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.facts[fact.Key()] = fact.Units
	return nil
}

// Get returns the unit count for a cell; absence is zero.
func (m *Memory) Get(_ context.Context, storeCode, skuCode string, week planning.WeekID) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.facts[planning.CellKey{StoreCode: storeCode, SkuCode: skuCode, Week: week}], nil
}

// All returns a copy of every fact. Order is not significant.
func (m *Memory) All(_ context.Context) ([]planning.SalesFact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	facts := make([]planning.SalesFact, 0, len(m.facts))
	for k, units := range m.facts {
		facts = append(facts, planning.SalesFact{
			StoreCode: k.StoreCode,
			SkuCode:   k.SkuCode,
			Week:      k.Week,
			Units:     units,
		})
	}
	return facts, nil
}

// Len reports how many facts are stored. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.facts)
}
