// Package category groups task references under scheduler-defined labels so
// admission outcomes can be aggregated per resource class.
//
// A Category indexes task IDs; it never holds or mutates task state, and
// tasks carry no pointer back to their category.
package category

import (
	"sync"

	"github.com/google/uuid"
)

// Stats aggregates admission outcomes for the members of a category.
type Stats struct {
	Admitted uint64 `json:"admitted"`
	Denied   uint64 `json:"denied"`
}

// Category is a labeled, ordered list of task references.
type Category struct {
	label string

	mu      sync.RWMutex
	members []uuid.UUID
	stats   Stats
}

func newCategory(label string) *Category {
	return &Category{label: label}
}

func (c *Category) Label() string {
	return c.label
}

// Add appends a task reference. Insertion order is preserved; adding the same
// reference twice records it twice.
func (c *Category) Add(ref uuid.UUID) {
	c.mu.Lock()
	c.members = append(c.members, ref)
	c.mu.Unlock()
}

// Members returns the task references in insertion order. The returned slice
// is a copy and may be modified by the caller.
func (c *Category) Members() []uuid.UUID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]uuid.UUID, len(c.members))
	copy(out, c.members)
	return out
}

func (c *Category) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.members)
}

func (c *Category) Contains(ref uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.members {
		if m == ref {
			return true
		}
	}
	return false
}

// RemoveMember drops the first occurrence of ref, keeping the order of the
// remaining members.
func (c *Category) RemoveMember(ref uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, m := range c.members {
		if m == ref {
			c.members = append(c.members[:i:i], c.members[i+1:]...)
			return true
		}
	}
	return false
}

// RecordAdmission counts one admission decision against the category.
func (c *Category) RecordAdmission(admitted bool) {
	c.mu.Lock()
	if admitted {
		c.stats.Admitted++
	} else {
		c.stats.Denied++
	}
	c.mu.Unlock()
}

func (c *Category) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
