package category

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("category not found")

// Summary is a point-in-time view of one category.
type Summary struct {
	Label   string      `json:"label"`
	Members []uuid.UUID `json:"members"`
	Stats   Stats       `json:"stats"`
}

// Registry owns the categories. Labels are unique: GetOrCreate on an existing
// label returns the existing category.
type Registry struct {
	mu         sync.RWMutex
	categories map[string]*Category
	order      []string
}

func NewRegistry() *Registry {
	return &Registry{categories: make(map[string]*Category)}
}

// GetOrCreate returns the category for label, creating it on first use.
// Concurrent callers racing on the same label all receive the same *Category.
func (r *Registry) GetOrCreate(label string) *Category {
	r.mu.RLock()
	if c, ok := r.categories[label]; ok {
		r.mu.RUnlock()
		return c
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.categories[label]; ok {
		return c
	}

	c := newCategory(label)
	r.categories[label] = c
	r.order = append(r.order, label)
	return c
}

func (r *Registry) Get(label string) (*Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[label]
	return c, ok
}

// Add is GetOrCreate followed by Category.Add.
func (r *Registry) Add(label string, ref uuid.UUID) *Category {
	c := r.GetOrCreate(label)
	c.Add(ref)
	return c
}

// Members returns the references of the named category.
func (r *Registry) Members(label string) ([]uuid.UUID, error) {
	c, ok := r.Get(label)
	if !ok {
		return nil, ErrNotFound
	}
	return c.Members(), nil
}

// Labels returns the category labels in creation order.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.categories)
}

// Remove deletes a category from the registry. Other categories and the
// referenced tasks are unaffected; holders of the removed *Category keep a
// valid, detached object.
func (r *Registry) Remove(label string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[label]; !ok {
		return false
	}
	delete(r.categories, label)
	for i, l := range r.order {
		if l == label {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Restore loads persisted membership, appending refs to the category.
func (r *Registry) Restore(label string, refs []uuid.UUID) *Category {
	c := r.GetOrCreate(label)
	c.mu.Lock()
	c.members = append(c.members, refs...)
	c.mu.Unlock()
	return c
}

// Snapshot summarizes every category in creation order.
func (r *Registry) Snapshot() []Summary {
	labels := r.Labels()
	out := make([]Summary, 0, len(labels))
	for _, label := range labels {
		c, ok := r.Get(label)
		if !ok {
			continue
		}
		out = append(out, Summary{
			Label:   label,
			Members: c.Members(),
			Stats:   c.Stats(),
		})
	}
	return out
}
