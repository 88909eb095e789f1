package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/flowforge/diskgate/pkg/category"
)

// appendScript registers the label on first use, appending it to the order
// list only when the set did not already contain it, then appends the member.
// KEYS: label set, label order list, member list. ARGV: label, ref.
var appendScript = redis.NewScript(`
if redis.call('SADD', KEYS[1], ARGV[1]) == 1 then
	redis.call('RPUSH', KEYS[2], ARGV[1])
end
return redis.call('RPUSH', KEYS[3], ARGV[2])
`)

// CategoryStore mirrors category membership into redis: one list per label
// holding task IDs in insertion order, a set of known labels and a list of
// labels in creation order. The key prefix should contain a hash tag (e.g.
// "{diskgate}:") so the scripts and pipelines stay on one cluster slot.
type CategoryStore struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewCategoryStore(rdb redis.UniversalClient, prefix string) *CategoryStore {
	return &CategoryStore{rdb: rdb, prefix: prefix}
}

func (s *CategoryStore) labelsKey() string {
	return s.prefix + "categories"
}

func (s *CategoryStore) orderKey() string {
	return s.prefix + "categories:order"
}

func (s *CategoryStore) membersKey(label string) string {
	return s.prefix + "category:" + label
}

// Append records ref as the newest member of label.
func (s *CategoryStore) Append(ctx context.Context, label string, ref uuid.UUID) error {
	keys := []string{s.labelsKey(), s.orderKey(), s.membersKey(label)}
	if err := appendScript.Run(ctx, s.rdb, keys, label, ref.String()).Err(); err != nil {
		return fmt.Errorf("append %s to category %q: %w", ref, label, err)
	}
	return nil
}

// Load returns every persisted category in creation order, members in
// insertion order. Stats are not persisted and come back zeroed.
func (s *CategoryStore) Load(ctx context.Context) ([]category.Summary, error) {
	labels, err := s.rdb.LRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]category.Summary, 0, len(labels))
	for _, label := range labels {
		raw, err := s.rdb.LRange(ctx, s.membersKey(label), 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("load category %q: %w", label, err)
		}
		refs := make([]uuid.UUID, 0, len(raw))
		for _, r := range raw {
			id, err := uuid.Parse(r)
			if err != nil {
				return nil, fmt.Errorf("category %q: invalid task id %q: %w", label, r, err)
			}
			refs = append(refs, id)
		}
		out = append(out, category.Summary{Label: label, Members: refs})
	}
	return out, nil
}

// Delete forgets label and its members.
func (s *CategoryStore) Delete(ctx context.Context, label string) error {
	pipe := s.rdb.TxPipeline()
	pipe.SRem(ctx, s.labelsKey(), label)
	pipe.LRem(ctx, s.orderKey(), 0, label)
	pipe.Del(ctx, s.membersKey(label))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete category %q: %w", label, err)
	}
	return nil
}
