package service

import (
	"context"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
)

// checkTagIDs fails with ErrInvalid when any of ids does not name a tag.
func checkTagIDs(ctx context.Context, tags repository.TagRepo, ids []string) error {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return nil
	}
	n, err := tags.CountExisting(ctx, unique)
	if err != nil {
		return err
	}
	if n != len(unique) {
		return domain.Invalidf("One or more tags not found")
	}
	return nil
}

// dedupe drops repeated IDs, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
