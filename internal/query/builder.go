package query

import (
	"context"
	"fmt"

	"github.com/jamesblissett/tagfs/internal/store"
)

// Eval compiles expr against s and returns the matching paths, ordered
// ascending by path text with no duplicates. A nil expr (the empty
// expression) matches every tagged path. caseFold requests case-insensitive
// tag matching.
func Eval(ctx context.Context, s store.Store, expr Expr, caseFold bool) ([]store.Path, error) {
	if expr == nil {
		ids, err := s.AllTaggedPathIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("evaluate empty expression: %w", err)
		}
		return s.PathsByID(ctx, ids)
	}

	ids, err := evalSet(ctx, s, expr, caseFold)
	if err != nil {
		return nil, err
	}
	return s.PathsByID(ctx, idList(ids))
}

// evalSet recursively compiles expr into a set of matching path ids.
func evalSet(ctx context.Context, s store.Store, expr Expr, caseFold bool) (map[int64]struct{}, error) {
	switch e := expr.(type) {
	case Tag:
		ids, err := s.PathIDsMatching(ctx, e.Text, caseFold)
		if err != nil {
			return nil, fmt.Errorf("evaluate tag %q: %w", e.Text, err)
		}
		return idSet(ids), nil

	case Not:
		universe, err := s.AllTaggedPathIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("evaluate not: universe: %w", err)
		}
		inner, err := evalSet(ctx, s, e.X, caseFold)
		if err != nil {
			return nil, err
		}
		result := make(map[int64]struct{})
		for _, id := range universe {
			if _, excluded := inner[id]; !excluded {
				result[id] = struct{}{}
			}
		}
		return result, nil

	case And:
		left, err := evalSet(ctx, s, e.L, caseFold)
		if err != nil {
			return nil, err
		}
		right, err := evalSet(ctx, s, e.R, caseFold)
		if err != nil {
			return nil, err
		}
		result := make(map[int64]struct{})
		for id := range left {
			if _, ok := right[id]; ok {
				result[id] = struct{}{}
			}
		}
		return result, nil

	case Or:
		left, err := evalSet(ctx, s, e.L, caseFold)
		if err != nil {
			return nil, err
		}
		right, err := evalSet(ctx, s, e.R, caseFold)
		if err != nil {
			return nil, err
		}
		result := make(map[int64]struct{}, len(left)+len(right))
		for id := range left {
			result[id] = struct{}{}
		}
		for id := range right {
			result[id] = struct{}{}
		}
		return result, nil

	default:
		return nil, fmt.Errorf("evaluate: unknown expression type %T", expr)
	}
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func idList(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
