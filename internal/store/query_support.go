// query_support.go implements the store-side primitives the query builder
// (internal/query) compiles a DSL expression down to: which paths carry a
// given tag, which paths carry any tag at all (the universe `not` and an
// empty expression resolve against), and resolving a set of path ids back
// to their text.
//
// Kept in the store package, not the query package, because these are
// plain relational lookups with no DSL awareness - the builder only ever
// combines their results with set operations.

package store

import (
	"context"
	"fmt"
	"strings"
)

// PathIDsMatching returns the ids of paths carrying tagText. caseFold, when
// true, matches case-insensitively.
func (s *SQLiteStore) PathIDsMatching(ctx context.Context, tagText string, caseFold bool) ([]int64, error) {
	query := `SELECT tg.path_id FROM taggings tg JOIN tags t ON t.id = tg.tag_id WHERE `
	var args []any
	if caseFold {
		query += `LOWER(t.text) = LOWER(?)`
	} else {
		query += `t.text = ?`
	}
	args = append(args, tagText)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("match tag %q: %w", tagText, err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

// AllTaggedPathIDs returns the ids of every path that has at least one tag.
func (s *SQLiteStore) AllTaggedPathIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT path_id FROM taggings`)
	if err != nil {
		return nil, fmt.Errorf("list tagged path ids: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

// PathsByID resolves path ids back to Path rows, ordered ascending by path
// text.
func (s *SQLiteStore) PathsByID(ctx context.Context, ids []int64) ([]Path, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT id, text FROM paths WHERE id IN (%s) ORDER BY text`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve path ids: %w", err)
	}
	defer rows.Close()
	return scanPaths(rows)
}

func scanIDs(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
