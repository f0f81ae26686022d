// queries.go implements stored-query persistence: save_query, load_query,
// delete_query, list_queries.
//
// Separated from tags.go because stored queries are a distinct lifecycle
// (created and deleted explicitly, never implicit) from tags, which come
// and go as a side effect of tagging.

package store

import (
	"context"
	"fmt"
)

// SaveQuery creates or overwrites a stored query under name.
func (s *SQLiteStore) SaveQuery(ctx context.Context, name, expression string) error {
	if name == "" {
		return fmt.Errorf("%w: empty stored query name", ErrNotFound)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stored_queries (name, expression) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET expression = excluded.expression`,
		name, expression)
	if err != nil {
		return fmt.Errorf("save query %q: %w", name, err)
	}
	return nil
}

// LoadQuery returns a stored query by name.
func (s *SQLiteStore) LoadQuery(ctx context.Context, name string) (StoredQuery, error) {
	var q StoredQuery
	err := s.db.QueryRowContext(ctx, `SELECT name, expression FROM stored_queries WHERE name = ?`, name).
		Scan(&q.Name, &q.Expression)
	return q, scanNoRows(err)
}

// DeleteQuery removes a stored query by name.
func (s *SQLiteStore) DeleteQuery(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM stored_queries WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete query %q: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete query %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListQueries returns all stored queries, ordered by name.
func (s *SQLiteStore) ListQueries(ctx context.Context) ([]StoredQuery, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, expression FROM stored_queries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	var queries []StoredQuery
	for rows.Next() {
		var q StoredQuery
		if err := rows.Scan(&q.Name, &q.Expression); err != nil {
			return nil, fmt.Errorf("scan stored query: %w", err)
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}
