// tags.go implements the core tagging operations: add_tag, remove_tag,
// list_tags, list_paths, all_tags, all_keys, values_for_key.
//
// Design: tags persist as their own rows independent of any one path, so
// that two paths sharing a tag collapse to one tags row (the spec's "equal
// tags collapse to one row" invariant) rather than being duplicated per
// path, the way the teacher's per-document tag rows were.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jamesblissett/tagfs/internal/validate"
)

// AddTag upserts path, upserts tag, upserts the tagging. Idempotent:
// tagging the same path with the same tag twice leaves one row.
func (s *SQLiteStore) AddTag(ctx context.Context, path, tag string) error {
	path, err := validate.Path(path)
	if err != nil {
		return err
	}
	tag, err = validate.Tag(tag)
	if err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		pathID, err := upsertPath(tx, path)
		if err != nil {
			return err
		}
		tagID, err := upsertTag(tx, tag)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO taggings (path_id, tag_id) VALUES (?, ?)`, pathID, tagID); err != nil {
			return fmt.Errorf("add tag %q to %q: %w", tag, path, err)
		}
		return nil
	})
}

// RemoveTag deletes the tagging if present. Idempotent. If the path loses
// its last tag, the path row is purged.
func (s *SQLiteStore) RemoveTag(ctx context.Context, path, tag string) error {
	path, err := validate.Path(path)
	if err != nil {
		return err
	}
	tag, err = validate.Tag(tag)
	if err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *sql.Tx) error {
		pathID, ok, err := findPathID(tx, path)
		if err != nil || !ok {
			return err
		}
		tagID, ok, err := findTagID(tx, tag)
		if err != nil || !ok {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM taggings WHERE path_id = ? AND tag_id = ?`, pathID, tagID); err != nil {
			return fmt.Errorf("remove tag %q from %q: %w", tag, path, err)
		}
		return purgeIfUntagged(tx, pathID)
	})
}

// ListTags returns a path's tags, ordered ascending by tag text.
func (s *SQLiteStore) ListTags(ctx context.Context, path string) ([]Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.text FROM tags t
		JOIN taggings tg ON tg.tag_id = t.id
		JOIN paths p ON p.id = tg.path_id
		WHERE p.text = ?
		ORDER BY t.text`, path)
	if err != nil {
		return nil, fmt.Errorf("list tags for %q: %w", path, err)
	}
	defer rows.Close()
	return scanTags(rows)
}

// ListPaths returns the paths carrying a tag, ordered ascending by path
// text.
func (s *SQLiteStore) ListPaths(ctx context.Context, tag string) ([]Path, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.text FROM paths p
		JOIN taggings tg ON tg.path_id = p.id
		JOIN tags t ON t.id = tg.tag_id
		WHERE t.text = ?
		ORDER BY p.text`, tag)
	if err != nil {
		return nil, fmt.Errorf("list paths for tag %q: %w", tag, err)
	}
	defer rows.Close()
	return scanPaths(rows)
}

// AllTags returns every distinct tag in the store, ordered.
func (s *SQLiteStore) AllTags(ctx context.Context) ([]Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text FROM tags ORDER BY text`)
	if err != nil {
		return nil, fmt.Errorf("list all tags: %w", err)
	}
	defer rows.Close()
	return scanTags(rows)
}

// AllKeys returns every distinct key from keyed tags, ordered.
func (s *SQLiteStore) AllKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text FROM tags WHERE text LIKE '%=%' ORDER BY text`)
	if err != nil {
		return nil, fmt.Errorf("list all keys: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var keys []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan tag text: %w", err)
		}
		key, _ := validate.Split(text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ValuesForKey returns every distinct value seen for a given key, ordered.
//
// Filtering happens in Go rather than via a SQL LIKE ? pattern: tag keys
// may contain '_', which LIKE treats as a single-character wildcard, so a
// pattern built from an untrusted key could match unrelated rows.
func (s *SQLiteStore) ValuesForKey(ctx context.Context, key string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT text FROM tags WHERE text LIKE '%=%' ORDER BY text`)
	if err != nil {
		return nil, fmt.Errorf("list values for key %q: %w", key, err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	var values []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan tag text: %w", err)
		}
		k, v := validate.Split(text)
		if k != key {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values, rows.Err()
}

func scanTags(rows *sql.Rows) ([]Tag, error) {
	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Text); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func scanPaths(rows *sql.Rows) ([]Path, error) {
	var paths []Path
	for rows.Next() {
		var p Path
		if err := rows.Scan(&p.ID, &p.Text); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
