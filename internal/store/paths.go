// paths.go implements the low-level upsert helpers shared by AddTag and
// ApplyEditScript.
//
// Separated because path/tag upsert is a building block, not a public
// operation in its own right - the spec never exposes "create a path" as a
// standalone call, only as a side effect of tagging.

package store

import (
	"database/sql"
	"fmt"
)

// upsertPath returns the id of the path row for text, inserting it if
// necessary.
func upsertPath(tx *sql.Tx, text string) (int64, error) {
	var id int64
	err := tx.QueryRow(`SELECT id FROM paths WHERE text = ?`, text).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("lookup path %q: %w", text, err)
	}

	res, err := tx.Exec(`INSERT INTO paths (text) VALUES (?)`, text)
	if err != nil {
		return 0, fmt.Errorf("insert path %q: %w", text, err)
	}
	return res.LastInsertId()
}

// upsertTag returns the id of the tag row for text, inserting it if
// necessary.
func upsertTag(tx *sql.Tx, text string) (int64, error) {
	var id int64
	err := tx.QueryRow(`SELECT id FROM tags WHERE text = ?`, text).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("lookup tag %q: %w", text, err)
	}

	res, err := tx.Exec(`INSERT INTO tags (text) VALUES (?)`, text)
	if err != nil {
		return 0, fmt.Errorf("insert tag %q: %w", text, err)
	}
	return res.LastInsertId()
}

// findPathID returns a path's id, or (0, false) if it has no row.
func findPathID(tx *sql.Tx, text string) (int64, bool, error) {
	var id int64
	err := tx.QueryRow(`SELECT id FROM paths WHERE text = ?`, text).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup path %q: %w", text, err)
	}
	return id, true, nil
}

// findTagID returns a tag's id, or (0, false) if it has no row.
func findTagID(tx *sql.Tx, text string) (int64, bool, error) {
	var id int64
	err := tx.QueryRow(`SELECT id FROM tags WHERE text = ?`, text).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup tag %q: %w", text, err)
	}
	return id, true, nil
}

// purgeIfUntagged deletes the path row for pathID if it has no remaining
// taggings, implementing the spec's invariant that a path with zero tags
// must never be surfaced. The open question of tombstone-vs-purge is
// resolved in favour of purge, matching the original implementation's
// behaviour (see SPEC_FULL.md).
func purgeIfUntagged(tx *sql.Tx, pathID int64) error {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM taggings WHERE path_id = ?`, pathID).Scan(&n); err != nil {
		return fmt.Errorf("count taggings for path %d: %w", pathID, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := tx.Exec(`DELETE FROM paths WHERE id = ?`, pathID); err != nil {
		return fmt.Errorf("purge untagged path %d: %w", pathID, err)
	}
	return nil
}
