// editscript.go implements apply_edit_script: each block in a parsed script
// declares the complete tag set for a path, so applying the script diffs
// that declared set against the path's current tags and applies only the
// delta, all inside one transaction.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jamesblissett/tagfs/internal/editscript"
)

// ApplyEditScript applies every block of script in a single transaction. A
// failure on any block rolls back the whole script, matching the spec's
// all-or-nothing guarantee.
func (s *SQLiteStore) ApplyEditScript(ctx context.Context, script *editscript.Script) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, block := range script.Blocks {
			if err := applyBlock(tx, block); err != nil {
				return fmt.Errorf("apply block %q: %w", block.Path, err)
			}
		}
		return nil
	})
}

func applyBlock(tx *sql.Tx, block editscript.Block) error {
	current, err := currentTagsTx(tx, block.Path)
	if err != nil {
		return err
	}

	desired := make(map[string]struct{}, len(block.Tags))
	for _, tag := range block.Tags {
		desired[tag] = struct{}{}
	}

	var pathID int64
	var havePathID bool
	ensurePathID := func() (int64, error) {
		if !havePathID {
			id, err := upsertPath(tx, block.Path)
			if err != nil {
				return 0, err
			}
			pathID, havePathID = id, true
		}
		return pathID, nil
	}

	for tag := range desired {
		if _, ok := current[tag]; ok {
			continue
		}
		id, err := ensurePathID()
		if err != nil {
			return err
		}
		tagID, err := upsertTag(tx, tag)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO taggings (path_id, tag_id) VALUES (?, ?)`, id, tagID); err != nil {
			return fmt.Errorf("add tag %q: %w", tag, err)
		}
	}

	for tag := range current {
		if _, ok := desired[tag]; ok {
			continue
		}
		id, ok, err := findPathID(tx, block.Path)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		tagID, ok, err := findTagID(tx, tag)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if _, err := tx.Exec(`DELETE FROM taggings WHERE path_id = ? AND tag_id = ?`, id, tagID); err != nil {
			return fmt.Errorf("remove tag %q: %w", tag, err)
		}
		pathID, havePathID = id, true
	}

	if havePathID {
		return purgeIfUntagged(tx, pathID)
	}
	return nil
}

// currentTagsTx returns the set of tag texts currently held by path, or an
// empty set if the path has no row yet.
func currentTagsTx(tx *sql.Tx, path string) (map[string]struct{}, error) {
	rows, err := tx.Query(`
		SELECT t.text FROM tags t
		JOIN taggings tg ON tg.tag_id = t.id
		JOIN paths p ON p.id = tg.path_id
		WHERE p.text = ?`, path)
	if err != nil {
		return nil, fmt.Errorf("current tags for %q: %w", path, err)
	}
	defer rows.Close()

	tags := make(map[string]struct{})
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan tag text: %w", err)
		}
		tags[text] = struct{}{}
	}
	return tags, rows.Err()
}
