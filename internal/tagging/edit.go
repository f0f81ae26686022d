package tagging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jamesblissett/tagfs/internal/editscript"
)

// ErrNoEditor indicates neither $VISUAL nor $EDITOR is set.
var ErrNoEditor = errors.New("no editor configured: set $VISUAL or $EDITOR")

// Edit opens the tags of paths (or, if paths is empty, of every tagged
// path) as an edit script in the user's editor, then applies whatever the
// editor leaves behind. The
// temp file is named with a uuid rather than the path it edits: unlike
// the teacher's content-addressed ids, this name is filesystem-visible
// (it shows up in the editor's title bar and any crash-recovery swap
// file) and has no need to be stable across runs.
func (s *Service) Edit(ctx context.Context, paths []string) error {
	script, err := s.dump(ctx, paths)
	if err != nil {
		return fmt.Errorf("build edit script: %w", err)
	}

	dir, err := os.MkdirTemp("", "tagfs-edit")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	tmpPath := filepath.Join(dir, uuid.NewString()+".tagfs-edit")
	if err := os.WriteFile(tmpPath, []byte(editscript.Dump(script)), 0600); err != nil {
		return fmt.Errorf("write temp edit script: %w", err)
	}

	if err := launchEditor(tmpPath); err != nil {
		return err
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("read edited script: %w", err)
	}

	edited, err := editscript.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse edited script: %w", err)
	}

	return s.Apply(ctx, edited)
}

// dump builds an edit script covering paths (every tagged path if paths
// is empty), reflecting the store's current tags so the editor opens
// with the full, correct starting state.
func (s *Service) dump(ctx context.Context, paths []string) (*editscript.Script, error) {
	if len(paths) == 0 {
		return s.dumpAllTagged(ctx)
	}

	script := &editscript.Script{}
	for _, p := range paths {
		tags, err := s.Store.ListTags(ctx, p)
		if err != nil {
			return nil, err
		}
		block := editscript.Block{Path: p}
		for _, t := range tags {
			block.Tags = append(block.Tags, t.Text)
		}
		script.Blocks = append(script.Blocks, block)
	}
	return script, nil
}

func (s *Service) dumpAllTagged(ctx context.Context) (*editscript.Script, error) {
	tagged, err := s.Store.AllTaggedPathIDs(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.Store.PathsByID(ctx, tagged)
	if err != nil {
		return nil, err
	}

	script := &editscript.Script{}
	for _, p := range rows {
		tags, err := s.Store.ListTags(ctx, p.Text)
		if err != nil {
			return nil, err
		}
		block := editscript.Block{Path: p.Text}
		for _, t := range tags {
			block.Tags = append(block.Tags, t.Text)
		}
		script.Blocks = append(script.Blocks, block)
	}
	return script, nil
}

// launchEditor resolves $VISUAL then $EDITOR and runs it against path,
// connected to the controlling terminal.
func launchEditor(path string) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return ErrNoEditor
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %q: %w", editor, err)
	}
	return nil
}
