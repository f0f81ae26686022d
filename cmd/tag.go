// tag.go implements the tag and untag commands. Both accept one or more
// tags per invocation, applying each independently so a partial failure
// midway still leaves every successfully-applied tag in place.
package cmd

import (
	"fmt"

	"github.com/jamesblissett/tagfs/internal/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newTagCmd())
	rootCmd.AddCommand(newUntagCmd())
}

// tagResult is the JSON shape printed by tag/untag.
type tagResult struct {
	Path string   `json:"path"`
	Tags []string `json:"tags"`
}

func newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <path> <tag>...",
		Short: "Tag a path with one or more tags",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runTag,
	}
}

func runTag(c *cobra.Command, args []string) error {
	ctx := c.Context()
	path, tags := args[0], args[1:]

	svc, _, err := Service()
	if err != nil {
		return PrintJSONError(fmt.Errorf("open store: %w", err))
	}

	for _, t := range tags {
		l := log.Event("cmd:tag", "tag").Author(Author()).Path(path).Tag(t)
		err := svc.Tag(ctx, path, t)
		l.Write(err)
		if err != nil {
			return PrintJSONError(fmt.Errorf("tag %q %q: %w", path, t, err))
		}
	}

	if err := PrintJSON(tagResult{Path: path, Tags: tags}); err != nil {
		return err
	}
	if !JSON() {
		fmt.Fprintf(Out(), "tagged %s with %v\n", path, tags)
	}
	return nil
}

func newUntagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untag <path> <tag>...",
		Short: "Remove one or more tags from a path",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runUntag,
	}
}

func runUntag(c *cobra.Command, args []string) error {
	ctx := c.Context()
	path, tags := args[0], args[1:]

	svc, _, err := Service()
	if err != nil {
		return PrintJSONError(fmt.Errorf("open store: %w", err))
	}

	for _, t := range tags {
		l := log.Event("cmd:untag", "untag").Author(Author()).Path(path).Tag(t)
		err := svc.Untag(ctx, path, t)
		l.Write(err)
		if err != nil {
			return PrintJSONError(fmt.Errorf("untag %q %q: %w", path, t, err))
		}
	}

	if err := PrintJSON(tagResult{Path: path, Tags: tags}); err != nil {
		return err
	}
	if !JSON() {
		fmt.Fprintf(Out(), "untagged %s from %v\n", path, tags)
	}
	return nil
}
