// edit.go implements the edit command: open the store's tagging state
// (or a subset of it) as an edit script in $EDITOR/$VISUAL, apply
// whatever is saved back.
package cmd

import (
	"fmt"

	"github.com/jamesblissett/tagfs/internal/log"
	"github.com/jamesblissett/tagfs/internal/progress"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newEditCmd())
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [path...]",
		Short: "Bulk-edit tags via $EDITOR/$VISUAL using the edit-script format",
		Long: `Opens the declared tag set for the given paths (or every tagged path,
if none are given) as an edit script in $EDITOR or $VISUAL. Each path's
tag list is the complete declared set: removing a line untags it,
adding one tags it, and the whole script applies in one transaction.`,
		RunE: runEdit,
	}
}

func runEdit(c *cobra.Command, args []string) error {
	ctx := c.Context()

	svc, _, err := Service()
	if err != nil {
		return PrintJSONError(fmt.Errorf("open store: %w", err))
	}

	l := log.Event("cmd:edit", "edit").Author(Author())
	err = progress.NewSpinner("waiting for editor").Run(func() error { return svc.Edit(ctx, args) })
	l.Write(err)
	if err != nil {
		return PrintJSONError(fmt.Errorf("edit: %w", err))
	}

	if err := PrintJSON(map[string]string{"status": "applied"}); err != nil {
		return err
	}
	if !JSON() {
		fmt.Fprintln(Out(), "edit script applied")
	}
	return nil
}
