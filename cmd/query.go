// query.go implements the query command, the CLI-level equivalent of
// reading a result sentinel inside the mount.
package cmd

import (
	"fmt"

	"github.com/jamesblissett/tagfs/internal/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newQueryCmd())
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <expression>",
		Short: "Evaluate a tag-query expression and list matching paths",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
}

func runQuery(c *cobra.Command, args []string) error {
	ctx := c.Context()
	expr := args[0]

	svc, _, err := Service()
	if err != nil {
		return PrintJSONError(fmt.Errorf("open store: %w", err))
	}

	l := log.Event("cmd:query", "query").Author(Author()).Expression(expr)
	rows, err := svc.Query(ctx, expr, CaseFold())
	if err != nil {
		l.Write(err)
		return PrintJSONError(fmt.Errorf("query %q: %w", expr, err))
	}
	l.ResultSize(len(rows)).Write(nil)

	if JSON() {
		texts := make([]string, len(rows))
		for i, r := range rows {
			texts[i] = r.Text
		}
		return PrintJSON(texts)
	}
	for _, r := range rows {
		fmt.Fprintln(Out(), r.Text)
	}
	return nil
}
