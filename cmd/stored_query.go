// stored_query.go implements save-query, delete-query, and list-queries,
// managing the named expressions the mount exposes under its stored-
// query root.
package cmd

import (
	"fmt"

	"github.com/jamesblissett/tagfs/internal/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSaveQueryCmd())
	rootCmd.AddCommand(newDeleteQueryCmd())
	rootCmd.AddCommand(newListQueriesCmd())
}

func newSaveQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save-query <name> <expression>",
		Short: "Save a named tag-query expression",
		Args:  cobra.ExactArgs(2),
		RunE:  runSaveQuery,
	}
}

func runSaveQuery(c *cobra.Command, args []string) error {
	ctx := c.Context()
	name, expr := args[0], args[1]

	svc, _, err := Service()
	if err != nil {
		return PrintJSONError(fmt.Errorf("open store: %w", err))
	}

	l := log.Event("cmd:save-query", "save-query").Author(Author()).Expression(expr).Detail("name", name)
	err = svc.SaveQuery(ctx, name, expr)
	l.Write(err)
	if err != nil {
		return PrintJSONError(fmt.Errorf("save query %q: %w", name, err))
	}

	if err := PrintJSON(map[string]string{"name": name, "expression": expr}); err != nil {
		return err
	}
	if !JSON() {
		fmt.Fprintf(Out(), "saved query %s\n", name)
	}
	return nil
}

func newDeleteQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-query <name>",
		Short: "Delete a stored query",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteQuery,
	}
}

func runDeleteQuery(c *cobra.Command, args []string) error {
	ctx := c.Context()
	name := args[0]

	svc, _, err := Service()
	if err != nil {
		return PrintJSONError(fmt.Errorf("open store: %w", err))
	}

	l := log.Event("cmd:delete-query", "delete-query").Author(Author()).Detail("name", name)
	err = svc.DeleteQuery(ctx, name)
	l.Write(err)
	if err != nil {
		return PrintJSONError(fmt.Errorf("delete query %q: %w", name, err))
	}

	if err := PrintJSON(map[string]string{"name": name}); err != nil {
		return err
	}
	if !JSON() {
		fmt.Fprintf(Out(), "deleted query %s\n", name)
	}
	return nil
}

func newListQueriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-queries",
		Short: "List stored queries",
		Args:  cobra.NoArgs,
		RunE:  runListQueries,
	}
}

func runListQueries(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	svc, _, err := Service()
	if err != nil {
		return PrintJSONError(fmt.Errorf("open store: %w", err))
	}

	queries, err := svc.Store.ListQueries(ctx)
	if err != nil {
		return PrintJSONError(fmt.Errorf("list queries: %w", err))
	}

	if JSON() {
		return PrintJSON(queries)
	}
	for _, q := range queries {
		fmt.Fprintf(Out(), "%s\t%s\n", q.Name, q.Expression)
	}
	return nil
}
