package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grit-scm/grit/internal/history"
	"github.com/grit-scm/grit/internal/objects"
	"github.com/grit-scm/grit/internal/repository"
)

var logCmd = &cobra.Command{
	Use:   "log <commit>",
	Short: "Display history of a given commit",
	Long: `The 'log' command walks the parent links of the given commit and renders
the reachable history as a Graphviz directed graph description.

Grit resolves full 40-character object ids only; branch names and short ids
are not supported.

Example:
  grit log 2752fdb87f16e24afcb4c493848ae54b9b240b90 | dot -Tpng -o history.png`,
	SilenceUsage: true,
	Args:         logArgs,
	RunE:         runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
}

// logArgs validates command receives exactly one commit id.
func logArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		cmd.SilenceUsage = false
		return fmt.Errorf("log command requires exactly 1 argument (commit id), received %d", len(args))
	}
	return nil
}

// runLog walks the commit graph and renders edges as a digraph description.
func runLog(cmd *cobra.Command, args []string) error {
	repo, err := repository.FindRepository(".")
	if err != nil {
		return err
	}

	store := objects.NewObjectStore(repo.ObjectRoot())
	walker := history.NewWalker(store)

	edges, err := walker.Walk(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "digraph log {")
	for _, edge := range edges {
		fmt.Fprintf(out, "c_%s -> c_%s;\n", edge.Child, edge.Parent)
	}
	fmt.Fprintln(out, "}")

	return nil
}
