package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grit-scm/grit/internal/objects"
	"github.com/grit-scm/grit/internal/repository"
	"github.com/grit-scm/grit/utils"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object [-t <type>] [-w] <filepath>",
	Short: "Compute object id and optionally create and store an object from a file",
	Long: `Compute the object id (SHA-1 hash) for a file's content.
Optionally write the resulting object into the objects folder.

Examples:
  # Compute hash without storing
  grit hash-object myfile.txt

  # Compute hash and store in .grit/objects
  grit hash-object -w myfile.txt

  # Hash the file as a commit payload
  grit hash-object -t commit -w commit.txt`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runHashObject,
}

var (
	writeFlag bool
	typeFlag  string
)

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the objects folder")
	hashObjectCmd.Flags().StringVarP(&typeFlag, "type", "t", string(utils.BlobObjectType), "Object type (blob, commit, tree, tag)")
}

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("hash-object command requires exactly %d argument (filepath), received %d", n, len(args))
		}
		return nil
	}
}

// runHashObject decodes the file as the requested object type, prints the
// object id, and stores the object when the write flag is set.
func runHashObject(cmd *cobra.Command, args []string) error {
	objectType := utils.ObjectType(typeFlag)
	if !objectType.IsValid() {
		return fmt.Errorf("invalid object type %q", typeFlag)
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	// Decoding validates the payload against the type's codec (a commit
	// payload must parse; tree and tag have no codec in this core).
	obj, err := objects.Decode(objectType, content)
	if err != nil {
		return err
	}

	// Print hash to stdout
	fmt.Fprintln(cmd.OutOrStdout(), obj.Hash())

	if writeFlag {
		repo, err := repository.FindRepository(".")
		if err != nil {
			return err
		}

		store := objects.NewObjectStore(repo.ObjectRoot())
		if err := store.Store(obj); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	}

	return nil
}
