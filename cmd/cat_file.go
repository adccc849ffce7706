package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grit-scm/grit/internal/objects"
	"github.com/grit-scm/grit/internal/repository"
	"github.com/grit-scm/grit/utils"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file <type> <object>",
	Short: "Provide content of repository objects",
	Long: `The 'cat-file' command reads an object from the object store by its full
id and writes its payload to stdout. The requested type must match the type
recorded in the object's frame.

Examples:
  grit cat-file blob 557db03de997c86a4a028e1ebd3a1ceb225be238
  grit cat-file commit 2752fdb87f16e24afcb4c493848ae54b9b240b90`,
	SilenceUsage: true,
	Args:         catFileArgs,
	RunE:         runCatFile,
}

func init() {
	rootCmd.AddCommand(catFileCmd)
}

// catFileArgs validates command receives exactly a type and an object id.
func catFileArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		cmd.SilenceUsage = false
		return fmt.Errorf("cat-file command requires exactly 2 arguments (type, object), received %d", len(args))
	}
	return nil
}

// runCatFile reads an object by id and emits its typed payload.
func runCatFile(cmd *cobra.Command, args []string) error {
	requestedType := utils.ObjectType(args[0])
	if !requestedType.IsValid() {
		return fmt.Errorf("invalid object type %q", args[0])
	}

	repo, err := repository.FindRepository(".")
	if err != nil {
		return err
	}

	store := objects.NewObjectStore(repo.ObjectRoot())
	obj, err := store.Get(args[1])
	if err != nil {
		return err
	}

	if obj.Type() != requestedType {
		return fmt.Errorf("object %s: type mismatch: got %q, want %q", args[1], obj.Type(), requestedType)
	}

	payload, err := obj.Serialize()
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(payload)
	return err
}
