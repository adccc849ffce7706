package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grit-scm/grit/internal/logging"
)

var verbosity int

// rootCmd defines the base command for the grit CLI.
// All subcommands (init, hash-object, cat-file, log) register under this root.
// Uses cobra for command parsing, flag handling, and help generation.
var rootCmd = &cobra.Command{
	Use:   "grit",
	Short: "A content-addressable version control storage kernel",
	Long: `Grit is a simplified Git implementation developed in Go. It persists
blobs and commits in a content-addressable object store and reconstructs
history by walking commit parent links.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetupLogger(verbosity)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
