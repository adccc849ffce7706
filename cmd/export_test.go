package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/grit-scm/grit/testutils"
)

// createTestRootCmd creates fresh root command with the given subcommand.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	testRootCmd := &cobra.Command{Use: "grit"}
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

// captureStdout returns command stdout output as a buffer.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as a buffer.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// assertRepositoryStructure verifies .grit directory structure and HEAD file.
func assertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	testutils.AssertRepositoryStructure(t, repoPath)
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}

// resetHashObjectFlags restores hash-object flag state between tests;
// cobra flag variables are package globals.
func resetHashObjectFlags(t *testing.T) {
	t.Helper()

	t.Cleanup(func() {
		writeFlag = false
		typeFlag = "blob"
	})
}

// objectPathFor returns the on-disk object path for hash inside repoPath.
func objectPathFor(repoPath, hash string) string {
	return filepath.Join(repoPath, ".grit", "objects", hash[:2], hash[2:])
}
