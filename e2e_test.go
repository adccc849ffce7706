package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/grit-scm/grit/internal/constants"
	"github.com/grit-scm/grit/testutils"
	"github.com/grit-scm/grit/utils"
)

// sharedBinaryPath stores compiled grit binary path built once in TestMain.
// All E2E tests execute this binary to verify end-to-end behavior.
// Binary persists for test suite duration, cleaned up after all tests complete
var sharedBinaryPath string

// TestMain executes before all tests to build the grit binary once.
// Binary stored in temporary directory, removed after test suite completes.
func TestMain(m *testing.M) {
	tempDir, err := os.MkdirTemp("", "grit-e2e-*")
	if err != nil {
		panic("Failed to create temp directory: " + err.Error())
	}
	defer os.RemoveAll(tempDir)

	binaryName := "grit"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	sharedBinaryPath = filepath.Join(tempDir, binaryName)

	buildCmd := exec.Command("go", "build", "-o", sharedBinaryPath, ".")
	if err := buildCmd.Run(); err != nil {
		panic("Failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

// runGrit executes the shared binary inside dir and returns combined output.
func runGrit(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cmd := exec.Command(sharedBinaryPath, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// TestE2E_InitCommand verifies repository initialization creates correct structure.
func TestE2E_InitCommand(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	repoPath := t.TempDir()

	output, err := runGrit(t, repoPath, constants.InitCmdName)
	if err != nil {
		t.Fatalf("Binary execution failed: %v\nOutput: %s", err, output)
	}

	expectedMsg := fmt.Sprintf("Initialized empty grit repository in %s\n", utils.BuildDirPath(".", constants.Grit))
	if !strings.Contains(output, expectedMsg) {
		t.Errorf("Expected output to contain %q, got: %s", expectedMsg, output)
	}

	testutils.AssertRepositoryStructure(t, repoPath)
}

// TestE2E_HashObjectRoundTrip verifies hash-object -w stores a compressed
// frame that cat-file reads back verbatim.
func TestE2E_HashObjectRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	repoPath := t.TempDir()
	if output, err := runGrit(t, repoPath, constants.InitCmdName); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, output)
	}

	content := []byte("hello world\n")
	testutils.CreateTestFile(t, repoPath, "hello.txt", content)

	output, err := runGrit(t, repoPath, constants.HashObjectCmdName, "-w", "hello.txt")
	if err != nil {
		t.Fatalf("hash-object failed: %v\nOutput: %s", err, output)
	}
	hash := strings.TrimSpace(output)

	expectedHash, err := utils.ComputeHash(content, utils.BlobObjectType)
	if err != nil {
		t.Fatalf("Failed to compute hash: %v", err)
	}
	if hash != expectedHash {
		t.Fatalf("Expected hash %s, got %s", expectedHash, hash)
	}

	// Verify the on-disk frame: zlib-compressed "blob <len>\0<content>"
	objectPath := filepath.Join(repoPath, constants.Grit, constants.Objects, hash[:2], hash[2:])
	compressedData, err := os.ReadFile(objectPath)
	if err != nil {
		t.Fatalf("Failed to read stored object: %v", err)
	}

	reader, err := zlib.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		t.Fatalf("Stored object is not a zlib stream: %v", err)
	}
	defer reader.Close()

	var frame bytes.Buffer
	if _, err := frame.ReadFrom(reader); err != nil {
		t.Fatalf("Failed to decompress stored object: %v", err)
	}

	expectedFrame := utils.BuildFrame(utils.BlobObjectType, content)
	if !bytes.Equal(frame.Bytes(), expectedFrame) {
		t.Errorf("Stored frame mismatch: expected %q, got %q", expectedFrame, frame.Bytes())
	}

	// Read it back through the CLI
	catOutput, err := runGrit(t, repoPath, constants.CatFileCmdName, "blob", hash)
	if err != nil {
		t.Fatalf("cat-file failed: %v\nOutput: %s", err, catOutput)
	}
	if catOutput != string(content) {
		t.Errorf("Expected cat-file output %q, got %q", content, catOutput)
	}
}

// TestE2E_LogCommand verifies commit storage and history rendering end to end.
func TestE2E_LogCommand(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	repoPath := t.TempDir()
	if output, err := runGrit(t, repoPath, constants.InitCmdName); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, output)
	}

	// Store a root commit and a child commit via hash-object -t commit
	rootPayload := "tree " + testutils.RandomHash() + "\n" +
		"author Test User <test@example.com> 1527025023 +0200\n" +
		"committer Test User <test@example.com> 1527025023 +0200\n" +
		"\n" +
		"Root commit\n"
	testutils.CreateTestFile(t, repoPath, "root.txt", []byte(rootPayload))

	output, err := runGrit(t, repoPath, constants.HashObjectCmdName, "-t", "commit", "-w", "root.txt")
	if err != nil {
		t.Fatalf("hash-object root failed: %v\nOutput: %s", err, output)
	}
	rootHash := strings.TrimSpace(output)

	childPayload := "tree " + testutils.RandomHash() + "\n" +
		"parent " + rootHash + "\n" +
		"author Test User <test@example.com> 1527025100 +0200\n" +
		"committer Test User <test@example.com> 1527025100 +0200\n" +
		"\n" +
		"Second commit\n"
	testutils.CreateTestFile(t, repoPath, "child.txt", []byte(childPayload))

	output, err = runGrit(t, repoPath, constants.HashObjectCmdName, "-t", "commit", "-w", "child.txt")
	if err != nil {
		t.Fatalf("hash-object child failed: %v\nOutput: %s", err, output)
	}
	childHash := strings.TrimSpace(output)

	logOutput, err := runGrit(t, repoPath, constants.LogCmdName, childHash)
	if err != nil {
		t.Fatalf("log failed: %v\nOutput: %s", err, logOutput)
	}

	expected := fmt.Sprintf("digraph log {\nc_%s -> c_%s;\n}\n", childHash, rootHash)
	if logOutput != expected {
		t.Errorf("Expected log output %q, got %q", expected, logOutput)
	}
}

// TestE2E_CatFileUnknownObject verifies a non-zero exit for a missing object.
func TestE2E_CatFileUnknownObject(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	repoPath := t.TempDir()
	if output, err := runGrit(t, repoPath, constants.InitCmdName); err != nil {
		t.Fatalf("init failed: %v\nOutput: %s", err, output)
	}

	output, err := runGrit(t, repoPath, constants.CatFileCmdName, "blob", testutils.RandomHash())
	if err == nil {
		t.Fatalf("Expected cat-file to fail for missing object, output: %s", output)
	}

	if !strings.Contains(output, "object not found") {
		t.Errorf("Expected output to mention missing object, got: %s", output)
	}
}
