package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/grit-scm/grit/internal/constants"
)

// Repository is an opened grit repository: a worktree plus its .grit
// metadata directory.
type Repository struct {
	WorkTree string // working directory root
	GritDir  string // .grit/ directory
}

func InitRepository(path string) error {
	// Resolves and adds OS specific separator
	gritDir := filepath.Join(path, constants.Grit)

	if err := checkRepositoryDoesNotExist(gritDir); err != nil {
		return err
	}

	// Track if initialization of grit directories and files was successful
	// Default value: false
	var initSuccess bool

	// Defer a func to clean up any directories/files in the case that
	// repository initialization failed (not all directories/files were created successfully).
	// If all resources got created successfully initSuccess is true, and the clean-up
	//  is not executed
	defer func() {
		if !initSuccess {
			cleanupRepository(gritDir)
		}
	}()

	directories := []string{
		gritDir,
		filepath.Join(gritDir, constants.Objects),
		filepath.Join(gritDir, constants.Branches),
		filepath.Join(gritDir, constants.Refs),
		filepath.Join(gritDir, constants.Refs, constants.Heads),
		filepath.Join(gritDir, constants.Refs, constants.Tags),
	}

	// Create all grit directories
	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	// Create HEAD file pointing to main branch
	headFile := filepath.Join(gritDir, constants.Head)
	headContent := constants.DefaultRefPrefix + constants.DefaultBranch + "\n"

	if err := os.WriteFile(headFile, []byte(headContent), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to create HEAD file: %w", err)
	}

	// Create description file
	descriptionFile := filepath.Join(gritDir, constants.DescriptionFile)
	if err := os.WriteFile(descriptionFile, []byte(constants.DefaultDescription), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to create description file: %w", err)
	}

	// Create default config file
	if err := writeDefaultConfig(gritDir); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	initSuccess = true
	return nil
}

// OpenRepository opens an existing repository at path and validates its
// configuration (including the on-disk format version).
func OpenRepository(path string) (*Repository, error) {
	gritDir := filepath.Join(path, constants.Grit)

	info, err := os.Stat(gritDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("not a grit repository: %s", path)
	}

	repo := &Repository{
		WorkTree: path,
		GritDir:  gritDir,
	}

	if err := validateConfig(gritDir); err != nil {
		return nil, err
	}

	return repo, nil
}

// FindRepository locates the repository containing startDir by walking up
// the directory tree looking for a .grit directory.
func FindRepository(startDir string) (*Repository, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		gritPath := filepath.Join(dir, constants.Grit)
		if info, err := os.Stat(gritPath); err == nil && info.IsDir() {
			return OpenRepository(dir)
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .grit
			return nil, fmt.Errorf("%s directory not found", constants.Grit)
		}
		dir = parent
	}
}

// ObjectRoot returns the repository path handed to the object store.
func (r *Repository) ObjectRoot() string {
	return r.WorkTree
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return fmt.Errorf("repository already exists at %s", path)
}

// Removes the entire .grit directory if it exists
func cleanupRepository(gritDir string) {
	if _, err := os.Stat(gritDir); err == nil {
		log.Debug().Str("path", gritDir).Msg("Cleaning up partial repository initialization")

		if err := os.RemoveAll(gritDir); err != nil {
			log.Warn().Str("path", gritDir).Err(err).Msg("Failed to cleanup repository directory")
		} else {
			log.Debug().Str("path", gritDir).Msg("Successfully cleaned up repository directory")
		}
	}
}
