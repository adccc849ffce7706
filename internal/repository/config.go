package repository

import (
	"fmt"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/grit-scm/grit/internal/constants"
)

// Repository configuration lives in .grit/config, an INI file with a single
// [core] section. Only repositoryformatversion 0 is understood.

func configPath(gritDir string) string {
	return filepath.Join(gritDir, constants.ConfigFile)
}

func writeDefaultConfig(gritDir string) error {
	cfg := ini.Empty()

	core, err := cfg.NewSection("core")
	if err != nil {
		return err
	}
	core.Key("repositoryformatversion").SetValue(fmt.Sprint(constants.RepositoryFormatVersion))
	core.Key("filemode").SetValue("false")
	core.Key("bare").SetValue("false")

	return cfg.SaveTo(configPath(gritDir))
}

func validateConfig(gritDir string) error {
	cfg, err := ini.Load(configPath(gritDir))
	if err != nil {
		return fmt.Errorf("failed to read repository config: %w", err)
	}

	version, err := cfg.Section("core").Key("repositoryformatversion").Int()
	if err != nil {
		return fmt.Errorf("failed to read repositoryformatversion: %w", err)
	}

	if version != constants.RepositoryFormatVersion {
		return fmt.Errorf("unsupported repositoryformatversion %d", version)
	}

	return nil
}
