// Package initcmder provides the init command for initializing a local .parley
// directory in the current working directory.
package initcmder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/parleyco/parley/pkg/cliui"
	"github.com/parleyco/parley/pkg/config"
)

const (
	dirName    = ".parley"
	configFile = "config.toml"
)

const initLongDesc string = `Initialize a new .parley/ directory in the current working directory.

Creates a local .parley/ directory that takes precedence over the default
~/.parley/ directory for configuration, transcript storage, and other
parley operations, and seeds it with a default config.toml.

This is useful for maintaining separate parley state per project or directory.

Examples:
  parley init`

const initShortDesc string = "Initialize a local .parley/ directory"

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit()
		},
	}

	return cmd
}

func runInit() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	info, err := os.Stat(dir)
	alreadyExists := err == nil && info.IsDir()
	if !alreadyExists {
		err := cliui.Step(os.Stdout, fmt.Sprintf("Creating %s", dir), func() error {
			return os.MkdirAll(dir, 0o755)
		})
		if err != nil {
			return fmt.Errorf("creating .parley directory: %w", err)
		}
	}

	err = cliui.Step(os.Stdout, "Writing default config.toml", func() error {
		return seedConfig(dir)
	})
	if err != nil {
		return err
	}

	if alreadyExists {
		fmt.Printf("Already initialized: %s\n", dir)
		return nil
	}

	fmt.Printf("Initialized .parley directory: %s\n", dir)
	return nil
}

// seedConfig writes a default config.toml unless one already exists.
func seedConfig(dir string) error {
	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	if err := cfger.SaveConfig(config.NewDefaultConfig()); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	return nil
}
