package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplforge/internal/config"
)

// sessionConfig holds the nearest zpltool.toml found from the current
// working directory, or nil if none exists. It only supplies defaults:
// any flag the user sets explicitly always wins.
var sessionConfig *config.Config

func loadSessionConfig() error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}
	cfg, ok, err := config.LoadNearest(dir)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", config.FileName, err)
	}
	if !ok {
		sessionConfig = nil
		return nil
	}
	sessionConfig = cfg
	return nil
}

// stringFlagOrConfig returns the named string flag's value, substituting
// fallback only when the user never set the flag and fallback is non-empty.
func stringFlagOrConfig(cmd *cobra.Command, name, fallback string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", err
	}
	if !cmd.Flags().Changed(name) && fallback != "" {
		return fallback, nil
	}
	return v, nil
}

// intFlagOrConfig returns the named int flag's value, substituting fallback
// only when the user never set the flag and fallback is non-zero.
func intFlagOrConfig(cmd *cobra.Command, name string, fallback int) (int, error) {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, err
	}
	if !cmd.Flags().Changed(name) && fallback != 0 {
		return fallback, nil
	}
	return v, nil
}
