package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplforge/internal/diagfmt"
	"zplforge/internal/driver"
	"zplforge/internal/observ"
	"zplforge/internal/profile"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <file.zpl> [file...]",
	Short: "Parse and validate ZPL II source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	validateCmd.Flags().String("profile", "", "printer capability profile JSON (gates range/feature/media checks)")
	validateCmd.Flags().Bool("parse-only", false, "stop after parsing, skip Pass A/B/C validation")
	validateCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var cfgFormat, cfgProfile string
	cfgMaxDiagnostics := 0
	if sessionConfig != nil {
		cfgFormat = sessionConfig.Output.Format
		cfgProfile = sessionConfig.Profile
		cfgMaxDiagnostics = sessionConfig.Output.MaxDiagnostics
	}

	format, err := stringFlagOrConfig(cmd, "format", cfgFormat)
	if err != nil {
		return err
	}
	profilePath, err := stringFlagOrConfig(cmd, "profile", cfgProfile)
	if err != nil {
		return err
	}
	parseOnly, err := cmd.Flags().GetBool("parse-only")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && cfgMaxDiagnostics != 0 {
		maxDiagnostics = cfgMaxDiagnostics
	}

	var prof *profile.Profile
	if profilePath != "" {
		prof, err = profile.Load(profilePath)
		if err != nil {
			return fmt.Errorf("validate: loading profile: %w", err)
		}
	}

	stage := driver.DiagnoseStageValidate
	if parseOnly {
		stage = driver.DiagnoseStageParse
	}

	fs, results, err := driver.DiagnoseFiles(cmd.Context(), args, driver.DiagnoseOptions{
		Stage:          stage,
		Profile:        prof,
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	hasErrors := false
	var totals diagfmt.Counts
	timings := make([]observ.Report, 0, len(results))
	for _, res := range results {
		timings = append(timings, res.Timings)
		if res.Bag.HasErrors() {
			hasErrors = true
		}
		switch format {
		case "pretty":
			diagfmt.Pretty(cmd.OutOrStdout(), res.Bag, fs, diagfmt.PrettyOpts{
				Color:       colorEnabled(cmd),
				PathMode:    pathMode,
				ShowNotes:   true,
				ShowContext: true,
			})
			c := diagfmt.CountBySeverity(res.Bag)
			totals.Errors += c.Errors
			totals.Warnings += c.Warnings
			totals.Notes += c.Notes
		case "json":
			if err := diagfmt.JSON(cmd.OutOrStdout(), res.Bag, fs, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				IncludeNotes:     true,
				IncludeContext:   true,
			}); err != nil {
				return err
			}
		default:
			return fmt.Errorf("validate: unsupported output format %q", format)
		}
	}

	if format == "pretty" && len(results) > 0 {
		fmt.Fprintln(cmd.OutOrStdout())
		diagfmt.WriteSummary(cmd.OutOrStdout(), totals)
	}

	if timingsRequested(cmd) {
		printTimings(cmd.OutOrStdout(), timings)
	}

	if hasErrors {
		return fmt.Errorf("validate: one or more files failed validation")
	}
	return nil
}

func colorEnabled(cmd *cobra.Command) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	if !cmd.Root().PersistentFlags().Changed("color") && sessionConfig != nil && sessionConfig.Output.Color != "" {
		mode = sessionConfig.Output.Color
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
