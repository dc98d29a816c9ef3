package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zplforge/internal/driver"
	"zplforge/internal/format"
	"zplforge/internal/observ"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <file.zpl> [file...]",
	Short: "Format ZPL II source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted, without rewriting")
	fmtCmd.Flags().String("output", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted output to stdout instead of rewriting files")
	fmtCmd.Flags().String("indent", "", "indent string inserted after line breaks inside a label body")
	fmtCmd.Flags().Bool("collapse-blank", false, "collapse runs of 2+ consecutive line breaks to one")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	indent, err := cmd.Flags().GetString("indent")
	if err != nil {
		return err
	}
	collapseBlank, err := cmd.Flags().GetBool("collapse-blank")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}

	compaction := format.CompactionNone
	if collapseBlank {
		compaction = format.CompactionCollapseBlank
	}

	results, err := driver.FormatPaths(cmd.Context(), args, driver.FormatOptions{
		Format: format.Options{Indent: indent, Compaction: compaction},
	})
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool

	if timingsRequested(cmd) {
		timings := make([]observ.Report, 0, len(results))
		for _, res := range results {
			timings = append(timings, res.Timings)
		}
		defer printTimings(cmd.OutOrStdout(), timings)
	}

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(results, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(cmd, results, check, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(results, check); err != nil {
			return err
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtStdout(results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(cmd *cobra.Command, results []driver.FormatResult, check bool, hasErrors, hasChanges *bool) {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		if check {
			if res.Changed {
				*hasChanges = true
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), res.Path)
				}
			}
			continue
		}

		if res.Changed {
			if err := os.WriteFile(res.Path, res.Formatted, 0o644); err != nil {
				*hasErrors = true
				fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, err)
				continue
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "reformatted %s\n", res.Path)
			}
		}
	}
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
