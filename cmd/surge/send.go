package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zplforge/internal/printclient"
	"zplforge/internal/trace"
	"zplforge/internal/ui"
)

var sendCmd = &cobra.Command{
	Use:   "send [flags] <file.zpl> [file...]",
	Short: "Send ZPL II label files to a printer over TCP",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().String("host", "", "printer host[:port] (default port 9100)")
	sendCmd.Flags().Int("max-attempts", 3, "retry attempts per job")
	sendCmd.Flags().Duration("base-delay", 200*time.Millisecond, "initial retry backoff")
	sendCmd.Flags().Duration("max-delay", 5*time.Second, "maximum retry backoff")
	sendCmd.Flags().Bool("query-status", false, "send ~HS after the batch and print the decoded host status")
	sendCmd.Flags().Bool("lenient-status", false, "decode the ~HS response leniently instead of rejecting malformed frames")
	sendCmd.Flags().Bool("no-progress", false, "print a plain-text summary instead of the interactive progress bar")
}

func runSend(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var cfgHost string
	cfgMaxAttempts, cfgBaseDelayMS, cfgMaxDelayMS := 0, 0, 0
	if sessionConfig != nil {
		if sessionConfig.Print.Host != "" {
			cfgHost = sessionConfig.Print.Host
			if sessionConfig.Print.Port != 0 {
				cfgHost = fmt.Sprintf("%s:%d", cfgHost, sessionConfig.Print.Port)
			}
		}
		cfgMaxAttempts = sessionConfig.Retry.MaxAttempts
		cfgBaseDelayMS = sessionConfig.Retry.InitialDelayMS
		cfgMaxDelayMS = sessionConfig.Retry.MaxDelayMS
	}

	host, err := stringFlagOrConfig(cmd, "host", cfgHost)
	if err != nil {
		return err
	}
	maxAttempts, err := intFlagOrConfig(cmd, "max-attempts", cfgMaxAttempts)
	if err != nil {
		return err
	}
	baseDelay, err := cmd.Flags().GetDuration("base-delay")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("base-delay") && cfgBaseDelayMS != 0 {
		baseDelay = time.Duration(cfgBaseDelayMS) * time.Millisecond
	}
	maxDelay, err := cmd.Flags().GetDuration("max-delay")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("max-delay") && cfgMaxDelayMS != 0 {
		maxDelay = time.Duration(cfgMaxDelayMS) * time.Millisecond
	}
	queryStatus, err := cmd.Flags().GetBool("query-status")
	if err != nil {
		return err
	}
	lenientStatus, err := cmd.Flags().GetBool("lenient-status")
	if err != nil {
		return err
	}
	noProgress, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		return err
	}
	if host == "" {
		return fmt.Errorf("send: --host is required (or set [print].host in %s)", "zpltool.toml")
	}

	jobs := make([]printclient.Job, 0, len(args))
	for _, path := range args {
		// #nosec G304 -- path is an explicit CLI argument
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("send: reading %s: %w", path, err)
		}
		jobs = append(jobs, printclient.Job{Name: filepath.Base(path), Data: data})
	}

	client := printclient.NewClient(host)
	policy := printclient.RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
		Multiplier:  2,
	}

	ctx := cmd.Context()
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "send_batch", 0)
	defer span.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})

	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name
	}

	var results []printclient.JobResult
	if noProgress || !isTerminal(os.Stdout) {
		results = printclient.SendBatch(ctx, client, jobs, policy, func(done, total int, result printclient.JobResult) {
			if result.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s: FAILED: %v\n", done, total, result.Job.Name, result.Err)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s: sent\n", done, total, result.Job.Name)
			}
		})
	} else {
		events := make(chan ui.BatchEvent, len(jobs))
		model := ui.NewBatchProgressModel(fmt.Sprintf("sending to %s", host), names, events)
		program := tea.NewProgram(model)
		go func() {
			results = printclient.SendBatch(ctx, client, jobs, policy, func(done, total int, result printclient.JobResult) {
				events <- ui.BatchEvent{Done: done, Total: total, Result: result}
			})
			close(events)
		}()
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("send: progress UI: %w", err)
		}
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "send: %s: %v\n", r.Job.Name, r.Err)
		}
	}

	if queryStatus {
		if err := printHostStatus(ctx, cmd, client, lenientStatus); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "send: status query: %v\n", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("send: %d of %d jobs failed", failed, len(jobs))
	}
	return nil
}

func printHostStatus(ctx context.Context, cmd *cobra.Command, client *printclient.Client, lenient bool) error {
	frame, err := client.SendExpectResponse(ctx, []byte("~HS"))
	if err != nil {
		return err
	}
	if lenient {
		hs := printclient.ParseHostStatusLenient(frame)
		fmt.Fprintf(cmd.OutOrStdout(), "status: paper_out=%v pause=%v buffer_full=%v label_len=%d\n",
			hs.PaperOut, hs.PauseActive, hs.BufferFull, hs.LabelLengthDots)
		return nil
	}
	hs, err := printclient.ParseHostStatusStrict(frame)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "status: paper_out=%v pause=%v buffer_full=%v label_len=%d\n",
		hs.PaperOut, hs.PauseActive, hs.BufferFull, hs.LabelLengthDots)
	return nil
}
