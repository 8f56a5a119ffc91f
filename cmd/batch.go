package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	padwan "github.com/padwan-ai/padwan-cli"
	"github.com/padwan-ai/padwan-cli/internal/batchio"
	"github.com/padwan-ai/padwan-cli/internal/tui"
	"github.com/padwan-ai/padwan-cli/llmtypes"
)

var (
	batchModelFlag    string
	batchNameFlag     string
	batchResultsFlag  bool
	batchLimitFlag    int
	batchIntervalFlag time.Duration
	batchTimeoutFlag  time.Duration
	batchTUIFlag      bool
	batchOutputFlag   string
	batchFormatFlag   string
	batchFileFlag     string
	batchPromptsFlag  []string
)

// errPollTimeout marks a poll that gave up before the job finished.
// The last observed job is still returned alongside it.
var errPollTimeout = errors.New("poll timed out")

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Submit and manage Gemini batch jobs",
	Long: "Batch jobs run many prompts through a Gemini model asynchronously.\n" +
		"Prompts are read from a file (one per line, or a JSON array); results can\n" +
		"be previewed, polled until completion, and exported to JSON, CSV or text.",
}

var batchCreateCmd = &cobra.Command{
	Use:   "create [prompts-file]",
	Short: "Submit a batch job from inline prompts or a prompts file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBatchCreate,
}

var batchStatusCmd = &cobra.Command{
	Use:   "status <job-name>",
	Short: "Show the status of a batch job",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatchStatus,
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List batch jobs",
	RunE:  runBatchList,
}

var batchCancelCmd = &cobra.Command{
	Use:   "cancel <job-name>",
	Short: "Cancel a batch job",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatchCancel,
}

var batchPollCmd = &cobra.Command{
	Use:   "poll <job-name>",
	Short: "Poll a batch job until it reaches a terminal state",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatchPoll,
}

var batchRetryCmd = &cobra.Command{
	Use:   "retry <job-name>",
	Short: "Resubmit the failed requests of a finished batch job",
	Long: "Retry reads the original prompts file, keeps only the prompts whose\n" +
		"requests failed in the given job, and submits them as a new batch.",
	Args: cobra.ExactArgs(1),
	RunE: runBatchRetry,
}

var batchExportCmd = &cobra.Command{
	Use:   "export <job-name>",
	Short: "Export batch results to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatchExport,
}

func init() {
	batchCmd.PersistentFlags().StringVar(&batchModelFlag, "batch-model", "", "Gemini model for batch jobs")

	batchCreateCmd.Flags().StringVar(&batchNameFlag, "name", "", "display name for the job")
	batchCreateCmd.Flags().StringArrayVarP(&batchPromptsFlag, "prompt", "p", nil, "inline prompt (repeatable)")
	batchCreateCmd.Flags().StringVarP(&batchFileFlag, "file", "f", "", "prompts file")
	batchStatusCmd.Flags().BoolVarP(&batchResultsFlag, "results", "r", false, "preview results if available")
	batchListCmd.Flags().IntVarP(&batchLimitFlag, "limit", "l", 10, "maximum number of jobs to list")
	batchPollCmd.Flags().DurationVar(&batchIntervalFlag, "interval", 0, "poll interval (default from config)")
	batchPollCmd.Flags().DurationVar(&batchTimeoutFlag, "timeout", 0, "give up after this long (default from config)")
	batchPollCmd.Flags().BoolVar(&batchTUIFlag, "tui", false, "use the full-screen terminal UI")
	batchPollCmd.Flags().StringVarP(&batchOutputFlag, "output", "o", "", "save results to this file on success")
	batchPollCmd.Flags().BoolVarP(&batchResultsFlag, "results", "r", false, "preview results on success")
	batchRetryCmd.Flags().StringVarP(&batchFileFlag, "file", "f", "", "original prompts file (required)")
	batchRetryCmd.Flags().StringVar(&batchNameFlag, "name", "", "display name for the retry job")
	_ = batchRetryCmd.MarkFlagRequired("file")
	batchExportCmd.Flags().StringVarP(&batchOutputFlag, "output", "o", "", "output file path (required)")
	batchExportCmd.Flags().StringVar(&batchFormatFlag, "format", "", "output format: json, csv or txt (default from extension)")
	_ = batchExportCmd.MarkFlagRequired("output")

	batchCmd.AddCommand(batchCreateCmd)
	batchCmd.AddCommand(batchStatusCmd)
	batchCmd.AddCommand(batchListCmd)
	batchCmd.AddCommand(batchCancelCmd)
	batchCmd.AddCommand(batchPollCmd)
	batchCmd.AddCommand(batchRetryCmd)
	batchCmd.AddCommand(batchExportCmd)
}

func batchModel() string {
	if batchModelFlag != "" {
		return batchModelFlag
	}
	if modelFlag != "" {
		return modelFlag
	}
	return cfg.BatchModel
}

func newBatchClient(ctx context.Context) (llmtypes.BatchClient, error) {
	return padwan.NewBatchClient(ctx, padwan.Config{ModelID: batchModel(), Logger: logger})
}

func runBatchCreate(cmd *cobra.Command, args []string) error {
	file := batchFileFlag
	if file == "" && len(args) > 0 {
		file = args[0]
	}
	requests, err := gatherRequests(file, batchPromptsFlag)
	if err != nil {
		return err
	}

	client, err := newBatchClient(cmd.Context())
	if err != nil {
		return err
	}

	job, err := client.CreateBatch(cmd.Context(), requests, batchNameFlag)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "submitted %d request(s)\n\n", len(requests))
	fmt.Fprint(cmd.OutOrStdout(), renderer.Job(job))
	return nil
}

func runBatchStatus(cmd *cobra.Command, args []string) error {
	client, err := newBatchClient(cmd.Context())
	if err != nil {
		return err
	}

	job, err := client.GetBatch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderer.Job(job))
	if stats := job.Stats; stats != nil && stats.RequestCount > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.ProgressBar(stats.SucceededCount, stats.RequestCount, 30))
	}
	if batchResultsFlag && len(job.Results) > 0 {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), renderer.Results(job.Results))
	}
	return nil
}

func runBatchList(cmd *cobra.Command, args []string) error {
	client, err := newBatchClient(cmd.Context())
	if err != nil {
		return err
	}

	jobs, nextPage, err := client.ListBatches(cmd.Context(), batchLimitFlag)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no batch jobs")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderer.JobTable(jobs))
	if nextPage != "" {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.Styles().DimTxt.Render("more jobs available"))
	}
	return nil
}

func runBatchCancel(cmd *cobra.Command, args []string) error {
	client, err := newBatchClient(cmd.Context())
	if err != nil {
		return err
	}

	if err := client.CancelBatch(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cancel requested for %s\n", args[0])
	return nil
}

func runBatchPoll(cmd *cobra.Command, args []string) error {
	client, err := newBatchClient(cmd.Context())
	if err != nil {
		return err
	}

	interval := batchIntervalFlag
	if interval <= 0 {
		interval = cfg.PollInterval
	}
	timeout := batchTimeoutFlag
	if timeout <= 0 {
		timeout = cfg.PollTimeout
	}

	var job *llmtypes.BatchJob
	var timedOut bool
	if batchTUIFlag {
		m := tui.NewPollModel(client, args[0], interval, timeout, renderer.Styles().Theme)
		final, err := tea.NewProgram(m).Run()
		if err != nil {
			return err
		}
		pm := final.(tui.PollModel)
		if pm.Err() != nil {
			return pm.Err()
		}
		job = pm.Job()
		timedOut = pm.TimedOut()
	} else {
		job, err = pollJob(cmd.Context(), client, args[0], interval, timeout, func(j *llmtypes.BatchJob) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
				time.Now().Format("15:04:05"), j.State.Short())
		})
		switch {
		case errors.Is(err, errPollTimeout):
			timedOut = true
		case err != nil:
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout())
	if timedOut {
		fmt.Fprintln(cmd.OutOrStdout(), renderer.Styles().WarningTxt.Render(
			fmt.Sprintf("timed out after %s; job is still running", timeout)))
	}
	if job != nil {
		fmt.Fprint(cmd.OutOrStdout(), renderer.Job(job))
	}
	if job != nil && job.State.Succeeded() {
		if batchOutputFlag != "" {
			if err := exportJobResults(cmd, job, batchOutputFlag, batchFormatFlag); err != nil {
				return err
			}
		}
		if batchResultsFlag && len(job.Results) > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), renderer.Results(job.Results))
		}
	}
	return nil
}

// pollJob fetches the job on a fixed interval until it reaches a
// terminal state or the timeout passes. onState is called on every
// state transition. On timeout the last observed job is returned
// together with errPollTimeout so callers can still report its state.
func pollJob(ctx context.Context, client llmtypes.BatchClient, name string, interval, timeout time.Duration, onState func(*llmtypes.BatchJob)) (*llmtypes.BatchJob, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var last *llmtypes.BatchJob
	for {
		job, err := client.GetBatch(ctx, name)
		if err != nil {
			return last, err
		}
		if last == nil || job.State != last.State {
			if onState != nil {
				onState(job)
			}
		}
		last = job
		if job.State.IsTerminal() {
			return job, nil
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return last, fmt.Errorf("%w after %s waiting for %s", errPollTimeout, timeout, name)
		}
	}
}

// gatherRequests builds the request list from a prompts file, inline
// prompts, or both. Inline prompts are keyed after the file's entries.
func gatherRequests(file string, prompts []string) ([]llmtypes.BatchRequest, error) {
	if file == "" && len(prompts) == 0 {
		return nil, fmt.Errorf("no prompts given: pass a prompts file or -p")
	}
	var requests []llmtypes.BatchRequest
	if file != "" {
		var err error
		requests, err = batchio.LoadRequests(file)
		if err != nil {
			return nil, err
		}
	}
	for _, prompt := range prompts {
		requests = append(requests, llmtypes.BatchRequest{
			Key:    fmt.Sprintf("prompt-%d", len(requests)),
			Prompt: prompt,
		})
	}
	return requests, nil
}

func runBatchRetry(cmd *cobra.Command, args []string) error {
	requests, err := batchio.LoadRequests(batchFileFlag)
	if err != nil {
		return err
	}

	client, err := newBatchClient(cmd.Context())
	if err != nil {
		return err
	}

	job, err := client.GetBatch(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !job.State.IsTerminal() {
		return fmt.Errorf("job %s is still %s; retry once it has finished", args[0], job.State.Short())
	}

	failed := failedRequests(requests, job.Results)
	if len(failed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to retry: no failed requests")
		return nil
	}

	retry, err := client.CreateBatch(cmd.Context(), failed, batchNameFlag)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "resubmitted %d of %d request(s)\n\n", len(failed), len(requests))
	fmt.Fprint(cmd.OutOrStdout(), renderer.Job(retry))
	return nil
}

// failedRequests matches results to the original requests by key and
// keeps the requests whose results failed. A job with no results at
// all (e.g. FAILED before running) retries everything.
func failedRequests(requests []llmtypes.BatchRequest, results []llmtypes.BatchResult) []llmtypes.BatchRequest {
	if len(results) == 0 {
		return requests
	}
	failedKeys := make(map[string]bool, len(results))
	for _, result := range results {
		if result.Failed() {
			failedKeys[result.Key] = true
		}
	}
	failed := make([]llmtypes.BatchRequest, 0, len(failedKeys))
	for _, request := range requests {
		if failedKeys[request.Key] {
			failed = append(failed, request)
		}
	}
	return failed
}

func runBatchExport(cmd *cobra.Command, args []string) error {
	client, err := newBatchClient(cmd.Context())
	if err != nil {
		return err
	}

	job, err := client.GetBatch(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return exportJobResults(cmd, job, batchOutputFlag, batchFormatFlag)
}

// exportJobResults writes a succeeded job's results to path, inferring
// the format from the extension when none is given.
func exportJobResults(cmd *cobra.Command, job *llmtypes.BatchJob, path, format string) error {
	if !job.State.Succeeded() {
		return fmt.Errorf("job %s has not succeeded (state: %s)", job.Name, job.State.Short())
	}
	if len(job.Results) == 0 {
		return fmt.Errorf("job %s has no results", job.Name)
	}

	if format == "" {
		format = batchio.FormatForPath(path)
	}
	if err := batchio.SaveResults(path, format, job.Results); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d result(s) to %s (%s)\n", len(job.Results), path, format)
	return nil
}
