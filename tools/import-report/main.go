package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.temporal.io/api/enums/v1"
	historypb "go.temporal.io/api/history/v1"
	"go.temporal.io/sdk/client"
)

const (
	defaultTemporalHost = "localhost:7233"
	defaultNamespace    = "default"
	pollInterval        = 2 * time.Second
)

type Config struct {
	TemporalHost string
	Namespace    string
	WorkflowID   string
	RunID        string
	OutputFile   string        // Output markdown file path (optional)
	QueryTimeout time.Duration // Timeout for each Temporal query
	Wait         bool          // Poll until the job completes
}

func main() {
	cfg := parseFlags()

	if cfg.WorkflowID == "" {
		fmt.Println("Error: job-id or workflow-id is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHost,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		fmt.Printf("Error creating Temporal client: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	fmt.Printf("Connected to Temporal at %s (namespace: %s)\n", cfg.TemporalHost, cfg.Namespace)
	fmt.Printf("Reporting on import job workflow: %s\n", cfg.WorkflowID)

	var report *JobReport
	for {
		report, err = collectReport(ctx, c, cfg)
		if err != nil {
			fmt.Printf("\nError collecting report: %v\n", err)
			os.Exit(1)
		}

		if !cfg.Wait || isWorkflowComplete(report.Status) {
			break
		}

		closed := 0
		for _, chunk := range report.Chunks {
			if chunk.Closed != nil {
				closed++
			}
		}
		fmt.Printf("\r⏳ Waiting... (chunks closed: %d/%d, elapsed: %s)    ",
			closed, len(report.Chunks), formatDuration(time.Since(report.StartTime)))

		timer := time.NewTimer(pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			fmt.Println("\n\nINTERRUPTED - PARTIAL RESULTS")
			printReport(os.Stdout, report)
			return
		case <-timer.C:
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("IMPORT JOB REPORT")
	fmt.Println(strings.Repeat("=", 80))
	printReport(os.Stdout, report)

	if cfg.OutputFile != "" {
		if err := writeMarkdownReport(cfg.OutputFile, report); err != nil {
			fmt.Printf("\n⚠️  Warning: Failed to write markdown file: %v\n", err)
		} else {
			fmt.Printf("\n✓ Report written to: %s\n", cfg.OutputFile)
		}
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	var jobID string
	flag.StringVar(&cfg.TemporalHost, "temporal-host", defaultTemporalHost, "Temporal host address")
	flag.StringVar(&cfg.Namespace, "namespace", defaultNamespace, "Temporal namespace")
	flag.StringVar(&jobID, "job-id", "", "Import job ID")
	flag.StringVar(&cfg.WorkflowID, "workflow-id", "", "Workflow ID, overrides job-id")
	flag.StringVar(&cfg.RunID, "run-id", "", "Specific run ID (optional)")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	flag.BoolVar(&cfg.Wait, "wait", true, "Poll until the job completes")

	var queryTimeoutSeconds int
	flag.IntVar(&queryTimeoutSeconds, "query-timeout", 30, "Timeout for each Temporal query in seconds")

	flag.Parse()

	cfg.QueryTimeout = time.Duration(queryTimeoutSeconds) * time.Second
	if cfg.WorkflowID == "" && jobID != "" {
		cfg.WorkflowID = importWorkflowID(jobID)
	}

	return cfg
}

// importWorkflowID is the workflow ID the API gives an import job
func importWorkflowID(jobID string) string {
	return fmt.Sprintf("import-job-%s", jobID)
}

func collectReport(ctx context.Context, c client.Client, cfg *Config) (*JobReport, error) {
	queryCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	desc, err := c.DescribeWorkflowExecution(queryCtx, cfg.WorkflowID, cfg.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to describe workflow: %w", err)
	}
	info := desc.GetWorkflowExecutionInfo()

	report := &JobReport{
		WorkflowID: cfg.WorkflowID,
		RunID:      info.GetExecution().GetRunId(),
		Status:     info.GetStatus(),
		StartTime:  info.GetStartTime().AsTime(),
	}
	if info.GetCloseTime() != nil {
		closeTime := info.GetCloseTime().AsTime()
		report.CloseTime = &closeTime
	}

	var events []*historypb.HistoryEvent
	iter := c.GetWorkflowHistory(queryCtx, cfg.WorkflowID, report.RunID, false, enums.HISTORY_EVENT_FILTER_TYPE_ALL_EVENT)
	for iter.HasNext() {
		event, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to read workflow history: %w", err)
		}
		events = append(events, event)
	}

	report.Chunks, report.Result, report.Failure, err = buildChunks(events)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func printReport(w io.Writer, r *JobReport) {
	elapsed := time.Since(r.StartTime)
	if r.CloseTime != nil {
		elapsed = r.CloseTime.Sub(r.StartTime)
	}

	fmt.Fprintf(w, "\nWorkflow:  %s\n", r.WorkflowID)
	fmt.Fprintf(w, "Run:       %s\n", r.RunID)
	fmt.Fprintf(w, "Status:    %s\n", formatStatus(r.Status))
	fmt.Fprintf(w, "Duration:  %s\n", formatDuration(elapsed))
	fmt.Fprintf(w, "Chunks:    %d (%d retried)\n", len(r.Chunks), r.Retried())
	fmt.Fprintf(w, "Contacts:  %d (%s)\n", r.Contacts(), formatRate(r.Contacts(), elapsed))
	if r.Failure != "" {
		fmt.Fprintf(w, "Failure:   %s\n", r.Failure)
	}

	if s := r.Result; s != nil {
		fmt.Fprintf(w, "\nCache hits:     %d (%s)\n", s.CacheHits, percentageString(s.CacheHits, s.Total))
		fmt.Fprintf(w, "Fresh lookups:  %d\n", s.FreshLookups)
		fmt.Fprintf(w, "Uncached:       %d\n", s.Uncached)
		fmt.Fprintf(w, "Not found:      %d\n", s.NotFound)
		fmt.Fprintf(w, "Failed:         %d\n", s.Failed)
		fmt.Fprintf(w, "Repeats:        %d\n", s.RepeatResolutions)
		fmt.Fprintf(w, "Credits:        %d\n", s.CreditsCharged)
		fmt.Fprintf(w, "Savings:        $%s\n", s.Savings.String())
		if len(s.FailedChunks) > 0 {
			fmt.Fprintf(w, "Failed chunks:  %v\n", s.FailedChunks)
		}
	}

	if slowest := r.SlowestChunk(); slowest != nil {
		fmt.Fprintf(w, "\nSlowest chunk:  #%d, %s for %d contacts\n",
			slowest.ChunkIndex, formatDuration(slowest.Duration()), slowest.Contacts)
	}
}

func writeMarkdownReport(path string, r *JobReport) error {
	var sb strings.Builder

	sb.WriteString("# Import Job Report\n\n")
	sb.WriteString(fmt.Sprintf("- **Workflow:** `%s`\n", r.WorkflowID))
	sb.WriteString(fmt.Sprintf("- **Run:** `%s`\n", r.RunID))
	sb.WriteString(fmt.Sprintf("- **Status:** %s\n", formatStatus(r.Status)))
	sb.WriteString(fmt.Sprintf("- **Contacts:** %d\n\n", r.Contacts()))

	if s := r.Result; s != nil {
		sb.WriteString("## Outcomes\n\n")
		sb.WriteString("| Cache hits | Fresh | Uncached | Not found | Failed | Repeats | Credits | Savings |\n")
		sb.WriteString("|---|---|---|---|---|---|---|---|\n")
		sb.WriteString(fmt.Sprintf("| %d (%s) | %d | %d | %d | %d | %d | %d | $%s |\n\n",
			s.CacheHits, percentageString(s.CacheHits, s.Total), s.FreshLookups, s.Uncached,
			s.NotFound, s.Failed, s.RepeatResolutions, s.CreditsCharged, s.Savings.String()))
	}

	sb.WriteString("## Chunks\n\n")
	sb.WriteString("| # | | Contacts | Attempt | Duration | Hits | Fresh | Failure |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, c := range r.Chunks {
		hits, fresh := "-", "-"
		if c.Summary != nil {
			hits = fmt.Sprintf("%d", c.Summary.CacheHits)
			fresh = fmt.Sprintf("%d", c.Summary.FreshLookups)
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %d | %d | %s | %s | %s | %s |\n",
			c.ChunkIndex, chunkStatus(c), c.Contacts, c.Attempt, formatDuration(c.Duration()), hits, fresh, c.Failure))
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}
