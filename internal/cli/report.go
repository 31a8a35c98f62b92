package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
	"github.com/oakmont/stint/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database string
	Kind     string
	From     string
	To       string
}

// ReportRow is one event in the report output.
type ReportRow struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	EventDate string `json:"event_date"`
}

// Report is the report command's output payload.
type Report struct {
	RunID          string      `json:"run_id"`
	PersonID       string      `json:"person_id"`
	Jurisdiction   string      `json:"jurisdiction"`
	ProcessingDate string      `json:"processing_date"`
	Events         []ReportRow `json:"events"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report <run-id>",
		Short: "List a persisted run's derived events",
		Long: `Query a run's derived events from the database, optionally narrowed
by kind and date range. Output order is deterministic (event date, then
event ID).

Examples:
  stint report 018f3c6e-... --db ./stint.db
  stint report 018f3c6e-... --db ./stint.db --kind STAY --from 2009-01-01 --to 2009-12-31`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "filter by event kind (ADMISSION|RELEASE|STAY)")
	cmd.Flags().StringVar(&opts.From, "from", "", "earliest event date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "latest event date (YYYY-MM-DD, inclusive)")

	return cmd
}

func runReport(opts *ReportOptions, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.Database))
	}

	filter := store.EventFilter{Kind: events.Kind(opts.Kind)}
	var err error
	if filter.From, err = parseOptionalDate(opts.From); err != nil {
		return WrapExitError(ExitCommandError, "invalid --from date", err)
	}
	if filter.To, err = parseOptionalDate(opts.To); err != nil {
		return WrapExitError(ExitCommandError, "invalid --to date", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	run, err := st.ReadRun(ctx, runID)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("run %s not found", runID), err)
	}

	records, err := st.QueryEvents(ctx, runID, filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to query events", err)
	}

	report := Report{
		RunID:          run.ID,
		PersonID:       run.PersonID,
		Jurisdiction:   run.Jurisdiction,
		ProcessingDate: run.ProcessingDate.String(),
		Events:         make([]ReportRow, len(records)),
	}
	for i, rec := range records {
		report.Events[i] = ReportRow{
			ID:        rec.ID,
			Kind:      string(rec.Kind),
			EventDate: rec.EventDate.String(),
		}
	}

	if opts.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "Run %s (%s, %s, as of %s): %d event(s)\n",
		report.RunID, report.PersonID, report.Jurisdiction, report.ProcessingDate, len(report.Events))
	for _, row := range report.Events {
		fmt.Fprintf(formatter.Writer, "  %s  %-9s  %s\n", row.EventDate, row.Kind, row.ID[:12])
	}
	return nil
}

func parseOptionalDate(s string) (*period.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := period.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return period.DatePtr(d), nil
}
