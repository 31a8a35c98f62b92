package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/oakmont/stint/internal/engine"
	"github.com/oakmont/stint/internal/events"
	"github.com/oakmont/stint/internal/period"
	"github.com/oakmont/stint/internal/policy"
	"github.com/oakmont/stint/internal/store"
)

// DeriveOptions holds flags for the derive command.
type DeriveOptions struct {
	*RootOptions
	Database    string
	PoliciesDir string
	AsOf        string
	RunID       string

	NoCollapseTransfers      bool
	CollapseTemporaryCustody bool

	// IDGenerator allows overriding run ID generation (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator RunIDGenerator
}

// DeriveSummary is the derive command's output payload.
type DeriveSummary struct {
	RunID            string `json:"run_id"`
	PersonID         string `json:"person_id"`
	Jurisdiction     string `json:"jurisdiction"`
	ProcessingDate   string `json:"processing_date"`
	InputPeriods     int    `json:"input_periods"`
	CanonicalPeriods int    `json:"canonical_periods"`
	Admissions       int    `json:"admissions"`
	Releases         int    `json:"releases"`
	Stays            int    `json:"stays"`
	Persisted        bool   `json:"persisted"`
}

// asOfClock pins the engine's processing date from the --as-of flag.
type asOfClock struct {
	date period.Date
}

func (c asOfClock) Today() period.Date { return c.date }

// NewDeriveCommand creates the derive command.
func NewDeriveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeriveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "derive <batch.yaml>",
		Short: "Normalize a period batch and derive events",
		Long: `Normalize one person's raw incarceration period records into the
canonical sequence and derive admission, release, and monthly stay events.

With --db, the run is persisted: the run record, canonical periods, and
derived events are written in one transaction, keyed by content so
re-running the same batch is idempotent. Without --db the summary is
printed and nothing is stored.

Examples:
  stint derive ./person.yaml
  stint derive ./person.yaml --db ./stint.db --policies ./policies
  stint derive ./person.yaml --as-of 2020-05-01 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (omit to skip persistence)")
	cmd.Flags().StringVar(&opts.PoliciesDir, "policies", "", "directory of CUE policy packs")
	cmd.Flags().StringVar(&opts.AsOf, "as-of", "", "processing date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.RunID, "run-id", "", "fixed run ID (default: generated UUIDv7)")
	cmd.Flags().BoolVar(&opts.NoCollapseTransfers, "no-collapse-transfers", false, "keep transfer-linked periods separate")
	cmd.Flags().BoolVar(&opts.CollapseTemporaryCustody, "collapse-temporary-custody", false, "merge temporary custody into following revocation")

	return cmd
}

func runDerive(opts *DeriveOptions, batchPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	batch, err := LoadBatch(batchPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load batch", err)
	}

	policies := policy.Table{}
	if opts.PoliciesDir != "" {
		policies, err = policy.LoadDir(opts.PoliciesDir)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load policy packs", err)
		}
	}

	var clock engine.Clock = engine.SystemClock{}
	if opts.AsOf != "" {
		asOf, err := period.ParseDate(opts.AsOf)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --as-of date", err)
		}
		clock = asOfClock{date: asOf}
	}

	eng := engine.New(policies, engine.WithClock(clock))

	cfg := engine.NewConfig(batch.Jurisdiction, eng.Policy(batch.Jurisdiction))
	if opts.NoCollapseTransfers {
		cfg.CollapseTransfers = false
	}
	if opts.CollapseTemporaryCustody {
		cfg.CollapseTemporaryCustodyWithRevocation = true
	}

	canonical, err := eng.Prepare(batch.Periods, cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "normalization failed", err)
	}

	derived := events.Derive(canonical, batch.Enrichment.ToEnrichment(), clock)

	idGen := opts.IDGenerator
	if idGen == nil {
		idGen = UUIDv7Generator{}
	}
	runID := opts.RunID
	if runID == "" {
		runID = idGen.Generate()
	}

	summary := DeriveSummary{
		RunID:            runID,
		PersonID:         batch.PersonID,
		Jurisdiction:     batch.Jurisdiction,
		ProcessingDate:   clock.Today().String(),
		InputPeriods:     len(batch.Periods),
		CanonicalPeriods: len(canonical),
		Admissions:       len(derived.Admissions),
		Releases:         len(derived.Releases),
		Stays:            len(derived.Stays),
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()

		run := store.Run{
			ID:             runID,
			PersonID:       batch.PersonID,
			Jurisdiction:   batch.Jurisdiction,
			ProcessingDate: clock.Today(),
		}
		inserted, err := st.WriteRunAtomic(cmd.Context(), run, canonical, derived)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to persist run", err)
		}
		if !inserted {
			formatter.VerboseLog("run %s already recorded, nothing written", runID)
		}
		summary.Persisted = true
	}

	if opts.Format == "json" {
		return formatter.Success(summary)
	}
	return printDeriveText(formatter, summary)
}

func printDeriveText(f *OutputFormatter, s DeriveSummary) error {
	fmt.Fprintf(f.Writer, "Run %s (%s, %s, as of %s)\n",
		s.RunID, s.PersonID, s.Jurisdiction, s.ProcessingDate)
	fmt.Fprintf(f.Writer, "  periods: %d raw -> %d canonical\n", s.InputPeriods, s.CanonicalPeriods)
	fmt.Fprintf(f.Writer, "  events:  %d admissions, %d releases, %d stays\n",
		s.Admissions, s.Releases, s.Stays)
	if s.Persisted {
		fmt.Fprintln(f.Writer, "  persisted")
	}
	return nil
}
