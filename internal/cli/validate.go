package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oakmont/stint/internal/engine"
	"github.com/oakmont/stint/internal/harness"
	"github.com/oakmont/stint/internal/period"
	"github.com/oakmont/stint/internal/policy"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	PoliciesDir string
	AsOf        string
}

// ValidateReport is the validate command's output payload.
type ValidateReport struct {
	PersonID         string   `json:"person_id"`
	Jurisdiction     string   `json:"jurisdiction"`
	InputPeriods     int      `json:"input_periods"`
	CanonicalPeriods int      `json:"canonical_periods"`
	Dropped          int      `json:"dropped"`
	Violations       []string `json:"violations,omitempty"`
	Pass             bool     `json:"pass"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <batch.yaml>",
		Short: "Check a period batch against the structural invariants",
		Long: `Run a batch through normalization and verify the canonical output
satisfies every structural invariant (identity, dated admissions, ordered
list, closed releases). Reports how many records the pipeline dropped.

Exit codes:
  0 - All invariants hold
  1 - One or more violations
  2 - Command error (bad paths, malformed input)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.PoliciesDir, "policies", "", "directory of CUE policy packs")
	cmd.Flags().StringVar(&opts.AsOf, "as-of", "", "processing date (YYYY-MM-DD, default today)")

	return cmd
}

func runValidate(opts *ValidateOptions, batchPath string, cmd *cobra.Command) error {
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

	canonical, err := eng.Prepare(batch.Periods, cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "normalization failed", err)
	}

	invariants := harness.CheckInvariants(canonical)

	report := ValidateReport{
		PersonID:         batch.PersonID,
		Jurisdiction:     batch.Jurisdiction,
		InputPeriods:     len(batch.Periods),
		CanonicalPeriods: len(canonical),
		Dropped:          len(batch.Periods) - len(canonical),
		Pass:             invariants.Pass(),
	}
	for _, v := range invariants.Violations {
		report.Violations = append(report.Violations, v.String())
	}

	if opts.Format == "json" {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		printValidateText(formatter, report)
	}

	if !report.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invariant violation(s)", len(report.Violations)))
	}
	return nil
}

func printValidateText(f *OutputFormatter, r ValidateReport) {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	dim := color.New(color.FgHiBlack)

	fmt.Fprintf(f.Writer, "Batch %s (%s)\n", r.PersonID, r.Jurisdiction)
	fmt.Fprintf(f.Writer, "  periods: %d raw -> %d canonical", r.InputPeriods, r.CanonicalPeriods)
	if r.Dropped > 0 {
		dim.Fprintf(f.Writer, " (%d dropped)", r.Dropped)
	}
	fmt.Fprintln(f.Writer)

	if r.Pass {
		pass.Fprintln(f.Writer, "  ✓ all invariants hold")
		return
	}
	for _, v := range r.Violations {
		fail.Fprintf(f.Writer, "  ✗ %s\n", v)
	}
}
