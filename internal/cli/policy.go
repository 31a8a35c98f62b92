package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/oakmont/stint/internal/policy"
)

// PolicyOptions holds flags for the policy command.
type PolicyOptions struct {
	*RootOptions
	Jurisdiction string
}

// NewPolicyCommand creates the policy command.
func NewPolicyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PolicyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "policy <policies-dir>",
		Short: "Compile and inspect CUE policy packs",
		Long: `Compile the CUE policy packs in a directory and print the resulting
jurisdiction table. Compile errors are reported with source positions.

With --jurisdiction, prints the effective policy for that code, falling
back to the permissive default when no pack entry exists.

Examples:
  stint policy ./policies
  stint policy ./policies --jurisdiction US-MO --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPolicy(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Jurisdiction, "jurisdiction", "", "show the effective policy for one jurisdiction code")

	return cmd
}

func runPolicy(opts *PolicyOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	table, err := policy.LoadDir(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compile policy packs", err)
	}

	if opts.Jurisdiction != "" {
		p := table.For(opts.Jurisdiction)
		if opts.Format == "json" {
			return formatter.Success(p)
		}
		printPolicyText(formatter, p, !containsKey(table, opts.Jurisdiction))
		return nil
	}

	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	if opts.Format == "json" {
		policies := make([]policy.Policy, len(codes))
		for i, code := range codes {
			policies[i] = table[code]
		}
		return formatter.Success(policies)
	}

	fmt.Fprintf(formatter.Writer, "%d jurisdiction(s) compiled\n", len(codes))
	for _, code := range codes {
		printPolicyText(formatter, table[code], false)
	}
	return nil
}

func printPolicyText(f *OutputFormatter, p policy.Policy, isDefault bool) {
	suffix := ""
	if isDefault {
		suffix = " (default)"
	}
	fmt.Fprintf(f.Writer, "%s%s\n", p.Jurisdiction, suffix)
	fmt.Fprintf(f.Writer, "  temporary_custody_under_state_authority: %t\n", p.TemporaryCustodyUnderStateAuthority)
	fmt.Fprintf(f.Writer, "  non_prison_under_state_authority:        %t\n", p.NonPrisonUnderStateAuthority)
	fmt.Fprintf(f.Writer, "  collapse_temporary_custody_with_revocation: %t\n", p.CollapseTemporaryCustodyWithRevocation)
}

func containsKey(table policy.Table, code string) bool {
	_, ok := table[code]
	return ok
}
