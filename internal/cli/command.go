package cli

import (
	"context"

	"caseline/internal/modkit"

	"github.com/spf13/cobra"
)

// NewRoot builds the caseline command tree over e
func NewRoot(e Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "caseline",
		Short: "Caseline operator tool",
		Long: `Caseline packs recorded units into identified cases.

This tool previews case identifier patterns, seeds products and orders from a
YAML file and runs one-off sweeps of empty cases. Commands that touch data use
the same SERVICE_* and CORE_API_* environment as the API.

Examples:
  # Next three identifiers after a known case
  caseline preview 'YYYYMMDD-###' --previous 20240115-007 -n 3

  # Load fixtures for org1
  caseline seed fixtures.yaml --org org1

  # Report empty cases older than an hour without destroying them
  caseline sweep --org org1 --min-age 1h --dry-run`,
		SilenceUsage: true,
	}
	root.SetOut(e.Out)

	root.AddCommand(previewCmd(e), seedCmd(e), sweepCmd(e), versionCmd(e))
	return root
}

func previewCmd(e Env) *cobra.Command {
	var opt PreviewOptions
	cmd := &cobra.Command{
		Use:   "preview PATTERN",
		Short: "Print the identifiers a case pattern produces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Preview(e, args[0], opt)
		},
	}
	cmd.Flags().StringVarP(&opt.Previous, "previous", "p", "", "identifier to continue from (default: the pattern)")
	cmd.Flags().IntVarP(&opt.Count, "count", "n", 1, "how many identifiers to print")
	cmd.Flags().StringVar(&opt.Zone, "zone", "", "IANA zone for date tokens (default: local)")
	return cmd
}

func seedCmd(e Env) *cobra.Command {
	var org string
	cmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Create products and orders from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := LoadFixtures(args[0])
			if err != nil {
				return err
			}
			return withDeps(cmd.Context(), e, func(ctx context.Context, deps modkit.Deps) error {
				out, err := Seed(ctx, deps, fx, org)
				if err != nil {
					return err
				}
				return e.printJSON(out)
			})
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "organization to seed (default: the file's org)")
	return cmd
}

func sweepCmd(e Env) *cobra.Command {
	var opt SweepOptions
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Destroy empty cases once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), e, func(ctx context.Context, deps modkit.Deps) error {
				rep, err := Sweep(ctx, deps, opt)
				if werr := e.printJSON(rep); werr != nil {
					return werr
				}
				return err
			})
		},
	}
	cmd.Flags().StringSliceVar(&opt.Orgs, "org", nil, "organization to sweep (repeatable)")
	cmd.Flags().DurationVar(&opt.MinAge, "min-age", 0, "only empty cases older than this (default: CORE_SWEEPER_MIN_AGE)")
	cmd.Flags().BoolVar(&opt.DryRun, "dry-run", false, "report without destroying")
	return cmd
}

func versionCmd(e Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Version(e)
		},
	}
}

// withDeps opens the deps for one command and closes them after fn
func withDeps(ctx context.Context, e Env, fn func(context.Context, modkit.Deps) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	deps, closeFn, err := e.Open(ctx)
	if err != nil {
		return err
	}
	err = fn(ctx, deps)
	if closeFn != nil {
		if cerr := closeFn(context.Background()); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
