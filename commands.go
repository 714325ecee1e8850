package detstream

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCommand creates the Cobra command tree for the detstream CLI.
//
// Commands provided:
//   - detstream estimate -m <model>... [-t <queries>] [-e <estimates>]
//   - detstream inspect  -m <model>... [--json]
//
// Global flags: --model/-m (repeatable, required), --quiet, --verbose
func NewCommand(opts ...RegistryOption) *cobra.Command {
	var (
		modelPaths []string
		quiet      bool
		verbose    bool
	)

	// Registry is loaded in PersistentPreRunE, once flags are parsed.
	var reg *Registry

	cmd := &cobra.Command{
		Use:   "detstream",
		Short: "Ensemble density estimation over query streams",
		Long: "Evaluate an ensemble of trained density estimation trees against a " +
			"stream of query points, writing one support-weighted density estimate " +
			"per input line.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip registry loading for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			var err error
			reg, err = LoadRegistry(modelPaths, opts...)
			if err != nil {
				return err
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if reg == nil {
				return nil
			}
			return reg.Close()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringSliceVarP(&modelPaths, "model", "m", nil,
		"Trained density tree model file (repeatable)")
	cmd.MarkPersistentFlagRequired("model")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	cmd.AddCommand(estimateCmd(&reg, &quiet, &verbose))
	cmd.AddCommand(inspectCmd(&reg))

	return cmd
}

func estimateCmd(reg **Registry, quiet, verbose *bool) *cobra.Command {
	var (
		testFile      string
		estimatesFile string
		workers       int
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Stream density estimates for query points",
		Long: "Read whitespace-separated query vectors line by line, evaluate each " +
			"against the loaded ensemble, and write one density estimate per line. " +
			"The stream ends at the first empty line or at end of input.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			in, err := OpenInput(testFile)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := OpenOutput(estimatesFile)
			if err != nil {
				return err
			}

			ev := NewEvaluator(*reg, WithWorkers(workers))
			stats, err := ev.Run(ctx, in, out)
			if err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("%w: %v", ErrOpenOutput, err)
			}

			if !*quiet {
				printRunSummary(cmd.ErrOrStderr(), stats, *verbose)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&testFile, "test-file", "t", "",
		"Query points file (default: standard input)")
	cmd.Flags().StringVarP(&estimatesFile, "estimates-file", "e", "",
		"Estimates output file (default: standard output)")
	cmd.Flags().IntVarP(&workers, "workers", "w", defaultWorkersFlag(),
		"Concurrent model evaluations per query")

	return cmd
}

func inspectCmd(reg **Registry) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show loaded model information",
		Long:  "Show dimensionality, support and shape of each loaded model.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return outputModelInfos(cmd.OutOrStdout(), (*reg).Infos(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

// defaultWorkersFlag resolves the default worker count, honoring the
// DETSTREAM_WORKERS environment variable when set.
func defaultWorkersFlag() int {
	if env := os.Getenv("DETSTREAM_WORKERS"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			return n
		}
	}
	return DefaultWorkers()
}

// Output helpers

func printRunSummary(w io.Writer, stats Stats, verbose bool) {
	fmt.Fprintf(w, "Processed %d queries, wrote %d estimates\n",
		stats.LinesRead, stats.EstimatesWritten)
	if verbose || stats.MalformedLines > 0 || stats.DegenerateLines > 0 {
		fmt.Fprintf(w, "Malformed lines:  %d\n", stats.MalformedLines)
		fmt.Fprintf(w, "Degenerate lines: %d\n", stats.DegenerateLines)
	}
}

func outputModelInfos(w io.Writer, infos []ModelInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tDIMENSION\tSUPPORT\tLEAVES")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n",
			info.Path, info.Dimension, info.Support, info.Leaves)
	}
	return tw.Flush()
}
