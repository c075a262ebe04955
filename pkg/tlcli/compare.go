package tlcli

import (
	"context"
	"fmt"
	"log"

	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/os/osutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlexperiment"
	"github.com/spf13/cobra"
)

func compareEntrypoint() *cobra.Command {
	opts := tlexperiment.Options{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Race the solvers over generated instances and tabulate the outcomes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			osutil.ExitIfError(compare(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				opts,
				rootLogger))
		},
	}
	cmd.Flags().StringSliceVarP(&opts.Sizes, "sizes", "", opts.Sizes, "Instance sizes (default small,medium)")
	cmd.Flags().Int64SliceVarP(&opts.Seeds, "seeds", "", opts.Seeds, "Generator seeds (default 42)")
	cmd.Flags().StringSliceVarP(&opts.Solvers, "solvers", "", opts.Solvers, "Engines to race (default all)")
	cmd.Flags().DurationVarP(&opts.TimeLimit, "time-limit", "", opts.TimeLimit, "Per-run time limit (default 1m0s)")
	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "", opts.Concurrency, "Parallel runs (default 3)")

	return cmd
}

func compare(ctx context.Context, opts tlexperiment.Options, logger *log.Logger) error {
	env, _, err := loadEnvConfig()
	if err != nil {
		return err
	}

	comparison, err := tlexperiment.Run(ctx, opts, logger)
	if err != nil {
		return err
	}

	fmt.Println(comparison.Render())

	path, err := comparison.SaveCSV(env.ExportsDir())
	if err != nil {
		return err
	}

	fmt.Println("saved: " + path)

	return nil
}
