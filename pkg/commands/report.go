package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/report"
	"tableflip.dev/agenda/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	ro := &options.ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display booked time per resource",
		Long: `Report lists events grouped by resource within the specified time window,
with each resource's utilization of the visible hours.

Examples:
  agenda report
  agenda report --last 3d
  agenda report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := report.Report{
				Last:    ro.Last,
				Service: s.service,
				Printer: s.printer,
				Format:  s.format,
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	cmd.Flags().StringVar(&ro.Last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
