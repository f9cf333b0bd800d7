package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	fo := &options.FileOptions{}
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write events as an iCalendar file",
		Example: `
agenda export > agenda.ics
agenda export --file=alice.ics -r alice
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			e := transfer.Export{
				File:      fo.File,
				Resources: vo.Resources,
				Service:   s.service,
				Out:       os.Stdout,
			}
			return output.HandleError(e.Do(ctx))
		},
	}

	cmd.Flags().StringVarP(&fo.File, "file", "f", "-", "File to write, - for stdout.")
	options.AddResourceFilterArgs(cmd, vo)
	_ = cmd.RegisterFlagCompletionFunc("resource", resourceCompletions)
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	fo := &options.FileOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Read events from an iCalendar file",
		Long: `Import reads VEVENTs. Events whose UID is already booked are updated,
the rest are created. Events without an agenda resource are booked on
--resource. Events that cannot be booked are skipped and reported.`,
		Example: `
agenda import --file=holidays.ics --resource=room-1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			i := transfer.Import{
				File:            fo.File,
				DefaultResource: fo.Resource,
				Service:         s.service,
				In:              os.Stdin,
				Printer:         s.printer,
				Format:          s.format,
			}
			return output.HandleError(i.Do(ctx))
		},
	}

	cmd.Flags().StringVarP(&fo.File, "file", "f", "-", "File to read, - for stdin.")
	cmd.Flags().StringVarP(&fo.Resource, "resource", "r", "", "Resource for events that do not name one.")
	_ = cmd.RegisterFlagCompletionFunc("resource", resourceCompletions)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
