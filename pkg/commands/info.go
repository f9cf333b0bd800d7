package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where the agenda is stored.",
		Example: `
agenda info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			n := info.Info{
				Settings: s.settings,
				Service:  s.service,
				Out:      os.Stdout,
			}
			err = n.Do(ctx)
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
