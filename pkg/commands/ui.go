package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse the agenda interactively",
		Example: `
agenda ui
agenda ui --view=resource
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			r, err := buildShow(s, vo)
			if err != nil {
				return err
			}
			return tui.Run(ctx, s.service, r.View, r.Anchor, r.Resources)
		},
	}

	options.AddViewArgs(cmd, vo)
	_ = cmd.RegisterFlagCompletionFunc("view", viewCompletions)
	_ = cmd.RegisterFlagCompletionFunc("resource", resourceCompletions)
	topLevel.AddCommand(cmd)
}
