package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/runner/show"
	"tableflip.dev/agenda/pkg/window"
)

func viewCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var views []string
	for _, v := range window.AllViews() {
		views = append(views, string(v))
	}
	return views, cobra.ShellCompDirectiveNoFileComp
}

func buildShow(s *session, vo *options.ViewOptions) (show.Show, error) {
	view, err := window.ParseView(vo.View)
	if err != nil {
		return show.Show{}, err
	}
	anchor, err := vo.Anchor(s.service.Location())
	if err != nil {
		return show.Show{}, err
	}
	return show.Show{
		View:      view,
		Anchor:    anchor,
		Resources: vo.Resources,
		Service:   s.service,
		Printer:   s.printer,
		Format:    s.format,
	}, nil
}

func addShow(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render a day, week, month or resource view",
		Example: `
agenda show
agenda show --view=day --on=2026-10-15
agenda show --view=resource -r alice -r room-1
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

			r, err := buildShow(s, vo)
			if err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddViewArgs(cmd, vo)
	_ = cmd.RegisterFlagCompletionFunc("view", viewCompletions)
	_ = cmd.RegisterFlagCompletionFunc("resource", resourceCompletions)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addWatch(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render a view and redraw it whenever the agenda changes on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r, err := buildShow(s, vo)
			if err != nil {
				return output.HandleError(err)
			}
			w := show.Watch{Show: r, Logger: s.log}
			if s.format == printers.Text && s.printer.Color {
				w.Clear = "\x1b[H\x1b[2J"
			}
			return output.HandleError(w.Do(ctx))
		},
	}

	options.AddViewArgs(cmd, vo)
	_ = cmd.RegisterFlagCompletionFunc("view", viewCompletions)
	_ = cmd.RegisterFlagCompletionFunc("resource", resourceCompletions)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
