package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/events"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "ev"},
		Short:   "Book, move and cancel events.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventList(cmd)
	addEventMove(cmd)
	addEventRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addEventAdd(parent *cobra.Command) {
	eo := &options.EventOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book an event",
		Example: `
agenda event add standup --resource=alice --at="2026-10-15 09:00" --for=15m
agenda event add offsite --resource=room-1 --at=2026-10-15T22:00 --for=4h
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event title")
			}
			eo.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			draft, err := eo.Draft(s.service.Location())
			if err != nil {
				return output.HandleError(err)
			}
			e := events.Add{
				Draft:   draft,
				Service: s.service,
				Printer: s.printer,
				Format:  s.format,
			}
			return output.HandleError(e.Do(ctx))
		},
	}

	options.AddEventArgs(cmd, eo)
	_ = cmd.MarkFlagRequired("at")
	_ = cmd.RegisterFlagCompletionFunc("resource", resourceCompletions)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addEventList(parent *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List events in start order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			e := events.List{
				Resources: vo.Resources,
				Service:   s.service,
				Printer:   s.printer,
				Format:    s.format,
			}
			return output.HandleError(e.Do(ctx))
		},
	}

	options.AddResourceFilterArgs(cmd, vo)
	_ = cmd.RegisterFlagCompletionFunc("resource", resourceCompletions)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addEventMove(parent *cobra.Command) {
	eo := &options.EventOptions{}

	cmd := &cobra.Command{
		Use:     "move <id>",
		Aliases: []string{"mv", "update"},
		Short:   "Move, resize or rebook an event",
		Example: `
agenda event move 6f1c --at="2026-10-16 09:00"
agenda event move 6f1c --resource=room-2 --for=2h
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			current, err := s.service.Events.Get(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			patch, err := eo.Patch(cmd, current, s.service.Location())
			if err != nil {
				return output.HandleError(err)
			}
			e := events.Move{
				ID:      args[0],
				Patch:   patch,
				Service: s.service,
				Printer: s.printer,
				Format:  s.format,
			}
			return output.HandleError(e.Do(ctx))
		},
	}

	options.AddMoveArgs(cmd, eo)
	_ = cmd.RegisterFlagCompletionFunc("resource", resourceCompletions)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addEventRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "cancel"},
		Short:   "Cancel an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			e := events.Remove{ID: args[0], Service: s.service, Printer: s.printer}
			return output.HandleError(e.Do(ctx))
		},
	}

	parent.AddCommand(cmd)
}

func addConflicts(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "conflicts <event-id>",
		Short: "Show the events double booked with an event",
		Example: `
agenda conflicts 6f1c
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			e := events.Conflicts{
				ID:      args[0],
				Service: s.service,
				Printer: s.printer,
				Format:  s.format,
			}
			return output.HandleError(e.Do(ctx))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
