package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/resource"
	"tableflip.dev/agenda/pkg/runner/resources"
)

func addResource(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"resources", "res"},
		Short:   "Manage the people, rooms and equipment events are booked on.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addResourceAdd(cmd)
	addResourceList(cmd)
	addResourceUpdate(cmd)
	addResourceRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addResourceAdd(parent *cobra.Command) {
	ro := &options.ResourceOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a resource",
		Example: `
agenda resource add Alice --id=alice
agenda resource add Board room --type=room --color="#3366ff"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a resource name")
			}
			ro.Name = strings.Join(args, " ")
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

			r := resources.Add{
				Resource: resource.Resource{
					ID:     ro.ID,
					Name:   ro.Name,
					Type:   resource.ParseType(ro.Type),
					Color:  ro.Color,
					Avatar: ro.Avatar,
				},
				Service: s.service,
				Printer: s.printer,
				Format:  s.format,
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddResourceArgs(cmd, ro)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addResourceList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List resources",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := resources.List{Service: s.service, Printer: s.printer, Format: s.format}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addResourceUpdate(parent *cobra.Command) {
	ro := &options.ResourceOptions{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a resource",
		Example: `
agenda resource update alice --color=teal
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: resourceCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := resources.Update{
				ID:      args[0],
				Patch:   ro.Patch(cmd),
				Service: s.service,
				Printer: s.printer,
				Format:  s.format,
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddResourcePatchArgs(cmd, ro)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}

func addResourceRemove(parent *cobra.Command) {
	ro := &options.RemoveOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a resource",
		Long: `Remove a resource. Events booked on it are kept and keep pointing at the
removed id unless --require-unreferenced is set.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: resourceCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			s, err := openSession(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := resources.Remove{
				ID:                  args[0],
				RequireUnreferenced: ro.RequireUnreferenced,
				Service:             s.service,
				Printer:             s.printer,
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddRemoveArgs(cmd, ro)
	parent.AddCommand(cmd)
}
