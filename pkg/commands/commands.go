package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/agenda/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: base.Wrap80("Book people, rooms and equipment on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error or off.")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addResource(topLevel)
	addEvent(topLevel)
	addConflicts(topLevel)
	addShow(topLevel)
	addWatch(topLevel)
	addUI(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
