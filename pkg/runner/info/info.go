package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/store"
)

type Info struct {
	Settings *store.Settings
	Service  *app.Service
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if override := os.Getenv("AGENDA_CONFIG_PATH"); override != "" {
		fmt.Fprintln(n.Out, "AGENDA_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Fprintln(n.Out, "AGENDA_CONFIG_PATH env var not set")
	}

	if n.Settings == nil {
		var err error
		n.Settings, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if n.Settings.ConfigFile != "" {
		fmt.Fprintln(n.Out, "Config.file: ", n.Settings.ConfigFile)
	}
	fmt.Fprintln(n.Out, "Config.path: ", n.Settings.BasePath())
	fmt.Fprintln(n.Out, "Config.timezone: ", n.Settings.Timezone)
	fmt.Fprintln(n.Out, "Config.week_start: ", n.Settings.WeekStart)
	fmt.Fprintf(n.Out, "Config.visible_hours:  %02d:00-%02d:00\n", n.Settings.VisibleStartHour, n.Settings.VisibleEndHour)
	fmt.Fprintln(n.Out, "Config.conflict_policy: ", n.Settings.ConflictPolicy)

	if n.Service == nil {
		return fmt.Errorf("info: no agenda service")
	}

	fmt.Fprintf(n.Out, "Resources:\n")
	resources := n.Service.ResourceList(ctx)
	for _, r := range resources {
		fmt.Fprintf(n.Out, "  %s (%s) %d event(s)\n", r.ID, r.Type, n.Service.Events.References(r.ID))
	}
	if len(resources) == 0 {
		fmt.Fprintf(n.Out, "  %s\n", "no resources")
	}
	fmt.Fprintf(n.Out, "Events: %d\n", n.Service.Events.Len())

	return nil
}
