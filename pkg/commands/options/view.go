package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/window"
)

// ViewOptions
type ViewOptions struct {
	View      string
	On        string
	Resources []string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringVar(&o.View, "view", string(window.ViewWeek),
		"View to render: day, week, month or resource.")
	cmd.Flags().StringVar(&o.On, "on", "",
		`Anchor date, example: --on="2026-10-15". Defaults to today.`)
	AddResourceFilterArgs(cmd, o)
}

func AddResourceFilterArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringSliceVarP(&o.Resources, "resource", "r", nil,
		"Only include these resource ids. Repeatable.")
}

// Anchor parses --on in loc; empty gives the zero time.
func (o *ViewOptions) Anchor(loc *time.Location) (time.Time, error) {
	if o.On == "" {
		return time.Time{}, nil
	}
	return event.ParseTime(o.On, loc)
}

// ReportOptions
type ReportOptions struct {
	Last string
}

// FileOptions
type FileOptions struct {
	File     string
	Resource string
}
