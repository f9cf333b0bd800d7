package commands

import (
	"context"
	"os"

	"go.uber.org/zap"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/logging"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/schedule"
	"tableflip.dev/agenda/pkg/store"
)

// session is everything a command needs to run against the store.
type session struct {
	settings *store.Settings
	service  *app.Service
	printer  *printers.Printer
	format   printers.Format
	log      *zap.Logger
}

func openSession(ctx context.Context) (*session, error) {
	format, err := output.Format()
	if err != nil {
		return nil, err
	}
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	p, err := store.Load(settings, store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	policy, err := schedule.ParseConflictPolicy(settings.ConflictPolicy)
	if err != nil {
		return nil, err
	}
	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}
	svc, err := app.Open(ctx, p, app.Config{
		Location:         loc,
		WeekStart:        settings.WeekStart,
		VisibleStartHour: settings.VisibleStartHour,
		VisibleEndHour:   settings.VisibleEndHour,
		ConflictPolicy:   policy,
		StrictResources:  settings.StrictResources,
		Logger:           log,
	})
	if err != nil {
		return nil, err
	}
	printer := printers.New(os.Stdout)
	printer.Location = loc
	return &session{
		settings: settings,
		service:  svc,
		printer:  printer,
		format:   format,
		log:      log,
	}, nil
}

func (s *session) Close() {
	_ = s.log.Sync()
}
