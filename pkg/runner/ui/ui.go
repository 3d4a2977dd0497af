// Package ui runs the full screen journal.
package ui

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/jotty/pkg/app"
	teaui "tableflip.dev/jotty/pkg/runner/tea"
	"tableflip.dev/jotty/pkg/store"
	"tableflip.dev/jotty/pkg/timeutil"
)

type UI struct {
	Journal store.Backend
	On      timeutil.Day
	Logger  *slog.Logger
}

func (d *UI) Do(ctx context.Context) error {
	if d.Journal == nil {
		return errors.New("can not open ui, no journal")
	}
	if d.Logger != nil {
		d.Logger.Info("ui starting", "day", d.On.Key())
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []teaui.Option{teaui.WithLogger(d.Logger)}
	if w, ok := d.Journal.(store.Watcher); ok {
		opts = append(opts, teaui.WithWatcher(ctx, w))
	}
	err := teaui.Run(app.New(d.On, d.Journal), opts...)
	if d.Logger != nil {
		d.Logger.Info("ui stopped", "err", err)
	}
	return err
}
