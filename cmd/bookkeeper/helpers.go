package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alwaysmad/bookkeeper/internal/cli"
	"github.com/alwaysmad/bookkeeper/internal/config"
	"github.com/alwaysmad/bookkeeper/internal/controller"
	"github.com/alwaysmad/bookkeeper/internal/model"
	"github.com/alwaysmad/bookkeeper/internal/storage"
)

// appConfig is filled by initConfig before any command runs.
var appConfig config.Config

// app is an open store with the repositories of every entity kind.
type app struct {
	store *storage.SQLiteStore
	repos *storage.Repositories
	cfg   config.Config
}

// openApp opens the configured database and prepares its tables.
func openApp(ctx context.Context, cfg config.Config) (*app, error) {
	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	repos, err := storage.OpenRepositories(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to prepare database: %w", err)
	}
	return &app{store: store, repos: repos, cfg: cfg}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// bookkeeper wires view to the repositories.
func (a *app) bookkeeper(view controller.View) *controller.Bookkeeper {
	return controller.New(view, a.repos.Categories, a.repos.Budgets, a.repos.Expenses,
		controller.WithSeed(seedFrom(a.cfg.Defaults)),
		controller.WithLogger(slog.Default()),
	)
}

// startHeadless starts a bookkeeper behind a console view that never reads
// input. Commands run through the view reach the same handlers as the
// interactive views.
func (a *app) startHeadless(ctx context.Context) (*cli.ConsoleView, error) {
	view := cli.NewConsoleView(strings.NewReader(""), io.Discard, nil)
	if err := a.bookkeeper(view).Start(ctx); err != nil {
		return nil, err
	}
	return view, nil
}

func seedFrom(d config.DefaultsConfig) controller.Seed {
	return controller.Seed{
		Budgets: []model.Budget{
			model.NewBudget(d.DayBudget, model.PeriodDay),
			model.NewBudget(d.WeekBudget, model.PeriodWeek),
			model.NewBudget(d.MonthBudget, model.PeriodMonth),
		},
		Categories: d.Categories,
	}
}
