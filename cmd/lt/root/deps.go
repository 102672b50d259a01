package root

import (
	"context"

	"go.uber.org/zap"

	"lifetracker/internal/activity"
	"lifetracker/internal/backup"
	"lifetracker/internal/config"
	"lifetracker/internal/logging"
	"lifetracker/internal/quest"
	"lifetracker/internal/reading"
	"lifetracker/internal/store"
)

// app bundles the wired services for one command invocation. Everything is
// constructed and passed explicitly; there are no ambient singletons.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	quests   *quest.Service
	activity *activity.Aggregator
	backups  *backup.Manager
	reading  reading.Provider
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(cfg.Log)

	st, err := store.New(cfg.DataDir, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}
	bm, err := backup.NewManager(st, cfg.BackupDir, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		store:    st,
		quests:   quest.NewService(st, log),
		activity: activity.NewAggregator(st),
		backups:  bm,
		reading:  reading.NewSQLiteProvider(cfg.ReadingStatsDB),
	}
	cleanup := func() {
		_ = st.FlushAll(ctx)
		_ = log.Sync()
	}
	return a, cleanup, nil
}
