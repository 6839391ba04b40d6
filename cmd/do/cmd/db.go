package cmd

import (
	"github.com/jmoiron/sqlx"
	"github.com/mindtrack/mindtrack/internal/config"
	"github.com/mindtrack/mindtrack/internal/db"
	"github.com/mindtrack/mindtrack/internal/logger"
)

// withDB loads the app config, opens the configured database and closes it
// after fn returns.
func withDB(fn func(cfg *config.Config, database *sqlx.DB) error) error {
	cfg := config.Load()
	logger.Init(true, "")

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(database)

	return fn(cfg, database)
}
