package main

import (
	"io"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/apex/log"
	"github.com/lrstanley/chix"
	"github.com/lrstanley/clix"
)

var (
	cli     = &clix.CLI[models.Flags]{}
	logger  log.Interface
	db      *entsql.Driver
	cfg     *models.Config
	logFile io.Closer
)

func main() {
	ctx := setup()

	logger.Infof("Starting HTTP server on %s:%d", cfg.HTTP.ListeningAddr, cfg.HTTP.Port)
	if err := chix.RunContext(ctx, httpServer(ctx)); err != nil {
		logger.WithError(err).Error("http server stopped")
	}

	if err := db.Close(); err != nil {
		logger.WithError(err).Error("failed to close database")
	}
	if logFile != nil {
		_ = logFile.Close()
	}
}
