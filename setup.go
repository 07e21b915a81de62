package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/FlagBrew/pokedex-api/internal/database"
	"github.com/FlagBrew/pokedex-api/internal/utils"
	"github.com/apex/log"
	"github.com/joho/godotenv"
)

func setup() context.Context {
	// A missing .env is fine, the environment may already be populated.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warn("failed to load .env")
	}

	cli.Parse()
	logger = cli.Logger

	ctx := log.NewContext(context.Background(), logger)
	cfg = utils.Setup(ctx, cli.Flags)

	if cfg.Log.File != "" {
		fileLogger, closer, err := utils.NewFileLogger(cfg.Log.File, cli.Debug)
		if err != nil {
			logger.WithError(err).WithField("path", cfg.Log.File).Fatal("failed to set up file logging")
		}
		cli.Logger = fileLogger
		logger = fileLogger
		logFile = closer
		ctx = log.NewContext(ctx, logger)
	}

	logger.WithFields(log.Fields{
		"type":     cfg.Database.DBType,
		"database": database.Describe(&cfg.Database),
	}).Info("connecting to database")

	var err error
	db, err = database.New(ctx, &cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("failed to open database connection")
	}

	if err = database.Migrate(ctx, db); err != nil {
		logger.WithError(err).Fatal("failed to run database migrations")
	}

	if cfg.Misc.ImportFile != "" {
		importPokemon(ctx)
	}

	return ctx
}

// importPokemon seeds the database from the configured file, then clears the
// setting so the next start doesn't insert the same pokemon again.
func importPokemon(ctx context.Context) {
	n, err := utils.ImportPokemon(ctx, cfg.Misc.ImportFile, database.NewPokemonStore(db))
	if err != nil {
		logger.WithError(err).WithField("file", cfg.Misc.ImportFile).Fatal("failed to import pokemon")
	}
	logger.Infof("imported %d pokemon", n)

	cfg.Misc.ImportFile = ""
	if _, err = os.Stat(cli.Flags.ConfigPath); err == nil {
		utils.SetConfig(ctx, cli.Flags.ConfigPath, cfg)
	}
}
