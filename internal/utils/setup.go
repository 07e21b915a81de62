package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/apex/log"
)

// Setup loads the config file when there is one, otherwise the config is built
// from the flags (and the environment they were read from).
func Setup(ctx context.Context, flags *models.Flags) *models.Config {
	logger := log.FromContext(ctx)

	cfg, err := loadConfig(flags.ConfigPath)
	if err != nil {
		logger.WithError(err).WithField("path", flags.ConfigPath).Fatal("failed to load config")
	}

	if cfg == nil {
		if flags.Mode == "docker" && flags.Database.ConnectionString == "" {
			logger.Fatal("You're running in docker mode without a config.json or a database URL, set DB_URL or volume mount the config.json.")
		}
		cfg = configFromFlags(flags)
	}

	if err = models.ValidateConfig(cfg); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	return cfg
}

func configFromFlags(flags *models.Flags) *models.Config {
	return &models.Config{
		Database: models.DatabaseConfig{
			DBType:           flags.Database.DBType,
			ConnectionString: flags.Database.ConnectionString,
		},
		HTTP: models.HTTPConfig{
			Port:          flags.HTTP.Port,
			ListeningAddr: flags.HTTP.ListeningAddr,
			RateLimit:     flags.HTTP.RateLimit,
		},
		Log: models.LogConfig{File: flags.LogFile},
	}
}

func SetConfig(ctx context.Context, path string, cfg *models.Config) {
	logger := log.FromContext(ctx)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		logger.WithError(err).Error("Error opening config file")
		return
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(cfg)
	if err != nil {
		logger.WithError(err).Error("Error encoding config file")
	}
}

// loadConfig returns nil without an error when the file doesn't exist.
func loadConfig(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var config models.Config
	if err = json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &config, nil
}
