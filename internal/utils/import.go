package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

type PokemonImporter interface {
	Import(ctx context.Context, mons []*models.Pokemon) ([]int, error)
}

// ImportPokemon loads a JSON array of pokemon from path, validates every record
// and inserts them all at once. Nothing is inserted if any record is invalid.
func ImportPokemon(ctx context.Context, path string, store PokemonImporter) (int, error) {
	logger := log.FromContext(ctx).WithField("file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read import file: %w", err)
	}

	var mons []*models.Pokemon
	if err = json.Unmarshal(data, &mons); err != nil {
		return 0, fmt.Errorf("failed to decode import file: %w", err)
	}

	logger.WithField("count", len(mons)).Info("validating pokemon to import, please wait...")

	problems := make([]error, len(mons))
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(30)
	for i, mon := range mons {
		eg.Go(func() error {
			if mon == nil {
				problems[i] = fmt.Errorf("record %d: null", i)
				return nil
			}

			mon.ID = 0
			missing, invalid := models.ValidatePokemon(mon)
			if len(missing) > 0 || len(invalid) > 0 {
				problems[i] = fmt.Errorf(
					"record %d (%q): missing [%s] invalid [%s]",
					i, mon.Nom, strings.Join(missing, ", "), strings.Join(invalid, ", "),
				)
			}
			return nil
		})
	}
	_ = eg.Wait()

	if err = errors.Join(problems...); err != nil {
		return 0, fmt.Errorf("import file contains invalid pokemon: %w", err)
	}

	ids, err := store.Import(ctx, mons)
	if err != nil {
		return 0, err
	}

	logger.WithField("count", len(ids)).Info("finished importing pokemon")
	return len(ids), nil
}
