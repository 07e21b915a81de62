package database

import (
	"context"
	stdsql "database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/FlagBrew/pokedex-api/internal/models"
)

// PokemonStore issues the SQL behind every pokemon operation. It performs no
// business validation, callers are expected to hand it complete records.
type PokemonStore struct {
	drv *entsql.Driver
}

func NewPokemonStore(drv *entsql.Driver) *PokemonStore {
	return &PokemonStore{drv: drv}
}

func (s *PokemonStore) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

func (s *PokemonStore) selectPokemon(b *entsql.DialectBuilder) *entsql.Selector {
	return b.Select(pokemonColumns...).From(b.Table(pokemonTable))
}

// Get returns the pokemon with the given id, or nil if there is none.
func (s *PokemonStore) Get(ctx context.Context, id int) (*models.Pokemon, error) {
	mon, err := s.get(ctx, s.drv, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pokemon %d: %w", id, err)
	}
	return mon, nil
}

func (s *PokemonStore) get(ctx context.Context, conn dialect.ExecQuerier, id int) (*models.Pokemon, error) {
	query, args := s.selectPokemon(s.builder()).Where(entsql.EQ(columnID, id)).Query()

	mons, err := queryPokemons(ctx, conn, query, args)
	if err != nil {
		return nil, err
	}
	if len(mons) == 0 {
		return nil, nil
	}
	return mons[0], nil
}

// List returns the requested page (1-indexed) of pokemon, optionally filtered on
// their primary type, and the amount of rows matching the filter.
func (s *PokemonStore) List(ctx context.Context, page int, pokemonType string) (*models.PokemonPage, error) {
	b := s.builder()

	count := b.Select(entsql.Count("*")).From(b.Table(pokemonTable))
	list := s.selectPokemon(b)

	if pokemonType != "" {
		count.Where(entsql.EQ(columnTypePrimaire, pokemonType))
		list.Where(entsql.EQ(columnTypePrimaire, pokemonType))
	}

	query, args := count.Query()

	total, err := queryInt(ctx, s.drv, query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to count pokemon: %w", err)
	}

	if page > models.MaxPage {
		return &models.PokemonPage{Pokemons: []*models.Pokemon{}, Total: total}, nil
	}

	query, args = list.
		OrderBy(columnID).
		Limit(models.PageSize).
		Offset((page - 1) * models.PageSize).
		Query()

	mons, err := queryPokemons(ctx, s.drv, query, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}

	return &models.PokemonPage{Pokemons: mons, Total: total}, nil
}

// Create inserts the pokemon and returns the id the database assigned to it.
func (s *PokemonStore) Create(ctx context.Context, mon *models.Pokemon) (int, error) {
	id, err := s.create(ctx, s.drv, mon)
	if err != nil {
		return 0, fmt.Errorf("failed to create pokemon %q: %w", mon.Nom, err)
	}
	return id, nil
}

func (s *PokemonStore) create(ctx context.Context, conn dialect.ExecQuerier, mon *models.Pokemon) (int, error) {
	insert := s.builder().Insert(pokemonTable).
		Columns(columnNom, columnTypePrimaire, columnTypeSecondaire, columnPV, columnAttaque, columnDefense).
		Values(mon.Nom, mon.TypePrimaire, nullable(mon.TypeSecondaire), mon.PV, mon.Attaque, mon.Defense)

	if s.drv.Dialect() == dialect.Postgres {
		query, args := insert.Returning(columnID).Query()
		return queryInt(ctx, conn, query, args)
	}

	query, args := insert.Query()

	var res stdsql.Result
	if err := conn.Exec(ctx, query, args, &res); err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("insert returned no id")
	}
	return int(id), nil
}

// Update overwrites every column of the pokemon with the given id and returns the
// row as stored afterwards, or nil if no such pokemon exists.
func (s *PokemonStore) Update(ctx context.Context, id int, mon *models.Pokemon) (*models.Pokemon, error) {
	var updated *models.Pokemon

	err := s.withTx(ctx, func(tx dialect.Tx) error {
		existing, err := s.get(ctx, tx, id)
		if err != nil || existing == nil {
			return err
		}

		query, args := s.builder().Update(pokemonTable).
			Set(columnNom, mon.Nom).
			Set(columnTypePrimaire, mon.TypePrimaire).
			Set(columnTypeSecondaire, nullable(mon.TypeSecondaire)).
			Set(columnPV, mon.PV).
			Set(columnAttaque, mon.Attaque).
			Set(columnDefense, mon.Defense).
			Where(entsql.EQ(columnID, id)).
			Query()

		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return err
		}

		updated, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update pokemon %d: %w", id, err)
	}

	return updated, nil
}

// Delete removes the pokemon with the given id and returns what it contained
// beforehand, or nil if no such pokemon exists.
func (s *PokemonStore) Delete(ctx context.Context, id int) (*models.Pokemon, error) {
	var deleted *models.Pokemon

	err := s.withTx(ctx, func(tx dialect.Tx) error {
		existing, err := s.get(ctx, tx, id)
		if err != nil || existing == nil {
			return err
		}

		query, args := s.builder().Delete(pokemonTable).Where(entsql.EQ(columnID, id)).Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return err
		}

		deleted = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete pokemon %d: %w", id, err)
	}

	return deleted, nil
}

// Import inserts all of the given pokemon in a single transaction and returns the
// ids they were assigned, in order.
func (s *PokemonStore) Import(ctx context.Context, mons []*models.Pokemon) ([]int, error) {
	ids := make([]int, 0, len(mons))

	err := s.withTx(ctx, func(tx dialect.Tx) error {
		for _, mon := range mons {
			id, err := s.create(ctx, tx, mon)
			if err != nil {
				return fmt.Errorf("pokemon %q: %w", mon.Nom, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import pokemon: %w", err)
	}

	return ids, nil
}

func (s *PokemonStore) withTx(ctx context.Context, fn func(tx dialect.Tx) error) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func queryInt(ctx context.Context, conn dialect.ExecQuerier, query string, args []any) (int, error) {
	var rows entsql.Rows
	if err := conn.Query(ctx, query, args, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()

	return entsql.ScanInt(rows)
}

func queryPokemons(ctx context.Context, conn dialect.ExecQuerier, query string, args []any) ([]*models.Pokemon, error) {
	var rows entsql.Rows
	if err := conn.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	mons := []*models.Pokemon{}
	for rows.Next() {
		var (
			mon            models.Pokemon
			typeSecondaire stdsql.NullString
		)

		err := rows.Scan(
			&mon.ID, &mon.Nom, &mon.TypePrimaire, &typeSecondaire,
			&mon.PV, &mon.Attaque, &mon.Defense,
		)
		if err != nil {
			return nil, err
		}

		if typeSecondaire.Valid {
			mon.TypeSecondaire = &typeSecondaire.String
		}
		mons = append(mons, &mon)
	}

	return mons, rows.Err()
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
