package database

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	pokemonTable = "pokemon"

	columnID             = "id"
	columnNom            = "nom"
	columnTypePrimaire   = "type_primaire"
	columnTypeSecondaire = "type_secondaire"
	columnPV             = "pv"
	columnAttaque        = "attaque"
	columnDefense        = "defense"
)

// pokemonColumns is the column order used by every select and scan.
var pokemonColumns = []string{
	columnID, columnNom, columnTypePrimaire, columnTypeSecondaire, columnPV, columnAttaque, columnDefense,
}

var (
	PokemonColumns = []*schema.Column{
		{Name: columnID, Type: field.TypeInt, Increment: true},
		{Name: columnNom, Type: field.TypeString},
		{Name: columnTypePrimaire, Type: field.TypeString, Size: 32},
		{Name: columnTypeSecondaire, Type: field.TypeString, Size: 32, Nullable: true},
		{Name: columnPV, Type: field.TypeInt},
		{Name: columnAttaque, Type: field.TypeInt},
		{Name: columnDefense, Type: field.TypeInt},
	}
	PokemonTable = &schema.Table{
		Name:       pokemonTable,
		Columns:    PokemonColumns,
		PrimaryKey: []*schema.Column{PokemonColumns[0]},
		Indexes: []*schema.Index{
			{Name: "pokemon_type_primaire", Columns: []*schema.Column{PokemonColumns[2]}},
		},
	}
	Tables = []*schema.Table{PokemonTable}
)
