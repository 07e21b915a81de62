package models

import (
	"math"
	"slices"
)

// PageSize is the amount of pokemon returned per page of a listing.
const PageSize = 25

// MaxPage is the last page whose offset still fits in an int. Any page past it
// is necessarily empty.
const MaxPage = math.MaxInt / PageSize

// PokemonTypes are the elemental types a pokemon can have.
var PokemonTypes = []string{
	"Normal", "Fire", "Water", "Electric", "Grass", "Ice",
	"Fighting", "Poison", "Ground", "Flying", "Psychic",
	"Bug", "Rock", "Ghost", "Dragon", "Dark", "Steel", "Fairy",
}

func IsPokemonType(s string) bool {
	return slices.Contains(PokemonTypes, s)
}

// Pokemon is a row of the pokemon table.
type Pokemon struct {
	ID             int     `json:"id"`
	Nom            string  `json:"nom" validate:"required"`
	TypePrimaire   string  `json:"type_primaire" validate:"required,pokemon_type"`
	TypeSecondaire *string `json:"type_secondaire" validate:"omitempty,pokemon_type"`
	PV             int     `json:"pv" validate:"required,gt=0"`
	Attaque        int     `json:"attaque" validate:"required,gt=0"`
	Defense        int     `json:"defense" validate:"required,gt=0"`
}

// PokemonPage is one page of a listing along with the amount of rows matching
// the filter across all pages.
type PokemonPage struct {
	Pokemons []*Pokemon
	Total    int
}

// TotalPages is the amount of pages needed to list total pokemon.
func TotalPages(total int) int {
	return int(math.Ceil(float64(total) / float64(PageSize)))
}
