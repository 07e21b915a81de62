package pokemon

import "github.com/FlagBrew/pokedex-api/internal/models"

type errorResponse struct {
	Erreur        string   `json:"erreur"`
	ChampManquant []string `json:"champ_manquant,omitempty"`
	ChampInvalide []string `json:"champ_invalide,omitempty"`
}

type listResponse struct {
	Pokemons           []*models.Pokemon `json:"pokemons"`
	Type               string            `json:"type"`
	NombrePokemonTotal int               `json:"nombrePokemonTotal"`
	Page               int               `json:"page"`
	TotalPages         int               `json:"totalPages"`
}

type pokemonResponse struct {
	Message string          `json:"message"`
	Pokemon *models.Pokemon `json:"pokemon"`
}
