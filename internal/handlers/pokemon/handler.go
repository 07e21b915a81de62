package pokemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	"github.com/lrstanley/chix"
)

const invalidFormat = "Le format des données est invalide"

// Store is the data access the handler relies on. Missing rows are reported as a
// nil pokemon, never as an error.
type Store interface {
	Get(ctx context.Context, id int) (*models.Pokemon, error)
	List(ctx context.Context, page int, pokemonType string) (*models.PokemonPage, error)
	Create(ctx context.Context, mon *models.Pokemon) (int, error)
	Update(ctx context.Context, id int, mon *models.Pokemon) (*models.Pokemon, error)
	Delete(ctx context.Context, id int) (*models.Pokemon, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Route(r chi.Router) {
	r.Get("/liste", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// notFoundError is returned while removing a pokemon that doesn't exist.
type notFoundError struct {
	id int
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("Le pokemon id %d n'existe pas dans la base de données", e.id)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(r)
	if !ok {
		chix.JSON(w, r, http.StatusBadRequest, errorResponse{Erreur: "Numéro de page invalide"})
		return
	}

	pokemonType := r.URL.Query().Get("type")

	result, err := h.store.List(r.Context(), page, pokemonType)
	if err != nil {
		log.FromContext(r.Context()).WithError(err).WithFields(log.Fields{
			"page": page,
			"type": pokemonType,
		}).Error("failed to list pokemon")
		chix.JSON(w, r, http.StatusInternalServerError, errorResponse{
			Erreur: "Echec lors de la récupération de la liste des pokemons",
		})
		return
	}

	resp := listResponse{
		Pokemons:           result.Pokemons,
		Type:               pokemonType,
		NombrePokemonTotal: result.Total,
		Page:               page,
		TotalPages:         models.TotalPages(result.Total),
	}
	if resp.Pokemons == nil {
		resp.Pokemons = []*models.Pokemon{}
	}

	chix.JSON(w, r, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		chix.JSON(w, r, http.StatusBadRequest, errorResponse{Erreur: "ID invalide"})
		return
	}

	mon, err := h.store.Get(r.Context(), id)
	if err != nil {
		log.FromContext(r.Context()).WithError(err).WithField("id", id).Error("failed to get pokemon")
		chix.JSON(w, r, http.StatusInternalServerError, errorResponse{
			Erreur: fmt.Sprintf("Echec lors de la récupération du pokemon avec l'id %d", id),
		})
		return
	}

	if mon == nil {
		chix.JSON(w, r, http.StatusNotFound, errorResponse{
			Erreur: fmt.Sprintf("Pokemon introuvable avec l'id %d", id),
		})
		return
	}

	chix.JSON(w, r, http.StatusOK, mon)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	mon, ok := decodePokemon(w, r)
	if !ok {
		return
	}

	id, err := h.store.Create(r.Context(), mon)
	if err == nil && id == 0 {
		err = errors.New("insert returned no id")
	}
	if err != nil {
		log.FromContext(r.Context()).WithError(err).WithField("nom", mon.Nom).Error("failed to create pokemon")
		chix.JSON(w, r, http.StatusInternalServerError, errorResponse{
			Erreur: fmt.Sprintf("Echec lors de la création du pokemon %s", mon.Nom),
		})
		return
	}

	mon.ID = id
	chix.JSON(w, r, http.StatusCreated, pokemonResponse{
		Message: fmt.Sprintf("Le pokemon %s a été ajouté avec succès", mon.Nom),
		Pokemon: mon,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		chix.JSON(w, r, http.StatusBadRequest, errorResponse{Erreur: "ID invalide"})
		return
	}

	mon, ok := decodePokemon(w, r)
	if !ok {
		return
	}

	logger := log.FromContext(r.Context()).WithField("id", id)
	failed := errorResponse{Erreur: fmt.Sprintf("Echec lors de la modification du pokemon id %d", id)}

	existing, err := h.store.Get(r.Context(), id)
	if err != nil {
		logger.WithError(err).Error("failed to look up pokemon before update")
		chix.JSON(w, r, http.StatusInternalServerError, failed)
		return
	}

	if existing == nil {
		chix.JSON(w, r, http.StatusNotFound, errorResponse{Erreur: (&notFoundError{id: id}).Error()})
		return
	}

	updated, err := h.store.Update(r.Context(), id, mon)
	if err == nil && updated == nil {
		// Removed by another request between the lookup and the update.
		err = errors.New("update matched no rows")
	}
	if err != nil {
		logger.WithError(err).Error("failed to update pokemon")
		chix.JSON(w, r, http.StatusInternalServerError, failed)
		return
	}

	mon.ID = id
	chix.JSON(w, r, http.StatusOK, pokemonResponse{
		Message: fmt.Sprintf("Le pokemon id %d a été modifié avec succès", id),
		Pokemon: mon,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		chix.JSON(w, r, http.StatusBadRequest, errorResponse{Erreur: "ID invalide"})
		return
	}

	mon, err := h.remove(r.Context(), id)
	if err != nil {
		var notFound *notFoundError
		if errors.As(err, &notFound) {
			chix.JSON(w, r, http.StatusNotFound, errorResponse{Erreur: notFound.Error()})
			return
		}

		log.FromContext(r.Context()).WithError(err).WithField("id", id).Error("failed to delete pokemon")
		chix.JSON(w, r, http.StatusInternalServerError, errorResponse{
			Erreur: fmt.Sprintf("Echec lors de la suppression du pokemon id %d", id),
		})
		return
	}

	chix.JSON(w, r, http.StatusOK, pokemonResponse{
		Message: fmt.Sprintf("Le pokemon id %d a été supprimé avec succès", id),
		Pokemon: mon,
	})
}

// remove deletes the pokemon and returns what it contained before the deletion.
func (h *Handler) remove(ctx context.Context, id int) (*models.Pokemon, error) {
	existing, err := h.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &notFoundError{id: id}
	}

	deleted, err := h.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, errors.New("delete matched no rows")
	}

	return existing, nil
}

// decodePokemon reads and validates the request body, writing the 400 response
// itself when the body can't be used.
func decodePokemon(w http.ResponseWriter, r *http.Request) (*models.Pokemon, bool) {
	mon, missing, invalid, err := readPokemon(r.Body)
	if err != nil {
		log.FromContext(r.Context()).WithError(err).Debug("failed to decode pokemon payload")
		chix.JSON(w, r, http.StatusBadRequest, errorResponse{Erreur: invalidFormat})
		return nil, false
	}

	if len(missing) > 0 || len(invalid) > 0 {
		chix.JSON(w, r, http.StatusBadRequest, errorResponse{
			Erreur:        invalidFormat,
			ChampManquant: missing,
			ChampInvalide: invalid,
		})
		return nil, false
	}

	return mon, true
}
