package pokemon

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/go-chi/chi/v5"
)

// parsePage reads the page query parameter, defaulting to the first page. A page
// that is present but not a positive integer is rejected.
func parsePage(r *http.Request) (int, bool) {
	query := r.URL.Query()
	if !query.Has("page") {
		return 1, true
	}

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

func parseID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// pokemonFields are the writable fields of a pokemon payload, in the order they
// are reported back to clients.
var pokemonFields = []struct {
	name  string
	value func(p *models.Pokemon) any
}{
	{"nom", func(p *models.Pokemon) any { return &p.Nom }},
	{"type_primaire", func(p *models.Pokemon) any { return &p.TypePrimaire }},
	{"type_secondaire", func(p *models.Pokemon) any { return &p.TypeSecondaire }},
	{"pv", func(p *models.Pokemon) any { return &p.PV }},
	{"attaque", func(p *models.Pokemon) any { return &p.Attaque }},
	{"defense", func(p *models.Pokemon) any { return &p.Defense }},
}

// readPokemon decodes a pokemon payload field by field. Fields that are absent
// or hold null, false, 0 or "" are left unset and reported as missing when
// required. Fields holding a value of the wrong JSON type are reported as
// invalid along with out of range values. An error is only returned when the
// body isn't a JSON object.
func readPokemon(body io.Reader) (mon *models.Pokemon, missing, invalid []string, err error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, nil, nil, err
	}

	var fields map[string]json.RawMessage
	if len(bytes.TrimSpace(data)) > 0 {
		if err = json.Unmarshal(data, &fields); err != nil {
			return nil, nil, nil, err
		}
	}

	mon = &models.Pokemon{}
	var mistyped []string
	for _, f := range pokemonFields {
		raw, ok := fields[f.name]
		if !ok || isFalsy(raw) {
			continue
		}
		if json.Unmarshal(raw, f.value(mon)) != nil {
			mistyped = append(mistyped, f.name)
		}
	}

	required, outOfRange := models.ValidatePokemon(mon)
	for _, name := range required {
		if !slices.Contains(mistyped, name) {
			missing = append(missing, name)
		}
	}
	for _, f := range pokemonFields {
		if slices.Contains(mistyped, f.name) || slices.Contains(outOfRange, f.name) {
			invalid = append(invalid, f.name)
		}
	}

	return mon, missing, invalid, nil
}

func isFalsy(raw json.RawMessage) bool {
	var v any
	if json.Unmarshal(raw, &v) != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case float64:
		return v == 0
	}
	return false
}
