package httpapi

import (
	"net/http"
	"strconv"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/character"
)

// listCharacters serves GET /api/characters with optional sort, type, and
// min_level query parameters.
func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key, err := character.ParseSortKey(q.Get("sort"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var f character.Filter
	if t := q.Get("type"); t != "" {
		if f.Class, err = character.ParseClass(t); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	if ml := q.Get("min_level"); ml != "" {
		if f.MinLevel, err = strconv.Atoi(ml); err != nil {
			h.writeError(w, r, errors.InvalidArgumentf("min_level must be an integer, got %q", ml))
			return
		}
	}

	chars, err := h.chars.Query(r.Context(), f, key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCharacterResponses(chars))
}

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.chars.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCharacterResponse(c))
}

func (h *Handler) createCharacter(w http.ResponseWriter, r *http.Request) {
	var req characterRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	in, err := req.toCharacter()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.chars.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCharacterResponse(c))
}

func (h *Handler) updateCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req characterRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	in, err := req.toCharacter()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.chars.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCharacterResponse(c))
}

func (h *Handler) deleteCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.chars.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, "Character deleted successfully")
}

func (h *Handler) levelUpCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.chars.LevelUp(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCharacterResponse(c))
}

func (h *Handler) addExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req experienceRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	c, leveled, err := h.chars.AddExperience(r.Context(), id, req.XP)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, experienceResponse{Character: newCharacterResponse(c), LeveledUp: leveled})
}

func (h *Handler) spar(w http.ResponseWriter, r *http.Request) {
	attackerID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defenderID, err := pathID(r, "targetId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	attacker, defender, res, err := h.chars.Spar(r.Context(), attackerID, defenderID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sparResponse{
		Attacker: newCharacterResponse(attacker),
		Defender: newCharacterResponse(defender),
		Attack:   res.Attack,
		Defense:  res.Defense,
		Damage:   res.Damage,
		Critical: res.Critical,
	})
}
