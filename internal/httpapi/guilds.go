package httpapi

import (
	"fmt"
	"net/http"
)

func (h *Handler) listGuilds(w http.ResponseWriter, r *http.Request) {
	gs, err := h.guilds.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

func (h *Handler) getGuild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	g, err := h.guilds.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *Handler) createGuild(w http.ResponseWriter, r *http.Request) {
	var req guildRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	g, err := h.guilds.Create(r.Context(), req.toGuild())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *Handler) updateGuild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req guildRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	g, err := h.guilds.Update(r.Context(), id, req.toGuild())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *Handler) deleteGuild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.guilds.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, "Guild deleted successfully")
}

func (h *Handler) levelUpGuild(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	g, err := h.guilds.LevelUp(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *Handler) guildMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	members, err := h.guilds.Members(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCharacterResponses(members))
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	guildID, err := pathID(r, "guildId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	characterID, err := pathID(r, "characterId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	g, err := h.guilds.AddCharacter(r.Context(), guildID, characterID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, membershipResponse{
		Message: fmt.Sprintf("Character %d added to guild %s", characterID, g.Name),
		Guild:   g,
	})
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	characterID, err := pathID(r, "characterId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.guilds.RemoveCharacter(r.Context(), characterID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, "Character removed from guild successfully")
}
