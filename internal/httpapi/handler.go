// Package httpapi exposes the character and guild services over JSON/HTTP.
package httpapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/cory-johannsen/guildhall/internal/game/character"
	"github.com/cory-johannsen/guildhall/internal/game/guild"
)

// Characters is the character use-case surface consumed by the handlers.
type Characters interface {
	Create(ctx context.Context, c *character.Character) (*character.Character, error)
	Query(ctx context.Context, f character.Filter, key character.SortKey) ([]*character.Character, error)
	Get(ctx context.Context, id int64) (*character.Character, error)
	Update(ctx context.Context, id int64, c *character.Character) (*character.Character, error)
	Delete(ctx context.Context, id int64) error
	LevelUp(ctx context.Context, id int64) (*character.Character, error)
	AddExperience(ctx context.Context, id int64, xp int) (*character.Character, bool, error)
	Spar(ctx context.Context, attackerID, defenderID int64) (*character.Character, *character.Character, character.SparResult, error)
	ClearCache(ctx context.Context)
}

// Guilds is the guild use-case surface consumed by the handlers.
type Guilds interface {
	Create(ctx context.Context, g *guild.Guild) (*guild.Guild, error)
	List(ctx context.Context) ([]*guild.Guild, error)
	Get(ctx context.Context, id int64) (*guild.Guild, error)
	Update(ctx context.Context, id int64, g *guild.Guild) (*guild.Guild, error)
	Delete(ctx context.Context, id int64) error
	LevelUp(ctx context.Context, id int64) (*guild.Guild, error)
	AddCharacter(ctx context.Context, guildID, characterID int64) (*guild.Guild, error)
	RemoveCharacter(ctx context.Context, characterID int64) error
	Members(ctx context.Context, id int64) ([]*character.Character, error)
}

// Handler serves the REST API.
type Handler struct {
	chars   Characters
	guilds  Guilds
	logger  *zap.Logger
	healthy func() bool
}

// NewHandler creates a Handler.
//
// Precondition: chars, guilds, and logger must be non-nil.
func NewHandler(chars Characters, guilds Guilds, logger *zap.Logger) *Handler {
	return &Handler{
		chars:   chars,
		guilds:  guilds,
		logger:  logger,
		healthy: func() bool { return true },
	}
}

// WithHealth makes GET /healthz report healthy as its readiness.
func (h *Handler) WithHealth(healthy func() bool) *Handler {
	h.healthy = healthy
	return h
}

// Routes returns the API mux wrapped in the request middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/characters", h.listCharacters)
	mux.HandleFunc("POST /api/characters", h.createCharacter)
	mux.HandleFunc("GET /api/characters/{id}", h.getCharacter)
	mux.HandleFunc("PUT /api/characters/{id}", h.updateCharacter)
	mux.HandleFunc("DELETE /api/characters/{id}", h.deleteCharacter)
	mux.HandleFunc("POST /api/characters/{id}/level-up", h.levelUpCharacter)
	mux.HandleFunc("POST /api/characters/{id}/experience", h.addExperience)
	mux.HandleFunc("POST /api/characters/{id}/spar/{targetId}", h.spar)

	mux.HandleFunc("GET /api/guilds", h.listGuilds)
	mux.HandleFunc("POST /api/guilds", h.createGuild)
	mux.HandleFunc("GET /api/guilds/{id}", h.getGuild)
	mux.HandleFunc("PUT /api/guilds/{id}", h.updateGuild)
	mux.HandleFunc("DELETE /api/guilds/{id}", h.deleteGuild)
	mux.HandleFunc("POST /api/guilds/{id}/level-up", h.levelUpGuild)
	mux.HandleFunc("GET /api/guilds/{id}/members", h.guildMembers)
	mux.HandleFunc("POST /api/guilds/{guildId}/members/{characterId}", h.addMember)
	mux.HandleFunc("DELETE /api/guilds/members/{characterId}", h.removeMember)

	mux.HandleFunc("POST /api/cache/clear", h.clearCache)
	mux.HandleFunc("GET /healthz", h.health)

	return h.recoverPanics(h.logRequests(withRequestID(mux)))
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	if !h.healthy() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	h.chars.ClearCache(r.Context())
	writeMessage(w, "Cache cleared successfully")
}
