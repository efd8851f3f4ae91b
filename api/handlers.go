package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"card-crawl-server/auth"
	"card-crawl-server/game"
	"card-crawl-server/storage"
)

const bearerPrefix = "Bearer "

// TokenValidator checks bearer tokens.
type TokenValidator interface {
	Validate(token string) (jwt.MapClaims, error)
}

// AbilityLister lists the abilities that can be dealt.
type AbilityLister interface {
	AllAbilities() []game.AbilityDef
}

// RunCounter reports how many runs are in progress.
type RunCounter interface {
	Active() int
}

// Handler holds dependencies for API handlers. Store and Runs may be nil.
type Handler struct {
	Store     storage.RunStore
	Auth      TokenValidator
	Abilities AbilityLister
	Runs      RunCounter
}

// NewHandler creates a new API handler with the given dependencies.
func NewHandler(store storage.RunStore, validator TokenValidator, abilities AbilityLister, runs RunCounter) *Handler {
	return &Handler{
		Store:     store,
		Auth:      validator,
		Abilities: abilities,
		Runs:      runs,
	}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/history", h.History)
	mux.HandleFunc("/api/leaderboard", h.Leaderboard)
	mux.HandleFunc("/api/abilities", h.ListAbilities)
	mux.HandleFunc("/healthz", h.Healthz)
}

// CORS sets CORS headers on the response. Call before writing body.
func CORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return true
	}
	return false
}

// preamble handles CORS and rejects anything but GET. It reports whether the request is done.
func preamble(w http.ResponseWriter, r *http.Request) bool {
	if CORS(w, r) {
		return true
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return true
	}
	return false
}

// extractUserID validates the Authorization header and returns the user ID, or empty string on failure.
func (h *Handler) extractUserID(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if h.Auth == nil || !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	claims, err := h.Auth.Validate(token)
	if err != nil {
		slog.Debug("bearer token rejected", "tag", "api", "err", err)
		return ""
	}
	return auth.UserIDFromClaims(claims)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "tag", "api", "err", err)
	}
}

// HistoryResponse is the JSON structure for /api/history.
type HistoryResponse struct {
	Runs []storage.RunRecord `json:"runs"`
	Best *storage.RunRecord  `json:"best"`
}

// History returns the run history for the authenticated user.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if preamble(w, r) {
		return
	}
	userID := h.extractUserID(r)
	if userID == "" {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	resp := HistoryResponse{Runs: []storage.RunRecord{}}
	if h.Store != nil {
		runs, err := h.Store.ListByUserID(r.Context(), userID)
		if err != nil {
			slog.Error("ListByUserID failed", "tag", "api", "err", err)
			http.Error(w, "failed to load history", http.StatusInternalServerError)
			return
		}
		if runs != nil {
			resp.Runs = runs
		}
		best, err := h.Store.GetBestRun(r.Context(), userID)
		if err != nil {
			slog.Warn("GetBestRun failed", "tag", "api", "err", err)
		}
		resp.Best = best
	}
	writeJSON(w, resp)
}

// LeaderboardResponse is the JSON structure for /api/leaderboard.
type LeaderboardResponse struct {
	Entries          []storage.LeaderboardEntry `json:"entries"`
	CurrentUserEntry *storage.LeaderboardEntry  `json:"current_user_entry"`
}

// Leaderboard returns the global leaderboard with optional current user entry.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if preamble(w, r) {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	resp := LeaderboardResponse{Entries: []storage.LeaderboardEntry{}}
	if h.Store == nil {
		writeJSON(w, resp)
		return
	}
	entries, err := h.Store.ListLeaderboard(r.Context(), limit, offset)
	if err != nil {
		slog.Error("ListLeaderboard failed", "tag", "api", "err", err)
		http.Error(w, "failed to load leaderboard", http.StatusInternalServerError)
		return
	}
	if entries != nil {
		resp.Entries = entries
	}

	if userID := h.extractUserID(r); userID != "" {
		inTop := false
		for i := range resp.Entries {
			if resp.Entries[i].UserID == userID {
				resp.Entries[i].IsCurrentUser = true
				inTop = true
				break
			}
		}
		if !inTop {
			cur, err := h.Store.GetLeaderboardEntryByUserID(r.Context(), userID)
			if err != nil {
				slog.Warn("GetLeaderboardEntryByUserID failed", "tag", "api", "err", err)
			} else if cur != nil {
				cur.IsCurrentUser = true
				resp.CurrentUserEntry = cur
			}
		}
	}
	writeJSON(w, resp)
}

// AbilityInfo describes one ability card for the client's rule book.
type AbilityInfo struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       int    `json:"value"`
}

// ListAbilities returns every ability that can be dealt.
func (h *Handler) ListAbilities(w http.ResponseWriter, r *http.Request) {
	if preamble(w, r) {
		return
	}
	out := []AbilityInfo{}
	if h.Abilities != nil {
		for _, d := range h.Abilities.AllAbilities() {
			out = append(out, AbilityInfo{
				Tag:         d.Ability.String(),
				Name:        d.Name,
				Description: d.Description,
				Value:       d.Ability.BaseValue(),
			})
		}
	}
	writeJSON(w, out)
}

// Healthz reports liveness and the number of runs in progress.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if preamble(w, r) {
		return
	}
	active := 0
	if h.Runs != nil {
		active = h.Runs.Active()
	}
	writeJSON(w, map[string]any{"status": "ok", "active_runs": active})
}
