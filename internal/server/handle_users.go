package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

type IdentityPayload struct {
	Username    string `json:"username"`
	GamesPlayed int    `json:"gamesPlayed"`
	LastScore   int    `json:"lastScore"`
}

// AvailabilityResponse answers the advisory pre-check. It is UX only: the
// authoritative decision happens inside Reserve, so "available" here can
// still lose a race.
type AvailabilityResponse struct {
	Available bool             `json:"available"`
	User      *IdentityPayload `json:"user,omitempty"`
}

type ReserveRequest struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	// Returning marks a player continuing under a name they already hold;
	// the name itself is the only credential, as in the original flow.
	Returning bool `json:"returning,omitempty"`
}

type ReserveResponse struct {
	GameID      string `json:"gameId"`
	Username    string `json:"username"`
	Score       int    `json:"score"`
	GamesPlayed int    `json:"gamesPlayed"`
}

func handleCheckUsername(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.URL.Query().Get("username"))
		if username == "" {
			writeError(w, http.StatusBadRequest, "username parameter is required")
			return
		}
		if !globetrotter.ValidUsername(username) {
			writeJSON(w, http.StatusOK, AvailabilityResponse{Available: false})
			return
		}

		ident, err := store.FindIdentity(r.Context(), username)
		switch {
		case errors.Is(err, globetrotter.ErrNotFound):
			writeJSON(w, http.StatusOK, AvailabilityResponse{Available: true})
		case err != nil:
			writeError(w, http.StatusBadGateway, "identity store unavailable")
		default:
			writeJSON(w, http.StatusOK, AvailabilityResponse{
				Available: false,
				User:      identityPayload(ident),
			})
		}
	}
}

func handleReserveUsername(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReserveRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Score < 0 || req.Score > globetrotter.TotalQuestions {
			writeError(w, http.StatusBadRequest, "score out of range")
			return
		}

		ident, rec, err := store.Reserve(r.Context(), req.Username, req.Score, req.Returning)
		switch {
		case errors.Is(err, globetrotter.ErrInvalidUsername):
			writeError(w, http.StatusBadRequest, "username must be at least 3 characters: letters, numbers, and underscores only")
			return
		case errors.Is(err, globetrotter.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "username already taken")
			return
		case errors.Is(err, globetrotter.ErrNotFound):
			writeError(w, http.StatusConflict, "no such identity to continue")
			return
		case err != nil:
			writeError(w, http.StatusBadGateway, "identity store unavailable")
			return
		}

		writeJSON(w, http.StatusOK, ReserveResponse{
			GameID:      rec.ID,
			Username:    ident.Username,
			Score:       rec.Score,
			GamesPlayed: ident.GamesPlayed,
		})
	}
}

func identityPayload(ident globetrotter.Identity) *IdentityPayload {
	return &IdentityPayload{
		Username:    ident.Username,
		GamesPlayed: ident.GamesPlayed,
		LastScore:   ident.LastScore,
	}
}
