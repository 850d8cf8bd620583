package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

type ChallengeInfoPayload struct {
	Username string    `json:"username"`
	Score    int       `json:"score"`
	PlayedAt time.Time `json:"playedAt"`
	FromID   string    `json:"fromId"`
}

type ChallengeResponse struct {
	ChallengeInfo ChallengeInfoPayload `json:"challengeInfo"`
	UserInfo      *IdentityPayload     `json:"userInfo,omitempty"`
}

func handleGetChallenge(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rec, ident, err := store.GetGameRecord(r.Context(), id)
		if errors.Is(err, globetrotter.ErrNotFound) {
			writeError(w, http.StatusNotFound, "challenge not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusBadGateway, "game record store unavailable")
			return
		}

		writeJSON(w, http.StatusOK, ChallengeResponse{
			ChallengeInfo: ChallengeInfoPayload{
				Username: rec.Username,
				Score:    rec.Score,
				PlayedAt: rec.CreatedAt,
				FromID:   rec.ID,
			},
			UserInfo: identityPayload(ident),
		})
	}
}

// handleChallengeEvents streams attempt events for a challenge over SSE so
// the challenger can watch friends play against their score.
func handleChallengeEvents(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if _, _, err := store.GetGameRecord(r.Context(), id); err != nil {
			if errors.Is(err, globetrotter.ErrNotFound) {
				writeError(w, http.StatusNotFound, "challenge not found")
				return
			}
			writeError(w, http.StatusBadGateway, "game record store unavailable")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ch := broker.Subscribe(id)
		defer broker.Unsubscribe(id, ch)

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: attempt\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
