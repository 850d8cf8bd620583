package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

type AdminDestinationRequest struct {
	City     string   `json:"city"`
	Country  string   `json:"country"`
	Clues    []string `json:"clues"`
	FunFacts []string `json:"funFacts"`
}

func handleAdminListDestinations(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		destinations, err := store.ListDestinations(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		payload := make([]DestinationPayload, 0, len(destinations))
		for _, d := range destinations {
			payload = append(payload, destinationPayload(d))
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

func handleAdminCreateDestination(store Store, catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminDestinationRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.City = strings.TrimSpace(req.City)
		req.Country = strings.TrimSpace(req.Country)
		if req.City == "" || req.Country == "" {
			writeError(w, http.StatusBadRequest, "city and country are required")
			return
		}
		if len(req.Clues) == 0 {
			writeError(w, http.StatusBadRequest, "at least one clue is required")
			return
		}

		d, err := store.CreateDestination(r.Context(), globetrotter.Destination{
			City:     req.City,
			Country:  req.Country,
			Clues:    req.Clues,
			FunFacts: req.FunFacts,
		})
		if errors.Is(err, globetrotter.ErrDuplicateDestination) {
			writeError(w, http.StatusConflict, "destination already exists")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		invalidateCatalog(r.Context(), catalog)
		writeJSON(w, http.StatusCreated, destinationPayload(d))
	}
}

func handleAdminDeleteDestination(store Store, catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteDestination(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, globetrotter.ErrNotFound) {
			writeError(w, http.StatusNotFound, "destination not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		invalidateCatalog(r.Context(), catalog)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// invalidateCatalog drops the cached catalog after an edit, when a cache is
// in front of the store at all.
func invalidateCatalog(ctx context.Context, catalog Catalog) {
	if inv, ok := catalog.(interface{ Invalidate(context.Context) }); ok {
		inv.Invalidate(ctx)
	}
}
