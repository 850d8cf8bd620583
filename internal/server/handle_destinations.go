package server

import (
	"log/slog"
	"net/http"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

type DestinationPayload struct {
	ID       string   `json:"id,omitempty"`
	City     string   `json:"city"`
	Country  string   `json:"country"`
	Clues    []string `json:"clues"`
	FunFacts []string `json:"funFacts"`
}

func handleListDestinations(logger *slog.Logger, catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		destinations, err := catalog.ListDestinations(r.Context())
		if err != nil {
			logger.Error("loading catalog", "error", err)
			writeError(w, http.StatusBadGateway, "destination catalog unavailable")
			return
		}

		payload := make([]DestinationPayload, 0, len(destinations))
		for _, d := range destinations {
			payload = append(payload, destinationPayload(d))
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

func destinationPayload(d globetrotter.Destination) DestinationPayload {
	return DestinationPayload{
		ID:       d.ID,
		City:     d.City,
		Country:  d.Country,
		Clues:    d.Clues,
		FunFacts: d.FunFacts,
	}
}
