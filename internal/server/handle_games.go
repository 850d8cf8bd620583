package server

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/roamio/globetrotter/internal/globetrotter"
	"github.com/roamio/globetrotter/internal/quiz"
)

// StartGameRequest optionally carries the inbound challenge from a shared
// link. challengeScore mirrors the score query parameter of the link; it is
// attacker-visible and only trusted when the record lookup fails.
type StartGameRequest struct {
	ChallengeID    string `json:"challengeId,omitempty"`
	ChallengeScore *int   `json:"challengeScore,omitempty"`
}

type QuestionPayload struct {
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Clues   []string `json:"clues"`
	Options []string `json:"options"`
}

type ChallengePayload struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Score    int    `json:"score"`
}

type ScorePayload struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

type StartGameResponse struct {
	Token     string            `json:"token"`
	Question  QuestionPayload   `json:"question"`
	Challenge *ChallengePayload `json:"challenge,omitempty"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type AnswerResponse struct {
	IsCorrect     bool             `json:"isCorrect"`
	CorrectAnswer string           `json:"correctAnswer"`
	FunFact       string           `json:"funFact,omitempty"`
	Score         ScorePayload     `json:"score"`
	GameComplete  bool             `json:"gameComplete"`
	NextQuestion  *QuestionPayload `json:"nextQuestion,omitempty"`
	Outcome       string           `json:"outcome,omitempty"`
}

type GameStateResponse struct {
	Score        ScorePayload      `json:"score"`
	Question     QuestionPayload   `json:"question"`
	GameComplete bool              `json:"gameComplete"`
	Challenge    *ChallengePayload `json:"challenge,omitempty"`
	Outcome      string            `json:"outcome,omitempty"`
}

func handleStartGame(logger *slog.Logger, catalog Catalog, store Store, sessions *SessionRegistry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartGameRequest
		if r.ContentLength > 0 {
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		destinations, err := catalog.ListDestinations(r.Context())
		if err != nil {
			logger.Error("loading catalog", "error", err)
			writeError(w, http.StatusBadGateway, "destination catalog unavailable")
			return
		}
		if len(destinations) == 0 {
			writeError(w, http.StatusServiceUnavailable, "destination catalog is empty")
			return
		}

		challenge := resolveChallenge(r, logger, store, req)

		gs, err := newGameSession(destinations, challenge, broker)
		if err != nil {
			// Catalog too small for distractors is an operator problem, not
			// a client one.
			logger.Error("starting game", "error", err)
			writeError(w, http.StatusInternalServerError, "cannot build questions from catalog")
			return
		}
		token := sessions.Add(gs)

		writeJSON(w, http.StatusOK, StartGameResponse{
			Token:     token,
			Question:  questionPayload(gs.current, 1, gs.quiz.Total()),
			Challenge: challengePayload(challenge),
		})
	}
}

// resolveChallenge turns the link parameters into a challenge context. The
// stored record is authoritative; the score from the link is used alone only
// when the lookup fails, and a missing record without a fallback score
// degrades to no comparison at all.
func resolveChallenge(r *http.Request, logger *slog.Logger, store Store, req StartGameRequest) *quiz.Challenge {
	if req.ChallengeID == "" {
		return nil
	}

	rec, _, err := store.GetGameRecord(r.Context(), req.ChallengeID)
	if err == nil {
		return &quiz.Challenge{ID: rec.ID, Username: rec.Username, Score: rec.Score}
	}

	if !errors.Is(err, globetrotter.ErrNotFound) {
		logger.Warn("challenge lookup failed", "challengeId", req.ChallengeID, "error", err)
	}
	if req.ChallengeScore != nil {
		return &quiz.Challenge{ID: req.ChallengeID, Score: *req.ChallengeScore}
	}
	return nil
}

func handleAnswer(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs, ok := sessions.Get(chi.URLParam(r, "token"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown game token")
			return
		}

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Answer = strings.TrimSpace(req.Answer)
		if req.Answer == "" {
			writeError(w, http.StatusBadRequest, "answer is required")
			return
		}

		gs.mu.Lock()
		defer gs.mu.Unlock()

		if gs.quiz.Complete() {
			writeError(w, http.StatusConflict, "game already complete")
			return
		}
		if !slices.Contains(gs.current.Options, req.Answer) {
			writeError(w, http.StatusBadRequest, "answer must be one of the question's options")
			return
		}

		correct := req.Answer == gs.current.CorrectAnswer()

		// Generate the follow-up question before recording the answer so a
		// generation failure cannot leave the score half-advanced.
		var next *globetrotter.Question
		if gs.quiz.Answered()+1 < gs.quiz.Total() {
			q, err := gs.gen.Generate(gs.catalog, gs.current.Destination.City)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			next = &q
		}

		resp := AnswerResponse{
			IsCorrect:     correct,
			CorrectAnswer: gs.current.CorrectAnswer(),
			FunFact:       gs.gen.FunFact(gs.current.Destination),
		}

		if err := gs.quiz.RecordAnswer(correct); err != nil {
			writeError(w, http.StatusConflict, "game already complete")
			return
		}
		resp.Score = ScorePayload{Correct: gs.quiz.Correct(), Incorrect: gs.quiz.Incorrect()}

		if next != nil {
			gs.current = *next
			p := questionPayload(*next, gs.quiz.Answered()+1, gs.quiz.Total())
			resp.NextQuestion = &p
		} else {
			resp.GameComplete = true
			if gs.outcome != nil {
				resp.Outcome = string(*gs.outcome)
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func handleGameState(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs, ok := sessions.Get(chi.URLParam(r, "token"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown game token")
			return
		}

		gs.mu.Lock()
		defer gs.mu.Unlock()

		resp := GameStateResponse{
			Score:        ScorePayload{Correct: gs.quiz.Correct(), Incorrect: gs.quiz.Incorrect()},
			Question:     questionPayload(gs.current, min(gs.quiz.Answered()+1, gs.quiz.Total()), gs.quiz.Total()),
			GameComplete: gs.quiz.Complete(),
			Challenge:    challengePayload(gs.challenge),
		}
		if gs.outcome != nil {
			resp.Outcome = string(*gs.outcome)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleRestart(sessions *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs, ok := sessions.Get(chi.URLParam(r, "token"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown game token")
			return
		}

		gs.mu.Lock()
		defer gs.mu.Unlock()

		first, err := gs.gen.Generate(gs.catalog, "")
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		gs.quiz.Restart()
		gs.outcome = nil
		gs.current = first

		writeJSON(w, http.StatusOK, GameStateResponse{
			Question:  questionPayload(first, 1, gs.quiz.Total()),
			Challenge: challengePayload(gs.challenge),
		})
	}
}

func questionPayload(q globetrotter.Question, number, total int) QuestionPayload {
	return QuestionPayload{
		Number:  number,
		Total:   total,
		Clues:   q.Clues,
		Options: q.Options,
	}
}

func challengePayload(ch *quiz.Challenge) *ChallengePayload {
	if ch == nil {
		return nil
	}
	return &ChallengePayload{ID: ch.ID, Username: ch.Username, Score: ch.Score}
}
