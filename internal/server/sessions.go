package server

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/roamio/globetrotter/internal/globetrotter"
	"github.com/roamio/globetrotter/internal/quiz"
)

// gameSession is one player's active run: the scoring state machine, the
// question generator seeded for this run, a catalog snapshot, and the inbound
// challenge being answered, if any. Guarded by its own mutex; the engine
// types underneath carry no locking.
type gameSession struct {
	mu        sync.Mutex
	quiz      *quiz.Session
	gen       *quiz.Generator
	catalog   []globetrotter.Destination
	current   globetrotter.Question
	challenge *quiz.Challenge
	outcome   *quiz.Outcome
}

// newGameSession wires the completion callback: when the tenth answer lands,
// the outcome against the inbound challenge is fixed and an attempt event is
// published to anyone watching that challenge. The callback runs with the
// session mutex already held and must not take it again.
func newGameSession(catalog []globetrotter.Destination, challenge *quiz.Challenge, broker *Broker) (*gameSession, error) {
	rnd := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	gs := &gameSession{
		gen:       quiz.NewGenerator(rnd),
		catalog:   catalog,
		challenge: challenge,
	}
	gs.quiz = quiz.NewSession(func(correct, incorrect int) {
		gs.outcome = quiz.Resolve(correct, gs.challenge)
		if gs.challenge != nil && !gs.challenge.IsNew && gs.challenge.ID != "" {
			event := Event{Type: "challenge_attempted", Score: correct}
			if gs.outcome != nil {
				event.Outcome = string(*gs.outcome)
			}
			broker.Publish(gs.challenge.ID, event)
		}
	})

	first, err := gs.gen.Generate(catalog, "")
	if err != nil {
		return nil, err
	}
	gs.current = first
	return gs, nil
}

// SessionRegistry holds the active game sessions, keyed by an opaque token
// handed to the client at game start.
type SessionRegistry struct {
	mu    sync.RWMutex
	games map[string]*gameSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{games: make(map[string]*gameSession)}
}

func (r *SessionRegistry) Add(gs *gameSession) string {
	token := uuid.NewString()
	r.mu.Lock()
	r.games[token] = gs
	r.mu.Unlock()
	return token
}

func (r *SessionRegistry) Get(token string) (*gameSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gs, ok := r.games[token]
	return gs, ok
}
