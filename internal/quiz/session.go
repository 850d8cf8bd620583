package quiz

import "github.com/roamio/globetrotter/internal/globetrotter"

// Session tracks the running score of one play-through. It is a two-state
// machine: in progress until exactly Total() answers are recorded, then
// complete. A Session is owned by a single game and is not safe for
// concurrent use.
type Session struct {
	correct    int
	incorrect  int
	total      int
	complete   bool
	onComplete func(correct, incorrect int)
}

// NewSession returns an in-progress session of globetrotter.TotalQuestions
// questions. onComplete, if non-nil, is invoked exactly once with the final
// tally when the last answer is recorded.
func NewSession(onComplete func(correct, incorrect int)) *Session {
	return NewSessionWithTotal(globetrotter.TotalQuestions, onComplete)
}

// NewSessionWithTotal is a test hook for shorter sessions.
func NewSessionWithTotal(total int, onComplete func(correct, incorrect int)) *Session {
	return &Session{total: total, onComplete: onComplete}
}

func (s *Session) Correct() int   { return s.correct }
func (s *Session) Incorrect() int { return s.incorrect }
func (s *Session) Total() int     { return s.total }
func (s *Session) Complete() bool { return s.complete }

// Answered returns the number of questions resolved so far.
func (s *Session) Answered() int { return s.correct + s.incorrect }

// RecordAnswer applies one answer result. It returns ErrSessionComplete, and
// leaves the tally untouched, if the session has already finished.
func (s *Session) RecordAnswer(correct bool) error {
	if s.complete {
		return globetrotter.ErrSessionComplete
	}

	if correct {
		s.correct++
	} else {
		s.incorrect++
	}

	if s.Answered() == s.total {
		s.complete = true
		if s.onComplete != nil {
			s.onComplete(s.correct, s.incorrect)
		}
	}
	return nil
}

// Restart resets the session to its initial state. Legal at any point; the
// completion callback will fire again when the restarted run finishes.
func (s *Session) Restart() {
	s.correct = 0
	s.incorrect = 0
	s.complete = false
}
