package call

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shihab-newaz/ai-interview/internal/extract"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/voice"
)

// State is the call lifecycle state. Inactive is reachable again only
// through a fresh start; a user hang-up and a provider-side end both
// land in Finished.
type State string

const (
	StateInactive   State = "inactive"
	StateConnecting State = "connecting"
	StateActive     State = "active"
	StateFinished   State = "finished"
)

// Session is one live voice-call attempt with its transcript and view
// state. Created by Manager.Start, mutated only by the manager's event
// loop and Stop; readers see consistent snapshots through the mutex.
type Session struct {
	ID          string
	Purpose     string
	UserID      string
	UserName    string
	InterviewID string
	FeedbackID  string
	Questions   []string
	CreatedAt   time.Time

	transcript *Transcript
	provider   voice.Session

	// guards against duplicate terminal submission when Finished is
	// reached from both Stop and the provider's call-end
	submitted atomic.Bool

	mu       sync.RWMutex
	state    State
	speaking bool
	lastErr  string
	redirect string
	params   extract.Params
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// setState transitions the session and reports whether the state
// actually changed.
func (s *Session) setState(state State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == state {
		return false
	}
	s.state = state
	return true
}

func (s *Session) Speaking() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speaking
}

func (s *Session) setSpeaking(speaking bool) {
	s.mu.Lock()
	s.speaking = speaking
	s.mu.Unlock()
}

func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func (s *Session) Redirect() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.redirect
}

func (s *Session) setRedirect(target string) {
	s.mu.Lock()
	s.redirect = target
	s.mu.Unlock()
}

// observe folds one transcript fragment into the params snapshot.
func (s *Session) observe(fragment string) {
	s.mu.Lock()
	s.params = extract.Observe(s.params, fragment)
	s.mu.Unlock()
}

func (s *Session) paramsSnapshot() extract.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Transcript returns the session's ordered transcript log.
func (s *Session) Transcript() *Transcript {
	return s.transcript
}

// Status is the polled view returned to the front-end.
func (s *Session) Status() models.CallStatusResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CallStatusResponse{
		ID:         s.ID,
		State:      string(s.state),
		Speaking:   s.speaking,
		Transcript: s.transcript.Messages(),
		Error:      s.lastErr,
		Redirect:   s.redirect,
	}
}
