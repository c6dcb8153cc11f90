package call

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/extract"
	"github.com/shihab-newaz/ai-interview/internal/metrics"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/voice"
)

// GeneratorService creates and persists an interview from the assembled
// parameters, returning the new interview ID.
type GeneratorService interface {
	GenerateFromParams(ctx context.Context, params extract.Params, userID string) (string, error)
}

// FeedbackService scores a practice transcript, returning the feedback ID.
type FeedbackService interface {
	Synthesize(ctx context.Context, req models.FeedbackRequest) (string, error)
}

// Options tunes the manager's provider targets and redirect timing.
type Options struct {
	GenerateTarget    string
	PracticeTarget    string
	RedirectDelay     time.Duration
	RedirectFailDelay time.Duration
}

// Manager owns the live call sessions of this instance and drives each
// one through Inactive → Connecting → Active → Finished. Provider
// events mutate session state; reaching Finished triggers exactly one
// post-call workflow.
type Manager struct {
	dialer    voice.Dialer
	generator GeneratorService
	feedback  FeedbackService
	publisher *Publisher
	logger    *zap.Logger
	opts      Options

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(dialer voice.Dialer, generator GeneratorService, feedback FeedbackService, publisher *Publisher, logger *zap.Logger, opts Options) *Manager {
	return &Manager{
		dialer:    dialer,
		generator: generator,
		feedback:  feedback,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
		sessions:  make(map[string]*Session),
	}
}

// Start opens a new session against the voice provider. The returned
// session is registered even when the provider dial fails; in that case
// it carries the error with state Inactive, so the front-end always has
// something to render.
func (m *Manager) Start(ctx context.Context, req models.StartCallRequest) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:          uuid.New().String(),
		Purpose:     req.Purpose,
		UserID:      req.UserID,
		UserName:    req.UserName,
		InterviewID: req.InterviewID,
		FeedbackID:  req.FeedbackID,
		Questions:   req.Questions,
		CreatedAt:   time.Now(),
		transcript:  NewTranscript(),
		state:       StateConnecting,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	metrics.RecordCallStarted(s.Purpose)
	m.publishState(s)

	providerSession, err := m.dialer.Dial(ctx, m.startRequest(req))
	if err != nil {
		m.logger.Error("voice session start failed",
			zap.String("session_id", s.ID),
			zap.String("purpose", s.Purpose),
			zap.Error(err))
		m.fail(s, "Could not start the call. Please try again.")
		return s, nil
	}

	s.provider = providerSession
	m.logger.Info("voice session started",
		zap.String("session_id", s.ID),
		zap.String("purpose", s.Purpose))

	go m.run(s, providerSession)

	return s, nil
}

// startRequest maps a call request onto the provider's session-start
// shape. Generate calls hand over the user's name and ID; practice
// calls hand over the pre-fetched, formatted question list.
func (m *Manager) startRequest(req models.StartCallRequest) voice.StartRequest {
	start := voice.StartRequest{
		ClientMessages: []string{},
		ServerMessages: []string{},
	}

	switch req.Purpose {
	case models.PurposeGenerate:
		start.Target = m.opts.GenerateTarget
		start.VariableValues = map[string]string{
			"username": req.UserName,
			"userid":   req.UserID,
		}
	case models.PurposePractice:
		start.Target = m.opts.PracticeTarget
		formatted := make([]string, 0, len(req.Questions))
		for _, q := range req.Questions {
			formatted = append(formatted, "- "+q)
		}
		start.VariableValues = map[string]string{
			"questions": strings.Join(formatted, "\n"),
		}
	}

	return start
}

// Get looks up a registered session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Stop requests provider-side termination and declares the session
// finished without waiting for acknowledgment, so callers are never
// blocked on a remote hang-up. Any submission already in flight is not
// cancelled.
func (m *Manager) Stop(id string) error {
	s, ok := m.Get(id)
	if !ok {
		return &models.ErrorResponse{Code: "call_not_found", Message: "Call session not found"}
	}

	if s.provider != nil {
		if err := s.provider.Stop(); err != nil {
			m.logger.Warn("provider stop request failed", zap.String("session_id", s.ID), zap.Error(err))
		}
	}

	m.finish(s)
	return nil
}

// Sweep drops terminal sessions older than maxAge from the registry
// and returns how many were removed. Live sessions are never touched.
func (m *Manager) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		state := s.State()
		if (state == StateFinished || state == StateInactive) && s.CreatedAt.Before(cutoff) {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		if s.provider != nil {
			s.provider.Close()
		}
	}
	if len(stale) > 0 {
		m.logger.Info("swept stale sessions", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Remove drops a session from the registry, the view-teardown analog.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok && s.provider != nil {
		s.provider.Close()
	}
}

// run relays provider events into session state until the session ends.
func (m *Manager) run(s *Session, providerSession voice.Session) {
	defer providerSession.Close()

	for ev := range providerSession.Events() {
		switch ev.Type {
		case voice.EventCallStart:
			if s.setState(StateActive) {
				m.publishState(s)
			}

		case voice.EventCallEnd:
			m.finish(s)
			return

		case voice.EventTranscript:
			if ev.TranscriptType != voice.TranscriptFinal {
				continue
			}
			s.transcript.Append(ev.Role, ev.Transcript)
			if s.Purpose == models.PurposeGenerate {
				s.observe(ev.Transcript)
			}

		case voice.EventSpeechUpdate:
			s.setSpeaking(ev.SpeechStatus == "started")

		case voice.EventError:
			d := voice.Classify(ev.ErrorMsg)
			if d.Benign {
				m.logger.Info("provider ended the meeting",
					zap.String("session_id", s.ID),
					zap.String("reason", d.Reason))
				m.finish(s)
				return
			}
			m.logger.Error("voice provider error",
				zap.String("session_id", s.ID),
				zap.String("message", d.Message))
			m.fail(s, d.Message)
			return
		}
	}

	// connection dropped without a call-end; a session already finished
	// by Stop needs nothing further
	if s.State() != StateFinished {
		m.fail(s, "Lost connection to the voice provider.")
	}
}

// fail abandons the session: user-visible message, state forced back to
// Inactive rather than cleaning up from Active.
func (m *Manager) fail(s *Session, msg string) {
	s.setError(msg)
	if s.setState(StateInactive) {
		metrics.RecordCallFinished(s.Purpose, string(StateInactive))
		m.publishState(s)
	}
}

// finish moves the session to Finished and runs the post-call workflow.
// The CompareAndSwap guard keeps the workflow single-shot even when the
// terminal state is reached twice (Stop racing the provider's call-end).
func (m *Manager) finish(s *Session) {
	if s.setState(StateFinished) {
		metrics.RecordCallFinished(s.Purpose, string(StateFinished))
		m.publishState(s)
	}

	if !s.submitted.CompareAndSwap(false, true) {
		return
	}

	go m.submit(s)
}

// submit runs the single post-call workflow for the session's purpose.
// Every failure path resolves to an error message plus a delayed
// redirect home; the user is never left on a dead session.
func (m *Manager) submit(s *Session) {
	ctx := context.Background()

	switch s.Purpose {
	case models.PurposeGenerate:
		params := s.paramsSnapshot().Merged(extract.DefaultParams())
		interviewID, err := m.generator.GenerateFromParams(ctx, params, s.UserID)
		if err != nil {
			m.logger.Error("interview generation failed",
				zap.String("session_id", s.ID), zap.Error(err))
			s.setError("Failed to generate the interview.")
			m.scheduleRedirect(s, "/", m.opts.RedirectFailDelay)
			return
		}
		m.logger.Info("interview generated",
			zap.String("session_id", s.ID),
			zap.String("interview_id", interviewID))
		m.scheduleRedirect(s, "/", m.opts.RedirectDelay)

	case models.PurposePractice:
		req := models.FeedbackRequest{
			InterviewID: s.InterviewID,
			UserID:      s.UserID,
			Transcript:  s.transcript.Messages(),
			FeedbackID:  s.FeedbackID,
		}
		if _, err := m.feedback.Synthesize(ctx, req); err != nil {
			m.logger.Error("feedback synthesis failed",
				zap.String("session_id", s.ID), zap.Error(err))
			s.setError("Failed to save feedback for this session.")
			m.scheduleRedirect(s, "/", m.opts.RedirectFailDelay)
			return
		}
		m.scheduleRedirect(s, "/interview/"+s.InterviewID+"/feedback", m.opts.RedirectDelay)
	}
}

func (m *Manager) scheduleRedirect(s *Session, target string, delay time.Duration) {
	if delay <= 0 {
		s.setRedirect(target)
		return
	}
	time.AfterFunc(delay, func() { s.setRedirect(target) })
}

func (m *Manager) publishState(s *Session) {
	if err := m.publisher.Publish(context.Background(), s.ID, s.Purpose, s.State()); err != nil {
		m.logger.Warn("lifecycle publish failed", zap.String("session_id", s.ID), zap.Error(err))
	}
}
