// Package feedback scores a completed practice session: format the
// transcript, prompt the model for a structured evaluation, repair the
// response and persist it against the (interview, user) pair.
package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/call"
	"github.com/shihab-newaz/ai-interview/internal/llm"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/prompts"
	"github.com/shihab-newaz/ai-interview/internal/repair"
)

// FeedbackStore is the slice of the feedback repository the synthesizer
// needs.
type FeedbackStore interface {
	Upsert(ctx context.Context, feedback *models.Feedback) (*models.Feedback, error)
}

type Synthesizer struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	store         FeedbackStore
	logger        *zap.Logger
}

func NewSynthesizer(provider llm.Provider, promptManager prompts.PromptProvider, store FeedbackStore, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		provider:      provider,
		promptManager: promptManager,
		store:         store,
		logger:        logger,
	}
}

// Create scores the transcript and writes the feedback record. A
// supplied FeedbackID overwrites that record; otherwise a fresh ID is
// minted. Malformed model output never surfaces: the repair cascade
// guarantees a well-shaped evaluation.
func (s *Synthesizer) Create(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error) {
	requestID := uuid.New().String()

	prompt, err := s.promptManager.BuildPrompt("feedback", map[string]string{
		"Categories": strings.Join(models.FeedbackCategories, ", "),
		"Transcript": call.Format(req.Transcript),
	})
	if err != nil {
		return nil, err
	}

	completion, err := s.provider.Complete(ctx, prompt, requestID)
	if err != nil {
		return nil, err
	}

	evaluation := repair.FeedbackEvaluation(completion.Text, models.FeedbackCategories)
	total, categories := normalize(evaluation)

	id := req.FeedbackID
	if id == "" {
		id = uuid.New().String()
	}

	feedback := &models.Feedback{
		ID:              id,
		InterviewID:     req.InterviewID,
		UserID:          req.UserID,
		TotalScore:      total,
		CategoryScores:  categories,
		Strengths:       evaluation.Strengths,
		AreasForGrowth:  evaluation.AreasForGrowth,
		FinalAssessment: evaluation.FinalAssessment,
		CreatedAt:       time.Now().UTC(),
	}

	stored, err := s.store.Upsert(ctx, feedback)
	if err != nil {
		return nil, err
	}

	s.logger.Info("feedback stored",
		zap.String("request_id", requestID),
		zap.String("feedback_id", stored.ID),
		zap.String("interview_id", stored.InterviewID),
		zap.Int("total_score", stored.TotalScore),
		zap.Int("processing_time_ms", completion.ProcessingTime))

	return stored, nil
}

// Synthesize adapts Create onto the post-call workflow surface.
func (s *Synthesizer) Synthesize(ctx context.Context, req models.FeedbackRequest) (string, error) {
	feedback, err := s.Create(ctx, req)
	if err != nil {
		return "", err
	}
	return feedback.ID, nil
}

// normalize forces the evaluation onto the fixed category list: exactly
// the five known names in report order, unknown categories dropped,
// missing ones filled at a neutral 50, every score clamped to [0,100].
func normalize(evaluation repair.Evaluation) (int, []models.CategoryScore) {
	byName := make(map[string]repair.CategoryResult, len(evaluation.CategoryScores))
	for _, c := range evaluation.CategoryScores {
		byName[strings.ToLower(strings.TrimSpace(c.Name))] = c
	}

	categories := make([]models.CategoryScore, 0, len(models.FeedbackCategories))
	sum := 0
	for _, name := range models.FeedbackCategories {
		score := 50
		comment := "Not enough signal in the transcript to evaluate this area."
		if c, ok := byName[strings.ToLower(name)]; ok {
			score = clamp(c.Score)
			if c.Comment != "" {
				comment = c.Comment
			}
		}
		sum += score
		categories = append(categories, models.CategoryScore{Name: name, Score: score, Comment: comment})
	}

	total := clamp(evaluation.TotalScore)
	if total == 0 && len(categories) > 0 {
		total = sum / len(categories)
	}
	return total, categories
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
