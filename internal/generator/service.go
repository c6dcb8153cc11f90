// Package generator turns assembled interview parameters into a
// persisted interview: prompt the model, repair its output into a
// question list, sanitize for speech, store.
package generator

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/extract"
	"github.com/shihab-newaz/ai-interview/internal/llm"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/prompts"
	"github.com/shihab-newaz/ai-interview/internal/repair"
	"github.com/shihab-newaz/ai-interview/internal/utils"
)

// InterviewStore is the slice of the interview repository the generator
// needs.
type InterviewStore interface {
	Create(ctx context.Context, interview *models.Interview) (*models.Interview, error)
}

// cover images cycled across generated interviews
var coverImages = []string{
	"/covers/amazon.png",
	"/covers/facebook.png",
	"/covers/hostinger.png",
	"/covers/pinterest.png",
	"/covers/quora.png",
	"/covers/reddit.png",
	"/covers/skype.png",
	"/covers/spotify.png",
	"/covers/telegram.png",
	"/covers/tiktok.png",
	"/covers/yahoo.png",
}

type Service struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	store         InterviewStore
	logger        *zap.Logger
}

func NewService(provider llm.Provider, promptManager prompts.PromptProvider, store InterviewStore, logger *zap.Logger) *Service {
	return &Service{
		provider:      provider,
		promptManager: promptManager,
		store:         store,
		logger:        logger,
	}
}

// Generate creates and persists one interview. The model call is
// attempted once; its output always yields a non-empty question list
// through the repair cascade, so a created interview is never
// questionless.
func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) (*models.Interview, error) {
	req = withDefaults(req)
	requestID := uuid.New().String()

	prompt, err := s.promptManager.BuildPrompt("generate", map[string]string{
		"Role":      req.Role,
		"Level":     req.Level,
		"Type":      req.Type,
		"TechStack": req.TechStack,
		"Amount":    strconv.Itoa(req.Amount),
	})
	if err != nil {
		return nil, err
	}

	completion, err := s.provider.Complete(ctx, prompt, requestID)
	if err != nil {
		return nil, err
	}

	questions := repair.Questions(completion.Text)

	interview := &models.Interview{
		ID:         uuid.New().String(),
		Role:       req.Role,
		Level:      utils.NormalizeLevel(req.Level),
		Type:       utils.NormalizeType(req.Type),
		TechStack:  utils.SplitTechStack(req.TechStack),
		Questions:  questions,
		UserID:     req.UserID,
		Finalized:  true,
		CoverImage: coverImages[rand.Intn(len(coverImages))],
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.store.Create(ctx, interview)
	if err != nil {
		return nil, err
	}

	s.logger.Info("interview created",
		zap.String("request_id", requestID),
		zap.String("interview_id", created.ID),
		zap.String("role", created.Role),
		zap.Int("questions", len(created.Questions)),
		zap.Int("processing_time_ms", completion.ProcessingTime))

	return created, nil
}

// GenerateFromParams adapts extracted call parameters onto Generate,
// for the post-call workflow.
func (s *Service) GenerateFromParams(ctx context.Context, params extract.Params, userID string) (string, error) {
	interview, err := s.Generate(ctx, models.GenerateRequest{
		Role:      params.Role,
		Type:      params.Type,
		Level:     params.Level,
		TechStack: params.TechStack,
		Amount:    params.Amount,
		UserID:    userID,
	})
	if err != nil {
		return "", err
	}
	return interview.ID, nil
}

func withDefaults(req models.GenerateRequest) models.GenerateRequest {
	defaults := extract.DefaultParams()
	if strings.TrimSpace(req.Role) == "" {
		req.Role = defaults.Role
	}
	if strings.TrimSpace(req.Level) == "" {
		req.Level = defaults.Level
	}
	if strings.TrimSpace(req.Type) == "" {
		req.Type = defaults.Type
	}
	if strings.TrimSpace(req.TechStack) == "" {
		req.TechStack = defaults.TechStack
	}
	if req.Amount <= 0 {
		req.Amount = defaults.Amount
	}
	return req
}
