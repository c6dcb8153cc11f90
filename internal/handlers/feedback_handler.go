package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/middleware"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/repositories"
	"github.com/shihab-newaz/ai-interview/internal/utils"
)

type FeedbackCreator interface {
	Create(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error)
}

type FeedbackRepo interface {
	GetLatest(ctx context.Context, interviewID, userID string) (*models.Feedback, error)
}

type FeedbackHandler struct {
	synthesizer FeedbackCreator
	repo        FeedbackRepo
	logger      *zap.Logger
}

func NewFeedbackHandler(synthesizer FeedbackCreator, repo FeedbackRepo, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		synthesizer: synthesizer,
		repo:        repo,
		logger:      logger,
	}
}

// CreateFeedbackHandler scores a submitted transcript and stores the
// evaluation. Resubmitting with the same feedbackId overwrites the
// earlier record.
func (handler *FeedbackHandler) CreateFeedbackHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.FeedbackRequest](request)

	feedback, err := handler.synthesizer.Create(request.Context(), *req)
	if err != nil {
		handler.logger.Error("feedback synthesis failed",
			zap.String("interview_id", req.InterviewID),
			zap.String("user_id", req.UserID),
			zap.Error(err))
		utils.JSON(writer, http.StatusInternalServerError, models.FeedbackResponse{
			Success: false,
			Error:   "Failed to generate feedback",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, models.FeedbackResponse{
		Success:    true,
		FeedbackID: feedback.ID,
	})
}

// GetFeedbackHandler returns the most recent evaluation for an
// (interview, user) pair.
func (handler *FeedbackHandler) GetFeedbackHandler(writer http.ResponseWriter, request *http.Request) {
	interviewID := request.URL.Query().Get("interviewId")
	userID := request.URL.Query().Get("userId")
	if interviewID == "" || userID == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_parameters",
			Message: "interviewId and userId query parameters are required",
		})
		return
	}

	feedback, err := handler.repo.GetLatest(request.Context(), interviewID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "feedback_not_found",
				Message: "No feedback found for this interview",
			})
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to fetch feedback",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, feedback)
}
