package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/middleware"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/repositories"
	"github.com/shihab-newaz/ai-interview/internal/utils"
)

// InterviewGenerator is the slice of the generator service the handler
// needs.
type InterviewGenerator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (*models.Interview, error)
}

type InterviewRepo interface {
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	ListByUser(ctx context.Context, userID string) ([]models.Interview, error)
	ListLatest(ctx context.Context, excludeUserID string, limit int64) ([]models.Interview, error)
}

type InterviewHandler struct {
	generator InterviewGenerator
	repo      InterviewRepo
	logger    *zap.Logger
}

func NewInterviewHandler(generator InterviewGenerator, repo InterviewRepo, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		generator: generator,
		repo:      repo,
		logger:    logger,
	}
}

// GenerateHandler produces a fresh interview from explicit parameters
// and persists it. Errors report success:false rather than a bare error
// body, matching what the polling front-end expects.
func (handler *InterviewHandler) GenerateHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateRequest](request)

	interview, err := handler.generator.Generate(request.Context(), *req)
	if err != nil {
		handler.logger.Error("interview generation failed",
			zap.String("user_id", req.UserID),
			zap.Error(err))
		utils.JSON(writer, http.StatusInternalServerError, models.GenerateResponse{
			Success: false,
			Error:   "Failed to generate interview",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, models.GenerateResponse{
		Success:     true,
		InterviewID: interview.ID,
	})
}

func (handler *InterviewHandler) GetInterviewHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	interview, err := handler.repo.GetByID(request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "interview_not_found",
				Message: "Interview not found",
			})
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to fetch interview",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, interview)
}

func (handler *InterviewHandler) ListInterviewsHandler(writer http.ResponseWriter, request *http.Request) {
	userID := request.URL.Query().Get("userId")
	if userID == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_user_id",
			Message: "userId query parameter is required",
		})
		return
	}

	interviews, err := handler.repo.ListByUser(request.Context(), userID)
	if err != nil {
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to fetch interviews",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, models.InterviewsResponse{
		Total: len(interviews),
		Items: interviews,
	})
}

// ListLatestHandler returns finalized interviews from other users, the
// community feed. The caller's own interviews are excluded.
func (handler *InterviewHandler) ListLatestHandler(writer http.ResponseWriter, request *http.Request) {
	userID := request.URL.Query().Get("userId")
	if userID == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_user_id",
			Message: "userId query parameter is required",
		})
		return
	}

	limit := int64(models.DefaultLatestLimit)
	if limitStr := request.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.ParseInt(limitStr, 10, 64); err == nil && l > 0 && l <= 100 {
			limit = l
		} else {
			utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
				Code:    "invalid_limit",
				Message: "limit must be a positive integer between 1 and 100",
			})
			return
		}
	}

	interviews, err := handler.repo.ListLatest(request.Context(), userID, limit)
	if err != nil {
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to fetch interviews",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, models.InterviewsResponse{
		Total: len(interviews),
		Items: interviews,
	})
}
