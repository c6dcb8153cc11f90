package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/middleware"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/repositories"
	"github.com/shihab-newaz/ai-interview/internal/utils"
)

type UserRepo interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	EnsureUser(ctx context.Context, user *models.User) error
}

type UserHandler struct {
	repo   UserRepo
	logger *zap.Logger
}

func NewUserHandler(repo UserRepo, logger *zap.Logger) *UserHandler {
	return &UserHandler{repo: repo, logger: logger}
}

// EnsureUserHandler records the caller's identity-provider fields on
// first sign-in. Repeated calls for a known user are no-ops.
func (handler *UserHandler) EnsureUserHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.EnsureUserRequest](request)

	user := &models.User{ID: req.ID, Name: req.Name, Email: req.Email}
	if err := handler.repo.EnsureUser(request.Context(), user); err != nil {
		handler.logger.Error("user sync failed", zap.String("user_id", req.ID), zap.Error(err))
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to record user",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, map[string]bool{"success": true})
}

func (handler *UserHandler) GetUserHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	user, err := handler.repo.GetByID(request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
				Code:    "user_not_found",
				Message: "User not found",
			})
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Failed to fetch user",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, user)
}
