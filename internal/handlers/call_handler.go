package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/call"
	"github.com/shihab-newaz/ai-interview/internal/middleware"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/utils"
)

// CallService is the slice of the session manager the handler needs.
type CallService interface {
	Start(ctx context.Context, req models.StartCallRequest) (*call.Session, error)
	Get(id string) (*call.Session, bool)
	Stop(id string) error
}

type CallHandler struct {
	manager CallService
	logger  *zap.Logger
}

func NewCallHandler(manager CallService, logger *zap.Logger) *CallHandler {
	return &CallHandler{manager: manager, logger: logger}
}

// StartCallHandler opens a live voice session. The response always
// carries a session ID; a failed provider dial shows up as an Inactive
// session with an error message, not as an HTTP error.
func (handler *CallHandler) StartCallHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartCallRequest](request)

	session, err := handler.manager.Start(request.Context(), *req)
	if err != nil {
		if errResp, ok := err.(*models.ErrorResponse); ok {
			utils.JSON(writer, http.StatusBadRequest, *errResp)
			return
		}
		handler.logger.Error("call start failed", zap.Error(err))
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "call_error",
			Message: "Failed to start call",
		})
		return
	}

	utils.JSON(writer, http.StatusCreated, session.Status())
}

// CallStatusHandler is the polling endpoint: state, speaking flag,
// transcript so far and, once the session is finished, the redirect
// target.
func (handler *CallHandler) CallStatusHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	session, ok := handler.manager.Get(id)
	if !ok {
		utils.JSON(writer, http.StatusNotFound, models.ErrorResponse{
			Code:    "call_not_found",
			Message: "Call session not found",
		})
		return
	}

	utils.JSON(writer, http.StatusOK, session.Status())
}

func (handler *CallHandler) StopCallHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	if err := handler.manager.Stop(id); err != nil {
		if errResp, ok := err.(*models.ErrorResponse); ok {
			utils.JSON(writer, http.StatusNotFound, *errResp)
			return
		}
		utils.JSON(writer, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "call_error",
			Message: "Failed to stop call",
		})
		return
	}

	session, _ := handler.manager.Get(id)
	utils.JSON(writer, http.StatusOK, session.Status())
}
