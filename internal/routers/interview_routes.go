package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/shihab-newaz/ai-interview/internal/handlers"
	"github.com/shihab-newaz/ai-interview/internal/middleware"
	"github.com/shihab-newaz/ai-interview/internal/models"
)

func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, jwtSecret string) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.With(middleware.ValidateRequest[*models.GenerateRequest]()).Post("/generate", interviewHandler.GenerateHandler)
		r.Get("/latest", interviewHandler.ListLatestHandler)
		r.Get("/{id}", interviewHandler.GetInterviewHandler)
		r.Get("/", interviewHandler.ListInterviewsHandler)
	})
}

func FeedbackRoutes(router *chi.Mux, feedbackHandler *handlers.FeedbackHandler, jwtSecret string) {
	router.Route("/api/v1/feedback", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.With(middleware.ValidateRequest[*models.FeedbackRequest]()).Post("/", feedbackHandler.CreateFeedbackHandler)
		r.Get("/", feedbackHandler.GetFeedbackHandler)
	})
}

func UserRoutes(router *chi.Mux, userHandler *handlers.UserHandler, jwtSecret string) {
	router.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.With(middleware.ValidateRequest[*models.EnsureUserRequest]()).Post("/", userHandler.EnsureUserHandler)
		r.Get("/{id}", userHandler.GetUserHandler)
	})
}

func CallRoutes(router *chi.Mux, callHandler *handlers.CallHandler, jwtSecret string) {
	router.Route("/api/v1/calls", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))
		r.With(middleware.ValidateRequest[*models.StartCallRequest]()).Post("/", callHandler.StartCallHandler)
		r.Get("/{id}", callHandler.CallStatusHandler)
		r.Post("/{id}/stop", callHandler.StopCallHandler)
	})
}
