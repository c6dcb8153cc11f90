package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/handlers"
	"github.com/shihab-newaz/ai-interview/internal/middleware"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/repositories"
)

type fakeGenerator struct {
	generateFn func(context.Context, models.GenerateRequest) (*models.Interview, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, req models.GenerateRequest) (*models.Interview, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, req)
	}
	return nil, repositories.ErrNotImplemented
}

type fakeInterviewRepo struct {
	getByIDFn    func(context.Context, string) (*models.Interview, error)
	listByUserFn func(context.Context, string) ([]models.Interview, error)
	listLatestFn func(context.Context, string, int64) ([]models.Interview, error)
}

func (f *fakeInterviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, repositories.ErrNotImplemented
}
func (f *fakeInterviewRepo) ListByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID)
	}
	return nil, repositories.ErrNotImplemented
}
func (f *fakeInterviewRepo) ListLatest(ctx context.Context, excludeUserID string, limit int64) ([]models.Interview, error) {
	if f.listLatestFn != nil {
		return f.listLatestFn(ctx, excludeUserID, limit)
	}
	return nil, repositories.ErrNotImplemented
}

func newInterviewRouter(h *handlers.InterviewHandler) *chi.Mux {
	r := chi.NewRouter()
	r.With(middleware.ValidateRequest[*models.GenerateRequest]()).Post("/api/v1/interviews/generate", h.GenerateHandler)
	r.Get("/api/v1/interviews/latest", h.ListLatestHandler)
	r.Get("/api/v1/interviews/{id}", h.GetInterviewHandler)
	r.Get("/api/v1/interviews", h.ListInterviewsHandler)
	return r
}

// POST /api/v1/interviews/generate
func TestGenerate_OK(t *testing.T) {
	gen := &fakeGenerator{
		generateFn: func(_ context.Context, req models.GenerateRequest) (*models.Interview, error) {
			if req.UserID != "u1" {
				t.Fatalf("expected userid u1, got %s", req.UserID)
			}
			return &models.Interview{ID: "iv-42", UserID: req.UserID}, nil
		},
	}
	h := handlers.NewInterviewHandler(gen, &fakeInterviewRepo{}, zap.NewNop())
	r := newInterviewRouter(h)

	body := `{"role":"backend","type":"technical","level":"senior","techstack":"go","amount":5,"userid":"u1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/interviews/generate", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp models.GenerateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.InterviewID != "iv-42" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGenerate_MissingUserID(t *testing.T) {
	h := handlers.NewInterviewHandler(&fakeGenerator{}, &fakeInterviewRepo{}, zap.NewNop())
	r := newInterviewRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interviews/generate", bytes.NewBufferString(`{"role":"backend"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	gen := &fakeGenerator{
		generateFn: func(context.Context, models.GenerateRequest) (*models.Interview, error) {
			return nil, errors.New("model unavailable")
		},
	}
	h := handlers.NewInterviewHandler(gen, &fakeInterviewRepo{}, zap.NewNop())
	r := newInterviewRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interviews/generate", bytes.NewBufferString(`{"userid":"u1"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var resp models.GenerateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("expected success false")
	}
}

// GET /api/v1/interviews/{id}
func TestGetInterview_OK(t *testing.T) {
	repo := &fakeInterviewRepo{
		getByIDFn: func(_ context.Context, id string) (*models.Interview, error) {
			return &models.Interview{ID: id, Role: "Backend Developer"}, nil
		},
	}
	h := handlers.NewInterviewHandler(&fakeGenerator{}, repo, zap.NewNop())
	r := newInterviewRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interviews/iv-1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var got models.Interview
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != "iv-1" {
		t.Fatalf("unexpected interview: %+v", got)
	}
}

func TestGetInterview_NotFound(t *testing.T) {
	repo := &fakeInterviewRepo{
		getByIDFn: func(context.Context, string) (*models.Interview, error) {
			return nil, repositories.ErrNotFound
		},
	}
	h := handlers.NewInterviewHandler(&fakeGenerator{}, repo, zap.NewNop())
	r := newInterviewRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interviews/missing", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

// GET /api/v1/interviews?userId=
func TestListInterviews_RequiresUserID(t *testing.T) {
	h := handlers.NewInterviewHandler(&fakeGenerator{}, &fakeInterviewRepo{}, zap.NewNop())
	r := newInterviewRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interviews", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListInterviews_OK(t *testing.T) {
	repo := &fakeInterviewRepo{
		listByUserFn: func(_ context.Context, userID string) ([]models.Interview, error) {
			return []models.Interview{{ID: "iv-1", UserID: userID}, {ID: "iv-2", UserID: userID}}, nil
		},
	}
	h := handlers.NewInterviewHandler(&fakeGenerator{}, repo, zap.NewNop())
	r := newInterviewRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interviews?userId=u1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp models.InterviewsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 interviews, got %d", resp.Total)
	}
}

// GET /api/v1/interviews/latest
func TestListLatest_DefaultLimit(t *testing.T) {
	var gotLimit int64
	repo := &fakeInterviewRepo{
		listLatestFn: func(_ context.Context, excludeUserID string, limit int64) ([]models.Interview, error) {
			gotLimit = limit
			return []models.Interview{{ID: "iv-9", UserID: "someone-else"}}, nil
		},
	}
	h := handlers.NewInterviewHandler(&fakeGenerator{}, repo, zap.NewNop())
	r := newInterviewRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interviews/latest?userId=u1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotLimit != int64(models.DefaultLatestLimit) {
		t.Fatalf("expected default limit %d, got %d", models.DefaultLatestLimit, gotLimit)
	}
}

func TestListLatest_InvalidLimit(t *testing.T) {
	h := handlers.NewInterviewHandler(&fakeGenerator{}, &fakeInterviewRepo{}, zap.NewNop())
	r := newInterviewRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interviews/latest?userId=u1&limit=0", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
