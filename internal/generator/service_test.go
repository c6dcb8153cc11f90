package generator

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/shihab-newaz/ai-interview/internal/extract"
	"github.com/shihab-newaz/ai-interview/internal/llm"
	"github.com/shihab-newaz/ai-interview/internal/models"
	"github.com/shihab-newaz/ai-interview/internal/prompts"
)

type fakeProvider struct {
	text string
	err  error
	last string
}

func (f *fakeProvider) Complete(_ context.Context, prompt string, _ string) (*llm.Completion, error) {
	f.last = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{Text: f.text, Model: "fake"}, nil
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

type fakeStore struct {
	created *models.Interview
	err     error
}

func (f *fakeStore) Create(_ context.Context, interview *models.Interview) (*models.Interview, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = interview
	return interview, nil
}

func newService(t *testing.T, provider llm.Provider, store InterviewStore) *Service {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager error: %v", err)
	}
	return NewService(provider, pm, store, zap.NewNop())
}

func TestGenerate_PersistsInterview(t *testing.T) {
	provider := &fakeProvider{text: `["What is Go?","Explain channels"]`}
	store := &fakeStore{}
	svc := newService(t, provider, store)

	interview, err := svc.Generate(context.Background(), models.GenerateRequest{
		Role:      "Backend Developer",
		Type:      "technical",
		Level:     "Senior",
		TechStack: "go, postgres",
		Amount:    2,
		UserID:    "u1",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if store.created == nil || store.created.ID != interview.ID {
		t.Fatalf("interview not persisted: %+v", store.created)
	}
	if len(interview.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %v", interview.Questions)
	}
	if interview.Level != "senior" {
		t.Fatalf("level not normalized: %q", interview.Level)
	}
	if len(interview.TechStack) != 2 || interview.TechStack[0] != "go" {
		t.Fatalf("techstack not split: %v", interview.TechStack)
	}
	if !interview.Finalized {
		t.Fatalf("interview must be finalized on creation")
	}
	if interview.CoverImage == "" {
		t.Fatalf("interview must carry a cover image")
	}
}

func TestGenerate_MalformedModelOutputStillYieldsQuestions(t *testing.T) {
	provider := &fakeProvider{text: "sorry, I can't do that"}
	store := &fakeStore{}
	svc := newService(t, provider, store)

	interview, err := svc.Generate(context.Background(), models.GenerateRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(interview.Questions) == 0 {
		t.Fatalf("questions must never be empty")
	}
}

func TestGenerate_ProviderFailureSurfaces(t *testing.T) {
	provider := &fakeProvider{err: &llm.ProviderError{Provider: "fake", Code: llm.ErrCodeServiceDown, Message: "down"}}
	svc := newService(t, provider, &fakeStore{})

	if _, err := svc.Generate(context.Background(), models.GenerateRequest{UserID: "u1"}); err == nil {
		t.Fatalf("expected provider error to surface")
	}
}

func TestGenerate_StoreFailureSurfaces(t *testing.T) {
	provider := &fakeProvider{text: `["Q"]`}
	store := &fakeStore{err: errors.New("write failed")}
	svc := newService(t, provider, store)

	if _, err := svc.Generate(context.Background(), models.GenerateRequest{UserID: "u1"}); err == nil {
		t.Fatalf("expected store error to surface")
	}
}

func TestGenerateFromParams_AppliesDefaults(t *testing.T) {
	provider := &fakeProvider{text: `["Q"]`}
	store := &fakeStore{}
	svc := newService(t, provider, store)

	id, err := svc.GenerateFromParams(context.Background(), extract.Params{}.Merged(extract.DefaultParams()), "u1")
	if err != nil {
		t.Fatalf("GenerateFromParams error: %v", err)
	}
	if id == "" || store.created == nil {
		t.Fatalf("interview not created")
	}
	if store.created.Role == "" || store.created.Level == "" {
		t.Fatalf("defaults not applied: %+v", store.created)
	}
}
