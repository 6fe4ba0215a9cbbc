package service

import (
	"context"
	"strings"

	"github.com/biloute593/GAMELLE-APP/internal/ai"
)

// IdeaService helps cooks name and describe a dish before listing it.
type IdeaService struct {
	Provider ai.IdeaProvider
}

// NewIdeaService creates a new IdeaService.
func NewIdeaService(provider ai.IdeaProvider) *IdeaService {
	return &IdeaService{Provider: provider}
}

// GenerateIdeas asks the provider for suggestions once. Blank inputs are
// rejected before any remote call.
func (s *IdeaService) GenerateIdeas(ctx context.Context, ingredients, cuisine string) ([]ai.GeneratedIdea, error) {
	ingredients = strings.TrimSpace(ingredients)
	cuisine = strings.TrimSpace(cuisine)
	if ingredients == "" || cuisine == "" {
		return nil, &ValidationError{Message: MsgMissingIdeaInput}
	}

	ideas, err := s.Provider.GenerateIdeas(ctx, ingredients, cuisine)
	if err != nil {
		return nil, &GenerationError{Message: MsgIdeasFailed, Err: err}
	}
	return ideas, nil
}
