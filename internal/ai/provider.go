package ai

import (
	"context"
	"fmt"

	"github.com/biloute593/GAMELLE-APP/internal/config"
)

// IdeaProvider proposes dish names and descriptions for a cook's listing.
type IdeaProvider interface {
	GenerateIdeas(ctx context.Context, ingredients, cuisine string) ([]GeneratedIdea, error)
}

// SearchProvider matches a free-text query against the storefront dishes.
type SearchProvider interface {
	SearchDishes(ctx context.Context, query string, dishes []DishEntry) (*SearchResult, error)
}

// Provider is implemented by every model backend.
type Provider interface {
	IdeaProvider
	SearchProvider
}

// GeneratedIdea is a suggested (name, description) pair. The JSON names
// follow the schema the model is asked to fill.
type GeneratedIdea struct {
	Name        string `json:"nom_plat"`
	Description string `json:"description_plat"`
}

// GeneratedIdeas is the top-level object returned by idea generation.
type GeneratedIdeas struct {
	Suggestions []GeneratedIdea `json:"suggestions"`
}

// DishEntry is the part of a dish the search prompt enumerates.
type DishEntry struct {
	ID          int
	Name        string
	Cuisine     string
	Description string
}

// GroundingChunk is a citation the model attached after using web search.
type GroundingChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// SearchResult holds the dish ids picked by the model and any citations.
type SearchResult struct {
	MatchedIDs []int
	Citations  []GroundingChunk
}

// Sampling temperatures used by every backend.
const (
	ideasTemperature  = 0.8
	searchTemperature = 0.2
)

// NewProvider builds the backend selected by AI_PROVIDER. Clients are created
// lazily, so a missing API key only surfaces on the first call.
func NewProvider(cfg *config.Config) (Provider, error) {
	apiKey := cfg.EnvVars.APIKey
	model := cfg.EnvVars.AIModel

	switch cfg.EnvVars.AIProvider {
	case "", config.ProviderGemini:
		return NewGeminiProvider(apiKey, model, cfg.Prompts), nil
	case config.ProviderAnthropic:
		return NewAnthropicProvider(apiKey, model, cfg.Prompts), nil
	case config.ProviderOpenAI:
		return NewOpenAIProvider(apiKey, model, cfg.Prompts), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.EnvVars.AIProvider)
	}
}
