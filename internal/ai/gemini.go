package ai

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/biloute593/GAMELLE-APP/internal/config"
)

const defaultGeminiModel = "gemini-2.5-flash"

// contentGenerator is the part of *genai.Models the provider calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider generates ideas with a response schema and searches with the
// Google Search tool enabled.
type GeminiProvider struct {
	clients   *LazyClient[contentGenerator]
	model     string
	prompts   *config.Prompts
	extractor MatchExtractor
}

// NewGeminiProvider returns a provider whose client is created on first use.
func NewGeminiProvider(apiKey, model string, prompts *config.Prompts) *GeminiProvider {
	return newGeminiProvider(NewLazyClient(func() (contentGenerator, error) {
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, &RemoteCallError{Provider: config.ProviderGemini, Err: err}
		}
		return client.Models, nil
	}), model, prompts)
}

func newGeminiProvider(clients *LazyClient[contentGenerator], model string, prompts *config.Prompts) *GeminiProvider {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{
		clients:   clients,
		model:     model,
		prompts:   prompts,
		extractor: SentinelExtractor{},
	}
}

var ideasSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestions": {
			Type:        genai.TypeArray,
			Description: suggestionsDescription,
			MinItems:    genai.Ptr[int64](1),
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"nom_plat": {
						Type:        genai.TypeString,
						Description: nameFieldDescription,
					},
					"description_plat": {
						Type:        genai.TypeString,
						Description: descriptionFieldDescriptor,
					},
				},
				Required: []string{"nom_plat", "description_plat"},
			},
		},
	},
	Required: []string{"suggestions"},
}

func (p *GeminiProvider) GenerateIdeas(ctx context.Context, ingredients, cuisine string) ([]GeneratedIdea, error) {
	client, err := p.clients.Get()
	if err != nil {
		return nil, err
	}

	prompt, err := renderIdeasPrompt(p.prompts, ingredients, cuisine)
	if err != nil {
		return nil, err
	}

	resp, err := client.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ideasSchema,
		Temperature:      genai.Ptr[float32](ideasTemperature),
	})
	if err != nil {
		return nil, &RemoteCallError{Provider: config.ProviderGemini, Err: err}
	}

	return parseIdeas(geminiText(resp))
}

func (p *GeminiProvider) SearchDishes(ctx context.Context, query string, dishes []DishEntry) (*SearchResult, error) {
	client, err := p.clients.Get()
	if err != nil {
		return nil, err
	}

	prompt, err := renderSearchPrompt(p.prompts, query, dishes, true)
	if err != nil {
		return nil, err
	}

	resp, err := client.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		Temperature: genai.Ptr[float32](searchTemperature),
	})
	if err != nil {
		return nil, &RemoteCallError{Provider: config.ProviderGemini, Err: err}
	}

	text := strings.TrimSpace(geminiText(resp))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &SearchResult{
		MatchedIDs: p.extractor.ExtractMatches(text),
		Citations:  geminiCitations(resp),
	}, nil
}

// geminiText concatenates the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// geminiCitations returns the web grounding chunks of the first candidate.
// Chunks without a web source or URI are skipped.
func geminiCitations(resp *genai.GenerateContentResponse) []GroundingChunk {
	citations := []GroundingChunk{}
	if resp == nil || len(resp.Candidates) == 0 {
		return citations
	}
	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return citations
	}

	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		citations = append(citations, GroundingChunk{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return citations
}
