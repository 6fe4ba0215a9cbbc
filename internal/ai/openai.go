package ai

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/biloute593/GAMELLE-APP/internal/config"
)

const defaultOpenAIModel = openai.GPT4oMini

// chatCompleter is the part of *openai.Client the provider calls.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider generates ideas with a json_schema response format and
// searches with plain text. Searches carry no citations.
type OpenAIProvider struct {
	clients   *LazyClient[chatCompleter]
	model     string
	prompts   *config.Prompts
	extractor MatchExtractor
}

// NewOpenAIProvider returns a provider whose client is created on first use.
func NewOpenAIProvider(apiKey, model string, prompts *config.Prompts) *OpenAIProvider {
	return newOpenAIProvider(NewLazyClient(func() (chatCompleter, error) {
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return openai.NewClient(apiKey), nil
	}), model, prompts)
}

func newOpenAIProvider(clients *LazyClient[chatCompleter], model string, prompts *config.Prompts) *OpenAIProvider {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIProvider{
		clients:   clients,
		model:     model,
		prompts:   prompts,
		extractor: SentinelExtractor{},
	}
}

var ideasDefinition = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"suggestions": {
			Type:        jsonschema.Array,
			Description: suggestionsDescription,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"nom_plat":         {Type: jsonschema.String, Description: nameFieldDescription},
					"description_plat": {Type: jsonschema.String, Description: descriptionFieldDescriptor},
				},
				Required:             []string{"nom_plat", "description_plat"},
				AdditionalProperties: false,
			},
		},
	},
	Required:             []string{"suggestions"},
	AdditionalProperties: false,
}

func (p *OpenAIProvider) GenerateIdeas(ctx context.Context, ingredients, cuisine string) ([]GeneratedIdea, error) {
	client, err := p.clients.Get()
	if err != nil {
		return nil, err
	}

	prompt, err := renderIdeasPrompt(p.prompts, ingredients, cuisine)
	if err != nil {
		return nil, err
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: ideasTemperature,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "dish_ideas",
				Schema: &ideasDefinition,
				Strict: true,
			},
		},
	})
	if err != nil {
		return nil, &RemoteCallError{Provider: config.ProviderOpenAI, Err: err}
	}

	return parseIdeas(openAIText(resp))
}

func (p *OpenAIProvider) SearchDishes(ctx context.Context, query string, dishes []DishEntry) (*SearchResult, error) {
	client, err := p.clients.Get()
	if err != nil {
		return nil, err
	}

	prompt, err := renderSearchPrompt(p.prompts, query, dishes, false)
	if err != nil {
		return nil, err
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: searchTemperature,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
	})
	if err != nil {
		return nil, &RemoteCallError{Provider: config.ProviderOpenAI, Err: err}
	}

	text := strings.TrimSpace(openAIText(resp))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &SearchResult{
		MatchedIDs: p.extractor.ExtractMatches(text),
		Citations:  []GroundingChunk{},
	}, nil
}

func openAIText(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Message.Content
}
