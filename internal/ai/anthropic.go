package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/biloute593/GAMELLE-APP/internal/config"
)

const (
	defaultAnthropicModel = anthropic.ModelClaude3_5Sonnet20241022
	ideasToolName         = "propose_dish_ideas"
	anthropicMaxTokens    = 2048
)

// messageCreator is the part of the Claude messages API the provider calls.
type messageCreator interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicProvider generates ideas through a forced tool call and searches
// with plain text. Claude has no web grounding here, so searches carry no
// citations.
type AnthropicProvider struct {
	clients   *LazyClient[messageCreator]
	model     anthropic.Model
	prompts   *config.Prompts
	extractor MatchExtractor
}

// NewAnthropicProvider returns a provider whose client is created on first use.
func NewAnthropicProvider(apiKey, model string, prompts *config.Prompts) *AnthropicProvider {
	return newAnthropicProvider(NewLazyClient(func() (messageCreator, error) {
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		client := anthropic.NewClient(option.WithAPIKey(apiKey), option.WithMaxRetries(0))
		return &client.Messages, nil
	}), model, prompts)
}

func newAnthropicProvider(clients *LazyClient[messageCreator], model string, prompts *config.Prompts) *AnthropicProvider {
	m := defaultAnthropicModel
	if model != "" {
		m = anthropic.Model(model)
	}
	return &AnthropicProvider{
		clients:   clients,
		model:     m,
		prompts:   prompts,
		extractor: SentinelExtractor{},
	}
}

// ideasTool mirrors the JSON schema the other backends use for ideas.
func ideasTool() anthropic.ToolUnionParam {
	return anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        ideasToolName,
			Description: anthropic.String("Propose dish names and descriptions for a home cook's listing."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type: "object",
				Properties: map[string]interface{}{
					"suggestions": map[string]interface{}{
						"type":        "array",
						"description": suggestionsDescription,
						"minItems":    1,
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"nom_plat":         map[string]interface{}{"type": "string", "description": nameFieldDescription},
								"description_plat": map[string]interface{}{"type": "string", "description": descriptionFieldDescriptor},
							},
							"required": []string{"nom_plat", "description_plat"},
						},
					},
				},
				ExtraFields: map[string]interface{}{
					"required": []string{"suggestions"},
				},
			},
		},
	}
}

func newUserMessage(text string) anthropic.MessageParam {
	return anthropic.MessageParam{
		Role:    anthropic.MessageParamRoleUser,
		Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(text)},
	}
}

func (p *AnthropicProvider) GenerateIdeas(ctx context.Context, ingredients, cuisine string) ([]GeneratedIdea, error) {
	client, err := p.clients.Get()
	if err != nil {
		return nil, err
	}

	prompt, err := renderIdeasPrompt(p.prompts, ingredients, cuisine)
	if err != nil {
		return nil, err
	}

	resp, err := client.New(ctx, anthropic.MessageNewParams{
		Model:       p.model,
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(ideasTemperature),
		Messages:    []anthropic.MessageParam{newUserMessage(prompt)},
		Tools:       []anthropic.ToolUnionParam{ideasTool()},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfToolChoiceTool: &anthropic.ToolChoiceToolParam{Name: ideasToolName},
		},
	})
	if err != nil {
		return nil, &RemoteCallError{Provider: config.ProviderAnthropic, Err: err}
	}

	for _, block := range resp.Content {
		if block.Type == "tool_use" {
			return parseIdeas(string(block.Input))
		}
	}
	return nil, &ParseError{Err: errors.New("no tool_use block in Claude response")}
}

func (p *AnthropicProvider) SearchDishes(ctx context.Context, query string, dishes []DishEntry) (*SearchResult, error) {
	client, err := p.clients.Get()
	if err != nil {
		return nil, err
	}

	prompt, err := renderSearchPrompt(p.prompts, query, dishes, false)
	if err != nil {
		return nil, err
	}

	resp, err := client.New(ctx, anthropic.MessageNewParams{
		Model:       p.model,
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(searchTemperature),
		Messages:    []anthropic.MessageParam{newUserMessage(prompt)},
	})
	if err != nil {
		return nil, &RemoteCallError{Provider: config.ProviderAnthropic, Err: err}
	}

	text := strings.TrimSpace(anthropicText(resp))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &SearchResult{
		MatchedIDs: p.extractor.ExtractMatches(text),
		Citations:  []GroundingChunk{},
	}, nil
}

// anthropicText returns the concatenated text blocks of a Claude response.
func anthropicText(msg *anthropic.Message) string {
	if msg == nil {
		return ""
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}
