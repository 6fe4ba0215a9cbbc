package ai

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type fakeCompleter struct {
	calls   int
	request openai.ChatCompletionRequest
	resp    openai.ChatCompletionResponse
	err     error
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.request = request
	return f.resp, f.err
}

func completion(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
	}
}

func newTestOpenAI(c *fakeCompleter) *OpenAIProvider {
	return newOpenAIProvider(NewLazyClient(func() (chatCompleter, error) { return c, nil }), "", testPrompts())
}

func TestOpenAI_GenerateIdeas(t *testing.T) {
	c := &fakeCompleter{resp: completion(`{"suggestions":[{"nom_plat":"Risotto","description_plat":"Crémeux."}]}`)}
	p := newTestOpenAI(c)

	ideas, err := p.GenerateIdeas(context.Background(), "riz", "Italienne")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ideas) != 1 || ideas[0].Name != "Risotto" {
		t.Errorf("ideas = %+v", ideas)
	}
	if c.request.Model != defaultOpenAIModel {
		t.Errorf("model = %q, want %q", c.request.Model, defaultOpenAIModel)
	}
	if c.request.ResponseFormat == nil || c.request.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONSchema {
		t.Errorf("response format = %+v, want json_schema", c.request.ResponseFormat)
	}
}

func TestOpenAI_SearchDishes(t *testing.T) {
	c := &fakeCompleter{resp: completion("MATCHING_IDS: [3]")}
	p := newTestOpenAI(c)

	result, err := p.SearchDishes(context.Background(), "spicy", []DishEntry{{ID: 3, Name: "Chili"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(result.MatchedIDs, []int{3}) {
		t.Errorf("MatchedIDs = %v, want [3]", result.MatchedIDs)
	}
	if result.Citations == nil || len(result.Citations) != 0 {
		t.Errorf("Citations = %v, want empty slice", result.Citations)
	}
	if c.request.ResponseFormat != nil {
		t.Error("search should not request a structured response")
	}
	if len(c.request.Messages) == 0 || strings.Contains(c.request.Messages[len(c.request.Messages)-1].Content, "web search available") {
		t.Errorf("search prompt should not describe a web search tool, got %+v", c.request.Messages)
	}
}

func TestOpenAI_RemoteFailure(t *testing.T) {
	c := &fakeCompleter{err: errors.New("timeout")}
	p := newTestOpenAI(c)

	_, err := p.SearchDishes(context.Background(), "spicy", nil)
	var remoteErr *RemoteCallError
	if !errors.As(err, &remoteErr) || remoteErr.Provider != "openai" {
		t.Errorf("err = %v, want openai *RemoteCallError", err)
	}
	if c.calls != 1 {
		t.Errorf("calls = %d, want 1", c.calls)
	}
}

func TestOpenAI_MissingKey(t *testing.T) {
	p := NewOpenAIProvider("", "", testPrompts())
	if _, err := p.GenerateIdeas(context.Background(), "a", "b"); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}
