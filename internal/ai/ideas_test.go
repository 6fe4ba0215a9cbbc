package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/biloute593/GAMELLE-APP/internal/config"
)

func testPrompts() *config.Prompts {
	return &config.Prompts{
		Ideas:  config.PromptPair{User: "Ingrédients: {{.Ingredients}} / Cuisine: {{.Cuisine}}"},
		Search: config.PromptPair{User: "Query: {{.Query}}\n{{.DishList}}{{if .WebSearch}}\nweb search available{{end}}"},
	}
}

func TestParseIdeas_Valid(t *testing.T) {
	ideas, err := parseIdeas(`{"suggestions":[{"nom_plat":"Curry doré","description_plat":"Doux et parfumé."}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ideas) != 1 || ideas[0].Name != "Curry doré" || ideas[0].Description != "Doux et parfumé." {
		t.Errorf("ideas = %+v", ideas)
	}
}

func TestParseIdeas_CodeFence(t *testing.T) {
	ideas, err := parseIdeas("```json\n{\"suggestions\":[{\"nom_plat\":\"A\",\"description_plat\":\"B\"}]}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ideas) != 1 {
		t.Errorf("len(ideas) = %d, want 1", len(ideas))
	}
}

func TestParseIdeas_Empty(t *testing.T) {
	if _, err := parseIdeas("   "); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestParseIdeas_Malformed(t *testing.T) {
	inputs := []string{
		"not json",
		`{"ideas":[]}`,
		`{"suggestions":[{"nom_plat":"A"}]}`,
	}
	for _, in := range inputs {
		_, err := parseIdeas(in)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("parseIdeas(%q) err = %v, want *ParseError", in, err)
		}
	}
}

func TestRenderIdeasPrompt_EmbedsInputs(t *testing.T) {
	prompt, err := renderIdeasPrompt(testPrompts(), "poulet, citron", "Marocaine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "poulet, citron") || !strings.Contains(prompt, "Marocaine") {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestRenderSearchPrompt_ListsDishes(t *testing.T) {
	prompt, err := renderSearchPrompt(testPrompts(), "something cheesy", []DishEntry{
		{ID: 3, Name: "Gratin", Cuisine: "Française", Description: "Fondant."},
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "something cheesy") || !strings.Contains(prompt, "- ID 3: Gratin (Française) - Fondant.") {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestRenderSearchPrompt_WebSearchFlag(t *testing.T) {
	with, err := renderSearchPrompt(testPrompts(), "q", nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(with, "web search available") {
		t.Errorf("prompt with web search = %q", with)
	}

	without, err := renderSearchPrompt(testPrompts(), "q", nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(without, "web search available") {
		t.Errorf("prompt without web search = %q", without)
	}
}

func TestRenderPrompt_NilPrompts(t *testing.T) {
	if _, err := renderIdeasPrompt(nil, "a", "b"); err == nil {
		t.Error("expected error for nil prompts")
	}
}
