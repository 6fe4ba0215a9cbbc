package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/biloute593/GAMELLE-APP/internal/config"
)

// Field descriptions shared by every backend's idea schema.
const (
	suggestionsDescription     = "Liste de 3 à 5 suggestions de noms et descriptions de plats."
	nameFieldDescription       = "Nom créatif et appétissant pour le plat."
	descriptionFieldDescriptor = "Description courte et alléchante du plat (2-3 phrases max)."
)

func renderIdeasPrompt(prompts *config.Prompts, ingredients, cuisine string) (string, error) {
	if prompts == nil {
		return "", errors.New("ai: prompts are not loaded")
	}
	prompt, err := config.RenderPrompt(prompts.Ideas.User, map[string]interface{}{
		"Ingredients": ingredients,
		"Cuisine":     cuisine,
	})
	if err != nil {
		return "", fmt.Errorf("render ideas prompt: %w", err)
	}
	return prompt, nil
}

// renderSearchPrompt fills the search template. webSearch enables the
// instructions about the web search tool, which only some backends expose.
func renderSearchPrompt(prompts *config.Prompts, query string, dishes []DishEntry, webSearch bool) (string, error) {
	if prompts == nil {
		return "", errors.New("ai: prompts are not loaded")
	}
	prompt, err := config.RenderPrompt(prompts.Search.User, map[string]interface{}{
		"Query":     query,
		"DishList":  FormatDishList(dishes),
		"WebSearch": webSearch,
	})
	if err != nil {
		return "", fmt.Errorf("render search prompt: %w", err)
	}
	return prompt, nil
}

type rawIdeas struct {
	Suggestions *[]rawIdea `json:"suggestions"`
}

type rawIdea struct {
	Name        *string `json:"nom_plat"`
	Description *string `json:"description_plat"`
}

// parseIdeas decodes a schema-constrained reply. Both fields are required on
// every suggestion.
func parseIdeas(text string) ([]GeneratedIdea, error) {
	text = stripCodeFence(strings.TrimSpace(text))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var raw rawIdeas
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &ParseError{Err: err}
	}
	if raw.Suggestions == nil {
		return nil, &ParseError{Err: errors.New(`missing "suggestions"`)}
	}

	ideas := make([]GeneratedIdea, len(*raw.Suggestions))
	for i, s := range *raw.Suggestions {
		if s.Name == nil || s.Description == nil {
			return nil, &ParseError{Err: fmt.Errorf("suggestion %d is missing nom_plat or description_plat", i)}
		}
		ideas[i] = GeneratedIdea{Name: *s.Name, Description: *s.Description}
	}
	return ideas, nil
}

// stripCodeFence removes a surrounding ```json fence some models add.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
