package testutil

import (
	"time"

	"github.com/biloute593/GAMELLE-APP/internal/ai"
	"github.com/biloute593/GAMELLE-APP/internal/config"
	"github.com/biloute593/GAMELLE-APP/internal/models"
)

// TestPrompts returns minimal prompt templates using every placeholder.
func TestPrompts() *config.Prompts {
	return &config.Prompts{
		Ideas:  config.PromptPair{User: "Ingrédients: {{.Ingredients}}\nCuisine: {{.Cuisine}}"},
		Search: config.PromptPair{User: "Query: {{.Query}}\n{{.DishList}}\nMATCHING_IDS: [...]"},
	}
}

// TestDish creates a dish with realistic fields. Later ids are newer.
func TestDish(id int, name, cuisine string) models.Dish {
	return models.Dish{
		ID:          id,
		Name:        name,
		Description: "Un plat maison préparé avec soin.",
		Price:       12.5,
		Cuisine:     cuisine,
		Cook: models.Cook{
			Name:      "Marie Dupont",
			AvatarURL: "https://i.pravatar.cc/150?u=MarieDupont",
		},
		ImageURL:  "https://example.com/" + name + ".jpg",
		Rating:    4.6,
		Reviews:   18,
		CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour),
	}
}

// TestStorefront returns three dishes listed newest first.
func TestStorefront() []models.Dish {
	return []models.Dish{
		TestDish(3, "Tajine de poulet", "Marocaine"),
		TestDish(2, "Lasagnes maison", "Italienne"),
		TestDish(1, "Boeuf bourguignon", "Française"),
	}
}

// TestIdeas returns a typical set of generated suggestions.
func TestIdeas() []ai.GeneratedIdea {
	return []ai.GeneratedIdea{
		{Name: "Poulet rôti au citron", Description: "Un poulet doré et parfumé."},
		{Name: "Tajine express", Description: "Des saveurs marocaines en 30 minutes."},
		{Name: "Curry crémeux", Description: "Doux, épicé et réconfortant."},
	}
}
