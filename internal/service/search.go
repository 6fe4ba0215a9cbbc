package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/biloute593/GAMELLE-APP/internal/ai"
	"github.com/biloute593/GAMELLE-APP/internal/models"
	"github.com/biloute593/GAMELLE-APP/internal/repository"
)

// SearchService filters the storefront with a natural-language query.
type SearchService struct {
	Repo     repository.DishRepo
	Provider ai.SearchProvider
}

// SearchResponse is what the storefront renders after a search. MatchedIDs
// is only meaningful when Filtered is set.
type SearchResponse struct {
	Dishes     []models.Dish
	MatchedIDs []int
	Citations  []ai.GroundingChunk
	Filtered   bool
}

// NewSearchService creates a new SearchService.
func NewSearchService(repo repository.DishRepo, provider ai.SearchProvider) *SearchService {
	return &SearchService{
		Repo:     repo,
		Provider: provider,
	}
}

// Search returns the dishes matching query. A blank query returns the whole
// storefront without calling the provider.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResponse, error) {
	dishes, err := s.Repo.ListDishes()
	if err != nil {
		return nil, newSearchError(fmt.Errorf("impossible de charger les plats: %w", err))
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchResponse{
			Dishes:    dishes,
			Citations: []ai.GroundingChunk{},
		}, nil
	}

	result, err := s.Provider.SearchDishes(ctx, query, ToDishEntries(dishes))
	if err != nil {
		return nil, newSearchError(err)
	}

	return &SearchResponse{
		Dishes:     filterByIDs(dishes, result.MatchedIDs),
		MatchedIDs: result.MatchedIDs,
		Citations:  result.Citations,
		Filtered:   true,
	}, nil
}

// ToDishEntries keeps the fields the search prompt lists.
func ToDishEntries(dishes []models.Dish) []ai.DishEntry {
	entries := make([]ai.DishEntry, len(dishes))
	for i, d := range dishes {
		entries[i] = ai.DishEntry{
			ID:          d.ID,
			Name:        d.Name,
			Cuisine:     d.Cuisine,
			Description: d.Description,
		}
	}
	return entries
}

// filterByIDs keeps dishes whose id is in ids, in storefront order. Unknown
// ids are ignored.
func filterByIDs(dishes []models.Dish, ids []int) []models.Dish {
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	matched := []models.Dish{}
	for _, d := range dishes {
		if wanted[d.ID] {
			matched = append(matched, d)
		}
	}
	return matched
}
