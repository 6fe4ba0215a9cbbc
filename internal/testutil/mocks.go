package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/biloute593/GAMELLE-APP/internal/ai"
	"github.com/biloute593/GAMELLE-APP/internal/models"
	"github.com/biloute593/GAMELLE-APP/internal/repository"
)

// --- MockProvider ---

// MockProvider is a mock implementation of ai.Provider. Calls are counted so
// tests can assert that no remote call happened.
type MockProvider struct {
	GenerateIdeasFunc func(ctx context.Context, ingredients, cuisine string) ([]ai.GeneratedIdea, error)
	SearchDishesFunc  func(ctx context.Context, query string, dishes []ai.DishEntry) (*ai.SearchResult, error)

	mu          sync.Mutex
	IdeaCalls   int
	SearchCalls int
}

func (m *MockProvider) GenerateIdeas(ctx context.Context, ingredients, cuisine string) ([]ai.GeneratedIdea, error) {
	m.mu.Lock()
	m.IdeaCalls++
	m.mu.Unlock()
	if m.GenerateIdeasFunc != nil {
		return m.GenerateIdeasFunc(ctx, ingredients, cuisine)
	}
	return nil, fmt.Errorf("GenerateIdeas not configured")
}

func (m *MockProvider) SearchDishes(ctx context.Context, query string, dishes []ai.DishEntry) (*ai.SearchResult, error) {
	m.mu.Lock()
	m.SearchCalls++
	m.mu.Unlock()
	if m.SearchDishesFunc != nil {
		return m.SearchDishesFunc(ctx, query, dishes)
	}
	return nil, fmt.Errorf("SearchDishes not configured")
}

// --- MockDishRepo ---

// MockDishRepo is an in-memory mock implementation of repository.DishRepo.
// Ids are assigned as count+1, like the gorm repository.
type MockDishRepo struct {
	mu     sync.Mutex
	Dishes map[int]*models.Dish

	// Error overrides: set these to force specific methods to return errors.
	ListDishesErr  error
	GetDishByIDErr error
	CreateDishErr  error
}

// NewMockDishRepo creates a new MockDishRepo holding the given dishes.
func NewMockDishRepo(dishes ...models.Dish) *MockDishRepo {
	m := &MockDishRepo{Dishes: make(map[int]*models.Dish)}
	for i := range dishes {
		d := dishes[i]
		m.Dishes[d.ID] = &d
	}
	return m
}

func (m *MockDishRepo) ListDishes() ([]models.Dish, error) {
	if m.ListDishesErr != nil {
		return nil, m.ListDishesErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	dishes := make([]models.Dish, 0, len(m.Dishes))
	for _, d := range m.Dishes {
		dishes = append(dishes, *d)
	}
	sort.Slice(dishes, func(i, j int) bool {
		if !dishes[i].CreatedAt.Equal(dishes[j].CreatedAt) {
			return dishes[i].CreatedAt.After(dishes[j].CreatedAt)
		}
		return dishes[i].ID > dishes[j].ID
	})
	return dishes, nil
}

func (m *MockDishRepo) GetDishByID(dishID int) (*models.Dish, error) {
	if m.GetDishByIDErr != nil {
		return nil, m.GetDishByIDErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.Dishes[dishID]
	if !ok {
		return nil, repository.NewNotFoundError("Dish not found")
	}
	dish := *d
	return &dish, nil
}

func (m *MockDishRepo) CreateDish(dish *models.Dish) error {
	if m.CreateDishErr != nil {
		return m.CreateDishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	dish.ID = len(m.Dishes) + 1
	if _, exists := m.Dishes[dish.ID]; exists {
		return fmt.Errorf("duplicate dish id %d", dish.ID)
	}
	stored := *dish
	m.Dishes[dish.ID] = &stored
	return nil
}

// --- MockPublisher ---

// MockPublisher records every dish published to the live feed.
type MockPublisher struct {
	mu        sync.Mutex
	Published []models.Dish
}

func (m *MockPublisher) PublishDish(dish models.Dish) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, dish)
}
