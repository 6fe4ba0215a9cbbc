package repository

import (
	"errors"
	"fmt"

	"github.com/biloute593/GAMELLE-APP/internal/logger"
	"github.com/biloute593/GAMELLE-APP/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DishRepository is a repository for interacting with dishes.
type DishRepository struct {
	DB *gorm.DB
}

// NewDishRepository creates a new DishRepository.
func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{DB: db}
}

// ListDishes returns every dish, newest first.
func (r *DishRepository) ListDishes() ([]models.Dish, error) {
	var dishes []models.Dish
	err := r.DB.Order("created_at DESC").Order("id DESC").Find(&dishes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	return dishes, nil
}

// GetDishByID retrieves a dish by its ID.
func (r *DishRepository) GetDishByID(dishID int) (*models.Dish, error) {
	var dish models.Dish
	err := r.DB.Where("id = ?", dishID).First(&dish).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError{message: "Dish not found"}
		}
		logger.Get().Error("error retrieving dish", zap.Int("dish_id", dishID), zap.Error(err))
		return nil, err
	}
	return &dish, nil
}

// CreateDish stores a new dish. The ID is assigned as the current dish count
// plus one, inside the same transaction as the insert.
func (r *DishRepository) CreateDish(dish *models.Dish) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Dish{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count dishes: %w", err)
		}
		dish.ID = int(count) + 1

		if err := tx.Create(dish).Error; err != nil {
			logger.Get().Error("error creating dish", zap.Int("dish_id", dish.ID), zap.Error(err))
			return fmt.Errorf("failed to create dish: %w", err)
		}
		return nil
	})
}
