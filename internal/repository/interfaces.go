package repository

import "github.com/biloute593/GAMELLE-APP/internal/models"

// DishRepo is the interface for dish repository operations.
type DishRepo interface {
	ListDishes() ([]models.Dish, error)
	GetDishByID(dishID int) (*models.Dish, error)
	CreateDish(dish *models.Dish) error
}
