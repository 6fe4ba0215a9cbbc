package models

import "time"

// Dish is a home-cooked dish listed on the storefront. Dishes are immutable
// once created.
type Dish struct {
	ID          int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Cuisine     string    `gorm:"index" json:"cuisine"`
	Cook        Cook      `gorm:"embedded;embeddedPrefix:cook_" json:"cook"`
	ImageURL    string    `json:"imageUrl"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

// Cook is the seller a dish is attributed to.
type Cook struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}
