package service

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"

	goaway "github.com/TwiN/go-away"
	"github.com/asaskevich/govalidator"

	"github.com/biloute593/GAMELLE-APP/internal/models"
	"github.com/biloute593/GAMELLE-APP/internal/repository"
)

// DishPublisher announces new listings to live storefront clients.
type DishPublisher interface {
	PublishDish(dish models.Dish)
}

// DishService is the business logic layer for storefront listings.
type DishService struct {
	Repo      repository.DishRepo
	Publisher DishPublisher

	profanity *goaway.ProfanityDetector
	randFloat func() float64
	randIntN  func(n int) int
	now       func() time.Time
}

// NewDishListing is what a cook submits to sell a dish.
type NewDishListing struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Cuisine     string  `json:"cuisine"`
	CookName    string  `json:"cookName"`
	ImageURL    string  `json:"imageUrl"`
}

// NewDishService creates a new DishService. publisher may be nil.
func NewDishService(repo repository.DishRepo, publisher DishPublisher) *DishService {
	return &DishService{
		Repo:      repo,
		Publisher: publisher,
		profanity: goaway.NewProfanityDetector().WithSanitizeLeetSpeak(true).WithSanitizeSpecialCharacters(true).WithSanitizeAccents(false),
		randFloat: rand.Float64,
		randIntN:  rand.IntN,
		now:       time.Now,
	}
}

// ListDishes returns the storefront, newest first.
func (s *DishService) ListDishes() ([]models.Dish, error) {
	return s.Repo.ListDishes()
}

// GetDish returns a single dish.
func (s *DishService) GetDish(dishID int) (*models.Dish, error) {
	return s.Repo.GetDishByID(dishID)
}

// CreateDish validates a listing, derives its display fields, stores it and
// announces it on the live feed.
func (s *DishService) CreateDish(listing NewDishListing) (*models.Dish, error) {
	listing = trimListing(listing)
	if err := s.ValidateListing(listing); err != nil {
		return nil, err
	}

	imageURL := listing.ImageURL
	if imageURL == "" {
		imageURL = DefaultImageURL(listing.Name)
	}

	dish := &models.Dish{
		Name:        listing.Name,
		Description: listing.Description,
		Price:       listing.Price,
		Cuisine:     listing.Cuisine,
		Cook: models.Cook{
			Name:      listing.CookName,
			AvatarURL: AvatarURL(listing.CookName),
		},
		ImageURL:  imageURL,
		Rating:    math.Round((4+s.randFloat())*10) / 10,
		Reviews:   s.randIntN(50) + 1,
		CreatedAt: s.now().UTC(),
	}

	if err := s.Repo.CreateDish(dish); err != nil {
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	if s.Publisher != nil {
		s.Publisher.PublishDish(*dish)
	}
	return dish, nil
}

// ValidateListing checks a trimmed listing.
func (s *DishService) ValidateListing(listing NewDishListing) error {
	if listing.Name == "" || listing.Description == "" || listing.CookName == "" || listing.Price == 0 {
		return &ValidationError{Message: MsgIncompleteListing}
	}
	if listing.Price < 0 || math.IsNaN(listing.Price) || math.IsInf(listing.Price, 0) {
		return &ValidationError{Message: "Le prix doit être un nombre positif."}
	}
	if listing.ImageURL != "" && !govalidator.IsURL(listing.ImageURL) {
		return &ValidationError{Message: "L'URL de l'image est invalide."}
	}

	for _, text := range []string{listing.Name, listing.Description, listing.CookName} {
		if s.profanity.IsProfane(text) {
			return &ValidationError{Message: "Votre annonce contient un langage inapproprié."}
		}
	}
	return nil
}

func trimListing(l NewDishListing) NewDishListing {
	l.Name = strings.TrimSpace(l.Name)
	l.Description = strings.TrimSpace(l.Description)
	l.Cuisine = strings.TrimSpace(l.Cuisine)
	l.CookName = strings.TrimSpace(l.CookName)
	l.ImageURL = strings.TrimSpace(l.ImageURL)
	return l
}

// AvatarURL derives a stable placeholder avatar from the cook's name.
func AvatarURL(cookName string) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cookName)
	return "https://i.pravatar.cc/150?u=" + compact
}

// DefaultImageURL returns a stock food picture keyed on the dish name words.
func DefaultImageURL(dishName string) string {
	keywords := strings.Join(strings.Split(dishName, " "), ",")
	return "https://source.unsplash.com/400x300/?" + encodeURIComponent(keywords) + ",food"
}

// encodeURIComponent percent-encodes every byte outside the URI component
// unreserved set, the way browsers build the same image links.
func encodeURIComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteByte(c)
		case strings.IndexByte("-_.!~*'()", c) >= 0:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
