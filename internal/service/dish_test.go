package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/biloute593/GAMELLE-APP/internal/testutil"
)

func newTestDishService(repo *testutil.MockDishRepo, pub DishPublisher) *DishService {
	svc := NewDishService(repo, pub)
	svc.randFloat = func() float64 { return 0.66 }
	svc.randIntN = func(n int) int { return n - 1 }
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func validListing() NewDishListing {
	return NewDishListing{
		Name:        "Poulet basquaise",
		Description: "Mijoté aux poivrons et au piment d'Espelette.",
		Price:       13.5,
		Cuisine:     "Française",
		CookName:    "Jean Paul",
	}
}

func TestCreateDish_DerivesFields(t *testing.T) {
	repo := testutil.NewMockDishRepo(testutil.TestStorefront()...)
	pub := &testutil.MockPublisher{}
	svc := newTestDishService(repo, pub)

	dish, err := svc.CreateDish(validListing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dish.ID != 4 {
		t.Errorf("ID = %d, want 4", dish.ID)
	}
	if dish.Cook.AvatarURL != "https://i.pravatar.cc/150?u=JeanPaul" {
		t.Errorf("AvatarURL = %q", dish.Cook.AvatarURL)
	}
	if dish.ImageURL != "https://source.unsplash.com/400x300/?Poulet%2Cbasquaise,food" {
		t.Errorf("ImageURL = %q", dish.ImageURL)
	}
	if dish.Rating != 4.7 {
		t.Errorf("Rating = %v, want 4.7", dish.Rating)
	}
	if dish.Reviews != 50 {
		t.Errorf("Reviews = %d, want 50", dish.Reviews)
	}
	if len(pub.Published) != 1 || pub.Published[0].ID != 4 {
		t.Errorf("Published = %+v", pub.Published)
	}

	dishes, _ := repo.ListDishes()
	if dishes[0].ID != 4 {
		t.Errorf("newest dish = %d, want 4", dishes[0].ID)
	}
}

func TestCreateDish_KeepsUploadedImage(t *testing.T) {
	svc := newTestDishService(testutil.NewMockDishRepo(), nil)
	listing := validListing()
	listing.ImageURL = "https://bucket.s3.amazonaws.com/dishes/abc.jpg"

	dish, err := svc.CreateDish(listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dish.ImageURL != listing.ImageURL {
		t.Errorf("ImageURL = %q", dish.ImageURL)
	}
	if dish.ID != 1 {
		t.Errorf("ID = %d, want 1", dish.ID)
	}
}

func TestCreateDish_RatingBounds(t *testing.T) {
	svc := newTestDishService(testutil.NewMockDishRepo(), nil)
	svc.randFloat = func() float64 { return 0 }
	svc.randIntN = func(n int) int { return 0 }

	dish, err := svc.CreateDish(validListing())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dish.Rating != 4.0 || dish.Reviews != 1 {
		t.Errorf("Rating = %v, Reviews = %d, want 4.0 and 1", dish.Rating, dish.Reviews)
	}
}

func TestCreateDish_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NewDishListing)
		want   string
	}{
		{"missing name", func(l *NewDishListing) { l.Name = "  " }, MsgIncompleteListing},
		{"missing description", func(l *NewDishListing) { l.Description = "" }, MsgIncompleteListing},
		{"missing cook", func(l *NewDishListing) { l.CookName = "" }, MsgIncompleteListing},
		{"missing price", func(l *NewDishListing) { l.Price = 0 }, MsgIncompleteListing},
		{"negative price", func(l *NewDishListing) { l.Price = -3 }, "prix"},
		{"bad image url", func(l *NewDishListing) { l.ImageURL = "not a url" }, "URL"},
		{"profanity", func(l *NewDishListing) { l.Name = "fuck stew" }, "inapproprié"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockDishRepo()
			pub := &testutil.MockPublisher{}
			svc := newTestDishService(repo, pub)
			listing := validListing()
			tt.mutate(&listing)

			_, err := svc.CreateDish(listing)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if !strings.Contains(vErr.Message, tt.want) {
				t.Errorf("Message = %q, want it to contain %q", vErr.Message, tt.want)
			}
			if len(repo.Dishes) != 0 || len(pub.Published) != 0 {
				t.Error("rejected listing should not be stored or published")
			}
		})
	}
}

func TestCreateDish_RepoFailure(t *testing.T) {
	repo := testutil.NewMockDishRepo()
	repo.CreateDishErr = errors.New("duplicate key")
	pub := &testutil.MockPublisher{}
	svc := newTestDishService(repo, pub)

	if _, err := svc.CreateDish(validListing()); err == nil || IsValidationError(err) {
		t.Errorf("err = %v, want storage error", err)
	}
	if len(pub.Published) != 0 {
		t.Error("failed listing should not be published")
	}
}

func TestDefaultImageURL_EncodesLikeBrowsers(t *testing.T) {
	tests := []struct {
		name string
		dish string
		want string
	}{
		{"plain words", "Poulet basquaise", "https://source.unsplash.com/400x300/?Poulet%2Cbasquaise,food"},
		{"apostrophe and accent kept browser-style", "Boeuf à l'orange", "https://source.unsplash.com/400x300/?Boeuf%2C%C3%A0%2Cl'orange,food"},
		{"marks left as-is", "Tarte (maison)!", "https://source.unsplash.com/400x300/?Tarte%2C(maison)!,food"},
		{"reserved characters escaped", "Fish&Chips+sauce", "https://source.unsplash.com/400x300/?Fish%26Chips%2Bsauce,food"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultImageURL(tt.dish); got != tt.want {
				t.Errorf("DefaultImageURL(%q) = %q, want %q", tt.dish, got, tt.want)
			}
		})
	}
}

func TestAvatarURL_StripsAllWhitespace(t *testing.T) {
	if got := AvatarURL("Anne  Marie\tLeroy"); got != "https://i.pravatar.cc/150?u=AnneMarieLeroy" {
		t.Errorf("AvatarURL = %q", got)
	}
}
