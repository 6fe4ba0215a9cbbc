package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/biloute593/GAMELLE-APP/internal/ai"
	"github.com/biloute593/GAMELLE-APP/internal/models"
	"github.com/biloute593/GAMELLE-APP/internal/service"
	"github.com/biloute593/GAMELLE-APP/internal/testutil"
)

func newDishRouter(repo *testutil.MockDishRepo, provider *testutil.MockProvider, pub service.DishPublisher) *gin.Engine {
	handler := NewDishHandler(service.NewDishService(repo, pub), service.NewSearchService(repo, provider))
	r := gin.New()
	r.GET("/v1/dishes", handler.ListDishes)
	r.GET("/v1/dishes/:dish_id", handler.GetDish)
	r.POST("/v1/dishes", handler.CreateDish)
	return r
}

type listBody struct {
	Dishes     []models.Dish       `json:"dishes"`
	MatchedIDs []int               `json:"matchedIds"`
	Citations  []ai.GroundingChunk `json:"citations"`
	Filtered   bool                `json:"filtered"`
}

func TestListDishes_NoQuery(t *testing.T) {
	provider := &testutil.MockProvider{}
	r := newDishRouter(testutil.NewMockDishRepo(testutil.TestStorefront()...), provider, nil)

	w := serve(r, http.MethodGet, "/v1/dishes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var raw map[string]json.RawMessage
	json.Unmarshal(w.Body.Bytes(), &raw)
	if _, ok := raw["matchedIds"]; ok {
		t.Error("unfiltered listing should not carry matchedIds")
	}

	var body listBody
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Filtered || len(body.Dishes) != 3 || body.Dishes[0].ID != 3 {
		t.Errorf("body = %+v", body)
	}
	if provider.SearchCalls != 0 {
		t.Errorf("SearchCalls = %d, want 0", provider.SearchCalls)
	}
}

func TestListDishes_Search(t *testing.T) {
	provider := &testutil.MockProvider{
		SearchDishesFunc: func(ctx context.Context, query string, dishes []ai.DishEntry) (*ai.SearchResult, error) {
			if query != "pâtes" {
				t.Errorf("query = %q", query)
			}
			return &ai.SearchResult{
				MatchedIDs: []int{2},
				Citations:  []ai.GroundingChunk{{URI: "https://example.com/lasagnes", Title: "Lasagnes"}},
			}, nil
		},
	}
	r := newDishRouter(testutil.NewMockDishRepo(testutil.TestStorefront()...), provider, nil)

	w := serve(r, http.MethodGet, "/v1/dishes?q=p%C3%A2tes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	var body listBody
	json.Unmarshal(w.Body.Bytes(), &body)
	if !body.Filtered || len(body.Dishes) != 1 || body.Dishes[0].Name != "Lasagnes maison" {
		t.Errorf("body = %+v", body)
	}
	if len(body.MatchedIDs) != 1 || body.MatchedIDs[0] != 2 {
		t.Errorf("matchedIds = %v", body.MatchedIDs)
	}
	if len(body.Citations) != 1 {
		t.Errorf("citations = %v", body.Citations)
	}
}

func TestListDishes_SearchFailure(t *testing.T) {
	provider := &testutil.MockProvider{
		SearchDishesFunc: func(ctx context.Context, query string, dishes []ai.DishEntry) (*ai.SearchResult, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	r := newDishRouter(testutil.NewMockDishRepo(testutil.TestStorefront()...), provider, nil)

	w := serve(r, http.MethodGet, "/v1/dishes?q=pizza", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if msg := errorMessage(t, w); msg != "Erreur de recherche : quota exceeded" {
		t.Errorf("error = %q", msg)
	}
}

func TestGetDish(t *testing.T) {
	r := newDishRouter(testutil.NewMockDishRepo(testutil.TestStorefront()...), &testutil.MockProvider{}, nil)

	w := serve(r, http.MethodGet, "/v1/dishes/2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Dish models.Dish `json:"dish"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Dish.ID != 2 || body.Dish.Cook.Name != "Marie Dupont" {
		t.Errorf("dish = %+v", body.Dish)
	}

	if w := serve(r, http.MethodGet, "/v1/dishes/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("invalid id status = %d, want 400", w.Code)
	}
	if w := serve(r, http.MethodGet, "/v1/dishes/42", ""); w.Code != http.StatusNotFound {
		t.Errorf("missing dish status = %d, want 404", w.Code)
	}
}

func TestCreateDish(t *testing.T) {
	repo := testutil.NewMockDishRepo(testutil.TestStorefront()...)
	pub := &testutil.MockPublisher{}
	r := newDishRouter(repo, &testutil.MockProvider{}, pub)

	w := serve(r, http.MethodPost, "/v1/dishes", `{"name":"Crêpes","description":"Fines et dorées.","price":6,"cuisine":"Bretonne","cookName":"Yann"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201. body: %s", w.Code, w.Body.String())
	}
	var body struct {
		Dish models.Dish `json:"dish"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Dish.ID != 4 || body.Dish.Cook.AvatarURL != "https://i.pravatar.cc/150?u=Yann" {
		t.Errorf("dish = %+v", body.Dish)
	}
	if body.Dish.Rating < 4 || body.Dish.Rating > 5 || body.Dish.Reviews < 1 || body.Dish.Reviews > 50 {
		t.Errorf("rating = %v, reviews = %d", body.Dish.Rating, body.Dish.Reviews)
	}
	if len(pub.Published) != 1 {
		t.Errorf("published = %d, want 1", len(pub.Published))
	}
}

func TestCreateDish_Incomplete(t *testing.T) {
	repo := testutil.NewMockDishRepo()
	r := newDishRouter(repo, &testutil.MockProvider{}, &testutil.MockPublisher{})

	w := serve(r, http.MethodPost, "/v1/dishes", `{"name":"Crêpes","price":6}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if msg := errorMessage(t, w); msg != service.MsgIncompleteListing {
		t.Errorf("error = %q", msg)
	}
	if len(repo.Dishes) != 0 {
		t.Error("nothing should be stored")
	}
}

func TestCreateDish_StorageFailure(t *testing.T) {
	repo := testutil.NewMockDishRepo()
	repo.CreateDishErr = errors.New("duplicate key")
	r := newDishRouter(repo, &testutil.MockProvider{}, &testutil.MockPublisher{})

	w := serve(r, http.MethodPost, "/v1/dishes", `{"name":"Crêpes","description":"Fines.","price":6,"cookName":"Yann"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
