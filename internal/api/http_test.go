package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodgram/internal/auth"
	"foodgram/internal/config"
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
	"foodgram/internal/model/sql"
	"foodgram/internal/storage"
	"foodgram/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type testServer struct {
	db     *gorm.DB
	engine *gin.Engine
	tokens *auth.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gormDB := testutils.SetupTestDB(t)
	cfg := config.Config{
		StorageType:          "local",
		StorageLocalDir:      t.TempDir(),
		StoragePublicBaseURL: "/files",
		JWTSecret:            "test-secret",
		JWTIssuer:            "foodgram",
		JWTExpirationMinutes: 60,
		PageSize:             6,
		MaxPageSize:          100,
	}
	store, err := storage.NewLocalStorage(cfg.StorageLocalDir)
	require.NoError(t, err)

	handler, err := NewHTTPHandler(cfg, sql.NewGormRepository(gormDB), store)
	require.NoError(t, err)
	engine := gin.New()
	handler.RegisterRoutes(engine)

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, time.Hour)
	require.NoError(t, err)
	return &testServer{db: gormDB, engine: engine, tokens: tokens}
}

func (s *testServer) token(t *testing.T, user *db.User) string {
	t.Helper()
	token, _, err := s.tokens.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestFavoriteEndpoints(t *testing.T) {
	s := newTestServer(t)
	author := testutils.CreateTestUser(t, s.db)
	viewer := testutils.CreateTestUser(t, s.db)
	recipe := testutils.CreateTestRecipe(t, s.db, author.ID, "Pancakes", nil)
	token := s.token(t, viewer)
	path := fmt.Sprintf("/api/recipes/%d/favorite", recipe.ID)

	w := s.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var short dto.RecipeShort
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &short))
	assert.Equal(t, recipe.ID, short.ID)
	assert.Equal(t, "Pancakes", short.Name)
	assert.True(t, strings.HasPrefix(short.Image, "/files/"))

	w = s.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeAlreadyExists, decodeError(t, w).Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var full dto.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
	assert.True(t, full.IsFavorited)
	assert.False(t, full.IsInShoppingCart)

	w = s.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeRelationMissing, decodeError(t, w).Code)

	w = s.do(t, http.MethodPost, "/api/recipes/9999/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnonymousAndInvalidTokenReads(t *testing.T) {
	s := newTestServer(t)
	author := testutils.CreateTestUser(t, s.db)
	recipe := testutils.CreateTestRecipe(t, s.db, author.ID, "Soup", nil)

	w := s.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d", recipe.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var full dto.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
	assert.False(t, full.IsFavorited)
	assert.False(t, full.Author.IsSubscribed)

	w = s.do(t, http.MethodGet, "/api/recipes?is_favorited=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.RecipeListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Recipes, 1)

	w = s.do(t, http.MethodGet, "/api/recipes", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/recipes/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/no-such-route", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, w).Code)
}

func TestSubscribeEndpoints(t *testing.T) {
	s := newTestServer(t)
	author := testutils.CreateTestUser(t, s.db)
	follower := testutils.CreateTestUser(t, s.db)
	testutils.CreateTestRecipe(t, s.db, author.ID, "One", nil)
	testutils.CreateTestRecipe(t, s.db, author.ID, "Two", nil)
	token := s.token(t, follower)

	w := s.do(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", follower.ID), token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeSelfReference, decodeError(t, w).Code)

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe?recipes_limit=1", author.ID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var sub dto.Subscription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.Equal(t, author.ID, sub.ID)
	assert.True(t, sub.IsSubscribed)
	assert.Len(t, sub.Recipes, 1)
	assert.Equal(t, int64(2), sub.RecipesCount)

	w = s.do(t, http.MethodGet, "/api/users/subscriptions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs dto.SubscriptionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subs))
	require.Len(t, subs.Subscriptions, 1)
	assert.Len(t, subs.Subscriptions[0].Recipes, 2)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", author.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary dto.UserSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.True(t, summary.IsSubscribed)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d/subscribe", author.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	s := newTestServer(t)
	author := testutils.CreateTestUser(t, s.db)
	buyer := testutils.CreateTestUser(t, s.db)
	flour := testutils.CreateTestIngredient(t, s.db, "flour", "g")
	milk := testutils.CreateTestIngredient(t, s.db, "milk", "ml")
	first := testutils.CreateTestRecipe(t, s.db, author.ID, "Bread", []testutils.RecipeAmount{{Ingredient: flour, Amount: 300}})
	second := testutils.CreateTestRecipe(t, s.db, author.ID, "Crepes", []testutils.RecipeAmount{
		{Ingredient: flour, Amount: 200},
		{Ingredient: milk, Amount: 250},
	})
	token := s.token(t, buyer)

	w := s.do(t, http.MethodGet, "/api/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeEmptyCart, decodeError(t, w).Code)

	for _, recipe := range []*db.Recipe{first, second} {
		w = s.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%d/shopping_cart", recipe.ID), token, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="shopping_list.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Shopping list\n\nflour 500 g\nmilk 250 ml\n", w.Body.String())
}

func TestRecipeWriteEndpoints(t *testing.T) {
	s := newTestServer(t)
	author := testutils.CreateTestUser(t, s.db)
	other := testutils.CreateTestUser(t, s.db)
	tag := testutils.CreateTestTag(t, s.db, "breakfast")
	eggs := testutils.CreateTestIngredient(t, s.db, "eggs", "pcs")
	token := s.token(t, author)

	body := dto.RecipeWriteRequest{
		Ingredients: []dto.IngredientAmountRequest{{ID: eggs.ID, Amount: 2}},
		Tags:        []uint{tag.ID},
		Image:       testPNG,
		Name:        "Omelette",
		Text:        "Whisk and fry.",
		CookingTime: 5,
	}
	w := s.do(t, http.MethodPost, "/api/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created.Ingredients, 1)
	assert.Equal(t, 2, created.Ingredients[0].Amount)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, "breakfast", created.Tags[0].Slug)

	w = s.do(t, http.MethodGet, created.Image, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body.Image = ""
	body.Name = "Big omelette"
	body.Ingredients = []dto.IngredientAmountRequest{{ID: eggs.ID, Amount: 4}}
	path := fmt.Sprintf("/api/recipes/%d", created.ID)

	w = s.do(t, http.MethodPatch, path, s.token(t, other), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, path, token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dto.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Big omelette", updated.Name)
	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, 4, updated.Ingredients[0].Amount)

	body.CookingTime = 0
	w = s.do(t, http.MethodPatch, path, token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeValidation, decodeError(t, w).Code)

	w = s.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminOnlyCatalogWrites(t *testing.T) {
	s := newTestServer(t)
	user := testutils.CreateTestUser(t, s.db)
	admin := testutils.CreateTestUser(t, s.db, testutils.WithRole(db.UserRoleAdmin))
	body := dto.TagCreateRequest{Name: "Vegan", Color: "#00ff00", Slug: "vegan"}

	w := s.do(t, http.MethodPost, "/api/tags", s.token(t, user), body)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, ErrCodeForbidden, decodeError(t, w).Code)

	w = s.do(t, http.MethodPost, "/api/tags", s.token(t, admin), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var tag dto.Tag
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tag))
	assert.Equal(t, "#00FF00", tag.Color)

	w = s.do(t, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tags dto.TagListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	assert.Len(t, tags.Tags, 1)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID), s.token(t, admin), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRegisterLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	register := dto.UserCreateRequest{
		Email:     "Chef@Example.com",
		Username:  "chef",
		FirstName: "Julia",
		LastName:  "Child",
		Password:  "s3cret-pass",
	}

	w := s.do(t, http.MethodPost, "/api/users", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/users", "", register)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", dto.AuthLoginRequest{Email: "chef@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", dto.AuthLoginRequest{Email: "chef@example.com", Password: "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var session dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)

	w = s.do(t, http.MethodGet, "/api/users/me", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me dto.UserSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "chef", me.Username)
	assert.Equal(t, "chef@example.com", me.Email)
}

func TestImportIngredientsEndpoint(t *testing.T) {
	s := newTestServer(t)
	admin := testutils.CreateTestUser(t, s.db, testutils.WithRole(db.UserRoleSuperAdmin))
	testutils.CreateTestIngredient(t, s.db, "salt", "g")

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "ingredients.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("salt,g\nsugar,g\nrice,kg\n"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ingredients/import", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token(t, admin))
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"inserted":2}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/ingredients?name=SU", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.IngredientListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Ingredients, 1)
	assert.Equal(t, "sugar", list.Ingredients[0].Name)
}
