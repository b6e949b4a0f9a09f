package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// stubChatService returns a canned reply and records the last input
type stubChatService struct {
	lastInput string
	reply     string
	err       error
}

func (s *stubChatService) Chat(ctx context.Context, userInput string) (string, error) {
	s.lastInput = userInput
	return s.reply, s.err
}

// APIHandlersTestSuite exercises the REST handlers against in-memory stores
type APIHandlersTestSuite struct {
	suite.Suite
	chat     *stubChatService
	handlers *APIHandlers
}

func (suite *APIHandlersTestSuite) SetupTest() {
	suite.chat = &stubChatService{reply: "Try the omelette."}

	pantryRepo := memory.NewPantryRepository()
	recipeRepo := memory.NewRecipeRepository()

	require.NoError(suite.T(), pantryRepo.Add(context.Background(),
		pantry.Item{Name: "egg", Quantity: 6, Unit: pantry.UnitNumber}))
	require.NoError(suite.T(), recipeRepo.BulkCreate(context.Background(), []recipe.Recipe{
		{Title: "Pancakes", Taste: "Sweet"},
		{Title: "Omelette", Taste: "Savory"},
	}))

	suite.handlers = NewAPIHandlers(suite.chat, pantryRepo, recipeRepo, zap.NewNop())
}

func (suite *APIHandlersTestSuite) decode(rec *httptest.ResponseRecorder) APIResponse {
	var resp APIResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (suite *APIHandlersTestSuite) TestChat() {
	suite.Run("ValidMessage_ShouldReturnReply", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat",
			strings.NewReader(`{"message": "what can I cook?"}`))
		rec := httptest.NewRecorder()

		suite.handlers.Chat(rec, req)

		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		resp := suite.decode(rec)
		assert.True(suite.T(), resp.Success)
		assert.Equal(suite.T(), "what can I cook?", suite.chat.lastInput)
		assert.Contains(suite.T(), rec.Body.String(), "Try the omelette.")
	})

	suite.Run("MalformedBody_ShouldReturnBadRequest", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat",
			strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()

		suite.handlers.Chat(rec, req)

		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
		assert.False(suite.T(), suite.decode(rec).Success)
	})

	suite.Run("ServiceFailure_ShouldReturnServerError", func() {
		suite.chat.err = assert.AnError
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat",
			strings.NewReader(`{"message": "dinner"}`))
		rec := httptest.NewRecorder()

		suite.handlers.Chat(rec, req)

		assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)
	})
}

func (suite *APIHandlersTestSuite) TestPantry() {
	suite.Run("List_ShouldReturnSeededItems", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/pantry", nil)
		rec := httptest.NewRecorder()

		suite.handlers.ListPantry(rec, req)

		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		assert.Contains(suite.T(), rec.Body.String(), `"egg"`)
	})

	suite.Run("Add_ValidItem_ShouldCreate", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pantry",
			strings.NewReader(`{"name": "flour", "quantity": 500, "unit": "gram"}`))
		rec := httptest.NewRecorder()

		suite.handlers.AddPantryItem(rec, req)

		assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	})

	suite.Run("Add_UnknownUnit_ShouldReject", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pantry",
			strings.NewReader(`{"name": "flour", "quantity": 500, "unit": "bushel"}`))
		rec := httptest.NewRecorder()

		suite.handlers.AddPantryItem(rec, req)

		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	})

	suite.Run("Add_NonPositiveQuantity_ShouldReject", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pantry",
			strings.NewReader(`{"name": "flour", "quantity": 0, "unit": "gram"}`))
		rec := httptest.NewRecorder()

		suite.handlers.AddPantryItem(rec, req)

		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	})

	suite.Run("Consume_KnownItem_ShouldSucceed", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pantry/consume",
			strings.NewReader(`{"name": "egg", "quantity": 2}`))
		rec := httptest.NewRecorder()

		suite.handlers.ConsumePantryItem(rec, req)

		assert.Equal(suite.T(), http.StatusOK, rec.Code)
	})

	suite.Run("Consume_UnknownItem_ShouldReturnNotFound", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/pantry/consume",
			strings.NewReader(`{"name": "saffron", "quantity": 1}`))
		rec := httptest.NewRecorder()

		suite.handlers.ConsumePantryItem(rec, req)

		assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	})
}

func (suite *APIHandlersTestSuite) TestRecipes() {
	suite.Run("List_ShouldReturnCatalog", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		rec := httptest.NewRecorder()

		suite.handlers.ListRecipes(rec, req)

		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		assert.Contains(suite.T(), rec.Body.String(), "Pancakes")
		assert.Contains(suite.T(), rec.Body.String(), "Omelette")
	})

	suite.Run("List_TasteFilter_ShouldNarrowResults", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes?taste=Sweet", nil)
		rec := httptest.NewRecorder()

		suite.handlers.ListRecipes(rec, req)

		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		assert.Contains(suite.T(), rec.Body.String(), "Pancakes")
		assert.NotContains(suite.T(), rec.Body.String(), "Omelette")
	})
}

func (suite *APIHandlersTestSuite) TestHealthCheck() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	suite.handlers.HealthCheck(rec, req)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "healthy")
}

func TestAPIHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(APIHandlersTestSuite))
}
