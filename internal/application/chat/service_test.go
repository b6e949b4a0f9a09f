package chat

import (
	"context"
	"testing"
	"time"

	"github.com/pantrychef/v1/internal/application/feasibility"
	"github.com/pantrychef/v1/internal/domain/pantry"
	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// MockPantryRepository provides a mock implementation of PantryRepository
type MockPantryRepository struct {
	mock.Mock
}

func (m *MockPantryRepository) Snapshot(ctx context.Context) (pantry.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(pantry.Snapshot), args.Error(1)
}

func (m *MockPantryRepository) Add(ctx context.Context, item pantry.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPantryRepository) Consume(ctx context.Context, name string, quantity float64) error {
	args := m.Called(ctx, name, quantity)
	return args.Error(0)
}

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) FindAll(ctx context.Context, taste string) ([]recipe.Recipe, error) {
	args := m.Called(ctx, taste)
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) BulkCreate(ctx context.Context, recipes []recipe.Recipe) error {
	args := m.Called(ctx, recipes)
	return args.Error(0)
}

// MockAIService provides a mock implementation of the generation call
type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// ChatServiceTestSuite exercises the chat orchestration flow
type ChatServiceTestSuite struct {
	suite.Suite
	pantryRepo *MockPantryRepository
	recipeRepo *MockRecipeRepository
	aiService  *MockAIService
	service    *Service
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.pantryRepo = new(MockPantryRepository)
	suite.recipeRepo = new(MockRecipeRepository)
	suite.aiService = new(MockAIService)

	normalizer := feasibility.NewNormalizer(feasibility.DefaultConfig())
	ranker := feasibility.NewRanker(feasibility.NewScorer(normalizer, feasibility.DefaultVitalIngredients()))

	suite.service = NewService(
		suite.pantryRepo,
		suite.recipeRepo,
		suite.aiService,
		nil, // no reply cache in unit tests
		ranker,
		feasibility.NewPromptBuilder(),
		time.Minute,
		zap.NewNop(),
	)
}

func (suite *ChatServiceTestSuite) TestChat() {
	snapshot := pantry.Snapshot{
		{Name: "egg", Quantity: 6, Unit: pantry.UnitNumber},
		{Name: "sugar", Quantity: 50, Unit: pantry.UnitGram},
	}
	omelette := recipe.Recipe{
		Title: "Omelette",
		Taste: "Savory",
		Ingredients: []recipe.Ingredient{
			{Item: "egg", Quantity: "2"},
			{Item: "sugar", Quantity: "10g"},
		},
	}

	suite.Run("EmptyInput_ShouldGreetWithoutModelCall", func() {
		reply, err := suite.service.Chat(context.Background(), "   ")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), greetingReply, reply)
		suite.aiService.AssertNotCalled(suite.T(), "Generate")
	})

	suite.Run("FeasibleRecipe_ShouldReturnModelReply", func() {
		suite.SetupTest()
		suite.pantryRepo.On("Snapshot", mock.Anything).Return(snapshot, nil)
		suite.recipeRepo.On("FindAll", mock.Anything, "").Return([]recipe.Recipe{omelette}, nil)
		suite.aiService.On("Generate", mock.Anything, mock.AnythingOfType("string")).
			Return("Make the omelette!", nil)

		reply, err := suite.service.Chat(context.Background(), "what can I cook tonight?")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Make the omelette!", reply)

		// The prompt handed to the model carries the request verbatim
		prompt := suite.aiService.Calls[0].Arguments.String(1)
		assert.Contains(suite.T(), prompt, "what can I cook tonight?")
		assert.Contains(suite.T(), prompt, "Recipe: Omelette")
	})

	suite.Run("SweetRequest_ShouldFilterCatalogBySweetTaste", func() {
		suite.SetupTest()
		suite.pantryRepo.On("Snapshot", mock.Anything).Return(snapshot, nil)
		suite.recipeRepo.On("FindAll", mock.Anything, "Sweet").Return([]recipe.Recipe{omelette}, nil)
		suite.aiService.On("Generate", mock.Anything, mock.AnythingOfType("string")).
			Return("Try this!", nil)

		_, err := suite.service.Chat(context.Background(), "I want something sweet")

		require.NoError(suite.T(), err)
		suite.recipeRepo.AssertCalled(suite.T(), "FindAll", mock.Anything, "Sweet")
	})

	suite.Run("NothingFeasible_ShouldReturnFixedReply", func() {
		suite.SetupTest()
		impossible := recipe.Recipe{
			Title:       "Milkshake",
			Ingredients: []recipe.Ingredient{{Item: "milk", Quantity: "500ml"}},
		}
		suite.pantryRepo.On("Snapshot", mock.Anything).Return(snapshot, nil)
		suite.recipeRepo.On("FindAll", mock.Anything, "").Return([]recipe.Recipe{impossible}, nil)

		reply, err := suite.service.Chat(context.Background(), "anything at all")

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), noRecipesReply, reply)
		suite.aiService.AssertNotCalled(suite.T(), "Generate")
	})

	suite.Run("SnapshotFailure_ShouldPropagate", func() {
		suite.SetupTest()
		suite.pantryRepo.On("Snapshot", mock.Anything).
			Return(pantry.Snapshot(nil), assert.AnError)

		_, err := suite.service.Chat(context.Background(), "dinner ideas")

		assert.Error(suite.T(), err)
	})
}

func TestChatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}
