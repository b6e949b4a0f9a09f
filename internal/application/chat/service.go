// Package chat provides the application service behind the
// conversational endpoint: it assembles the evidence (pantry snapshot,
// ranked recipes), builds the grounded prompt and delegates the actual
// text generation to the AI collaborator.
package chat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pantrychef/v1/internal/application/feasibility"
	"github.com/pantrychef/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

const (
	greetingReply  = "Hi, what can I help you cook today?"
	noRecipesReply = "I couldn't find any suitable recipes given your pantry."
	sweetTasteTag  = "Sweet"
	replyCachePref = "chat:reply:"
)

// Service implements the inbound ChatService port. Stateless across
// calls: every invocation works from a fresh pantry snapshot and
// catalog fetch, so concurrent requests never share mutable state.
type Service struct {
	pantryRepo outbound.PantryRepository
	recipeRepo outbound.RecipeRepository
	aiService  outbound.AIService
	cache      outbound.CacheRepository
	ranker     *feasibility.Ranker
	prompts    *feasibility.PromptBuilder
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewService creates the chat service. cache may be nil, which
// disables reply caching.
func NewService(
	pantryRepo outbound.PantryRepository,
	recipeRepo outbound.RecipeRepository,
	aiService outbound.AIService,
	cache outbound.CacheRepository,
	ranker *feasibility.Ranker,
	prompts *feasibility.PromptBuilder,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		pantryRepo: pantryRepo,
		recipeRepo: recipeRepo,
		aiService:  aiService,
		cache:      cache,
		ranker:     ranker,
		prompts:    prompts,
		cacheTTL:   cacheTTL,
		logger:     logger.Named("chat-service"),
	}
}

// Chat handles one conversational turn. Empty input gets a greeting
// without touching the model. Otherwise the catalog (taste-filtered by
// the data source when the request hints at sweetness) is ranked
// against the pantry; if nothing qualifies the fixed no-recipes reply
// is returned, else the generation collaborator answers the grounded
// prompt.
func (s *Service) Chat(ctx context.Context, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return greetingReply, nil
	}

	snapshot, err := s.pantryRepo.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch pantry snapshot: %w", err)
	}

	taste := ""
	if strings.Contains(strings.ToLower(userInput), "sweet") {
		taste = sweetTasteTag
	}

	recipes, err := s.recipeRepo.FindAll(ctx, taste)
	if err != nil {
		return "", fmt.Errorf("fetch recipe catalog: %w", err)
	}

	topScored := s.ranker.Rank(recipes, snapshot)
	if len(topScored) == 0 {
		s.logger.Info("No feasible recipes for pantry",
			zap.Int("catalog_size", len(recipes)),
			zap.String("taste_filter", taste),
		)
		return noRecipesReply, nil
	}

	prompt := s.prompts.Build(userInput, snapshot, topScored)
	s.logger.Debug("Built recipe prompt",
		zap.Int("candidates", len(topScored)),
		zap.Float64("top_score", topScored[0].Score),
	)

	key := replyCachePref + promptDigest(prompt)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			s.logger.Debug("Reply cache hit", zap.String("key", key))
			return string(cached), nil
		}
	}

	reply, err := s.aiService.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generation call: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, []byte(reply), s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache reply", zap.Error(err))
		}
	}

	return reply, nil
}

// promptDigest keys the reply cache on the full prompt content, so any
// pantry or catalog change produces a fresh generation.
func promptDigest(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
