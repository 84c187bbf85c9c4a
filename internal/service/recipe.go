package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/pantry-recipes/backend/internal/parser"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

// RecipeService turns a recipe request into structured recipes
type RecipeService struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(generator TextGenerator, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		generator: generator,
		logger:    logger.Named("recipes"),
	}
}

// Generate builds the prompt, calls the generator once and normalizes its
// answer. Generator errors are returned unchanged so callers can map them.
func (s *RecipeService) Generate(ctx context.Context, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	servings := req.ServingsOrDefault()
	prompt := BuildPrompt(req.Ingredients, servings, req.Dietary)

	text, err := s.generator.Generate(ctx, prompt)
	upstreamRequests.WithLabelValues(upstreamOutcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipes: %w", err)
	}

	recipes := parser.Extract(text)
	if len(recipes) == 0 {
		fallbackTotal.Inc()
		s.logger.Info("model reply had no recognizable recipe, using fallback",
			zap.Int("reply_bytes", len(text)))
		recipes = []types.Recipe{parser.Fallback(req.Ingredients)}
	}

	s.logger.Debug("recipes generated",
		zap.Int("count", len(recipes)),
		zap.Int("servings", servings))

	return &types.RecipeResponse{
		Recipes:  recipes,
		Model:    s.generator.Model(),
		Provider: s.generator.Provider(),
	}, nil
}
