package api

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantry-recipes/backend/internal/service"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

// RecipeHandler serves recipe generation
type RecipeHandler struct {
	recipes service.IRecipeService
	logger  *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeHandler{recipes: recipes, logger: logger}
}

// RegisterRoutes registers the recipe routes. guards run before the
// endpoints that call the language model.
func (h *RecipeHandler) RegisterRoutes(router gin.IRouter, guards ...gin.HandlerFunc) {
	guarded := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(slices.Clip(guards), handler)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.Usage)
		recipes.POST("", guarded(h.CreateRecipes)...)
		recipes.GET("/html", guarded(h.RecipesHTML)...)
	}
}

// Usage documents how to call POST /recipes
func (h *RecipeHandler) Usage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"detail": "Use POST /recipes with JSON body and optional Bearer token.",
		"example_body": gin.H{
			"ingredients": []string{"tomato", "onion", "eggs"},
			"servings":    types.DefaultServings,
			"dietary":     []string{"vegetarian"},
		},
	})
}

// CreateRecipes generates recipes for the JSON request body
func (h *RecipeHandler) CreateRecipes(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	resp, ok := h.generate(c, &req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecipesHTML renders recipes for query parameters as a simple page
func (h *RecipeHandler) RecipesHTML(c *gin.Context) {
	req, err := recipeRequestFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	resp, ok := h.generate(c, req)
	if !ok {
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := recipesPage.Execute(c.Writer, pageData{Request: req, Servings: req.ServingsOrDefault(), Response: resp}); err != nil {
		h.logger.Error("failed to render recipes page", zap.Error(err))
	}
}

func (h *RecipeHandler) generate(c *gin.Context, req *types.RecipeRequest) (*types.RecipeResponse, bool) {
	resp, err := h.recipes.Generate(c.Request.Context(), req)
	if err != nil {
		status, body := statusForError(err)
		h.logger.Warn("recipe generation failed", zap.Int("status", status), zap.Error(err))
		_ = c.Error(err)
		c.JSON(status, body)
		return nil, false
	}
	return resp, true
}

func recipeRequestFromQuery(c *gin.Context) (*types.RecipeRequest, error) {
	req := &types.RecipeRequest{
		Ingredients: splitQueryList(c.Query("ingredients")),
		Dietary:     splitQueryList(c.Query("dietary")),
	}
	if raw := strings.TrimSpace(c.Query("servings")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("servings must be an integer")
		}
		if n < types.MinServings || n > types.MaxServings {
			return nil, fmt.Errorf("servings must be between %d and %d", types.MinServings, types.MaxServings)
		}
		req.Servings = &n
	}
	return req, nil
}

func splitQueryList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
