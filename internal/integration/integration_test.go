package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/pantry-recipes/backend/internal/middleware"
	"github.com/pageza/pantry-recipes/backend/internal/parser"
	"github.com/pageza/pantry-recipes/backend/internal/router"
	"github.com/pageza/pantry-recipes/backend/internal/service"
	"github.com/pageza/pantry-recipes/backend/internal/stt"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

const modelReply = `Title: Shakshuka

A saucy egg dish.

Ingredients:
- 4 eggs
- 2 tomatoes
- 1 onion

Steps:
1. Soften the onion.
2. Add tomatoes and simmer.
3. Crack in the eggs and cover.

Title: Tomato Egg Stir-Fry

Ingredients
• eggs
• tomato

Steps
- Scramble eggs
- Toss with tomato`

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeGemini answers generateContent with reply and records the prompts it received.
func fakeGemini(t *testing.T, status int, reply string) (*httptest.Server, *[]string) {
	t.Helper()
	var prompts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
			prompts = append(prompts, body.Contents[0].Parts[0].Text)
		}

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"quota"}}`)
			return
		}
		resp := map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{map[string]any{"text": reply}}},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server, &prompts
}

func recipeRouter(geminiURL, apiKey string, auth middleware.ClientAuthConfig) *gin.Engine {
	gemini := service.NewGeminiClient(service.GeminiConfig{
		APIKey:  apiKey,
		Model:   "gemini-1.5-flash",
		BaseURL: geminiURL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())
	return router.SetupRecipeRouter(router.RecipeRouterConfig{
		Recipes: service.NewRecipeService(gemini, nil),
		Auth:    auth,
	})
}

func postJSON(r *gin.Engine, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecipeFlow(t *testing.T) {
	gemini, prompts := fakeGemini(t, http.StatusOK, modelReply)
	issuer := service.NewTokenIssuer("s3cret")
	r := recipeRouter(gemini.URL, "key", middleware.ClientAuthConfig{Token: "s3cret", Validator: issuer})

	token, err := issuer.Issue("it", time.Hour)
	require.NoError(t, err)

	w := postJSON(r, "/recipes", `{"ingredients":["eggs","tomato"],"servings":2,"dietary":["vegetarian"]}`, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "gemini", resp.Provider)
	assert.Equal(t, "gemini-1.5-flash", resp.Model)
	require.Len(t, resp.Recipes, 2)
	assert.Equal(t, types.Recipe{
		Title:       "Shakshuka",
		Ingredients: []string{"4 eggs", "2 tomatoes", "1 onion"},
		Steps:       []string{"1. Soften the onion.", "2. Add tomatoes and simmer.", "3. Crack in the eggs and cover."},
	}, resp.Recipes[0])
	assert.Equal(t, []string{"eggs", "tomato"}, resp.Recipes[1].Ingredients)
	assert.Equal(t, []string{"Scramble eggs", "Toss with tomato"}, resp.Recipes[1].Steps)

	require.Len(t, *prompts, 1)
	assert.Contains(t, (*prompts)[0], "eggs, tomato")
	assert.Contains(t, (*prompts)[0], "vegetarian")

	assert.Equal(t, http.StatusUnauthorized, postJSON(r, "/recipes", `{}`, "wrong").Code)
}

func TestRecipeFlowFallback(t *testing.T) {
	gemini, _ := fakeGemini(t, http.StatusOK, "")
	r := recipeRouter(gemini.URL, "key", middleware.ClientAuthConfig{})

	w := postJSON(r, "/recipes", `{"ingredients":["kale"]}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []types.Recipe{parser.Fallback([]string{"kale"})}, resp.Recipes)
}

func TestRecipeFlowUpstreamFailures(t *testing.T) {
	failing, _ := fakeGemini(t, http.StatusTooManyRequests, "")
	w := postJSON(recipeRouter(failing.URL, "key", middleware.ClientAuthConfig{}), "/recipes", `{}`, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	healthy, prompts := fakeGemini(t, http.StatusOK, modelReply)
	w = postJSON(recipeRouter(healthy.URL, "", middleware.ClientAuthConfig{}), "/recipes", `{}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, *prompts, "no upstream call without a key")
}

func TestRecipeFlowRejectsBadServingsBeforeUpstream(t *testing.T) {
	gemini, prompts := fakeGemini(t, http.StatusOK, modelReply)
	r := recipeRouter(gemini.URL, "key", middleware.ClientAuthConfig{})

	for _, body := range []string{`{"servings":0}`, `{"servings":13}`} {
		assert.Equal(t, http.StatusBadRequest, postJSON(r, "/recipes", body, "").Code)
	}
	assert.Empty(t, *prompts)
}

func TestTranscriptionFlow(t *testing.T) {
	r := router.SetupTranscriptionRouter(router.TranscriptionRouterConfig{
		Transcription: service.NewTranscriptionService(stt.NewMockEngine(), nil),
		MaxUpload:     1 << 20,
		WorkDir:       t.TempDir(),
	})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "clip.wav")
	require.NoError(t, err)
	_, err = part.Write(make([]byte, 12000))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/command", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"update please","is_update_command":true,"success":true,"mock":true}`, w.Body.String())
}
