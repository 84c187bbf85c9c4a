package types

// Recipe is one structured recipe extracted from model output
type Recipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// RecipeResponse is returned by POST /recipes
type RecipeResponse struct {
	Recipes  []Recipe `json:"recipes"`
	Model    string   `json:"model"`
	Provider string   `json:"provider"`
}
