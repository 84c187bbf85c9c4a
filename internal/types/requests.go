package types

const (
	DefaultServings = 2
	MinServings     = 1
	MaxServings     = 12
)

// RecipeRequest represents the request body for POST /recipes
type RecipeRequest struct {
	Ingredients []string `json:"ingredients"`
	Servings    *int     `json:"servings" binding:"omitempty,min=1,max=12"`
	Dietary     []string `json:"dietary"`
}

// ServingsOrDefault returns the requested servings, or DefaultServings when omitted.
func (r *RecipeRequest) ServingsOrDefault() int {
	if r.Servings == nil {
		return DefaultServings
	}
	return *r.Servings
}

// ErrorResponse is the JSON body of every recipe service error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
