package service

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are a helpful cooking assistant.
Given these ingredients: %s
servings: %d
dietary constraints (if any): %s

Return 3 to 5 concise recipes. Format each recipe exactly like this, separating every part with a blank line:

Title: <recipe name>

<one sentence description>

Ingredients:
- <ingredient>

Steps:
1. <step>

Use a subset of the provided ingredients plus minimal pantry items, and keep it short and practical.
`

// BuildPrompt renders the instruction text sent to the language model.
func BuildPrompt(ingredients []string, servings int, dietary []string) string {
	ing := "none specified"
	if len(ingredients) > 0 {
		ing = strings.Join(ingredients, ", ")
	}
	diet := "none"
	if len(dietary) > 0 {
		diet = strings.Join(dietary, ", ")
	}
	return fmt.Sprintf(promptTemplate, ing, servings, diet)
}
