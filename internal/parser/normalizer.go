package parser

import (
	"strings"

	"github.com/pageza/pantry-recipes/backend/internal/types"
)

const (
	titleMarker       = "title:"
	ingredientsHeader = "ingredients"
	stepsHeader       = "steps"

	FallbackTitle = "Quick Pantry Stir-Fry"
)

// DefaultPantry is used by the fallback recipe when the request named no ingredients.
var DefaultPantry = []string{"mixed veggies", "rice", "soy sauce"}

var fallbackSteps = []string{
	"Heat a pan on medium-high.",
	"Add a little oil and sauté veggies 3–4 min.",
	"Stir in cooked rice and soy sauce; toss 2–3 min.",
	"Adjust seasoning and serve hot.",
}

type state int

const (
	// awaitingTitle: the accumulator has no title and will not be emitted on flush.
	awaitingTitle state = iota
	// accumulating: the accumulator has a title and is emitted on flush.
	accumulating
)

type normalizer struct {
	state   state
	current types.Recipe
	recipes []types.Recipe
}

func newNormalizer() *normalizer {
	n := &normalizer{}
	n.reset("")
	return n
}

// Extract scans text block by block and returns every recipe that received a
// title. The result may be empty.
func Extract(text string) []types.Recipe {
	n := newNormalizer()
	for block := range Blocks(text) {
		n.feed(block)
	}
	n.flush()
	return n.recipes
}

// Parse is Extract with the fallback applied: it never returns an empty slice.
func Parse(text string, requested []string) []types.Recipe {
	if recipes := Extract(text); len(recipes) > 0 {
		return recipes
	}
	return []types.Recipe{Fallback(requested)}
}

// Fallback builds the deterministic recipe returned when nothing could be parsed.
func Fallback(requested []string) types.Recipe {
	ingredients := requested
	if len(ingredients) == 0 {
		ingredients = DefaultPantry
	}
	return types.Recipe{
		Title:       FallbackTitle,
		Ingredients: append([]string(nil), ingredients...),
		Steps:       append([]string(nil), fallbackSteps...),
	}
}

func (n *normalizer) feed(block string) {
	switch {
	case indexFold(block, titleMarker) >= 0:
		n.flush()
		i := indexFold(block, titleMarker)
		n.reset(strings.TrimSpace(block[i+len(titleMarker):]))

	case hasPrefixFold(block, ingredientsHeader):
		n.current.Ingredients = append(n.current.Ingredients, listItems(block)...)

	case hasPrefixFold(block, stepsHeader):
		n.current.Steps = append(n.current.Steps, listItems(block)...)

	case startsWithBullet(block):
		if step := cleanItem(block); step != "" {
			n.current.Steps = append(n.current.Steps, step)
		}

	case n.state == awaitingTitle:
		n.current.Title = block
		n.state = accumulating
	}
}

// reset discards the accumulator and starts a new one with the given title.
func (n *normalizer) reset(title string) {
	n.current = types.Recipe{
		Title:       title,
		Ingredients: []string{},
		Steps:       []string{},
	}
	if title == "" {
		n.state = awaitingTitle
	} else {
		n.state = accumulating
	}
}

func (n *normalizer) flush() {
	if n.state == accumulating {
		n.recipes = append(n.recipes, n.current)
	}
}

// listItems returns the cleaned, non-empty lines following the header line.
func listItems(block string) []string {
	lines := strings.Split(block, "\n")[1:]
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		if item := cleanItem(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}
