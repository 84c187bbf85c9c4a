package parser

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-recipes/backend/internal/types"
)

func TestBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "whitespace only", text: " \n\n\t\n\n ", want: nil},
		{name: "single block", text: "  one\ntwo  ", want: []string{"one\ntwo"}},
		{name: "blank line separator", text: "a\n\nb", want: []string{"a", "b"}},
		{name: "runs of newlines", text: "a\n\n\n\nb\n\n\nc", want: []string{"a", "b", "c"}},
		{name: "windows line endings", text: "a\r\n\r\nb\r\nc", want: []string{"a", "b\nc"}},
		{name: "single newline keeps block", text: "a\nb", want: []string{"a\nb"}},
		{name: "line of spaces does not separate", text: "a\n  \nb", want: []string{"a\n  \nb"}},
		{name: "lone carriage returns are not line breaks", text: "a\r\rb", want: []string{"a\r\rb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slices.Collect(Blocks(tt.text)))
		})
	}
}

func TestBlocksStopsEarly(t *testing.T) {
	var seen []string
	for b := range Blocks("a\n\nb\n\nc") {
		seen = append(seen, b)
		if b == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestParseWellFormedRecipes(t *testing.T) {
	text := `Title: Tomato Omelette

Ingredients:
- 2 eggs
- 1 tomato
• salt

Steps:
1. Beat the eggs.
2. Cook with tomato.

Title: Onion Soup

Ingredients
- onion
-   butter

Steps
- Slice onions
- Simmer 20 min`

	recipes := Parse(text, []string{"eggs"})

	require.Len(t, recipes, 2)
	assert.Equal(t, types.Recipe{
		Title:       "Tomato Omelette",
		Ingredients: []string{"2 eggs", "1 tomato", "salt"},
		Steps:       []string{"1. Beat the eggs.", "2. Cook with tomato."},
	}, recipes[0])
	assert.Equal(t, types.Recipe{
		Title:       "Onion Soup",
		Ingredients: []string{"onion", "butter"},
		Steps:       []string{"Slice onions", "Simmer 20 min"},
	}, recipes[1])
}

func TestParseTitleOnly(t *testing.T) {
	recipes := Parse("Title: Pasta", nil)

	require.Len(t, recipes, 1)
	assert.Equal(t, "Pasta", recipes[0].Title)
	assert.NotNil(t, recipes[0].Ingredients)
	assert.Empty(t, recipes[0].Ingredients)
	assert.NotNil(t, recipes[0].Steps)
	assert.Empty(t, recipes[0].Steps)
}

func TestParseTitleMarkerIsCaseInsensitiveSubstring(t *testing.T) {
	recipes := Extract("Here is the first one. TITLE: Garlic Rice\n\nsomething else\n\nRecipe 2 title: Fried Eggs")

	require.Len(t, recipes, 2)
	assert.Equal(t, "Garlic Rice", recipes[0].Title)
	assert.Equal(t, "Fried Eggs", recipes[1].Title)
}

func TestParseTitleTakesTextAfterMarkerColon(t *testing.T) {
	recipes := Extract("Recipe 1: Title: Pasta")

	require.Len(t, recipes, 1)
	assert.Equal(t, "Pasta", recipes[0].Title)
}

func TestParseConsecutiveTitles(t *testing.T) {
	recipes := Extract("Title: A\n\nTitle: B\n\nTitle: C\n\nSteps\n- stir")

	require.Len(t, recipes, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{recipes[0].Title, recipes[1].Title, recipes[2].Title})
	assert.Empty(t, recipes[0].Steps)
	assert.Empty(t, recipes[1].Steps)
	assert.Equal(t, []string{"stir"}, recipes[2].Steps, "later blocks attach to the most recent recipe only")
}

func TestParseEmptyHeaderContributesNothing(t *testing.T) {
	recipes := Extract("Title: Toast\n\nIngredients\n\nSteps:")

	require.Len(t, recipes, 1)
	assert.Empty(t, recipes[0].Ingredients)
	assert.Empty(t, recipes[0].Steps)
}

func TestParseDropsEmptyItems(t *testing.T) {
	recipes := Extract("Title: Salad\n\nIngredients:\n-\n   \n• lettuce\n - \n--  cucumber  ")

	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"lettuce", "cucumber"}, recipes[0].Ingredients)
}

func TestParseBulletBlockBeforeTitleIsAStep(t *testing.T) {
	recipes := Extract("- Chop onions\n\nOnion Bhaji")

	require.Len(t, recipes, 1)
	assert.Equal(t, "Onion Bhaji", recipes[0].Title)
	assert.Equal(t, []string{"Chop onions"}, recipes[0].Steps)
}

func TestParseBulletBlockAloneFallsBack(t *testing.T) {
	recipes := Parse("- Chop onions", []string{"onion"})

	require.Len(t, recipes, 1)
	assert.Equal(t, FallbackTitle, recipes[0].Title)
}

func TestParseBareBulletIsDropped(t *testing.T) {
	recipes := Extract("Title: Tea\n\n•\n\n- Boil water")

	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"Boil water"}, recipes[0].Steps)
}

func TestParsePlainBlockBecomesTitleOnce(t *testing.T) {
	recipes := Extract("Lemon Pasta\n\nA bright weeknight dinner.\n\nIngredients\n- pasta\n- lemon")

	require.Len(t, recipes, 1)
	assert.Equal(t, "Lemon Pasta", recipes[0].Title)
	assert.Equal(t, []string{"pasta", "lemon"}, recipes[0].Ingredients)
}

func TestParseListsBeforeTitleKeptByLateTitle(t *testing.T) {
	recipes := Extract("Ingredients\n- rice\n\nSteps\n- boil\n\nPlain Rice")

	require.Len(t, recipes, 1)
	assert.Equal(t, types.Recipe{
		Title:       "Plain Rice",
		Ingredients: []string{"rice"},
		Steps:       []string{"boil"},
	}, recipes[0])
}

func TestParseListsBeforeTitleMarkerAreDiscarded(t *testing.T) {
	recipes := Extract("Ingredients\n- rice\n\nTitle: Beans")

	require.Len(t, recipes, 1)
	assert.Equal(t, "Beans", recipes[0].Title)
	assert.Empty(t, recipes[0].Ingredients)
}

func TestParseEmptyTitleMarkerWaitsForTitle(t *testing.T) {
	recipes := Extract("Title:\n\nMystery Stew\n\nSteps\n- stir")

	require.Len(t, recipes, 1)
	assert.Equal(t, "Mystery Stew", recipes[0].Title)
	assert.Equal(t, []string{"stir"}, recipes[0].Steps)
}

func TestParseWithoutMarkersYieldsExactlyOneRecipe(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Could not parse model response.",
		"Some words\n\nmore words\n\nand more",
		"Ingredients\n- egg\n\nSteps\n- fry",
	}
	for _, in := range inputs {
		recipes := Parse(in, []string{"egg"})
		assert.Len(t, recipes, 1, "input %q", in)
	}
}

func TestParseFallback(t *testing.T) {
	t.Run("uses requested ingredients", func(t *testing.T) {
		requested := []string{"tomato", "onion", "tomato"}
		recipes := Parse("", requested)

		require.Len(t, recipes, 1)
		assert.Equal(t, FallbackTitle, recipes[0].Title)
		assert.Equal(t, []string{"tomato", "onion", "tomato"}, recipes[0].Ingredients)
		assert.Len(t, recipes[0].Steps, 4)

		recipes[0].Ingredients[0] = "changed"
		assert.Equal(t, "tomato", requested[0], "fallback must not alias the request")
	})

	t.Run("uses default pantry", func(t *testing.T) {
		recipes := Parse("\n\n", nil)

		require.Len(t, recipes, 1)
		assert.Equal(t, []string{"mixed veggies", "rice", "soy sauce"}, recipes[0].Ingredients)
		assert.Equal(t, "Heat a pan on medium-high.", recipes[0].Steps[0])
		assert.Equal(t, "Adjust seasoning and serve hot.", recipes[0].Steps[3])
	})

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, Parse("", []string{"a"}), Parse("", []string{"a"}))
	})
}

func TestParseNeverEmpty(t *testing.T) {
	inputs := []string{"", "Title:", "- -", "Steps\n\nIngredients", "title:\n\n- x"}
	for _, in := range inputs {
		assert.NotEmpty(t, Parse(in, nil), "input %q", in)
	}
}

func TestExtractNoTitleReturnsEmpty(t *testing.T) {
	assert.Empty(t, Extract("- step one\n\n- step two"))
}
