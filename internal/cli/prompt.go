package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pageza/pantry-recipes/backend/internal/service"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

func promptCmd() *cli.Command {
	return &cli.Command{
		Name:  "prompt",
		Usage: "Print the prompt sent to the language model",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "ingredients",
				Usage: "Ingredients to cook with (comma separated)",
			},
			&cli.IntFlag{
				Name:  "servings",
				Value: types.DefaultServings,
				Usage: fmt.Sprintf("Number of servings (%d-%d)", types.MinServings, types.MaxServings),
			},
			&cli.StringSliceFlag{
				Name:  "dietary",
				Usage: "Dietary constraints (comma separated)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			servings := int(cmd.Int("servings"))
			if servings < types.MinServings || servings > types.MaxServings {
				return fmt.Errorf("servings must be between %d and %d, got %d",
					types.MinServings, types.MaxServings, servings)
			}

			prompt := service.BuildPrompt(cmd.StringSlice("ingredients"), servings, cmd.StringSlice("dietary"))
			_, err := fmt.Fprint(cmd.Root().Writer, prompt)
			return err
		},
	}
}
