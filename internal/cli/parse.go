package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pageza/pantry-recipes/backend/internal/parser"
	"github.com/pageza/pantry-recipes/backend/internal/types"
)

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Normalize free-text model output into recipes",
		ArgsUsage: "[FILE|-]",
		Description: `Reads model output from FILE, or stdin when FILE is "-" or omitted,
and prints the recipes the server would return for it.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "ingredients",
				Usage: "Requested ingredients, used by the fallback recipe",
			},
			&cli.BoolFlag{
				Name:  "no-fallback",
				Usage: "Print only recipes found in the text, possibly none",
			},
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			text, err := readInput(cmd)
			if err != nil {
				return err
			}

			recipes := parser.Parse(text, cmd.StringSlice("ingredients"))
			if cmd.Bool("no-fallback") {
				recipes = append([]types.Recipe{}, parser.Extract(text)...)
			}
			return write(cmd.Root().Writer, cmd.String("format"), recipes)
		},
	}
}

func readInput(cmd *cli.Command) (string, error) {
	path := cmd.Args().First()
	if path == "" || path == "-" {
		b, err := io.ReadAll(cmd.Root().Reader)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(b), nil
}
