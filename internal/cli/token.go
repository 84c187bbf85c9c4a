package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pageza/pantry-recipes/backend/internal/service"
)

func tokenCmd() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue a signed client token accepted by the recipe service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "secret",
				Usage:    "Shared secret configured as CLIENT_TOKEN on the server",
				Sources:  cli.EnvVars("CLIENT_TOKEN"),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "subject",
				Aliases:  []string{"s"},
				Usage:    "Client name recorded in the token",
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Value: 24 * time.Hour,
				Usage: "Token lifetime",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			token, err := service.NewTokenIssuer(cmd.String("secret")).Issue(cmd.String("subject"), cmd.Duration("ttl"))
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, token)
			return err
		},
	}
}
