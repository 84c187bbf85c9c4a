// Package cli implements recipectl, the operator tool for the recipe
// service. It runs the same normalizer and prompt builder as the server
// so model output can be inspected offline, and it issues client tokens.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const name = "recipectl"

// NewCommand returns the root command.
func NewCommand(version string) *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Inspect recipe prompts and model output, issue client tokens",
		Version: version,
		Commands: []*cli.Command{
			parseCmd(),
			promptCmd(),
			tokenCmd(),
		},
	}
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"o"},
	Value:   "json",
	Usage:   "Output format (json, yaml)",
}

func write(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}
