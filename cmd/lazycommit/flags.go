// Package main provides CLI flag definitions for lazycommit.
package main

import (
	"fmt"
	"strings"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/lazycommit/internal/theme"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Print debug output to stderr",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.BoolFlag{
			Name:  "no-interactive",
			Usage: "Never prompt: stage everything and take emoji and title from flags",
		},
		&urfavecli.StringFlag{
			Name:  "emoji",
			Usage: "Commit emoji, as a glyph or a :code:",
		},
		&urfavecli.StringFlag{
			Name:  "title",
			Usage: "Commit title, validated against the commit rules",
		},
		&urfavecli.StringFlag{
			Name:  "body",
			Usage: "Commit body",
		},
		&urfavecli.StringFlag{
			Name:  "template",
			Usage: "Apply a commit template (see `lazycommit templates`)",
		},
		&urfavecli.BoolFlag{
			Name:  "dry-run",
			Usage: "Compose the commit message without committing",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=commit.max_title_length=72",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   fmt.Sprintf("Override the UI theme (%s)", strings.Join(theme.AvailableThemes(), ", ")),
		},
	}
}
