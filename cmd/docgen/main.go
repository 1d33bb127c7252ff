// Command docgen generates CLI reference documentation from the planar command
// definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/planar/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "planar",
		Usage:     "Interactive coordinate plane in the terminal",
		UsageText: "planar [global options] command [command options]",
		Description: `Planar draws a 2D coordinate plane with a draggable marker. The marker
position is mirrored into text fields and sliders, and every edit in one
place is reflected in all the others.

Run 'planar' with no arguments to open the interactive plane.
Run 'planar range check' to try a range and rounding mode without the TUI.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("PLANAR_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file, '-' for stderr (defaults to <data-dir>/planar.log)",
				Sources: cli.EnvVars("PLANAR_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("PLANAR_CONFIG"),
				Value:   "~/.config/planar/config.yaml",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "path to data directory",
				Sources: cli.EnvVars("PLANAR_DATA_DIR"),
				Value:   "~/.local/share/planar",
			},
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	root = commands.NewRangeCmd(flags).Register(root)
	root = commands.NewProjectCmd(flags).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s: %v\n", filepath.Dir(outPath), err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
