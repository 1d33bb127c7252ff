package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/colonyops/planar/internal/rounding"
	"github.com/colonyops/planar/internal/store/presets"
	"github.com/colonyops/planar/pkg/cliio"
)

type RangeCmd struct {
	flags *Flags

	// check flags
	axis       string
	mode       string
	digits     int
	min        string
	max        string
	step       string
	expr       string
	exprDigits int
	save       bool

	out cliio.Output
	doc cliio.DocReader[rounding.RangeConfig]

	// fill replaces the interactive form in tests.
	fill formFiller
}

// NewRangeCmd creates a new range command
func NewRangeCmd(flags *Flags) *RangeCmd {
	return &RangeCmd{flags: flags}
}

// Register adds the range command to the application
func (cmd *RangeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "range",
		Usage: "Inspect and edit axis range presets",
		Description: `Range presets hold the bounds, step, rounding mode and display
expression of one axis. The TUI re-applies them on start.`,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Run the range dialog non-interactively",
				UsageText: "planar range check --axis X [--mode even] [--min -10] [--max 10] [--step 2] [--expr 'X*2']",
				Description: `Applies the given edits to the axis range in the same order the dialog does
and confirms. Values are corrected as they would be while typing, so
--mode even --min 3 yields a min of 2. The axis starts from its saved
preset, or from the configured plane when none is saved.

Exits with status 1 when the confirm is rejected.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "axis",
						Usage:       "axis name (X or Y)",
						Value:       "X",
						Destination: &cmd.axis,
					},
					&cli.StringFlag{
						Name:        "mode",
						Usage:       "rounding mode (" + strings.Join(rounding.Names, ", ") + ")",
						Destination: &cmd.mode,
					},
					&cli.IntFlag{
						Name:        "digits",
						Usage:       "decimal places for the real mode",
						Value:       rounding.DefaultDigits,
						Destination: &cmd.digits,
					},
					&cli.StringFlag{Name: "min", Usage: "range minimum", Destination: &cmd.min},
					&cli.StringFlag{Name: "max", Usage: "range maximum", Destination: &cmd.max},
					&cli.StringFlag{Name: "step", Usage: "grid step", Destination: &cmd.step},
					&cli.StringFlag{
						Name:        "expr",
						Usage:       "display expression over the axis name",
						Destination: &cmd.expr,
					},
					&cli.IntFlag{
						Name:        "expr-digits",
						Usage:       "decimal places for the expression value",
						Value:       rounding.DefaultDigits,
						Destination: &cmd.exprDigits,
					},
					&cli.BoolFlag{
						Name:        "save",
						Usage:       "store the confirmed range as the axis preset",
						Destination: &cmd.save,
					},
					cmd.out.Flag(),
				},
				Action: cmd.runCheck,
			},
			{
				Name:      "edit",
				Usage:     "Edit an axis range in an interactive form",
				UsageText: "planar range edit --axis X [--save]",
				Description: `Opens the range dialog as a terminal form prefilled from the saved preset.
A rejected confirm reopens the form with the reason on top. Needs a
terminal; use range check from scripts.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "axis",
						Usage:       "axis name (X or Y)",
						Value:       "X",
						Destination: &cmd.axis,
					},
					&cli.BoolFlag{
						Name:        "save",
						Usage:       "store the confirmed range as the axis preset",
						Destination: &cmd.save,
					},
					cmd.out.Flag(),
				},
				Action: cmd.runEdit,
			},
			{
				Name:      "validate",
				Usage:     "Validate a range config document",
				UsageText: "planar range validate -f range.yaml",
				Flags:     []cli.Flag{cmd.doc.Flag(), cmd.out.Flag()},
				Action:    cmd.runValidate,
			},
			{
				Name:   "show",
				Usage:  "List saved range presets",
				Flags:  []cli.Flag{cmd.out.Flag()},
				Action: cmd.runShow,
			},
			{
				Name:          "reset",
				Usage:         "Delete the saved preset of an axis",
				UsageText:     "planar range reset <axis>",
				ShellComplete: AxisCompleter(cmd.store),
				Action:        cmd.runReset,
			},
		},
	})

	return app
}

func (cmd *RangeCmd) store() *presets.Store {
	return presets.New(cmd.flags.Config.PresetsFile())
}

// current returns the saved preset for the axis, or a default range built
// from the configured plane.
func (cmd *RangeCmd) current(ctx context.Context, axis string) (rounding.RangeConfig, error) {
	cfg, err := cmd.store().Get(ctx, axis)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, presets.ErrNotFound) {
		return rounding.RangeConfig{}, err
	}

	p := cmd.flags.Config.Plane
	if axis == "Y" {
		return rounding.DefaultConfig(axis, p.YMin, p.YMax, p.Step), nil
	}
	return rounding.DefaultConfig(axis, p.XMin, p.XMax, p.Step), nil
}

// script turns the set flags into dialog actions. The mode goes first since
// selecting it resets the step and corrects the bounds.
func (cmd *RangeCmd) script(c *cli.Command) (*rounding.Script, error) {
	var actions []rounding.Action

	if c.IsSet("mode") {
		mode, err := rounding.ParseMode(cmd.mode, cmd.digits)
		if err != nil {
			return nil, err
		}
		actions = append(actions, rounding.SelectMode{Mode: mode})
	}
	if c.IsSet("min") {
		actions = append(actions, rounding.EditMin{Text: cmd.min})
	}
	if c.IsSet("max") {
		actions = append(actions, rounding.EditMax{Text: cmd.max})
	}
	if c.IsSet("step") {
		actions = append(actions, rounding.EditStep{Text: cmd.step})
	}
	if c.IsSet("expr") {
		actions = append(actions, rounding.EditExpression{Text: cmd.expr})
	}
	if c.IsSet("expr-digits") {
		actions = append(actions, rounding.EditDigits{Digits: cmd.exprDigits})
	}

	return &rounding.Script{Actions: append(actions, rounding.Confirm{})}, nil
}

func (cmd *RangeCmd) runCheck(ctx context.Context, c *cli.Command) error {
	script, err := cmd.script(c)
	if err != nil {
		return err
	}

	cfg, err := cmd.propose(ctx, script)
	if err != nil {
		if errors.Is(err, rounding.ErrCancelled) && script.Rejected != nil {
			return cmd.outputRejected(c, script.Rejected)
		}
		return err
	}
	return cmd.finish(ctx, c, cfg)
}

func (cmd *RangeCmd) runEdit(ctx context.Context, c *cli.Command) error {
	p := newFormPresenter()
	if cmd.fill != nil {
		p.fill = cmd.fill
	} else if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("range edit needs a terminal; use range check from scripts")
	}

	cfg, err := cmd.propose(ctx, p)
	if err != nil {
		if errors.Is(err, rounding.ErrCancelled) {
			_, _ = lipgloss.Fprintln(c.Root().Writer, styles.TextMutedStyle.Render("range unchanged"))
			return nil
		}
		return err
	}
	return cmd.finish(ctx, c, cfg)
}

// propose runs the range dialog for --axis against the current preset.
func (cmd *RangeCmd) propose(ctx context.Context, p rounding.Presenter) (rounding.RangeConfig, error) {
	axis := strings.ToUpper(strings.TrimSpace(cmd.axis))
	if axis != "X" && axis != "Y" {
		return rounding.RangeConfig{}, fmt.Errorf("unknown axis %q (want X or Y)", cmd.axis)
	}

	current, err := cmd.current(ctx, axis)
	if err != nil {
		return rounding.RangeConfig{}, fmt.Errorf("load preset: %w", err)
	}

	return rounding.Propose(ctx, current, p)
}

// finish saves a confirmed range when --save is set and prints it.
func (cmd *RangeCmd) finish(ctx context.Context, c *cli.Command, cfg rounding.RangeConfig) error {
	if cmd.save {
		if err := cmd.store().Save(ctx, cfg); err != nil {
			return fmt.Errorf("save preset: %w", err)
		}
	}

	return cmd.out.Write(c, cfg, func(w io.Writer) { printRange(w, cfg) })
}

func (cmd *RangeCmd) runValidate(_ context.Context, c *cli.Command) error {
	cfg, err := cmd.doc.Read()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return cmd.outputRejected(c, err)
	}

	return cmd.out.Write(c, map[string]any{"valid": true}, func(w io.Writer) {
		_, _ = lipgloss.Fprintln(w, styles.TextSuccessStyle.Render("✔")+" "+cfg.Axis+" range is valid")
	})
}

func (cmd *RangeCmd) outputRejected(c *cli.Command, rejected error) error {
	msg := rounding.Message(rejected)
	err := cmd.out.Write(c, map[string]any{"valid": false, "error": msg}, func(w io.Writer) {
		_, _ = lipgloss.Fprintln(w, styles.TextErrorStyle.Render("✘")+" "+msg)
	})
	if err != nil {
		return err
	}
	return cli.Exit("", 1)
}

func (cmd *RangeCmd) runShow(ctx context.Context, c *cli.Command) error {
	configs, err := cmd.store().List(ctx)
	if err != nil {
		return fmt.Errorf("list presets: %w", err)
	}

	if configs == nil {
		configs = []rounding.RangeConfig{}
	}

	return cmd.out.Write(c, configs, func(w io.Writer) {
		if len(configs) == 0 {
			_, _ = lipgloss.Fprintln(w, styles.TextMutedStyle.Render("no saved ranges"))
			return
		}
		for i, cfg := range configs {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}
			printRange(w, cfg)
		}
	})
}

func (cmd *RangeCmd) runReset(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one axis, got %d", c.Args().Len())
	}
	axis := strings.ToUpper(strings.TrimSpace(c.Args().First()))

	if err := cmd.store().Delete(ctx, axis); err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}

	_, _ = lipgloss.Fprintln(c.Root().Writer, styles.TextSuccessStyle.Render("✔")+" reset "+axis+" range")
	return nil
}

func printRange(w io.Writer, cfg rounding.RangeConfig) {
	label := func(s string) string { return styles.TextMutedStyle.Render(fmt.Sprintf("  %-11s", s)) }

	mode := cfg.Mode.Name()
	if r, ok := cfg.Mode.(rounding.Real); ok {
		mode = fmt.Sprintf("%s (%d digits)", mode, r.Digits)
	}

	_, _ = lipgloss.Fprintln(w, styles.TextPrimaryBoldStyle.Render(cfg.Axis+" range"))
	_, _ = lipgloss.Fprintln(w, label("rounding")+mode)
	_, _ = lipgloss.Fprintln(w, label("min")+cfg.Min)
	_, _ = lipgloss.Fprintln(w, label("max")+cfg.Max)
	_, _ = lipgloss.Fprintln(w, label("step")+fmt.Sprintf("%g", cfg.Step))
	if cfg.Expression != "" {
		_, _ = lipgloss.Fprintln(w, label("expression")+fmt.Sprintf("%s (%d digits)", cfg.Expression, cfg.ExpressionDigits))
	}
}
