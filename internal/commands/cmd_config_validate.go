package commands

import (
	"context"
	"errors"
	"io"
	"strconv"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/colonyops/planar/pkg/cliio"
)

type ConfigValidateCmd struct {
	flags *Flags
	out   cliio.Output
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "planar config validate [options]",
				Description: "Validates the configuration file, checking the plane range, zoom limits, size sliders, theme, and file paths.",
				Flags:       []cli.Flag{cmd.out.Flag()},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	var errs []validationError

	if err := cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, validationError{Field: fe.Field, Message: fe.Err.Error()})
		}
	}

	report := struct {
		Valid  bool              `json:"valid"`
		Errors []validationError `json:"errors,omitempty"`
	}{
		Valid:  len(errs) == 0,
		Errors: errs,
	}

	err := cmd.out.Write(c, report, func(w io.Writer) {
		for _, e := range errs {
			_, _ = lipgloss.Fprintf(w, "%s %s: %s\n", styles.TextErrorStyle.Render("✘"), e.Field, e.Message)
		}
		if len(errs) == 0 {
			_, _ = lipgloss.Fprintln(w, styles.TextSuccessStyle.Render("✔")+" Configuration is valid")
			return
		}
		_, _ = lipgloss.Fprintln(w, styles.TextErrorStyle.Render(pluralErrors(len(errs))))
	})
	if err != nil {
		return err
	}

	if len(errs) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func pluralErrors(n int) string {
	if n == 1 {
		return "1 error found"
	}
	return strconv.Itoa(n) + " errors found"
}
