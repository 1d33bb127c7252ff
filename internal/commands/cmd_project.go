package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/colonyops/planar/internal/plane"
	"github.com/colonyops/planar/pkg/cliio"
)

type ProjectCmd struct {
	flags *Flags

	width     float64
	height    float64
	toLogical bool
	out       cliio.Output
}

// NewProjectCmd creates a new project command
func NewProjectCmd(flags *Flags) *ProjectCmd {
	return &ProjectCmd{flags: flags}
}

// Register adds the project command to the application
func (cmd *ProjectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "project",
		Usage:     "Convert a point between logical and pixel coordinates",
		UsageText: "planar project [options] <x> <y>",
		Description: `Maps a logical point onto a surface of the given size using the configured
plane range. With --to-logical the arguments are pixels and the logical
point is printed instead. Pixel y grows downward.`,
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:        "width",
				Usage:       "surface width in pixels",
				Value:       640,
				Destination: &cmd.width,
			},
			&cli.FloatFlag{
				Name:        "height",
				Usage:       "surface height in pixels",
				Value:       480,
				Destination: &cmd.height,
			},
			&cli.BoolFlag{
				Name:        "to-logical",
				Usage:       "treat the arguments as pixels",
				Destination: &cmd.toLogical,
			},
			cmd.out.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

type projection struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	PX float64 `json:"px"`
	PY float64 `json:"py"`
}

func (cmd *ProjectCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected 2 coordinates, got %d", c.Args().Len())
	}

	a, err := strconv.ParseFloat(c.Args().Get(0), 64)
	if err != nil {
		return fmt.Errorf("parse first coordinate: %w", err)
	}
	b, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil {
		return fmt.Errorf("parse second coordinate: %w", err)
	}

	p := cmd.flags.Config.Plane
	vp := plane.NewViewport()
	vp.ApplyRange(p.XMin, p.XMax, p.YMin, p.YMax, p.Step)
	vp.Resize(cmd.width, cmd.height)
	if !vp.HasSurface() {
		return fmt.Errorf("surface must have a positive size, got %gx%g", cmd.width, cmd.height)
	}

	out := projection{X: a, Y: b}
	if cmd.toLogical {
		out = projection{PX: a, PY: b}
		out.X, out.Y, _ = vp.ToLogical(a, b)
	} else {
		out.PX, out.PY, _ = vp.ToPixel(a, b)
	}

	return cmd.out.Write(c, out, func(w io.Writer) {
		logical := fmt.Sprintf("(%g, %g)", out.X, out.Y)
		pixel := fmt.Sprintf("(%g, %g) px", out.PX, out.PY)
		arrow := styles.TextMutedStyle.Render("→")
		if cmd.toLogical {
			_, _ = lipgloss.Fprintln(w, pixel, arrow, logical)
		} else {
			_, _ = lipgloss.Fprintln(w, logical, arrow, pixel)
		}
	})
}
