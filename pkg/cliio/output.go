// Package cliio reads command input documents and writes command results as
// styled text or JSON.
package cliio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
)

// Format selects how a command prints its result.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// Output renders a command result in the format picked with --format.
type Output struct {
	format string
}

// Flag returns a --format flag bound to o. Each call builds a new flag, so
// one Output can serve several sibling subcommands.
func (o *Output) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "format",
		Usage:       "output format (text, json)",
		Value:       string(Text),
		Destination: &o.format,
		Validator: func(s string) error {
			switch Format(s) {
			case Text, JSON:
				return nil
			}
			return fmt.Errorf("unknown format %q (want text or json)", s)
		},
	}
}

// JSON reports whether JSON output was requested.
func (o *Output) JSON() bool {
	return Format(o.format) == JSON
}

// Write prints v as indented JSON to the root command's writer, or hands the
// writer to text when text output was requested.
func (o *Output) Write(c *cli.Command, v any, text func(w io.Writer)) error {
	w := c.Root().Writer
	if o.JSON() {
		return WriteJSON(w, v)
	}
	if text != nil {
		text(w)
	}
	return nil
}

// WriteJSON encodes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
