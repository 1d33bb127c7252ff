package cliio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// DocReader decodes one JSON or YAML document of type T from the file named
// by --file, or from stdin when no file is given.
type DocReader[T any] struct {
	path string
}

func (r *DocReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to a JSON or YAML document (reads stdin if not provided)",
		TakesFile:   true,
		Destination: &r.path,
	}
}

// Read decodes the document named by the flag.
func (r *DocReader[T]) Read() (T, error) {
	var zero T

	if r.path == "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return zero, errors.New("no input provided (stdin is a terminal); use -f or pipe a document")
		}
		return Decode[T](os.Stdin)
	}

	f, err := os.Open(r.path)
	if err != nil {
		return zero, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode[T](f)
}

// Decode reads a single document. Input starting with '{' or '[' is decoded
// as JSON, anything else as YAML.
func Decode[T any](r io.Reader) (T, error) {
	var v T

	br := bufio.NewReader(r)
	first, err := firstByte(br)
	if err != nil {
		return v, fmt.Errorf("read document: %w", err)
	}

	if first == '{' || first == '[' {
		if err := json.NewDecoder(br).Decode(&v); err != nil {
			return v, fmt.Errorf("decode JSON: %w", err)
		}
		return v, nil
	}

	if err := yaml.NewDecoder(br).Decode(&v); err != nil {
		return v, fmt.Errorf("decode YAML: %w", err)
	}
	return v, nil
}

// firstByte returns the first non-space byte without consuming it.
func firstByte(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, errors.New("empty document")
			}
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}
