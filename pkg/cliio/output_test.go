package cliio

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runOutput(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out Output
	buf := &bytes.Buffer{}
	app := &cli.Command{
		Name:           "planar",
		Writer:         buf,
		ErrWriter:      buf,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			{
				Name:  "show",
				Flags: []cli.Flag{out.Flag()},
				Action: func(_ context.Context, c *cli.Command) error {
					return out.Write(c, map[string]any{"axis": "X", "expr": "X<3"}, func(w io.Writer) {
						_, _ = io.WriteString(w, "X range\n")
					})
				},
			},
		},
	}

	err := app.Run(context.Background(), append([]string{"planar", "show"}, args...))
	return buf.String(), err
}

func TestOutput_Write(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "text by default",
			want: "X range\n",
		},
		{
			name: "json",
			args: []string{"--format", "json"},
			want: "{\n  \"axis\": \"X\",\n  \"expr\": \"X<3\"\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runOutput(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutput_UnknownFormat(t *testing.T) {
	_, err := runOutput(t, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestWriteJSON_Unsupported(t *testing.T) {
	err := WriteJSON(io.Discard, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode json")
}
