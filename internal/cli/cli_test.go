package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
)

// execute runs cmd with args and returns everything written to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func assertGolden(t *testing.T, name, output string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(output))
}

func textOpts() *RootOptions {
	return &RootOptions{Format: "text"}
}

func jsonOpts() *RootOptions {
	return &RootOptions{Format: "json"}
}
