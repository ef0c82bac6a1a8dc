package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/y2km/internal/config"
)

func TestParseCommand_Golden(t *testing.T) {
	out, err := execute(t, NewParseCommand(textOpts()), "2000-01", "1999-12", "NA", "2001-06")
	require.NoError(t, err)
	assertGolden(t, "parse_text", out)
}

func TestParseCommand_JSON(t *testing.T) {
	out, err := execute(t, NewParseCommand(jsonOpts()), "2001-06", "NA")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"offsets":[17,null]}}`, out)
}

func TestParseCommand_FullWidthInput(t *testing.T) {
	out, err := execute(t, NewParseCommand(textOpts()), "２００１－０６")
	require.NoError(t, err)
	assert.Equal(t, "2001-06\t17\n", out)
}

func TestParseCommand_Lenient(t *testing.T) {
	out, err := execute(t, NewParseCommand(textOpts()), "2001-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2001-06-15\t17\n", out)
}

func TestParseCommand_ParseError(t *testing.T) {
	out, err := execute(t, NewParseCommand(textOpts()), "2000-01", "junk")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [PARSE_ERROR]")
}

func TestFormatCommand_Golden(t *testing.T) {
	out, err := execute(t, NewFormatCommand(textOpts()), "--", "-1", "0", "NA", "17")
	require.NoError(t, err)
	assertGolden(t, "format_text", out)
}

func TestFormatCommand_JSON(t *testing.T) {
	out, err := execute(t, NewFormatCommand(jsonOpts()), "0", "NA")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"values":["2000-01",null]}}`, out)
}

func TestFormatCommand_Errors(t *testing.T) {
	out, err := execute(t, NewFormatCommand(textOpts()), "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")

	out, err = execute(t, NewFormatCommand(textOpts()), "40000")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [RANGE_OVERFLOW]")
}

func TestFormatCommand_Saturate(t *testing.T) {
	opts := &RootOptions{Format: "text", Settings: config.Config{RangePolicy: "saturate"}}

	out, err := execute(t, NewFormatCommand(opts), "40000")
	require.NoError(t, err)
	assert.Equal(t, "32767\t4730-08\n", out)
}

func TestDiffCommand_Golden(t *testing.T) {
	out, err := execute(t, NewDiffCommand(textOpts()), "2001-01,2001-06,NA", "2000-01")
	require.NoError(t, err)
	assertGolden(t, "diff_text", out)
}

func TestDiffCommand_JSON(t *testing.T) {
	out, err := execute(t, NewDiffCommand(jsonOpts()), "2001-01", "2000-01")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   DiffResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Deltas, 1)
	assert.Equal(t, int32(12), *resp.Data.Deltas[0])
}

func TestDiffCommand_LengthMismatch(t *testing.T) {
	out, err := execute(t, NewDiffCommand(textOpts()), "2001-01,2001-02", "2000-01,2000-02,2000-03")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "LENGTH_MISMATCH")
}

func TestShiftCommand_Golden(t *testing.T) {
	out, err := execute(t, NewShiftCommand(textOpts()), "--by", "14", "2000-01", "NA", "1999-12")
	require.NoError(t, err)
	assertGolden(t, "shift_text", out)
}

func TestShiftCommand_Negative(t *testing.T) {
	out, err := execute(t, NewShiftCommand(textOpts()), "--by=-1", "2000-01")
	require.NoError(t, err)
	assert.Equal(t, "1999-12\n", out)
}

func TestShiftCommand_Overflow(t *testing.T) {
	out, err := execute(t, NewShiftCommand(textOpts()), "--by", "1", "4730-08")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "RANGE_OVERFLOW")
}

func TestShiftCommand_RequiresBy(t *testing.T) {
	_, err := execute(t, NewShiftCommand(textOpts()), "2000-01")
	assert.Error(t, err)
}
