package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() outline.Result {
	return outline.Success(outline.Outline{
		Title: "Guide",
		Entries: []outline.Entry{
			{Level: "H1", Text: "Start", Page: 0},
			{Level: "H2", Text: "Install", Page: 1},
		},
	})
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, sampleResult(), "markdown"))
	assert.Equal(t, "# Guide\n\n- Start (page 0)\n  - Install (page 1)\n", buf.String())

	buf.Reset()
	require.NoError(t, printResult(&buf, sampleResult(), "json"))
	assert.Contains(t, buf.String(), "\n    \"outline\": [\n")

	buf.Reset()
	require.NoError(t, printResult(&buf, sampleResult(), "tree"))
	assert.Contains(t, buf.String(), "\"children\"")
}

func TestPrintResult_FailureAlwaysJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, outline.Failure("x.pdf", errors.New("bad")), "markdown"))
	assert.JSONEq(t, `{"error":"bad","file":"x.pdf"}`, buf.String())
}

func TestDirArgs(t *testing.T) {
	in, out := dirArgs(nil)
	assert.Equal(t, "input", in)
	assert.Equal(t, "output", out)

	in, out = dirArgs([]string{"docs"})
	assert.Equal(t, "docs", in)
	assert.Equal(t, "output", out)

	in, out = dirArgs([]string{"docs", "json"})
	assert.Equal(t, "docs", in)
	assert.Equal(t, "json", out)
}
