package render_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchemy/internal/render"
)

type keyword struct {
	Text      string  `json:"text"`
	Relevance float64 `json:"relevance"`
}

type keywords struct {
	Status   string    `json:"status"`
	Keywords []keyword `json:"keywords"`
}

func (k keywords) Headers() []string { return []string{"Text", "Relevance"} }

func (k keywords) Rows() [][]string {
	rows := make([][]string, 0, len(k.Keywords))
	for _, kw := range k.Keywords {
		rows = append(rows, []string{kw.Text, "x"})
	}
	return rows
}

var sample = keywords{Status: "OK", Keywords: []keyword{{Text: "IBM", Relevance: 0.9}, {Text: "Watson", Relevance: 0.5}}}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]render.Format{"": render.FormatTable, "JSON": render.FormatJSON, "yml": render.FormatYAML} {
		got, err := render.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := render.ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, render.FormatJSON, sample, ""))
	assert.JSONEq(t, `{"status":"OK","keywords":[{"text":"IBM","relevance":0.9},{"text":"Watson","relevance":0.5}]}`, buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, render.FormatYAML, sample, ""))
	out := buf.String()
	assert.Contains(t, out, "keywords:\n")
	assert.Contains(t, out, "- relevance: 0.9\n")
	assert.Contains(t, out, "text: Watson\n")
	assert.Contains(t, out, "status: OK\n")
}

func TestWriteQuery(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, render.FormatTable, sample, "$.keywords[*].text"))
	assert.JSONEq(t, `["IBM","Watson"]`, buf.String())

	_, err := render.Query(sample, "$.[")
	assert.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, render.FormatTable, sample, ""))
	out := buf.String()
	assert.Contains(t, out, "TEXT")
	assert.Contains(t, out, "Watson")
}

func TestStatus(t *testing.T) {
	color.NoColor = true
	assert.Equal(t, "failed", render.Status("failed"))
}

func TestFlatten(t *testing.T) {
	kv, err := render.Flatten(map[string]interface{}{
		"status":  "OK",
		"authors": map[string]interface{}{"names": []string{"Ada", "Grace"}},
		"missing": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"authors.names[0]", "Ada"},
		{"authors.names[1]", "Grace"},
		{"missing", ""},
		{"status", "OK"},
	}, kv.Rows())
}
