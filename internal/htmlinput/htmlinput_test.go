package htmlinput_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchemy/internal/htmlinput"
)

const page = `<!DOCTYPE html>
<html><head>
<title> Watson Launch </title>
<meta property="og:url" content="http://example.com/og">
<link rel="canonical" href="http://example.com/watson">
<script>var x = "ignored";</script>
</head>
<body>
<nav>Home | About</nav>
<h1>IBM   Watson</h1>
<p>Written by <b>Ada</b>.&nbsp;Published today.</p>
<footer>copyright</footer>
</body></html>`

func TestParse(t *testing.T) {
	doc, err := htmlinput.Parse(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "Watson Launch", doc.Title)
	assert.Equal(t, "http://example.com/watson", doc.URL, "canonical wins over og:url")
	assert.Equal(t, "IBM Watson\nWritten by Ada . Published today.", doc.Text)
	assert.Equal(t, page, doc.Raw)
}

func TestParseFallsBackToOGURL(t *testing.T) {
	doc, err := htmlinput.Parse(strings.NewReader(`<html><head><meta property="og:url" content="http://example.com/og"></head><body>hi</body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/og", doc.URL)
	assert.Empty(t, doc.Title)
	assert.Equal(t, "hi", doc.Text)
}

func TestParseEmpty(t *testing.T) {
	_, err := htmlinput.Parse(strings.NewReader("  \n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	doc, err := htmlinput.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Watson Launch", doc.Title)

	_, err = htmlinput.Load(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
