package clix_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchemy/internal/clix"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("limit", 0, "")
	fs.Int("offset", 0, "")
	fs.String("return", "", "")
	fs.StringArray("filter", nil, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestParsePagination(t *testing.T) {
	p, err := clix.ParsePagination(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, clix.PaginationParams{Limit: 20, Offset: 0}, p)

	p, err = clix.ParsePagination(newFlags(t, "--limit", "5", "--offset", "10"))
	require.NoError(t, err)
	assert.Equal(t, clix.PaginationParams{Limit: 5, Offset: 10}, p)

	_, err = clix.ParsePagination(newFlags(t, "--offset", "-1"))
	assert.Error(t, err)
}

func TestParseList(t *testing.T) {
	got, err := clix.ParseList(newFlags(t, "--return", "enriched.url.title, ,enriched.url.url"), "return")
	require.NoError(t, err)
	assert.Equal(t, []string{"enriched.url.title", "enriched.url.url"}, got)

	got, err = clix.ParseList(newFlags(t), "return")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseFilters(t *testing.T) {
	got, err := clix.ParseFilters(newFlags(t, "--filter", "enriched.url.title=IBM", "--filter", "q.enriched.url.enrichedTitle.docSentiment.type=positive"), "filter")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"q.enriched.url.title":                           "IBM",
		"q.enriched.url.enrichedTitle.docSentiment.type": "positive",
	}, got)

	_, err = clix.ParseFilters(newFlags(t, "--filter", "novalue"), "filter")
	assert.Error(t, err)
}
