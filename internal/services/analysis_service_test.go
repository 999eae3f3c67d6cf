package services_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchemy/internal/models"
	"alchemy/internal/services"
	"alchemy/internal/store/local"
	"alchemy/pkg/alchemydatanews"
	"alchemy/pkg/alchemylanguage"
	"alchemy/pkg/languagetranslation"
	"alchemy/pkg/watson"
)

// fakeGateway answers each capability path with a canned body.
func fakeGateway(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/url/URLGetRankedKeywords"):
			io.WriteString(w, `{"status":"OK","totalTransactions":"1","keywords":[{"text":"watson","relevance":"0.9"}]}`)
		case strings.HasSuffix(r.URL.Path, "/url/URLGetLanguage"):
			io.WriteString(w, `{"code":400,"error":"bad_request","description":"cannot-retrieve"}`)
		case strings.HasSuffix(r.URL.Path, "/html/HTMLGetAuthors"):
			body, _ := io.ReadAll(r.Body)
			assert.Contains(t, string(body), "html_File")
			io.WriteString(w, `{"status":"OK","authors":{"names":["Ada"]}}`)
		case strings.HasSuffix(r.URL.Path, "/data/GetNews"):
			io.WriteString(w, `{"status":"OK","totalTransactions":"5","result":{"docs":[]}}`)
		case strings.HasSuffix(r.URL.Path, "/v2/translate"):
			io.WriteString(w, `{"word_count":1,"character_count":5,"translations":[{"translation":"hola"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newService(t *testing.T) (*services.AnalysisService, *local.StoreImpl) {
	t.Helper()
	srv := fakeGateway(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := watson.Config{BaseURL: srv.URL + "/calls", APIKey: "k", HTTPClient: srv.Client(), Logger: logger}
	trCfg := cfg
	trCfg.BaseURL = srv.URL + "/lt/api"

	results, err := local.NewLocalStore(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, results.Migrate(context.Background()))
	t.Cleanup(func() { results.Close() })

	svc := services.NewAnalysisService(
		alchemylanguage.New(cfg),
		alchemydatanews.New(cfg),
		languagetranslation.New(trCfg),
		results,
	)
	return svc, results
}

func TestAnalyzeSuccessIsRecorded(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	rec, err := svc.Analyze(ctx, models.AnalysisRequest{Capability: models.CapabilityKeywords, URL: "http://example.com"})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, models.AnalysisStatusSucceeded, rec.Status)
	assert.Equal(t, 1, rec.Transactions)
	assert.Contains(t, string(rec.Result), `"watson"`)

	stored, err := svc.GetAnalysis(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, stored.ID)
	assert.JSONEq(t, string(rec.Result), string(stored.Result))
}

func TestAnalyzeServiceErrorIsRecorded(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	rec, err := svc.Analyze(ctx, models.AnalysisRequest{Capability: models.CapabilityLanguage, URL: "http://example.com"})
	require.Error(t, err)
	assert.True(t, watson.IsKind(err, watson.KindService))
	require.NotNil(t, rec)
	assert.Equal(t, models.AnalysisStatusFailed, rec.Status)
	require.NotNil(t, rec.ErrorCode)
	assert.Equal(t, 400, *rec.ErrorCode)
	assert.Equal(t, "service", *rec.ErrorKind)

	usage, err := svc.Usage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.EqualValues(t, 1, usage[0].Failures)
}

func TestAnalyzeAuthorsHTML(t *testing.T) {
	svc, _ := newService(t)
	rec, err := svc.Analyze(context.Background(), models.AnalysisRequest{Capability: models.CapabilityAuthors, HTML: "<p>by Ada</p>"})
	require.NoError(t, err)
	assert.Equal(t, "html:13 bytes", rec.Input)
	assert.Contains(t, string(rec.Result), "Ada")
}

func TestAnalyzeRelationsIsUnsupported(t *testing.T) {
	svc, _ := newService(t)
	rec, err := svc.Analyze(context.Background(), models.AnalysisRequest{Capability: models.CapabilityRelations, URL: "http://example.com"})
	assert.ErrorIs(t, err, watson.ErrUnsupported)
	assert.Nil(t, rec)

	records, err := svc.ListAnalyses(context.Background(), models.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, records, "nothing is recorded for unsupported capabilities")
}

func TestAnalyzeValidation(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Analyze(context.Background(), models.AnalysisRequest{Capability: models.CapabilityKeywords})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestTranslateAndNews(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	rec, err := svc.Translate(ctx, languagetranslation.TranslateRequest{Text: []string{"hello"}, Source: "en", Target: "es"})
	require.NoError(t, err)
	assert.Equal(t, models.CapabilityTranslate, rec.Capability)
	assert.Equal(t, "en-es: hello", rec.Input)
	assert.Contains(t, string(rec.Result), "hola")

	_, err = svc.Translate(ctx, languagetranslation.TranslateRequest{Text: []string{"hello"}})
	assert.ErrorIs(t, err, models.ErrValidation)

	rec, err = svc.News(ctx, alchemydatanews.NewsQuery{Start: "now-1d", End: "now", Filters: map[string]string{"q.enriched.url.title": "watson"}})
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Transactions)
	assert.Equal(t, "now-1d..now q.enriched.url.title=watson", rec.Input)

	list, err := svc.ListAnalyses(ctx, models.ListFilter{Capability: models.CapabilityNews})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTranslateInputKeepsMultibyteTextValid(t *testing.T) {
	svc, results := newService(t)
	ctx := context.Background()

	text := strings.Repeat("日本", 60)
	rec, err := svc.Translate(ctx, languagetranslation.TranslateRequest{Text: []string{text, "二"}, Source: "ja", Target: "en"})
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(rec.Input))
	assert.Equal(t, "ja-en: "+strings.Repeat("日本", 40)+"... (+1 more)", rec.Input)

	stored, err := results.GetAnalysis(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Input, stored.Input)
}

func TestGetAnalysisNotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.GetAnalysis(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
