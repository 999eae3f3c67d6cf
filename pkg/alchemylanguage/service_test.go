package alchemylanguage_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchemy/pkg/alchemylanguage"
	"alchemy/pkg/watson"
)

type captured struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Accept      string
	Body        []byte
}

// gateway is a fake AlchemyLanguage endpoint that replies with body and
// remembers the last request it saw.
type gateway struct {
	mu   sync.Mutex
	last captured
	srv  *httptest.Server
}

func newGateway(t *testing.T, status int, body string) *gateway {
	t.Helper()
	g := &gateway{}
	g.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		g.mu.Lock()
		g.last = captured{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Accept:      r.Header.Get("Accept"),
			Body:        b,
		}
		g.mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(g.srv.Close)
	return g
}

func (g *gateway) request() captured {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

func (g *gateway) service() *alchemylanguage.Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return alchemylanguage.New(watson.Config{
		BaseURL:    g.srv.URL + "/calls",
		APIKey:     "test-key",
		HTTPClient: g.srv.Client(),
		Logger:     logger,
	})
}

const keywordsBody = `{
	"status": "OK",
	"url": "http://example.com",
	"language": "english",
	"totalTransactions": "2",
	"keywords": [
		{
			"text": "IBM Watson",
			"relevance": "0.93",
			"sentiment": {"type": "positive", "score": "0.61", "mixed": "1"},
			"knowledgeGraph": {"typeHierarchy": "/products/IBM Watson"}
		},
		{"text": "cognitive", "relevance": "not-a-number"}
	]
}`

func TestGetRankedKeywordsURL(t *testing.T) {
	g := newGateway(t, http.StatusOK, keywordsBody)
	svc := g.service()

	kw, err := watson.Await(func(done func(watson.Result[alchemylanguage.Keywords])) {
		svc.GetRankedKeywordsURL(context.Background(), "http://example.com", alchemylanguage.GraphOptions{KnowledgeGraph: true}, done)
	})
	require.NoError(t, err)

	req := g.request()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/calls/url/URLGetRankedKeywords", req.Path)
	assert.Equal(t, "apikey=test-key&outputMode=json&url=http%3A%2F%2Fexample.com&linkedData=1&knowledgeGraph=1", req.RawQuery)
	assert.Equal(t, "application/json", req.Accept)

	assert.Equal(t, 2, kw.Transactions())
	require.NotNil(t, kw.Language)
	assert.Equal(t, "english", *kw.Language)
	require.Len(t, kw.Keywords, 2)

	first := kw.Keywords[0]
	assert.Equal(t, "IBM Watson", *first.Text)
	assert.InDelta(t, 0.93, *first.Relevance, 1e-9)
	require.NotNil(t, first.Sentiment)
	assert.Equal(t, "positive", *first.Sentiment.Type)
	assert.Equal(t, 1, *first.Sentiment.Mixed)
	assert.InDelta(t, 0.61, *first.Sentiment.Score, 1e-9)
	assert.Equal(t, "/products/IBM Watson", *first.KnowledgeGraph.TypeHierarchy)

	second := kw.Keywords[1]
	assert.Nil(t, second.Relevance, "unparsable optional number decodes to absence")
	assert.Nil(t, second.Sentiment)
	assert.Nil(t, second.KnowledgeGraph)
}

func TestKnowledgeGraphDefaultsToZero(t *testing.T) {
	g := newGateway(t, http.StatusOK, `{"status":"OK","entities":[]}`)
	svc := g.service()

	_, err := watson.Await(func(done func(watson.Result[alchemylanguage.Entities])) {
		svc.GetRankedNamedEntitiesURL(context.Background(), "http://example.com", alchemylanguage.GraphOptions{}, done)
	})
	require.NoError(t, err)
	assert.Contains(t, g.request().RawQuery, "knowledgeGraph=0")
	assert.Equal(t, "/calls/url/URLGetRankedNamedEntities", g.request().Path)
}

func TestMissingRequiredCollectionFailsDecode(t *testing.T) {
	g := newGateway(t, http.StatusOK, `{"status":"OK","language":"english"}`)
	svc := g.service()

	_, err := watson.Await(func(done func(watson.Result[alchemylanguage.ConceptResponse])) {
		svc.GetRankedConceptsURL(context.Background(), "http://example.com", alchemylanguage.GraphOptions{}, done)
	})
	require.Error(t, err)
	assert.True(t, watson.IsKind(err, watson.KindDecode))
	assert.Contains(t, err.Error(), "concepts: missing")
}

func TestServiceErrorBody(t *testing.T) {
	g := newGateway(t, http.StatusOK, `{"code":400,"error":"bad_request","description":"missing url"}`)
	svc := g.service()

	_, err := watson.Await(func(done func(watson.Result[alchemylanguage.Language])) {
		svc.GetLanguageURL(context.Background(), "", done)
	})
	var svcErr *watson.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Code)
	assert.Equal(t, "bad_request", svcErr.Reason)
	assert.Equal(t, "missing url", svcErr.Description)
}

func TestGetAuthorsHTMLPostsBody(t *testing.T) {
	g := newGateway(t, http.StatusOK, `{"status":"OK","authors":{"confident":"no","names":["Ada Lovelace","Charles Babbage"]}}`)
	svc := g.service()

	res, err := watson.Await(func(done func(watson.Result[alchemylanguage.DocumentAuthors])) {
		svc.GetAuthorsHTML(context.Background(), "<html><body>by Ada</body></html>", alchemylanguage.HTMLOptions{}, done)
	})
	require.NoError(t, err)

	req := g.request()
	assert.Equal(t, "/calls/html/HTMLGetAuthors", req.Path)
	assert.Equal(t, "apikey=test-key&outputMode=json", req.RawQuery, "url is omitted when not given")
	assert.Equal(t, watson.ContentTypeForm, req.ContentType)
	assert.JSONEq(t, `{"html_File":"<html><body>by Ada</body></html>"}`, string(req.Body))

	require.NotNil(t, res.Authors)
	assert.Equal(t, []string{"Ada Lovelace", "Charles Babbage"}, res.Authors.Names)
	require.NotNil(t, res.Authors.Confident)
	assert.False(t, *res.Authors.Confident)
}

func TestURLCapabilitiesDecode(t *testing.T) {
	t.Run("language", func(t *testing.T) {
		g := newGateway(t, http.StatusOK, `{"status":"OK","language":"french","iso-639-1":"fr","native-speakers":"77 million"}`)
		lang, err := watson.Await(func(done func(watson.Result[alchemylanguage.Language])) {
			g.service().GetLanguageURL(context.Background(), "http://example.fr", done)
		})
		require.NoError(t, err)
		assert.Equal(t, "/calls/url/URLGetLanguage", g.request().Path)
		assert.Equal(t, "french", *lang.Language)
		assert.Equal(t, "fr", *lang.ISO6391)
		assert.Equal(t, "77 million", *lang.NativeSpeakers)
		assert.Nil(t, lang.Wikipedia)
	})

	t.Run("microformats", func(t *testing.T) {
		g := newGateway(t, http.StatusOK, `{"status":"OK","microformats":[{"field":"fn","data":"Ada"},"junk"]}`)
		mf, err := watson.Await(func(done func(watson.Result[alchemylanguage.Microformats])) {
			g.service().GetMicroformatDataURL(context.Background(), "http://example.com", done)
		})
		require.NoError(t, err)
		assert.Equal(t, "/calls/url/URLGetMicroformatData", g.request().Path)
		require.Len(t, mf.Microformats, 1)
		assert.Equal(t, "fn", *mf.Microformats[0].Field)
	})

	t.Run("pubdate", func(t *testing.T) {
		g := newGateway(t, http.StatusOK, `{"status":"OK","publicationDate":{"date":"20160502T000000","confident":"yes"}}`)
		pub, err := watson.Await(func(done func(watson.Result[alchemylanguage.PublicationResponse])) {
			g.service().GetPubDateURL(context.Background(), "http://example.com", done)
		})
		require.NoError(t, err)
		assert.Equal(t, "/calls/url/URLGetPubDate", g.request().Path)
		assert.Equal(t, "20160502T000000", *pub.PublicationDate.Date)
		assert.True(t, *pub.PublicationDate.Confident)
	})

	t.Run("sentiment", func(t *testing.T) {
		g := newGateway(t, http.StatusOK, `{"status":"OK","docSentiment":{"type":"negative","score":"-0.25"}}`)
		s, err := watson.Await(func(done func(watson.Result[alchemylanguage.DocumentSentiment])) {
			g.service().GetTextSentimentURL(context.Background(), "http://example.com", done)
		})
		require.NoError(t, err)
		assert.Equal(t, "/calls/url/URLGetTextSentiment", g.request().Path)
		assert.Equal(t, "negative", *s.DocSentiment.Type)
		assert.InDelta(t, -0.25, *s.DocSentiment.Score, 1e-9)
		assert.Nil(t, s.DocSentiment.Mixed)
	})

	t.Run("authors by url", func(t *testing.T) {
		g := newGateway(t, http.StatusOK, `{"status":"OK","authors":"not an object"}`)
		a, err := watson.Await(func(done func(watson.Result[alchemylanguage.DocumentAuthors])) {
			g.service().GetAuthorsURL(context.Background(), "http://example.com", done)
		})
		require.NoError(t, err, "a failing optional nested model does not fail the parent")
		assert.Nil(t, a.Authors)
	})

	t.Run("concepts", func(t *testing.T) {
		g := newGateway(t, http.StatusOK, `{"status":"OK","concepts":[{"text":"Cloud","relevance":"0.8","dbpedia":"http://dbpedia.org/resource/Cloud"}]}`)
		c, err := watson.Await(func(done func(watson.Result[alchemylanguage.ConceptResponse])) {
			g.service().GetRankedConceptsURL(context.Background(), "http://example.com", alchemylanguage.GraphOptions{}, done)
		})
		require.NoError(t, err)
		require.Len(t, c.Concepts, 1)
		assert.Equal(t, "http://dbpedia.org/resource/Cloud", *c.Concepts[0].DBpedia)
	})

	t.Run("entities with disambiguation", func(t *testing.T) {
		g := newGateway(t, http.StatusOK, `{"status":"OK","entities":[{"type":"Company","text":"IBM","count":"3","disambiguated":{"name":"IBM","subType":["SoftwareLicense","Organization"]}}]}`)
		e, err := watson.Await(func(done func(watson.Result[alchemylanguage.Entities])) {
			g.service().GetRankedNamedEntitiesURL(context.Background(), "http://example.com", alchemylanguage.GraphOptions{}, done)
		})
		require.NoError(t, err)
		require.Len(t, e.Entities, 1)
		assert.Equal(t, 3, *e.Entities[0].Count)
		assert.Equal(t, []string{"SoftwareLicense", "Organization"}, e.Entities[0].Disambiguated.SubType)
	})
}

func TestGetRelationsURLNeverCompletes(t *testing.T) {
	g := newGateway(t, http.StatusOK, `{}`)
	svc := g.service()

	called := make(chan struct{}, 1)
	err := svc.GetRelationsURL(context.Background(), "http://example.com", alchemylanguage.RelationsOptions{}, func(watson.Result[json.RawMessage]) {
		called <- struct{}{}
	})
	assert.ErrorIs(t, err, watson.ErrUnsupported)

	select {
	case <-called:
		t.Fatal("relations completion must never be invoked")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Empty(t, g.request().Path, "no request is sent")
}

func TestResponseEncodesBackToJSON(t *testing.T) {
	g := newGateway(t, http.StatusOK, keywordsBody)
	kw, err := watson.Await(func(done func(watson.Result[alchemylanguage.Keywords])) {
		g.service().GetRankedKeywordsURL(context.Background(), "http://example.com", alchemylanguage.GraphOptions{}, done)
	})
	require.NoError(t, err)

	out, err := json.Marshal(kw)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"totalTransactions":2`)
	assert.Contains(t, string(out), `"relevance":0.93`)
	assert.Contains(t, string(out), `"status":"OK"`)
}
