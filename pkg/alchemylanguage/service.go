// Package alchemylanguage is a client for the AlchemyLanguage text analysis
// capabilities: authors, concepts, entities, keywords, language,
// microformats, publication date and sentiment.
//
// Every operation sends one POST and reports its outcome to the done
// callback exactly once, on a goroutine owned by the client.
package alchemylanguage

import (
	"context"
	"encoding/json"

	"alchemy/pkg/watson"
)

const (
	pathAuthorsURL      = "/url/URLGetAuthors"
	pathAuthorsHTML     = "/html/HTMLGetAuthors"
	pathConceptsURL     = "/url/URLGetRankedConcepts"
	pathEntitiesURL     = "/url/URLGetRankedNamedEntities"
	pathKeywordsURL     = "/url/URLGetRankedKeywords"
	pathLanguageURL     = "/url/URLGetLanguage"
	pathMicroformatsURL = "/url/URLGetMicroformatData"
	pathPubDateURL      = "/url/URLGetPubDate"
	pathSentimentURL    = "/url/URLGetTextSentiment"
)

// GraphOptions tunes the ranked extraction calls.
type GraphOptions struct {
	// KnowledgeGraph adds a knowledgeGraph type hierarchy to each result.
	KnowledgeGraph bool
}

// HTMLOptions tunes calls that post raw HTML.
type HTMLOptions struct {
	// URL the HTML was fetched from, if known.
	URL string
}

// RelationsOptions are the parameters the relations capability accepts.
type RelationsOptions struct {
	KnowledgeGraph       bool
	DisambiguateEntities bool
	LinkedData           bool
	Coreference          bool
}

// Service talks to the AlchemyLanguage gateway.
type Service struct {
	builder *watson.Builder
	invoker *watson.Invoker
}

// New returns a Service. An empty cfg.BaseURL targets watson.DefaultGatewayURL.
func New(cfg watson.Config) *Service {
	cfg = cfg.WithDefaults(watson.DefaultGatewayURL)
	return &Service{
		builder: watson.NewBuilder(cfg.BaseURL, cfg.APIKey),
		invoker: watson.NewInvoker(cfg.HTTPClient, cfg.Logger),
	}
}

func urlParams(url string) watson.Params {
	return watson.Params{}.Add("url", url)
}

func rankedParams(url string, opts GraphOptions) watson.Params {
	return urlParams(url).Add("linkedData", "1").Flag("knowledgeGraph", opts.KnowledgeGraph)
}

// GetAuthorsURL extracts the authors of the page at url.
func (s *Service) GetAuthorsURL(ctx context.Context, url string, done func(watson.Result[DocumentAuthors])) {
	d := s.builder.Build(pathAuthorsURL, urlParams(url))
	watson.Execute(ctx, s.invoker, d, "DocumentAuthors", DecodeDocumentAuthors, done)
}

// GetAuthorsHTML extracts the authors of an HTML document posted in the body.
func (s *Service) GetAuthorsHTML(ctx context.Context, html string, opts HTMLOptions, done func(watson.Result[DocumentAuthors])) {
	params := watson.Params{}.Optional("url", opts.URL)
	d, err := s.builder.BuildWithBody(pathAuthorsHTML, params, map[string]string{"html_File": html}, watson.ContentTypeForm)
	if err != nil {
		done(watson.Failure[DocumentAuthors](err))
		return
	}
	watson.Execute(ctx, s.invoker, d, "DocumentAuthors", DecodeDocumentAuthors, done)
}

// GetRankedConceptsURL tags the page at url with ranked concepts.
func (s *Service) GetRankedConceptsURL(ctx context.Context, url string, opts GraphOptions, done func(watson.Result[ConceptResponse])) {
	d := s.builder.Build(pathConceptsURL, rankedParams(url, opts))
	watson.Execute(ctx, s.invoker, d, "ConceptResponse", DecodeConcepts, done)
}

// GetRankedNamedEntitiesURL extracts ranked named entities from the page at url.
func (s *Service) GetRankedNamedEntitiesURL(ctx context.Context, url string, opts GraphOptions, done func(watson.Result[Entities])) {
	d := s.builder.Build(pathEntitiesURL, rankedParams(url, opts))
	watson.Execute(ctx, s.invoker, d, "Entities", DecodeEntities, done)
}

// GetRankedKeywordsURL extracts ranked keywords from the page at url.
func (s *Service) GetRankedKeywordsURL(ctx context.Context, url string, opts GraphOptions, done func(watson.Result[Keywords])) {
	d := s.builder.Build(pathKeywordsURL, rankedParams(url, opts))
	watson.Execute(ctx, s.invoker, d, "Keywords", DecodeKeywords, done)
}

// GetLanguageURL detects the language of the page at url.
func (s *Service) GetLanguageURL(ctx context.Context, url string, done func(watson.Result[Language])) {
	d := s.builder.Build(pathLanguageURL, urlParams(url))
	watson.Execute(ctx, s.invoker, d, "Language", DecodeLanguage, done)
}

// GetMicroformatDataURL extracts microformat data from the page at url.
func (s *Service) GetMicroformatDataURL(ctx context.Context, url string, done func(watson.Result[Microformats])) {
	d := s.builder.Build(pathMicroformatsURL, urlParams(url))
	watson.Execute(ctx, s.invoker, d, "Microformats", DecodeMicroformats, done)
}

// GetPubDateURL extracts the publication date of the page at url.
func (s *Service) GetPubDateURL(ctx context.Context, url string, done func(watson.Result[PublicationResponse])) {
	d := s.builder.Build(pathPubDateURL, urlParams(url))
	watson.Execute(ctx, s.invoker, d, "PublicationResponse", DecodePublication, done)
}

// GetTextSentimentURL scores the document-level sentiment of the page at url.
func (s *Service) GetTextSentimentURL(ctx context.Context, url string, done func(watson.Result[DocumentSentiment])) {
	d := s.builder.Build(pathSentimentURL, urlParams(url))
	watson.Execute(ctx, s.invoker, d, "DocumentSentiment", DecodeDocumentSentiment, done)
}

// GetRelationsURL is not supported: the relations response has no agreed
// model. It returns watson.ErrUnsupported and never sends a request or calls done.
func (s *Service) GetRelationsURL(ctx context.Context, url string, opts RelationsOptions, done func(watson.Result[json.RawMessage])) error {
	return watson.ErrUnsupported
}
