// Package alchemydatanews is a client for the AlchemyData News search capability.
package alchemydatanews

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"alchemy/pkg/watson"
	"alchemy/pkg/watson/decode"
)

const pathGetNews = "/data/GetNews"

// NewsQuery describes a news search. Start and End accept the gateway's
// relative syntax ("now-1d", "now"). Filters holds query fields such as
// "q.enriched.url.title" and are sent in key order.
type NewsQuery struct {
	Start   string
	End     string
	Count   int
	Return  []string
	Filters map[string]string
}

func (q NewsQuery) params() watson.Params {
	p := watson.Params{}.Optional("start", q.Start).Optional("end", q.End)
	if q.Count > 0 {
		p = p.Add("count", strconv.Itoa(q.Count))
	}
	if len(q.Return) > 0 {
		p = p.Add("return", strings.Join(q.Return, ","))
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p = p.Add(k, q.Filters[k])
	}
	return p
}

// NewsDocument is one article returned by a news search.
type NewsDocument struct {
	ID        *string `json:"id,omitempty"`
	Timestamp *int    `json:"timestamp,omitempty"`
	Title     *string `json:"title,omitempty"`
	URL       *string `json:"url,omitempty"`
}

// NewsResult is one page of matching documents; Next is the cursor for the following page.
type NewsResult struct {
	Status *string        `json:"status,omitempty"`
	Next   *string        `json:"next,omitempty"`
	Docs   []NewsDocument `json:"docs,omitempty"`
}

// NewsResponse is the result of a news search.
type NewsResponse struct {
	TotalTransactions int         `json:"totalTransactions"`
	Result            *NewsResult `json:"result,omitempty"`
}

// Transactions is the number of API transactions the call was billed for.
func (r NewsResponse) Transactions() int { return r.TotalTransactions }

func decodeNewsDocument(v decode.Value) (NewsDocument, error) {
	if _, err := v.AsObject(); err != nil {
		return NewsDocument{}, err
	}
	enriched := v.Field("source").Field("enriched").Field("url")
	return NewsDocument{
		ID:        v.OptString("id"),
		Timestamp: v.OptInt("timestamp"),
		Title:     enriched.OptString("title"),
		URL:       enriched.OptString("url"),
	}, nil
}

func decodeNewsResult(v decode.Value) (NewsResult, error) {
	if _, err := v.AsObject(); err != nil {
		return NewsResult{}, err
	}
	return NewsResult{
		Status: v.OptString("status"),
		Next:   v.OptString("next"),
		Docs:   decode.OptList(v, "docs", decodeNewsDocument),
	}, nil
}

// DecodeNewsResponse decodes a news search response. totalTransactions is required.
func DecodeNewsResponse(v decode.Value) (NewsResponse, error) {
	total, err := v.IntString("totalTransactions")
	if err != nil {
		return NewsResponse{}, err
	}
	return NewsResponse{
		TotalTransactions: total,
		Result:            decode.Optional(v, "result", decodeNewsResult),
	}, nil
}

// Service talks to the AlchemyData News gateway.
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

// GetNews runs a news search.
func (s *Service) GetNews(ctx context.Context, q NewsQuery, done func(watson.Result[NewsResponse])) {
	d := s.builder.Build(pathGetNews, q.params())
	watson.Execute(ctx, s.invoker, d, "NewsResponse", DecodeNewsResponse, done)
}
