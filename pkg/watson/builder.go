package watson

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const (
	// ContentTypeForm is sent with every Alchemy request body.
	ContentTypeForm = "application/x-www-form-urlencoded"
	// ContentTypeJSON is sent with LanguageTranslation request bodies.
	ContentTypeJSON = "application/json"

	outputModeJSON = "json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Param is a single query parameter.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered query. Encode keeps insertion order, so the same
// sequence of Add calls always yields the same query string.
type Params []Param

// Add appends name=value.
func (p Params) Add(name, value string) Params {
	return append(p, Param{Name: name, Value: value})
}

// Optional appends name=value only when value is not empty.
func (p Params) Optional(name, value string) Params {
	if value == "" {
		return p
	}
	return p.Add(name, value)
}

// Flag appends a feature flag encoded as "1" or "0".
func (p Params) Flag(name string, enabled bool) Params {
	return p.Add(name, FlagValue(enabled))
}

// FlagValue encodes a boolean the way the gateway expects it.
func FlagValue(enabled bool) string {
	if enabled {
		return "1"
	}
	return "0"
}

// Get returns the first value stored under name.
func (p Params) Get(name string) (string, bool) {
	for _, q := range p {
		if q.Name == name {
			return q.Value, true
		}
	}
	return "", false
}

// Encode renders the query in insertion order.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, q := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(q.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(q.Value))
	}
	return sb.String()
}

func (p Params) redacted() Params {
	out := make(Params, len(p))
	for i, q := range p {
		if q.Name == "apikey" && q.Value != "" {
			q.Value = "***"
		}
		out[i] = q
	}
	return out
}

// Descriptor is a fully specified request ready for the invoker.
type Descriptor struct {
	Method string
	URL    string
	Query  Params
	Header http.Header
	Body   []byte
}

// FullURL returns URL with the encoded query appended.
func (d Descriptor) FullURL() string {
	if len(d.Query) == 0 {
		return d.URL
	}
	return d.URL + "?" + d.Query.Encode()
}

// SafeURL is FullURL with the API key masked, for logs.
func (d Descriptor) SafeURL() string {
	if len(d.Query) == 0 {
		return d.URL
	}
	return d.URL + "?" + d.Query.redacted().Encode()
}

// NewRequest turns the descriptor into an *http.Request bound to ctx.
func (d Descriptor) NewRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if d.Body != nil {
		body = bytes.NewReader(d.Body)
	}
	req, err := http.NewRequestWithContext(ctx, d.Method, d.FullURL(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vals := range d.Header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

// Builder assembles descriptors for one service. It is stateless apart from
// its base URL and key and is safe for concurrent use.
type Builder struct {
	baseURL string
	apiKey  string
}

// NewBuilder returns a Builder targeting baseURL.
func NewBuilder(baseURL, apiKey string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

// Build returns a POST descriptor for path without a body. The query always
// starts with apikey and outputMode=json, followed by params in order.
// Required parameters are not checked here; the service reports them.
func (b *Builder) Build(path string, params Params) Descriptor {
	query := make(Params, 0, len(params)+2)
	query = query.Add("apikey", b.apiKey).Add("outputMode", outputModeJSON)
	query = append(query, params...)

	header := http.Header{}
	header.Set("Accept", ContentTypeJSON)
	return Descriptor{
		Method: http.MethodPost,
		URL:    b.baseURL + path,
		Query:  query,
		Header: header,
	}
}

// BuildWithBody is Build plus a JSON-serialised payload sent as contentType.
func (b *Builder) BuildWithBody(path string, params Params, payload interface{}, contentType string) (Descriptor, error) {
	d := b.Build(path, params)
	body, err := json.Marshal(payload)
	if err != nil {
		return Descriptor{}, fmt.Errorf("encode %s body: %w", path, err)
	}
	d.Body = body
	d.Header.Set("Content-Type", contentType)
	return d, nil
}
