// Package watson carries the request plumbing shared by the Watson service
// clients: request descriptors, the HTTP invoker, error mapping and the Result
// value handed to every completion.
package watson

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultGatewayURL is the gateway every Alchemy capability is served from.
const DefaultGatewayURL = "http://gateway-a.watsonplatform.net/calls"

// Doer is the part of *http.Client the invoker needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ Doer = (*http.Client)(nil)

// Config configures one service client. Each client owns its own Config, so
// several clients can target different gateways or keys side by side.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient Doer
	Logger     logrus.FieldLogger
}

// WithDefaults fills unset fields. defaultBase is used when BaseURL is empty.
func (c Config) WithDefaults(defaultBase string) Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBase
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}
