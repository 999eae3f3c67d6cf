package watson

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RawResponse is what came back over the wire.
type RawResponse struct {
	Status   int
	Header   http.Header
	Body     []byte
	Duration time.Duration
}

// OK reports a 2xx status.
func (r RawResponse) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Invoker sends descriptors over HTTP. One descriptor is one network attempt.
type Invoker struct {
	client Doer
	logger logrus.FieldLogger
}

// NewInvoker returns an Invoker using client, or http.DefaultClient when nil.
// A nil logger logs to the standard logger.
func NewInvoker(client Doer, logger logrus.FieldLogger) *Invoker {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Invoker{client: client, logger: logger}
}

// Do performs the request and reads the whole body. Any failure before a
// response body is fully read is a *TransportError.
func (i *Invoker) Do(ctx context.Context, d Descriptor) (RawResponse, error) {
	req, err := d.NewRequest(ctx)
	if err != nil {
		return RawResponse{}, &TransportError{Method: d.Method, URL: d.SafeURL(), Err: err}
	}

	start := time.Now()
	resp, err := i.client.Do(req)
	if err != nil {
		i.logger.WithFields(logrus.Fields{
			"method": d.Method,
			"url":    d.SafeURL(),
		}).WithError(err).Debug("watson call failed")
		return RawResponse{Duration: time.Since(start)}, &TransportError{Method: d.Method, URL: d.SafeURL(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return RawResponse{Status: resp.StatusCode, Duration: elapsed}, &TransportError{Method: d.Method, URL: d.SafeURL(), Err: err}
	}

	i.logger.WithFields(logrus.Fields{
		"method":   d.Method,
		"url":      d.SafeURL(),
		"status":   resp.StatusCode,
		"duration": elapsed,
	}).Debug("watson call completed")

	return RawResponse{
		Status:   resp.StatusCode,
		Header:   resp.Header,
		Body:     body,
		Duration: elapsed,
	}, nil
}

// Send runs Do on its own goroutine and hands the outcome to done exactly once.
func (i *Invoker) Send(ctx context.Context, d Descriptor, done func(RawResponse, error)) {
	go func() {
		done(i.Do(ctx, d))
	}()
}
