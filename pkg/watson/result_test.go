package watson_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alchemy/pkg/watson"
	"alchemy/pkg/watson/decode"
)

type language struct {
	Language string
}

func decodeLanguage(v decode.Value) (language, error) {
	lang, err := v.String("language")
	if err != nil {
		return language{}, err
	}
	return language{Language: lang}, nil
}

func TestCompletePrecedence(t *testing.T) {
	transportErr := &watson.TransportError{Method: "POST", URL: "u", Err: errors.New("dial")}

	t.Run("transport error wins", func(t *testing.T) {
		r := watson.Complete(watson.RawResponse{}, transportErr, "language", decodeLanguage)
		assert.False(t, r.OK())
		assert.True(t, watson.IsKind(r.Err(), watson.KindTransport))
	})

	t.Run("service error body beats decoding", func(t *testing.T) {
		body := []byte(`{"code":400,"error":"bad_request","description":"missing url"}`)
		r := watson.Complete(watson.RawResponse{Status: 200, Body: body}, nil, "language", decodeLanguage)
		var svc *watson.ServiceError
		require.ErrorAs(t, r.Err(), &svc)
		assert.Equal(t, watson.ServiceError{Code: 400, Reason: "bad_request", Description: "missing url"}, *svc)
	})

	t.Run("non-2xx without error body", func(t *testing.T) {
		r := watson.Complete(watson.RawResponse{Status: 502, Body: []byte("bad gateway")}, nil, "language", decodeLanguage)
		var svc *watson.ServiceError
		require.ErrorAs(t, r.Err(), &svc)
		assert.Equal(t, 502, svc.Code)
	})

	t.Run("missing required field", func(t *testing.T) {
		r := watson.Complete(watson.RawResponse{Status: 200, Body: []byte(`{"status":"OK"}`)}, nil, "language", decodeLanguage)
		_, ok := r.Value()
		assert.False(t, ok)
		assert.True(t, watson.IsKind(r.Err(), watson.KindDecode))
		assert.Contains(t, r.Err().Error(), "language: missing")
	})

	t.Run("malformed body", func(t *testing.T) {
		r := watson.Complete(watson.RawResponse{Status: 200, Body: []byte(`{`)}, nil, "language", decodeLanguage)
		assert.True(t, watson.IsKind(r.Err(), watson.KindDecode))
	})

	t.Run("success", func(t *testing.T) {
		r := watson.Complete(watson.RawResponse{Status: 200, Body: []byte(`{"language":"english"}`)}, nil, "language", decodeLanguage)
		v, err := r.Unwrap()
		require.NoError(t, err)
		assert.Equal(t, "english", v.Language)
	})
}

func TestFailureNeverNil(t *testing.T) {
	r := watson.Failure[int](nil)
	assert.False(t, r.OK())
	assert.Error(t, r.Err())
}

func TestExecuteCompletesOnceOverHTTP(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calls/url/URLGetLanguage", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("outputMode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","language":"french"}`))
	}))
	defer srv.Close()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	inv := watson.NewInvoker(srv.Client(), logger)
	d := watson.NewBuilder(srv.URL+"/calls", "key").Build("/url/URLGetLanguage", watson.Params{}.Add("url", "http://x"))

	var calls int32
	got, err := watson.Await(func(done func(watson.Result[language])) {
		watson.Execute(context.Background(), inv, d, "language", decodeLanguage, func(r watson.Result[language]) {
			atomic.AddInt32(&calls, 1)
			done(r)
		})
	})
	require.NoError(t, err)
	assert.Equal(t, "french", got.Language)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits), "exactly one network attempt")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "watson call completed", hook.LastEntry().Message)
	assert.NotContains(t, hook.LastEntry().Data["url"], "key=key")
}

func TestExecuteTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	inv := watson.NewInvoker(nil, nil)
	d := watson.NewBuilder(url, "key").Build("/url/URLGetLanguage", nil)

	_, err := watson.Await(func(done func(watson.Result[language])) {
		watson.Execute(context.Background(), inv, d, "language", decodeLanguage, done)
	})
	require.Error(t, err)
	assert.True(t, watson.IsKind(err, watson.KindTransport))
}

func TestInvokerDoReadsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	raw, err := watson.NewInvoker(srv.Client(), nil).Do(context.Background(), watson.Descriptor{Method: http.MethodPost, URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, raw.Status)
	assert.False(t, raw.OK())
	assert.Equal(t, "short and stout", string(raw.Body))
}

func TestConfigDefaultsUseTransportDefaultClient(t *testing.T) {
	cfg := watson.Config{}.WithDefaults(watson.DefaultGatewayURL + "/")
	assert.Same(t, http.DefaultClient, cfg.HTTPClient)
	assert.Equal(t, watson.DefaultGatewayURL, cfg.BaseURL)
	assert.NotNil(t, cfg.Logger)
}
