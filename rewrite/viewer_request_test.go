package rewrite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lambda-feedback/edgeroute/edge"
	"github.com/lambda-feedback/edgeroute/rewrite"
)

var testConfig = rewrite.Config{
	Hostname:      "example.org",
	DefaultObject: "/index.html",
}

func createViewerRequestHandler(t *testing.T) *rewrite.ViewerRequestHandler {
	h, err := rewrite.NewViewerRequestHandler(rewrite.ViewerRequestParams{
		Config: testConfig,
		Log:    zap.NewNop(),
	})
	require.NoError(t, err)

	return h
}

func newRequest(host, uri, query string) *edge.Request {
	headers := edge.Headers{}
	headers.Set("Host", host)

	return &edge.Request{
		URI:         uri,
		QueryString: query,
		Method:      "GET",
		Headers:     headers,
	}
}

func TestNewViewerRequestHandler_InvalidConfig(t *testing.T) {
	_, err := rewrite.NewViewerRequestHandler(rewrite.ViewerRequestParams{
		Config: rewrite.Config{DefaultObject: "/index.html"},
		Log:    zap.NewNop(),
	})
	assert.ErrorIs(t, err, rewrite.ErrMissingHostname)

	_, err = rewrite.NewViewerRequestHandler(rewrite.ViewerRequestParams{
		Config: rewrite.Config{Hostname: "example.org", DefaultObject: "index.html"},
		Log:    zap.NewNop(),
	})
	assert.ErrorIs(t, err, rewrite.ErrInvalidDefaultObject)
}

func TestViewerRequest_CallbackHost(t *testing.T) {
	h := createViewerRequestHandler(t)

	req := newRequest("branch.example.org", "/", "code=abc&state=xyz%7cfeature-1")

	result, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.IsResponse())
	assert.Nil(t, result.Request)

	res := result.Response
	assert.Equal(t, edge.Status("200"), res.Status)
	assert.Equal(t, "OK", res.StatusDescription)
	assert.Equal(t, []edge.HeaderEntry{{Key: "Cache-Control", Value: "max-age=100"}}, res.Headers["cache-control"])
	assert.Equal(t, []edge.HeaderEntry{{Key: "Content-Type", Value: "text/html"}}, res.Headers["content-type"])
	assert.Contains(t, res.Body, "state=[^&#]+%7c([0-9a-zA-Z-]+)")
	assert.Contains(t, res.Body, `"https://branch.example.org"`)
	assert.Contains(t, res.Body, "window.location.replace(newUrl)")

	// the request is left untouched
	assert.Equal(t, "/", req.URI)
}

func TestViewerRequest_Rewrite(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		uri      string
		query    string
		expected string
	}{
		{"root", "sub.branch.example.org", "/", "", "/sub/index.html"},
		{"file", "sub.branch.example.org", "/foo.txt", "", "/sub/foo.txt"},
		{"nested file", "feature-1.branch.example.org", "/assets/app.js", "v=2", "/feature-1/assets/app.js"},
		{"index marker", "sub.branch.example.org", "/missing.html", "cloudfrontindex=true", "/sub/index.html"},
		{"index marker with query", "sub.branch.example.org", "/docs/page", "a=1&cloudfrontindex=true", "/sub/index.html"},
		{"foreign host", "other.org", "/foo.txt", "", "/other.org/foo.txt"},
	}

	h := createViewerRequestHandler(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(tt.host, tt.uri, tt.query)

			result, err := h.Handle(context.Background(), req)
			require.NoError(t, err)
			require.False(t, result.IsResponse())

			assert.Same(t, req, result.Request)
			assert.Equal(t, tt.expected, req.URI)
			assert.Equal(t, tt.query, req.QueryString)
		})
	}
}

func TestViewerRequest_CustomDefaultObject(t *testing.T) {
	h, err := rewrite.NewViewerRequestHandler(rewrite.ViewerRequestParams{
		Config: rewrite.Config{Hostname: "example.org", DefaultObject: "/app/main.html"},
		Log:    zap.NewNop(),
	})
	require.NoError(t, err)

	req := newRequest("sub.branch.example.org", "/", "")

	_, err = h.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "/sub/app/main.html", req.URI)
}

func TestViewerRequest_MissingHost(t *testing.T) {
	h := createViewerRequestHandler(t)

	_, err := h.Handle(context.Background(), &edge.Request{URI: "/", Headers: edge.Headers{}})
	assert.ErrorIs(t, err, rewrite.ErrMissingHost)
}
