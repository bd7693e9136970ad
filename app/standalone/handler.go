package standalone

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lambda-feedback/edgeroute/edge"
	"github.com/lambda-feedback/edgeroute/origin"
	"github.com/lambda-feedback/edgeroute/rewrite"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// EdgeHandlerParams defines the dependencies for the edge handler.
type EdgeHandlerParams struct {
	fx.In

	ViewerRequest  *rewrite.ViewerRequestHandler
	OriginResponse *rewrite.OriginResponseHandler
	Store          origin.Store
	Log            *zap.Logger
}

// EdgeHandler emulates a CloudFront distribution with the edge handlers
// attached, serving objects from an origin store.
type EdgeHandler struct {
	viewerRequest  *rewrite.ViewerRequestHandler
	originResponse *rewrite.OriginResponseHandler
	store          origin.Store
	log            *zap.Logger
}

func NewEdgeHandler(params EdgeHandlerParams) *EdgeHandler {
	return &EdgeHandler{
		viewerRequest:  params.ViewerRequest,
		originResponse: params.OriginResponse,
		store:          params.Store,
		log:            params.Log,
	}
}

func (h *EdgeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("host", r.Host),
		zap.String("path", r.URL.EscapedPath()),
	)

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		log.Debug("invalid http method", zap.String("method", r.Method))
		http.Error(w, "invalid http method", http.StatusMethodNotAllowed)
		return
	}

	req := newEdgeRequest(r)

	result, err := h.viewerRequest.Handle(r.Context(), req)
	if err != nil {
		log.Debug("failed to handle viewer request", zap.Error(err))
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if result.IsResponse() {
		writeResponse(w, r, result.Response, nil, log)
		return
	}

	res, obj := h.fetch(r, req, log)
	if obj != nil {
		defer obj.Body.Close()
	}

	res, err = h.originResponse.Handle(r.Context(), req, res)
	if err != nil {
		log.Error("failed to handle origin response", zap.Error(err))
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}

	// the object is only served if the response passed through
	var body io.Reader
	if obj != nil && res.Status == edge.StatusCode(http.StatusOK) && res.Body == "" {
		body = obj.Body
	}

	writeResponse(w, r, res, body, log)
}

// fetch gets the object for the rewritten request from the store and
// converts the outcome into an origin response.
func (h *EdgeHandler) fetch(r *http.Request, req *edge.Request, log *zap.Logger) (*edge.Response, *origin.Object) {
	obj, err := h.store.Get(r.Context(), req.URI)
	switch {
	case err == nil:
		return objectResponse(obj), obj
	case errors.Is(err, origin.ErrNotFound):
		return statusResponse(http.StatusNotFound), nil
	case errors.Is(err, origin.ErrForbidden):
		return statusResponse(http.StatusForbidden), nil
	default:
		log.Error("failed to fetch object", zap.String("key", req.URI), zap.Error(err))
		return statusResponse(http.StatusBadGateway), nil
	}
}

// newEdgeRequest converts an http request into the request object
// CloudFront passes to the edge handlers.
func newEdgeRequest(r *http.Request) *edge.Request {
	headers := edge.Headers{}
	for key, values := range r.Header {
		for _, value := range values {
			headers.Add(key, value)
		}
	}

	// CloudFront never forwards the port of the host
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	headers.Set("Host", host)

	clientIP, _, _ := net.SplitHostPort(r.RemoteAddr)

	// CloudFront passes the uri as sent, percent-encoding included
	return &edge.Request{
		URI:         r.URL.EscapedPath(),
		QueryString: r.URL.RawQuery,
		Method:      r.Method,
		ClientIP:    clientIP,
		Headers:     headers,
	}
}

func objectResponse(obj *origin.Object) *edge.Response {
	headers := edge.Headers{}
	headers.Set("Content-Type", obj.ContentType)
	headers.Set("Content-Length", strconv.FormatInt(obj.ContentLength, 10))

	if obj.ETag != "" {
		headers.Set("ETag", obj.ETag)
	}

	if !obj.LastModified.IsZero() {
		headers.Set("Last-Modified", obj.LastModified.UTC().Format(http.TimeFormat))
	}

	return &edge.Response{
		Status:            edge.StatusCode(http.StatusOK),
		StatusDescription: http.StatusText(http.StatusOK),
		Headers:           headers,
	}
}

func statusResponse(status int) *edge.Response {
	headers := edge.Headers{}
	headers.Set("Content-Type", "text/plain; charset=utf-8")
	headers.Set("Date", time.Now().UTC().Format(http.TimeFormat))

	return &edge.Response{
		Status:            edge.StatusCode(status),
		StatusDescription: http.StatusText(status),
		Headers:           headers,
		Body:              strings.ToLower(http.StatusText(status)),
	}
}

// writeResponse writes the edge response. body replaces the response
// body if set.
func writeResponse(w http.ResponseWriter, r *http.Request, res *edge.Response, body io.Reader, log *zap.Logger) {
	status, ok := res.Status.Int()
	if !ok {
		http.Error(w, "invalid status", http.StatusBadGateway)
		return
	}

	for name, entries := range res.Headers {
		for _, entry := range entries {
			key := entry.Key
			if key == "" {
				key = name
			}
			w.Header().Add(key, entry.Value)
		}
	}

	if body == nil {
		w.Header().Del("Content-Length")
		body = strings.NewReader(res.Body)
	}

	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		return
	}

	if _, err := io.Copy(w, body); err != nil {
		log.Debug("failed to write response body", zap.Error(err))
	}
}
