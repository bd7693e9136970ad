package rewrite

import (
	"context"
	"errors"
	"strings"

	"github.com/lambda-feedback/edgeroute/edge"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrMissingHost = errors.New("request has no host header")

// ViewerRequestParams defines the dependencies for the viewer-request
// handler.
type ViewerRequestParams struct {
	fx.In

	Config Config
	Log    *zap.Logger
}

// ViewerRequestHandler routes viewer requests into the folder of the
// requesting subdomain.
type ViewerRequestHandler struct {
	config Config
	pages  pages
	log    *zap.Logger
}

func NewViewerRequestHandler(params ViewerRequestParams) (*ViewerRequestHandler, error) {
	if err := params.Config.Validate(); err != nil {
		return nil, err
	}

	pages, err := renderPages(params.Config)
	if err != nil {
		return nil, err
	}

	return &ViewerRequestHandler{
		config: params.Config,
		pages:  pages,
		log:    params.Log,
	}, nil
}

// Handle rewrites the request uri to /<subdomain><path>. Requests to
// the identity provider callback host are answered with a page that
// forwards the browser to the subdomain carried in the login state.
func (h *ViewerRequestHandler) Handle(_ context.Context, req *edge.Request) (edge.Result, error) {
	host, ok := req.Host()
	if !ok {
		return edge.Result{}, ErrMissingHost
	}

	log := h.log.With(
		zap.String("host", host),
		zap.String("uri", req.URI),
	)

	if host == h.config.BranchHost() {
		log.Debug("serving login callback page")
		return edge.Respond(h.callbackResponse()), nil
	}

	path := req.URI
	if path == "/" || hasIndexMarker(req) {
		path = h.config.DefaultObject
	}

	subdomain, _, _ := strings.Cut(host, h.config.branchSuffix())

	req.URI = "/" + subdomain + path

	log.Debug("rewrote request", zap.String("rewritten_uri", req.URI))

	return edge.Forward(req), nil
}

func (h *ViewerRequestHandler) callbackResponse() *edge.Response {
	headers := edge.Headers{}
	headers.Set("Cache-Control", "max-age=100")
	headers.Set("Content-Type", "text/html")

	return &edge.Response{
		Status:            edge.StatusCode(200),
		StatusDescription: "OK",
		Headers:           headers,
		Body:              h.pages.callback,
	}
}

func hasIndexMarker(req *edge.Request) bool {
	return strings.Contains(req.QueryString, IndexMarker)
}
