package rewrite

import (
	"context"
	"strings"

	"github.com/lambda-feedback/edgeroute/edge"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// OriginResponseParams defines the dependencies for the origin-response
// handler.
type OriginResponseParams struct {
	fx.In

	Config Config
	Log    *zap.Logger
}

// OriginResponseHandler turns client errors of the origin into a retry
// of the default object, or into a page telling the viewer the branch
// is not deployed yet if the retry failed as well.
type OriginResponseHandler struct {
	pages pages
	log   *zap.Logger
}

func NewOriginResponseHandler(params OriginResponseParams) (*OriginResponseHandler, error) {
	if err := params.Config.Validate(); err != nil {
		return nil, err
	}

	pages, err := renderPages(params.Config)
	if err != nil {
		return nil, err
	}

	return &OriginResponseHandler{
		pages: pages,
		log:   params.Log,
	}, nil
}

func (h *OriginResponseHandler) Handle(
	_ context.Context,
	req *edge.Request,
	res *edge.Response,
) (*edge.Response, error) {
	if !res.Status.Is4xx() {
		return res, nil
	}

	log := h.log.With(
		zap.String("uri", req.URI),
		zap.String("status", string(res.Status)),
	)

	if res.Headers == nil {
		res.Headers = edge.Headers{}
	}

	// the default object is missing as well
	if hasIndexMarker(req) {
		log.Debug("serving not deployed page")

		res.Status = edge.StatusCode(200)
		res.StatusDescription = "OK"
		res.Body = h.pages.notDeployed
		res.Headers.Set("Content-Type", "text/html")

		return res, nil
	}

	location := indexLocation(req)

	log.Debug("redirecting to default object", zap.String("location", location))

	res.Status = edge.StatusCode(302)
	res.StatusDescription = "Found"
	res.Body = ""
	res.Headers.Set("Location", location)

	return res, nil
}

// indexLocation strips the subdomain folder added by the viewer-request
// handler from the uri and appends the index marker to the query.
func indexLocation(req *edge.Request) string {
	var uri string
	if segments := strings.Split(req.URI, "/"); len(segments) > 2 {
		uri = "/" + strings.Join(segments[2:], "/")
	} else {
		uri = "/"
	}

	if req.QueryString != "" {
		return uri + "?" + req.QueryString + "&" + IndexMarker
	}

	return uri + "?" + IndexMarker
}
