package rewrite

import (
	"context"
	"errors"
	"fmt"

	"github.com/lambda-feedback/edgeroute/edge"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrUnsupportedEventType = errors.New("unsupported event type")

// DispatcherConfig configures the event dispatcher.
type DispatcherConfig struct {
	// EventType overrides the event type of incoming events. If empty,
	// the type is taken from the event config.
	EventType edge.EventType `conf:"event_type"`
}

// DispatcherParams defines the dependencies for the dispatcher.
type DispatcherParams struct {
	fx.In

	Config         DispatcherConfig `optional:"true"`
	ViewerRequest  *ViewerRequestHandler
	OriginResponse *OriginResponseHandler
	Log            *zap.Logger
}

// Dispatcher routes Lambda@Edge events to the handler of their trigger.
type Dispatcher struct {
	eventType      edge.EventType
	viewerRequest  *ViewerRequestHandler
	originResponse *OriginResponseHandler
	log            *zap.Logger
}

func NewDispatcher(params DispatcherParams) *Dispatcher {
	return &Dispatcher{
		eventType:      params.Config.EventType,
		viewerRequest:  params.ViewerRequest,
		originResponse: params.OriginResponse,
		log:            params.Log.Named("dispatcher"),
	}
}

// Dispatch handles the event and returns the object CloudFront should
// continue with.
func (d *Dispatcher) Dispatch(ctx context.Context, evt edge.Event) (edge.Result, error) {
	cf, err := evt.CloudFront()
	if err != nil {
		return edge.Result{}, err
	}

	eventType := d.eventType
	if eventType == "" {
		eventType = cf.Config.EventType
	}

	log := d.log.With(
		zap.Stringer("event_type", eventType),
		zap.String("request_id", cf.Config.RequestID),
	)

	switch eventType {
	case edge.EventTypeViewerRequest:
		log.Debug("dispatching viewer request")
		return d.viewerRequest.Handle(ctx, cf.Request)

	case edge.EventTypeOriginResponse:
		if cf.Response == nil {
			return edge.Result{}, edge.ErrMissingResponse
		}

		log.Debug("dispatching origin response")

		res, err := d.originResponse.Handle(ctx, cf.Request, cf.Response)
		if err != nil {
			return edge.Result{}, err
		}

		return edge.Respond(res), nil

	default:
		log.Debug("unsupported event type")
		return edge.Result{}, fmt.Errorf("%w: %q", ErrUnsupportedEventType, eventType)
	}
}
