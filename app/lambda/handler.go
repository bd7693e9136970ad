package lambda

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/getsentry/sentry-go"
	"github.com/lambda-feedback/edgeroute/edge"
	"github.com/lambda-feedback/edgeroute/edge/schema"
	"github.com/lambda-feedback/edgeroute/rewrite"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// EventHandlerParams represents the parameters required for the
// event handler.
type EventHandlerParams struct {
	fx.In

	// Dispatcher routes decoded events to the edge handlers.
	Dispatcher *rewrite.Dispatcher

	// Logger is the logger for the event handler.
	Logger *zap.Logger
}

// EventHandler validates, decodes and dispatches raw Lambda@Edge
// events.
type EventHandler struct {
	schema     *schema.Schema
	dispatcher *rewrite.Dispatcher
	log        *zap.Logger
}

func NewEventHandler(params EventHandlerParams) (*EventHandler, error) {
	eventSchema, err := schema.NewEventSchema()
	if err != nil {
		return nil, err
	}

	return &EventHandler{
		schema:     eventSchema,
		dispatcher: params.Dispatcher,
		log:        params.Logger,
	}, nil
}

// Handle handles a single raw event. Each invocation is traced as a
// sentry transaction.
func (h *EventHandler) Handle(ctx context.Context, data json.RawMessage) (edge.Result, error) {
	span := sentry.StartTransaction(ctx, "edge.event")
	span.Op = "function.aws.lambda"
	defer span.Finish()

	result, err := h.handle(span.Context(), data)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
	} else {
		span.Status = sentry.SpanStatusOK
	}

	return result, err
}

func (h *EventHandler) handle(ctx context.Context, data json.RawMessage) (edge.Result, error) {
	log := h.log
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With(zap.String("aws_request_id", lc.AwsRequestID))
	}

	if err := h.schema.Validate(data); err != nil {
		log.Debug("invalid event", zap.Error(err))
		return edge.Result{}, err
	}

	var evt edge.Event
	if err := json.Unmarshal(data, &evt); err != nil {
		log.Debug("failed to decode event", zap.Error(err))
		return edge.Result{}, fmt.Errorf("failed to decode event: %w", err)
	}

	result, err := h.dispatcher.Dispatch(ctx, evt)
	if err != nil {
		log.Error("failed to handle event", zap.Error(err))
		sentry.CaptureException(err)
		return edge.Result{}, err
	}

	return result, nil
}

// LambdaHandlerParams represents the parameters required for
// the Lambda handler.
type LambdaHandlerParams struct {
	fx.In

	// Handler handles the received events.
	Handler *EventHandler

	// Context is the context for the Lambda handler.
	Context context.Context

	// Logger is the logger for the Lambda handler.
	Logger *zap.Logger
}

type LambdaHandler struct {
	ctx     context.Context
	cancel  context.CancelFunc
	handler *EventHandler
	log     *zap.Logger
}

// NewLambdaHandler creates a new instance of LambdaHandler
// with the given parameters.
func NewLambdaHandler(params LambdaHandlerParams) *LambdaHandler {
	ctx, cancel := context.WithCancel(params.Context)

	return &LambdaHandler{
		ctx:     ctx,
		cancel:  cancel,
		handler: params.Handler,
		log:     params.Logger,
	}
}

// NewLifecycleHandler creates a new instance of LambdaHandler
// with the given parameters and attaches lifecycle hooks to
// start and stop the handler.
func NewLifecycleHandler(params LambdaHandlerParams, lc fx.Lifecycle) *LambdaHandler {
	handler := NewLambdaHandler(params)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			handler.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			handler.Shutdown()
			return nil
		},
	})
	return handler
}

// Start starts the AWS Lambda runtime interface client in a new
// goroutine.
func (s *LambdaHandler) Start() {
	s.log.Debug("starting lambda runtime client")

	go lambda.StartWithOptions(s.handler.Handle, lambda.WithContext(s.ctx))
}

// Shutdown cancels the execution of the LambdaHandler.
func (s *LambdaHandler) Shutdown() {
	s.cancel()
}
