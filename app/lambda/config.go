package lambda

import "github.com/lambda-feedback/edgeroute/edge"

type Config struct {
	// EventType forces the trigger the function handles. If empty, it
	// is read from each event.
	EventType edge.EventType `conf:"lambda_event_type"`
}
