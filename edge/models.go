package edge

import (
	"encoding/json"
	"errors"
)

var (
	ErrNoRecords       = errors.New("event has no records")
	ErrMissingRequest  = errors.New("event has no request")
	ErrMissingResponse = errors.New("event has no response")
	ErrEmptyResult     = errors.New("result has neither request nor response")
)

// EventType is the CloudFront trigger that invoked the function.
type EventType string

const (
	EventTypeViewerRequest  EventType = "viewer-request"
	EventTypeViewerResponse EventType = "viewer-response"
	EventTypeOriginRequest  EventType = "origin-request"
	EventTypeOriginResponse EventType = "origin-response"
)

func (t EventType) String() string {
	return string(t)
}

// Request is the request object of a Lambda@Edge event.
type Request struct {
	URI         string  `json:"uri"`
	QueryString string  `json:"querystring"`
	Method      string  `json:"method,omitempty"`
	ClientIP    string  `json:"clientIp,omitempty"`
	Headers     Headers `json:"headers"`
}

// Host returns the first value of the host header.
func (r *Request) Host() (string, bool) {
	return r.Headers.Get("host")
}

// Response is the response object of a Lambda@Edge event.
type Response struct {
	Status            Status  `json:"status"`
	StatusDescription string  `json:"statusDescription,omitempty"`
	Headers           Headers `json:"headers,omitempty"`
	Body              string  `json:"body,omitempty"`
}

// Config describes the distribution and trigger of an event.
type Config struct {
	DistributionDomainName string    `json:"distributionDomainName,omitempty"`
	DistributionID         string    `json:"distributionId,omitempty"`
	EventType              EventType `json:"eventType,omitempty"`
	RequestID              string    `json:"requestId,omitempty"`
}

// CloudFront is the `cf` object of an event record.
type CloudFront struct {
	Config   Config    `json:"config"`
	Request  *Request  `json:"request"`
	Response *Response `json:"response,omitempty"`
}

// Record is a single event record.
type Record struct {
	CF CloudFront `json:"cf"`
}

// Event is the payload CloudFront passes to a Lambda@Edge function.
type Event struct {
	Records []Record `json:"Records"`
}

// CloudFront returns the cf object of the first record, which is the
// only record CloudFront ever sends.
func (e Event) CloudFront() (CloudFront, error) {
	if len(e.Records) == 0 {
		return CloudFront{}, ErrNoRecords
	}

	cf := e.Records[0].CF
	if cf.Request == nil {
		return cf, ErrMissingRequest
	}

	return cf, nil
}

// Result is the outcome of a handler: either a request to forward or
// a response to return to the viewer.
type Result struct {
	Request  *Request
	Response *Response
}

// Forward creates a result forwarding the given request.
func Forward(req *Request) Result {
	return Result{Request: req}
}

// Respond creates a result answering with the given response.
func Respond(res *Response) Result {
	return Result{Response: res}
}

// IsResponse reports whether the result terminates the request.
func (r Result) IsResponse() bool {
	return r.Response != nil
}

// MarshalJSON encodes whichever object the result holds, which is the
// shape CloudFront expects from the function.
func (r Result) MarshalJSON() ([]byte, error) {
	switch {
	case r.Response != nil:
		return json.Marshal(r.Response)
	case r.Request != nil:
		return json.Marshal(r.Request)
	default:
		return nil, ErrEmptyResult
	}
}
