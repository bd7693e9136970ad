package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed event.json
var eventSchema json.RawMessage
var eventSchemaLoader = gojsonschema.NewBytesLoader(eventSchema)

// Schema validates raw Lambda@Edge events.
type Schema struct {
	schema *gojsonschema.Schema
}

// NewEventSchema compiles the embedded event schema.
func NewEventSchema() (*Schema, error) {
	schema, err := gojsonschema.NewSchema(eventSchemaLoader)
	if err != nil {
		return nil, err
	}

	return &Schema{schema: schema}, nil
}

// Validate validates the raw event against the schema. A non-nil
// *ValidationError is returned if the event does not conform.
func (s *Schema) Validate(data []byte) error {
	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return err
	}

	if res.Valid() {
		return nil
	}

	return &ValidationError{Errors: res.Errors()}
}

// ValidationError lists the schema violations of an event.
type ValidationError struct {
	Errors []gojsonschema.ResultError
}

func (e *ValidationError) Error() string {
	details := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		details = append(details, err.String())
	}

	return fmt.Sprintf("invalid event: %s", strings.Join(details, "; "))
}
