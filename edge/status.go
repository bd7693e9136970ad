package edge

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Status is a response status code. CloudFront sends it as a string,
// while handlers may set it as a number, so both forms are accepted
// when decoding. It is always encoded as a string.
type Status string

// StatusCode converts a numeric status code.
func StatusCode(code int) Status {
	return Status(strconv.Itoa(code))
}

// Int returns the numeric value of the status. ok is false if the
// status is not a number.
func (s Status) Int() (code int, ok bool) {
	code, err := strconv.Atoi(strings.TrimSpace(string(s)))
	if err != nil {
		return 0, false
	}

	return code, true
}

// Is4xx reports whether the status is a client error. Any numeric
// form counts, so " 404" and "404.0" are client errors as well.
func (s Status) Is4xx() bool {
	code, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	return err == nil && code >= 400 && code < 500
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Status(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}

	*s = Status(num.String())
	return nil
}
