package onboarding

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goliatone/go-errors"
)

// Field names the endpoint contract cares about. Any other key travels
// through the payload untouched so extensions can read it.
const (
	FieldStudentName = "student_name"
	FieldEmail       = "email"
	FieldCourse      = "course"
)

// Payload is the flat view of an onboarding request body. It is built once
// per request and treated as read-only afterwards.
type Payload map[string]string

// Get returns the value for a field, or the empty string when absent.
func (p Payload) Get(field string) string {
	if p == nil {
		return ""
	}
	return p[field]
}

// Has reports whether the field was present in the request body.
func (p Payload) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// ParseJSONPayload decodes a JSON request body into a Payload. Scalar values
// are stringified the way a form submission would carry them; nested
// structures are not part of the contract and are dropped.
func ParseJSONPayload(body []byte) (Payload, error) {
	raw := map[string]any{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to parse request body").
			WithTextCode(TextCodeInvalidPayload).
			WithCode(errors.CodeBadRequest)
	}

	payload := make(Payload, len(raw))
	for key, val := range raw {
		switch v := val.(type) {
		case string:
			payload[key] = v
		case float64:
			payload[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			payload[key] = strconv.FormatBool(v)
		case nil:
			payload[key] = ""
		default:
			// arrays and objects have no field semantics here
		}
	}

	return payload, nil
}

// String renders the payload for debug output.
func (p Payload) String() string {
	return fmt.Sprintf("%v", map[string]string(p))
}
