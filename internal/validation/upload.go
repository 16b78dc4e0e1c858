package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/deppfellow/roundtrip/internal/model"
	"github.com/go-playground/validator/v10"
)

// UploadValueField names both the form field and the JSON key inside it.
const UploadValueField = "UploadValue"

// Messages written back (and stored) for each rejected submission.
const (
	MsgKeyMissing    = "'UploadValue' key missing in POST values"
	MsgMissingInJSON = "[UploadValue] is missing from JSON: "
	MsgNotNumeric    = "Input value must be numeric: "
	MsgOutOfRange    = "The number must be in the range [0..9999]"
	MsgWrongMethod   = "Use POST to send values"
)

// numericString accepts what a numeric form field may look like: optional
// surrounding whitespace, a sign, digits with an optional fraction, and an
// optional exponent. Hex, inf, nan and digit separators are rejected.
var numericString = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?[ \t\n\r\v\f]*$`)

var validate = validator.New()

// rangeRule is the bound check applied after truncation.
const rangeRule = "min=0,max=9999"

// ValidateUpload runs the submission sequence over the raw form field and
// stops at the first failure. field is nil when the form did not carry it.
func ValidateUpload(field *string) model.Outcome {
	if field == nil {
		return model.Invalid(model.FailureKeyMissing, MsgKeyMissing)
	}

	raw, ok := extractUploadValue(*field)
	if !ok {
		return model.Invalid(model.FailureMalformedJSON, MsgMissingInJSON+*field)
	}

	number, ok := numericValue(raw)
	if !ok {
		return model.Invalid(model.FailureNotNumeric, MsgNotNumeric+displayValue(raw))
	}

	// The range check runs on the truncated value, not the parsed one.
	// Truncation is toward zero, so fractions just below the bounds are
	// still accepted: -0.5 becomes 0 and 9999.99 becomes 9999. Checking the
	// untruncated number would reject both while storing the same integer
	// for neighbours such as 0.5.
	truncated := math.Trunc(number)
	if err := validate.Var(truncated, rangeRule); err != nil {
		return model.Invalid(model.FailureOutOfRange, MsgOutOfRange)
	}

	return model.Valid(int(truncated))
}

// WrongMethod is the outcome stored for anything but POST.
func WrongMethod() model.Outcome {
	return model.Invalid(model.FailureWrongMethod, MsgWrongMethod)
}

// extractUploadValue decodes doc as a JSON object and returns the raw value
// under the exact key UploadValue. Invalid JSON, non-object documents, a
// missing key and an explicit null all report false.
//
// The lookup is case-sensitive, which decoding into a tagged struct would not
// be.
func extractUploadValue(doc string) (json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc), &fields); err != nil || fields == nil {
		return nil, false
	}

	raw, ok := fields[UploadValueField]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

// numericValue parses a JSON number or a numeric string.
func numericValue(raw json.RawMessage) (float64, bool) {
	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		if !numericString.MatchString(text) {
			return 0, false
		}
		text = strings.Trim(text, " \t\n\r\v\f")
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return 0, false
	}

	number, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// ErrRange yields ±Inf or 0, both handled by the range rule.
	return number, true
}

// displayValue renders a rejected value for the error message: strings
// verbatim, booleans as 1 or nothing, anything else as compact JSON.
func displayValue(raw json.RawMessage) string {
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case 't':
		return "1"
	case 'f':
		return ""
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
