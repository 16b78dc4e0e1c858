package model

// FailureKind classifies why a submission was rejected.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureKeyMissing    FailureKind = "key_missing"
	FailureMalformedJSON FailureKind = "malformed_json"
	FailureNotNumeric    FailureKind = "not_numeric"
	FailureOutOfRange    FailureKind = "out_of_range"
	FailureWrongMethod   FailureKind = "wrong_method"
)

// SuccessText is the submit response body for an accepted value.
const SuccessText = "OK"

// Outcome is the result of validating one submission: either Valid with a
// value in range, or Invalid with a kind and a human-readable reason.
//
// The zero Outcome is not meaningful; build one with Valid or Invalid.
type Outcome struct {
	value  int
	kind   FailureKind
	reason string
}

// Valid builds an accepted outcome.
func Valid(value int) Outcome {
	return Outcome{value: value}
}

// Invalid builds a rejected outcome.
func Invalid(kind FailureKind, reason string) Outcome {
	return Outcome{value: NoValue, kind: kind, reason: reason}
}

// IsValid reports whether the submission was accepted.
func (o Outcome) IsValid() bool {
	return o.kind == FailureNone
}

// Value is the accepted number, or NoValue.
func (o Outcome) Value() int {
	return o.value
}

// Kind is FailureNone for valid outcomes.
func (o Outcome) Kind() FailureKind {
	return o.kind
}

// Reason is empty for valid outcomes.
func (o Outcome) Reason() string {
	return o.reason
}

// Label names the outcome for metrics and logs: "ok" or the failure kind.
func (o Outcome) Label() string {
	if o.IsValid() {
		return "ok"
	}
	return string(o.kind)
}

// ResponseText is what the submit endpoint writes back.
func (o Outcome) ResponseText() string {
	if o.IsValid() {
		return SuccessText
	}
	return o.reason
}

// Record maps the outcome onto the row that gets persisted.
func (o Outcome) Record() TestRecord {
	rec := TestRecord{ID: TestRecordID, Value: o.value}
	if !o.IsValid() {
		reason := o.reason
		rec.Value = NoValue
		rec.ErrorMessage = &reason
	}
	return rec
}
