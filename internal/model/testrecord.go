// Package model holds the domain types shared by the service layers.
package model

import "time"

// TestRecordID is the fixed identity of the only TestRecord that exists.
const TestRecordID = 1

// NoValue is stored whenever a submission did not carry a valid number.
const NoValue = -1

// Accepted bounds for a submitted value, inclusive.
const (
	MinValue = 0
	MaxValue = 9999
)

// NoRecordMessage is reported by Fetch while nothing was ever submitted.
const NoRecordMessage = "No test value stored."

// TestRecord is the single persisted row: the last submitted value and the
// reason it was rejected, if it was.
//
// ErrorMessage is nil exactly when Value lies in [MinValue, MaxValue].
type TestRecord struct {
	ID           int
	Value        int
	ErrorMessage *string
	UpdatedAt    time.Time
}

// Valid reports whether the record holds an accepted value.
func (r TestRecord) Valid() bool {
	return r.ErrorMessage == nil
}

// FetchResponse is the wire shape returned by the fetch endpoint.
type FetchResponse struct {
	InputValue   int     `json:"inputValue"`
	ErrorMessage *string `json:"errorMessage"`
}

// NewFetchResponse converts a stored record into its wire shape.
func NewFetchResponse(r TestRecord) FetchResponse {
	return FetchResponse{
		InputValue:   r.Value,
		ErrorMessage: r.ErrorMessage,
	}
}

// EmptyFetchResponse is returned when no record exists yet.
func EmptyFetchResponse() FetchResponse {
	msg := NoRecordMessage
	return FetchResponse{
		InputValue:   NoValue,
		ErrorMessage: &msg,
	}
}
