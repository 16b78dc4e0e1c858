// Package validation contains the logic for validating
// request data.
//
// Two kinds of checks live here: request-shape validation (struct tags via
// go-playground/validator, turned into 400 responses), and the upload value
// sequence, which never fails a request but classifies the submission into a
// model.Outcome that gets stored and echoed back.
package validation
