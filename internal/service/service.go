// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives the raw
// submission from a handler, runs validation, and persists the outcome
// through the repositories.
package service
