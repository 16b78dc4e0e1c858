// Package handler is the HTTP layer behind the router.
//
// It binds requests, runs them through validation, calls the service layer
// and writes the response.
package handler
