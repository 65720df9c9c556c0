package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

var (
	ErrAgentFailed     = errors.New("retrieval agent failed")
	ErrVisionFailed    = errors.New("vision completion failed")
	ErrEmptyCompletion = errors.New("completion returned no choices")
	ErrFeedbackFailed  = errors.New("feedback forwarding failed")

	ErrUnsupportedTransport = errors.New("unsupported adapter transport")

	ErrNotLoggedIn = errors.New("not logged in")
)
